package repository_test

import (
	"context"
	"testing"
	"time"

	"blog-web-server/config"
	"blog-web-server/internal/model"
	"blog-web-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newMockUserRepository(t *testing.T) (*repository.UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return repository.NewUserRepository(&config.Database{DB: sqlxDB}), mock
}

func publicUserRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "username", "email", "phone", "nickname", "image", "created_at", "updated_at",
	}).AddRow(int64(1), "alice", "a@x.com", nil, nil, nil, now, now)
}

// 1. Успешная вставка возвращает публичную проекцию без хэша пароля
func TestUserRepository_Create(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "a@x.com", "hash", nil, nil, nil).
		WillReturnRows(publicUserRows())

	user, err := repo.Create(context.Background(), &model.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 2. Нарушение уникального индекса переводится в ErrConflict
func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	_, err := repo.Create(context.Background(), &model.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
	})

	assert.ErrorIs(t, err, model.ErrConflict)
	assert.Contains(t, err.Error(), "users_username_key")
}

// 3. Комбинированная проверка существования
func TestUserRepository_ExistsByUsernameOrEmail(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice", "a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsernameOrEmail(context.Background(), "alice", "a@x.com")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 4. Поиск по идентификатору: одна строка для username и email
func TestUserRepository_FindByIdentifier_NotFound(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectQuery(`WHERE username = \$1 OR email = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByIdentifier(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

// 5. Обнуление refresh хэша (logout)
func TestUserRepository_UpdateRefreshHash_Clear(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectExec(`UPDATE users SET refresh_token_hash`).
		WithArgs(int64(1), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateRefreshHash(context.Background(), 1, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 6. Обновление хэша несуществующего пользователя
func TestUserRepository_UpdateRefreshHash_UnknownUser(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	hash := "deadbeef"
	mock.ExpectExec(`UPDATE users SET refresh_token_hash`).
		WithArgs(int64(99), &hash).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRefreshHash(context.Background(), 99, &hash)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

// 7. Частичное обновление: меняется только переданное поле
func TestUserRepository_Update_SingleField(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	nickname := "Алиса"
	mock.ExpectQuery(`UPDATE users\s+SET nickname = \$2`).
		WithArgs(int64(1), "Алиса").
		WillReturnRows(publicUserRows())

	user, err := repo.Update(context.Background(), 1, model.UpdateUserInput{Nickname: &nickname})

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 8. Пустой ввод не пишет в БД, а читает текущее состояние
func TestUserRepository_Update_NoFields(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(publicUserRows())

	user, err := repo.Update(context.Background(), 1, model.UpdateUserInput{})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

// 9. Удаление несуществующего пользователя
func TestUserRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

// 10. Список с поиском: count и страница используют один фильтр
func TestUserRepository_List_Search(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`(?s)SELECT .+ FROM users.+ILIKE \$1.+ORDER BY created_at DESC`).
		WithArgs("%ali%", 20, 0).
		WillReturnRows(publicUserRows())

	users, total, err := repo.List(context.Background(), model.UserListParams{
		Page:   1,
		Limit:  20,
		Search: "ali",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
