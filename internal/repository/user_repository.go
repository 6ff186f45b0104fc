package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"blog-web-server/config"
	"blog-web-server/internal/model"
	"blog-web-server/internal/util"

	"github.com/lib/pq"
)

const publicUserColumns = `id, username, email, phone, nickname, image, created_at, updated_at`

// колонки, допустимые в ORDER BY списка пользователей
var userOrderColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"username":   "username",
	"email":      "email",
}

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// translateUniqueViolation : нарушение уникальности (username/email/slug)
// превращается в model.ErrConflict в точке перехвата; остальные ошибки БД
// уходят выше без изменений
func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", model.ErrConflict, pqErr.Constraint)
	}
	return err
}

// Create : сохраняет нового пользователя, возвращает публичную проекцию
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.PublicUser, error) {
	query := `
	INSERT INTO users (username, email, password_hash, phone, nickname, image)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + publicUserColumns

	created := &model.PublicUser{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Nickname,
		user.Image,
	).StructScan(created)

	if err != nil {
		if translated := translateUniqueViolation(err); errors.Is(translated, model.ErrConflict) {
			return nil, translated
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// FindByID : публичная проекция по id
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.PublicUser, error) {
	query := `SELECT ` + publicUserColumns + ` FROM users WHERE id = $1`

	user := &model.PublicUser{}
	err := r.DB.GetContext(ctx, user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return user, nil
}

// FindByIdentifier ищет пользователя по username ИЛИ email одним запросом.
// Единственное место, откуда password_hash покидает таблицу
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	query := `
	SELECT id, username, email, password_hash, phone, nickname, image, refresh_token_hash, created_at, updated_at
	FROM users
	WHERE username = $1 OR email = $1`

	user := &model.User{}
	err := r.DB.GetContext(ctx, user, query, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по идентификатору", err)
	}
	return user, nil
}

// FindRefreshByID : срез для операции refresh — id, username и хэш
// активного refresh токена (NULL = активной сессии нет)
func (r *UserRepository) FindRefreshByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, username, refresh_token_hash FROM users WHERE id = $1`

	user := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.RefreshTokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return user, nil
}

// ExistsByUsernameOrEmail : одна комбинированная проверка существования
// для регистрации
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	err := r.DB.GetContext(ctx, &exists, query, username, email)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// UpdateRefreshHash перезаписывает хэш refresh токена; nil снимает сессию.
// Перезапись безусловная: одна активная сессия на пользователя
func (r *UserRepository) UpdateRefreshHash(ctx context.Context, id int64, hash *string) error {
	query := `UPDATE users SET refresh_token_hash = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, id, hash)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить refresh хэш", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить обновление refresh хэша", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Update : частичное обновление профиля, nil-поля не трогаются
func (r *UserRepository) Update(ctx context.Context, id int64, input model.UpdateUserInput) (*model.PublicUser, error) {
	set := []string{}
	args := []interface{}{id}

	addField := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Username != nil {
		addField("username", *input.Username)
	}
	if input.Email != nil {
		addField("email", *input.Email)
	}
	if input.Phone != nil {
		addField("phone", *input.Phone)
	}
	if input.Nickname != nil {
		addField("nickname", *input.Nickname)
	}
	if input.Image != nil {
		addField("image", *input.Image)
	}

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, strings.Join(set, ", "), publicUserColumns)

	updated := &model.PublicUser{}
	err := r.DB.QueryRowxContext(ctx, query, args...).StructScan(updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		if translated := translateUniqueViolation(err); errors.Is(translated, model.ErrConflict) {
			return nil, translated
		}
		return nil, util.LogError("[UserRepo] не удалось обновить пользователя", err)
	}
	return updated, nil
}

// Delete : удаляет пользователя, каскадно удаляя его посты (FK)
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return util.LogError("[UserRepo] не удалось удалить пользователя", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить удаление пользователя", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}

// List : страница пользователей с поиском по username/email/nickname
func (r *UserRepository) List(ctx context.Context, params model.UserListParams) ([]*model.PublicUser, int64, error) {
	where := ""
	args := []interface{}{}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		where = `WHERE username ILIKE $1 OR email ILIKE $1 OR nickname ILIKE $1`
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users ` + where
	if err := r.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, util.LogError("[UserRepo] не удалось посчитать пользователей", err)
	}

	orderColumn, ok := userOrderColumns[params.OrderBy]
	if !ok {
		orderColumn = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(params.Order, "asc") {
		direction = "ASC"
	}

	args = append(args, params.Limit)
	limitPos := len(args)
	args = append(args, (params.Page-1)*params.Limit)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT %s FROM users
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`, publicUserColumns, where, orderColumn, direction, limitPos, offsetPos)

	users := []*model.PublicUser{}
	if err := r.DB.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}

	return users, total, nil
}
