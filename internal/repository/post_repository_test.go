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
	"github.com/stretchr/testify/assert"
)

func newMockPostRepository(t *testing.T) (*repository.PostRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return repository.NewPostRepository(&config.Database{DB: sqlxDB}), mock
}

func postRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "slug", "title", "content", "cover_image", "tags", "author_id",
		"created_at", "updated_at", "author_username", "author_nickname", "author_image",
	}).AddRow(int64(5), "my-post", "Заголовок", "текст", nil, "{go,web}", int64(1),
		now, now, "alice", nil, nil)
}

// 1. Удаление выполняется одним запросом и возвращает прежнее состояние поста
// вместе с автором
func TestPostRepository_Delete(t *testing.T) {
	repo, mock := newMockPostRepository(t)

	mock.ExpectQuery(`(?s)WITH deleted AS.+DELETE FROM posts.+RETURNING.+JOIN users`).
		WithArgs(int64(5)).
		WillReturnRows(postRows())

	post, err := repo.Delete(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, "my-post", post.Slug)
	assert.Equal(t, []string{"go", "web"}, []string(post.Tags))
	assert.Equal(t, "alice", post.Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 2. Удаление несуществующего поста даёт ErrNotFound
func TestPostRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMockPostRepository(t)

	mock.ExpectQuery(`(?s)WITH deleted AS.+DELETE FROM posts`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
