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

const postSelect = `
	SELECT p.id, p.slug, p.title, p.content, p.cover_image, p.tags, p.author_id,
	       p.created_at, p.updated_at,
	       u.username AS author_username, u.nickname AS author_nickname, u.image AS author_image
	FROM posts AS p
	JOIN users AS u ON u.id = p.author_id
`

var postOrderColumns = map[string]string{
	"created_at": "p.created_at",
	"updated_at": "p.updated_at",
	"title":      "p.title",
}

// postRow : строка выборки с присоединёнными полями автора
type postRow struct {
	model.Post
	AuthorUsername string  `db:"author_username"`
	AuthorNickname *string `db:"author_nickname"`
	AuthorImage    *string `db:"author_image"`
}

func (row *postRow) toPost() *model.Post {
	post := row.Post
	post.Author = &model.PostAuthor{
		ID:       post.AuthorID,
		Username: row.AuthorUsername,
		Nickname: row.AuthorNickname,
		Image:    row.AuthorImage,
	}
	return &post
}

type PostRepository struct {
	*config.Database
}

func NewPostRepository(database *config.Database) *PostRepository {
	return &PostRepository{database}
}

// Create : сохраняет новый пост; занятый slug даёт model.ErrConflict
func (r *PostRepository) Create(ctx context.Context, authorID int64, input model.CreatePostInput) (*model.Post, error) {
	query := `
		INSERT INTO posts (slug, title, content, cover_image, tags, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.DB.QueryRowxContext(ctx, query,
		input.Slug,
		input.Title,
		input.Content,
		input.CoverImage,
		pq.Array(input.Tags),
		authorID,
	).Scan(&id)

	if err != nil {
		if translated := translateUniqueViolation(err); errors.Is(translated, model.ErrConflict) {
			return nil, translated
		}
		return nil, util.LogError("[PostRepo] ошибка вставки данных в БД", err)
	}

	return r.findByID(ctx, id)
}

func (r *PostRepository) findByID(ctx context.Context, id int64) (*model.Post, error) {
	row := &postRow{}
	err := r.DB.GetContext(ctx, row, postSelect+` WHERE p.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[PostRepo] не удалось найти пост в БД", err)
	}
	return row.toPost(), nil
}

// FindBySlug : пост по уникальному slug
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	row := &postRow{}
	err := r.DB.GetContext(ctx, row, postSelect+` WHERE p.slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[PostRepo] не удалось найти пост по slug", err)
	}
	return row.toPost(), nil
}

// FindOwner : автор и slug поста — для проверки владения и инвалидации кэша
func (r *PostRepository) FindOwner(ctx context.Context, id int64) (int64, string, error) {
	var owner struct {
		AuthorID int64  `db:"author_id"`
		Slug     string `db:"slug"`
	}
	err := r.DB.GetContext(ctx, &owner, `SELECT author_id, slug FROM posts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", model.ErrNotFound
		}
		return 0, "", util.LogError("[PostRepo] не удалось найти пост в БД", err)
	}
	return owner.AuthorID, owner.Slug, nil
}

// buildListFilter собирает WHERE из параметров поиска.
// Возвращает условие (без ключевого слова WHERE) и аргументы
func buildListFilter(params model.PostListParams) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if params.AuthorID != 0 {
		args = append(args, params.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}

	if len(params.Tags) > 0 {
		args = append(args, pq.Array(params.Tags))
		conditions = append(conditions, fmt.Sprintf("p.tags && $%d", len(args)))
	}

	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		pattern := len(args)
		args = append(args, params.Query)
		exact := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(p.title ILIKE $%[1]d OR p.content ILIKE $%[1]d OR p.slug ILIKE $%[1]d
			  OR $%[2]d = ANY(p.tags)
			  OR u.username ILIKE $%[1]d OR u.nickname ILIKE $%[1]d)`, pattern, exact))
	}

	return strings.Join(conditions, " AND "), args
}

// List : страница постов с поиском/фильтрами/сортировкой и общим количеством
func (r *PostRepository) List(ctx context.Context, params model.PostListParams) ([]*model.Post, int64, error) {
	filter, args := buildListFilter(params)
	where := ""
	if filter != "" {
		where = "WHERE " + filter
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM posts AS p JOIN users AS u ON u.id = p.author_id ` + where
	if err := r.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, util.LogError("[PostRepo] не удалось посчитать посты", err)
	}

	orderColumn, ok := postOrderColumns[params.OrderBy]
	if !ok {
		orderColumn = "p.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(params.Order, "asc") {
		direction = "ASC"
	}

	args = append(args, params.Limit)
	limitPos := len(args)
	args = append(args, (params.Page-1)*params.Limit)
	offsetPos := len(args)

	query := fmt.Sprintf(`%s %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		postSelect, where, orderColumn, direction, limitPos, offsetPos)

	rows := []*postRow{}
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, util.LogError("[PostRepo] не удалось получить список постов", err)
	}

	posts := make([]*model.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toPost())
	}
	return posts, total, nil
}

// ListOffset : лента по offset/limit, новые сверху
func (r *PostRepository) ListOffset(ctx context.Context, offset, limit int) ([]*model.Post, int64, error) {
	var total int64
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return nil, 0, util.LogError("[PostRepo] не удалось посчитать посты", err)
	}

	query := postSelect + ` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`
	rows := []*postRow{}
	if err := r.DB.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, 0, util.LogError("[PostRepo] не удалось получить ленту постов", err)
	}

	posts := make([]*model.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toPost())
	}
	return posts, total, nil
}

// Update : частичное обновление, nil-поля не трогаются; занятый slug даёт
// model.ErrConflict
func (r *PostRepository) Update(ctx context.Context, id int64, input model.UpdatePostInput) (*model.Post, error) {
	set := []string{}
	args := []interface{}{id}

	addField := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Slug != nil {
		addField("slug", *input.Slug)
	}
	if input.Title != nil {
		addField("title", *input.Title)
	}
	if input.Content != nil {
		addField("content", *input.Content)
	}
	if input.CoverImage != nil {
		addField("cover_image", *input.CoverImage)
	}
	if input.Tags != nil {
		addField("tags", pq.Array(input.Tags))
	}

	if len(set) == 0 {
		return r.findByID(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE posts SET %s, updated_at = NOW() WHERE id = $1`, strings.Join(set, ", "))

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if translated := translateUniqueViolation(err); errors.Is(translated, model.ErrConflict) {
			return nil, translated
		}
		return nil, util.LogError("[PostRepo] не удалось обновить пост", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, util.LogError("[PostRepo] не удалось проверить обновление поста", err)
	}
	if rowsAffected == 0 {
		return nil, model.ErrNotFound
	}

	return r.findByID(ctx, id)
}

// Delete удаляет пост одним запросом и возвращает его последнее состояние.
// CTE нужен, чтобы между чтением и удалением не было окна
func (r *PostRepository) Delete(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		WITH deleted AS (
			DELETE FROM posts WHERE id = $1
			RETURNING id, slug, title, content, cover_image, tags, author_id, created_at, updated_at
		)
		SELECT d.id, d.slug, d.title, d.content, d.cover_image, d.tags, d.author_id,
		       d.created_at, d.updated_at,
		       u.username AS author_username, u.nickname AS author_nickname, u.image AS author_image
		FROM deleted AS d
		JOIN users AS u ON u.id = d.author_id
	`

	row := &postRow{}
	err := r.DB.GetContext(ctx, row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[PostRepo] не удалось удалить пост", err)
	}

	return row.toPost(), nil
}
