package model

import (
	"time"

	"github.com/lib/pq"
)

type Post struct {
	ID         int64          `db:"id" json:"id"`
	Slug       string         `db:"slug" json:"slug"`
	Title      string         `db:"title" json:"title"`
	Content    string         `db:"content" json:"content"`
	CoverImage *string        `db:"cover_image" json:"coverImage,omitempty"`
	Tags       pq.StringArray `db:"tags" json:"tags"`
	AuthorID   int64          `db:"author_id" json:"authorId"`
	Author     *PostAuthor    `db:"-" json:"author,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

// PostAuthor : проекция автора, отдаваемая вместе с постом
type PostAuthor struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Nickname *string `json:"nickname,omitempty"`
	Image    *string `json:"image,omitempty"`
}

type CreatePostInput struct {
	Slug       string
	Title      string
	Content    string
	CoverImage *string
	Tags       []string
}

// UpdatePostInput : nil-поле означает «не менять»
type UpdatePostInput struct {
	Slug       *string
	Title      *string
	Content    *string
	CoverImage *string
	Tags       []string
}

// PostListParams : параметры поиска/сортировки/пагинации списка постов
type PostListParams struct {
	Page     int
	Limit    int
	OrderBy  string
	Order    string
	AuthorID int64
	Tags     []string
	Query    string
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

type PostPage struct {
	Items []*Post  `json:"items"`
	Meta  PageMeta `json:"meta"`
}

type OffsetMeta struct {
	Total   int64 `json:"total"`
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"hasMore"`
}

// PostFeed : лента с offset/limit пагинацией
type PostFeed struct {
	Items []*Post    `json:"items"`
	Meta  OffsetMeta `json:"meta"`
}

// UploadResult : результат загрузки и перекодирования изображения
type UploadResult struct {
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	OriginalSize int64  `json:"originalSize"`
	MimeType     string `json:"mimetype"`
}
