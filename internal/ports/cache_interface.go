package ports

import (
	"context"

	"blog-web-server/internal/model"
)

// CacheRepository : Redis слой, кэш постов по slug
type CacheRepository interface {
	SetPost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, slug string) (*model.Post, error)
	DeletePost(ctx context.Context, slug string) error
}
