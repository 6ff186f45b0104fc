package ports

import (
	"context"

	"blog-web-server/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, authorID int64, input model.CreatePostInput) (*model.Post, error)
	List(ctx context.Context, params model.PostListParams) ([]*model.Post, int64, error)
	ListOffset(ctx context.Context, offset, limit int) ([]*model.Post, int64, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	FindOwner(ctx context.Context, id int64) (int64, string, error)
	Update(ctx context.Context, id int64, input model.UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, id int64) (*model.Post, error)
}

type PostService interface {
	Create(ctx context.Context, authorID int64, input model.CreatePostInput) (*model.Post, error)
	List(ctx context.Context, params model.PostListParams) (*model.PostPage, error)
	Feed(ctx context.Context, offset, limit int) (*model.PostFeed, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	Update(ctx context.Context, id, authorID int64, input model.UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, id, authorID int64) (*model.Post, error)
}

// UploadService : перекодирование изображений и выдача URL
type UploadService interface {
	Process(ctx context.Context, kind, baseName string, data []byte) (*model.UploadResult, error)
}
