package service

import (
	"context"
	"log"
	"math"
	"time"

	"blog-web-server/internal/model"
	"blog-web-server/internal/ports"
	"blog-web-server/internal/util"
)

type PostService struct {
	postRepository  ports.PostRepository
	cacheRepository ports.CacheRepository
	storage         ports.S3Storage
	ttl             time.Duration
}

func NewPostService(
	postRepository ports.PostRepository,
	cacheRepository ports.CacheRepository,
	storage ports.S3Storage,
	ttl time.Duration,
) *PostService {
	return &PostService{
		postRepository:  postRepository,
		cacheRepository: cacheRepository,
		storage:         storage,
		ttl:             ttl,
	}
}

func (s *PostService) Create(ctx context.Context, authorID int64, input model.CreatePostInput) (*model.Post, error) {
	post, err := s.postRepository.Create(ctx, authorID, input)
	if err != nil {
		return nil, err
	}

	log.Printf("[PostService] пост %d создан пользователем %d", post.ID, authorID)
	return post, nil
}

func (s *PostService) List(ctx context.Context, params model.PostListParams) (*model.PostPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}

	items, total, err := s.postRepository.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return &model.PostPage{
		Items: items,
		Meta: model.PageMeta{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: int64(math.Ceil(float64(total) / float64(params.Limit))),
		},
	}, nil
}

func (s *PostService) Feed(ctx context.Context, offset, limit int) (*model.PostFeed, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	items, total, err := s.postRepository.ListOffset(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return &model.PostFeed{
		Items: items,
		Meta: model.OffsetMeta{
			Total:   total,
			Offset:  offset,
			Limit:   limit,
			HasMore: int64(offset+len(items)) < total,
		},
	}, nil
}

// GetBySlug отдаёт пост из кэша; при промахе читает БД и кладёт в кэш.
// Ошибки кэша не фатальны — источником истины остаётся БД
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	cached, err := s.cacheRepository.GetPost(ctx, slug)
	if err != nil {
		log.Printf("[PostService] ошибка кэширования: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	post, err := s.postRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.SetPost(ctx, post); err != nil {
		log.Printf("[PostService] ошибка кэширования поста: %v", err)
	}

	return post, nil
}

// Update : только автор может менять пост; кэш инвалидируется по старому
// slug (slug мог смениться)
func (s *PostService) Update(ctx context.Context, id, authorID int64, input model.UpdatePostInput) (*model.Post, error) {
	ownerID, oldSlug, err := s.postRepository.FindOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerID != authorID {
		return nil, model.ErrForbidden
	}

	post, err := s.postRepository.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.DeletePost(ctx, oldSlug); err != nil {
		log.Printf("[PostService] ошибка инвалидации кэша: %v", err)
	}

	return post, nil
}

// Delete : только автор может удалить пост. Обложка в S3 удаляется вместе
// с постом, кэш инвалидируется
func (s *PostService) Delete(ctx context.Context, id, authorID int64) (*model.Post, error) {
	ownerID, _, err := s.postRepository.FindOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerID != authorID {
		return nil, model.ErrForbidden
	}

	post, err := s.postRepository.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.DeletePost(ctx, post.Slug); err != nil {
		log.Printf("[PostService] ошибка инвалидации кэша: %v", err)
	}

	if post.CoverImage != nil {
		if key := util.ExtractObjectKey(*post.CoverImage); key != "" {
			if err := s.storage.DeleteObject(ctx, key); err != nil {
				log.Printf("[PostService] не удалось удалить обложку из S3: %v", err)
			}
		}
	}

	return post, nil
}
