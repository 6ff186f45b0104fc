package service_test

import (
	"context"
	"testing"
	"time"

	"blog-web-server/internal/model"
	"blog-web-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

// MockPostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, authorID int64, input model.CreatePostInput) (*model.Post, error) {
	args := m.Called(ctx, authorID, input)
	if p, ok := args.Get(0).(*model.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, params model.PostListParams) ([]*model.Post, int64, error) {
	args := m.Called(ctx, params)
	if posts, ok := args.Get(0).([]*model.Post); ok {
		return posts, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockPostRepository) ListOffset(ctx context.Context, offset, limit int) ([]*model.Post, int64, error) {
	args := m.Called(ctx, offset, limit)
	if posts, ok := args.Get(0).([]*model.Post); ok {
		return posts, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockPostRepository) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	args := m.Called(ctx, slug)
	if p, ok := args.Get(0).(*model.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) FindOwner(ctx context.Context, id int64) (int64, string, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

func (m *MockPostRepository) Update(ctx context.Context, id int64, input model.UpdatePostInput) (*model.Post, error) {
	args := m.Called(ctx, id, input)
	if p, ok := args.Get(0).(*model.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) (*model.Post, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*model.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetPost(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockCacheRepository) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	args := m.Called(ctx, slug)
	if p, ok := args.Get(0).(*model.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheRepository) DeletePost(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockS3Storage
type MockS3Storage struct {
	mock.Mock
}

func (m *MockS3Storage) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockS3Storage) GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockS3Storage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// ===== HELPERS =====

func newTestPostService() (*service.PostService, *MockPostRepository, *MockCacheRepository, *MockS3Storage) {
	mockPostRepo := new(MockPostRepository)
	mockCacheRepo := new(MockCacheRepository)
	mockStorage := new(MockS3Storage)

	svc := service.NewPostService(mockPostRepo, mockCacheRepo, mockStorage, 5*time.Minute)
	return svc, mockPostRepo, mockCacheRepo, mockStorage
}

// ===== TESTS =====

// 1. Попадание в кэш: БД не трогается
func TestGetBySlug_FromCache(t *testing.T) {
	svc, mockPostRepo, mockCacheRepo, _ := newTestPostService()
	ctx := context.Background()

	cached := &model.Post{ID: 1, Slug: "hello", Title: "Hello"}
	mockCacheRepo.On("GetPost", ctx, "hello").Return(cached, nil)

	post, err := svc.GetBySlug(ctx, "hello")

	assert.NoError(t, err)
	assert.Equal(t, cached, post)
	mockPostRepo.AssertNotCalled(t, "FindBySlug")
	mockCacheRepo.AssertExpectations(t)
}

// 2. Промах кэша: читаем БД и кладём в кэш
func TestGetBySlug_CacheMiss(t *testing.T) {
	svc, mockPostRepo, mockCacheRepo, _ := newTestPostService()
	ctx := context.Background()

	post := &model.Post{ID: 1, Slug: "hello", Title: "Hello"}
	mockCacheRepo.On("GetPost", ctx, "hello").Return(nil, nil)
	mockPostRepo.On("FindBySlug", ctx, "hello").Return(post, nil)
	mockCacheRepo.On("SetPost", ctx, post).Return(nil)

	got, err := svc.GetBySlug(ctx, "hello")

	assert.NoError(t, err)
	assert.Equal(t, post, got)
	mockPostRepo.AssertExpectations(t)
	mockCacheRepo.AssertExpectations(t)
}

// 3. Ошибка кэша не фатальна — пост читается из БД
func TestGetBySlug_CacheError(t *testing.T) {
	svc, mockPostRepo, mockCacheRepo, _ := newTestPostService()
	ctx := context.Background()

	post := &model.Post{ID: 1, Slug: "hello"}
	mockCacheRepo.On("GetPost", ctx, "hello").Return(nil, assert.AnError)
	mockPostRepo.On("FindBySlug", ctx, "hello").Return(post, nil)
	mockCacheRepo.On("SetPost", ctx, post).Return(assert.AnError)

	got, err := svc.GetBySlug(ctx, "hello")

	assert.NoError(t, err)
	assert.Equal(t, post, got)
}

// 4. Несуществующий пост
func TestGetBySlug_NotFound(t *testing.T) {
	svc, mockPostRepo, mockCacheRepo, _ := newTestPostService()
	ctx := context.Background()

	mockCacheRepo.On("GetPost", ctx, "ghost").Return(nil, nil)
	mockPostRepo.On("FindBySlug", ctx, "ghost").Return(nil, model.ErrNotFound)

	_, err := svc.GetBySlug(ctx, "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

// 5. Чужой пост менять нельзя
func TestUpdate_Forbidden(t *testing.T) {
	svc, mockPostRepo, _, _ := newTestPostService()
	ctx := context.Background()

	mockPostRepo.On("FindOwner", ctx, int64(10)).Return(int64(1), "hello", nil)

	title := "Новый заголовок"
	_, err := svc.Update(ctx, 10, 2, model.UpdatePostInput{Title: &title})

	assert.ErrorIs(t, err, model.ErrForbidden)
	mockPostRepo.AssertNotCalled(t, "Update")
}

// 6. Обновление инвалидирует кэш по старому slug
func TestUpdate_InvalidatesOldSlug(t *testing.T) {
	svc, mockPostRepo, mockCacheRepo, _ := newTestPostService()
	ctx := context.Background()

	newSlug := "new-slug"
	updated := &model.Post{ID: 10, Slug: newSlug, AuthorID: 1}

	mockPostRepo.On("FindOwner", ctx, int64(10)).Return(int64(1), "old-slug", nil)
	mockPostRepo.On("Update", ctx, int64(10), mock.Anything).Return(updated, nil)
	mockCacheRepo.On("DeletePost", ctx, "old-slug").Return(nil)

	got, err := svc.Update(ctx, 10, 1, model.UpdatePostInput{Slug: &newSlug})

	assert.NoError(t, err)
	assert.Equal(t, updated, got)
	mockCacheRepo.AssertExpectations(t)
}

// 7. Удаление: только автор, обложка удаляется из S3, кэш инвалидируется
func TestDelete_RemovesCoverAndCache(t *testing.T) {
	svc, mockPostRepo, mockCacheRepo, mockStorage := newTestPostService()
	ctx := context.Background()

	cover := "http://localhost:9000/blog-uploads/uploads/cover/my-post-123.webp?X-Amz-Signature=abc"
	deleted := &model.Post{ID: 10, Slug: "my-post", AuthorID: 1, CoverImage: &cover}

	mockPostRepo.On("FindOwner", ctx, int64(10)).Return(int64(1), "my-post", nil)
	mockPostRepo.On("Delete", ctx, int64(10)).Return(deleted, nil)
	mockCacheRepo.On("DeletePost", ctx, "my-post").Return(nil)
	mockStorage.On("DeleteObject", ctx, "uploads/cover/my-post-123.webp").Return(nil)

	got, err := svc.Delete(ctx, 10, 1)

	assert.NoError(t, err)
	assert.Equal(t, deleted, got)
	mockStorage.AssertExpectations(t)
	mockCacheRepo.AssertExpectations(t)
}

// 8. Чужой пост удалить нельзя
func TestDelete_Forbidden(t *testing.T) {
	svc, mockPostRepo, _, _ := newTestPostService()
	ctx := context.Background()

	mockPostRepo.On("FindOwner", ctx, int64(10)).Return(int64(1), "my-post", nil)

	_, err := svc.Delete(ctx, 10, 2)

	assert.ErrorIs(t, err, model.ErrForbidden)
	mockPostRepo.AssertNotCalled(t, "Delete")
}

// 9. Пагинация списка: значения зажимаются, метаданные считаются
func TestList_PaginationMeta(t *testing.T) {
	svc, mockPostRepo, _, _ := newTestPostService()
	ctx := context.Background()

	mockPostRepo.On("List", ctx, mock.MatchedBy(func(p model.PostListParams) bool {
		return p.Page == 1 && p.Limit == 20
	})).Return([]*model.Post{{ID: 1}}, int64(41), nil)

	page, err := svc.List(ctx, model.PostListParams{Page: 0, Limit: -5})

	assert.NoError(t, err)
	assert.Equal(t, int64(41), page.Meta.Total)
	assert.Equal(t, int64(3), page.Meta.TotalPages)
	mockPostRepo.AssertExpectations(t)
}

// 10. Лента: hasMore по offset + len(items)
func TestFeed_HasMore(t *testing.T) {
	svc, mockPostRepo, _, _ := newTestPostService()
	ctx := context.Background()

	items := []*model.Post{{ID: 1}, {ID: 2}}
	mockPostRepo.On("ListOffset", ctx, 0, 2).Return(items, int64(5), nil)
	mockPostRepo.On("ListOffset", ctx, 4, 2).Return([]*model.Post{{ID: 5}}, int64(5), nil)

	feed, err := svc.Feed(ctx, 0, 2)
	assert.NoError(t, err)
	assert.True(t, feed.Meta.HasMore)

	tail, err := svc.Feed(ctx, 4, 2)
	assert.NoError(t, err)
	assert.False(t, tail.Meta.HasMore)
}
