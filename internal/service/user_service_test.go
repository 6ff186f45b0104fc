package service_test

import (
	"context"
	"testing"

	"blog-web-server/internal/model"
	"blog-web-server/internal/security"
	"blog-web-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== HELPERS =====

func newTestUserService() (*service.UserService, *MockUserRepository, *MockPostRepository) {
	mockUserRepo := new(MockUserRepository)
	mockPostRepo := new(MockPostRepository)
	svc := service.NewUserService(mockUserRepo, mockPostRepo)
	return svc, mockUserRepo, mockPostRepo
}

// ===== TESTS =====

// 1. Некорректный логин или пароль даёт ErrValidation до обращения к хранилищу
func TestUserCreate_Validation(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()
	ctx := context.Background()

	cases := []model.CreateUserInput{
		{Username: "ab", Email: "a@x.com", Password: "secret1"},   // короткий логин
		{Username: "a b!", Email: "a@x.com", Password: "secret1"}, // недопустимые символы
		{Username: "alice", Email: "a@x.com", Password: "12345"},  // короткий пароль
	}

	for _, input := range cases {
		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, model.ErrValidation)
	}

	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 2. Валидный ввод: пароль уходит в хранилище только в виде bcrypt хэша
func TestUserCreate_Success(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()
	ctx := context.Background()

	expected := &model.PublicUser{ID: 1, Username: "alice", Email: "a@x.com"}

	mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "alice" &&
			u.PasswordHash != "secret1" &&
			security.CheckPassword("secret1", u.PasswordHash)
	})).Return(expected, nil)

	user, err := svc.Create(ctx, model.CreateUserInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	})

	assert.NoError(t, err)
	assert.Equal(t, expected, user)
	mockUserRepo.AssertExpectations(t)
}

// 3. Некорректный логин при обновлении даёт ErrValidation, хранилище не трогается
func TestUserUpdate_Validation(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()
	ctx := context.Background()

	badUsername := "x"
	_, err := svc.Update(ctx, 1, model.UpdateUserInput{Username: &badUsername})

	assert.ErrorIs(t, err, model.ErrValidation)
	mockUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
