package service

import (
	"context"
	"fmt"
	"unicode"

	"blog-web-server/internal/model"
	"blog-web-server/internal/ports"
	"blog-web-server/internal/security"
)

type UserService struct {
	userRepository ports.UserRepository
	postRepository ports.PostRepository
}

func NewUserService(
	userRepository ports.UserRepository,
	postRepository ports.PostRepository,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		postRepository: postRepository,
	}
}

// Create : административное создание пользователя (без выдачи токенов)
func (s *UserService) Create(ctx context.Context, input model.CreateUserInput) (*model.PublicUser, error) {
	if err := validateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	return s.userRepository.Create(ctx, &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Nickname:     input.Nickname,
		Image:        input.Image,
	})
}

func validateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("%w: логин должен быть не меньше 3 символов", model.ErrValidation)
	}
	for _, c := range username {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' && c != '-' {
			return fmt.Errorf("%w: логин должен содержать только буквы, цифры, '_' и '-'", model.ErrValidation)
		}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("%w: пароль должен содержать минимум 6 символов", model.ErrValidation)
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.PublicUser, error) {
	return s.userRepository.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id int64, input model.UpdateUserInput) (*model.PublicUser, error) {
	if input.Username != nil {
		if err := validateUsername(*input.Username); err != nil {
			return nil, err
		}
	}
	return s.userRepository.Update(ctx, id, input)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.userRepository.Delete(ctx, id)
}

func (s *UserService) List(ctx context.Context, params model.UserListParams) ([]*model.PublicUser, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	return s.userRepository.List(ctx, params)
}

// Posts : посты пользователя, та же пагинация и сортировка, что в ленте
func (s *UserService) Posts(ctx context.Context, userID int64, params model.PostListParams) ([]*model.Post, error) {
	if _, err := s.userRepository.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	params.AuthorID = userID
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}

	posts, _, err := s.postRepository.List(ctx, params)
	return posts, err
}
