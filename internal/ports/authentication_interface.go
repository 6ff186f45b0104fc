package ports

import (
	"context"

	"blog-web-server/internal/model"
)

// AuthenticationService : жизненный цикл сессии
// Anonymous -> Authenticated -> Revoked
type AuthenticationService interface {
	Register(ctx context.Context, input model.CreateUserInput) (*model.AuthResult, error)
	ValidateCredentials(ctx context.Context, identifier, password string) (*model.PublicUser, error)
	Login(ctx context.Context, userID int64, username string) (*model.AuthResult, error)
	Refresh(ctx context.Context, refreshToken, accessToken string) (*model.AuthTokens, error)
	Logout(ctx context.Context, userID int64) error
	LogoutByToken(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID int64) (*model.PublicUser, error)
}
