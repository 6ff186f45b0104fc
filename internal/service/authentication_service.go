package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog-web-server/config"
	"blog-web-server/internal/model"
	"blog-web-server/internal/ports"
	"blog-web-server/internal/security"
	"blog-web-server/internal/util"
)

// timingDummyHash : bcrypt-дайджест, против которого прогоняется проверка
// пароля при отсутствии пользователя — отказ «нет такого пользователя» и
// «неверный пароль» неотличимы по времени и по ошибке
const timingDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthenticationService управляет жизненным циклом сессии:
// register -> login -> refresh -> logout. Одна активная сессия на
// пользователя: новая пара токенов безусловно перезаписывает хэш прежней
type AuthenticationService struct {
	userRepository ports.UserRepository
	tokenService   ports.TokenServiceInterface
	jwt            *config.JWTConfig
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	tokenService ports.TokenServiceInterface,
	jwtConfig *config.JWTConfig,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		tokenService:   tokenService,
		jwt:            jwtConfig,
	}
}

// Register создаёт пользователя и открывает сессию.
// Занятый username или email даёт model.ErrConflict (одна комбинированная
// проверка существования; гонка на вставке ловится уникальным индексом)
func (s *AuthenticationService) Register(ctx context.Context, input model.CreateUserInput) (*model.AuthResult, error) {
	exists, err := s.userRepository.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] проверка существования: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: username или email уже заняты", model.ErrConflict)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] не удалось создать хэш пароля: %w", err)
	}

	created, err := s.userRepository.Create(ctx, &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Nickname:     input.Nickname,
		Image:        input.Image,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueAccessAndRefresh(ctx, created.ID, created.Username)
	if err != nil {
		return nil, err
	}

	return &model.AuthResult{AuthTokens: *tokens, User: created}, nil
}

// ValidateCredentials : identifier сопоставляется с username ИЛИ email.
// Отсутствие пользователя и неверный пароль дают один и тот же
// model.ErrUnauthorized — перечисление аккаунтов невозможно
func (s *AuthenticationService) ValidateCredentials(ctx context.Context, identifier, password string) (*model.PublicUser, error) {
	user, err := s.userRepository.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			security.CheckPassword(password, timingDummyHash)
			return nil, model.ErrUnauthorized
		}
		return nil, err
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, model.ErrUnauthorized
	}

	return user.Public(), nil
}

// Login выпускает новую пару токенов без дополнительных проверок — проверка
// учётных данных выполняется раньше, guard-ом транспортного слоя.
// Прежний refresh хэш перезаписывается: логин в другом месте снимает
// остальные сессии
func (s *AuthenticationService) Login(ctx context.Context, userID int64, username string) (*model.AuthResult, error) {
	tokens, err := s.issueAccessAndRefresh(ctx, userID, username)
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrUnauthorized
		}
		return nil, err
	}

	return &model.AuthResult{AuthTokens: *tokens, User: profile}, nil
}

// Refresh обменивает refresh токен на новый access токен.
// Политика без ротации: refresh токен и его хэш в БД не меняются — тот же
// токен действует до logout или нового login/register.
// Любой отказ на любом шаге сводится к model.ErrUnauthorized
func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken, accessToken string) (*model.AuthTokens, error) {
	claims, err := s.tokenService.Verify(refreshToken, s.tokenService.RefreshSecret(), false)
	if err != nil {
		return nil, model.ErrUnauthorized
	}

	// proof-of-possession: предъявленный (возможно истёкший) access токен
	// должен принадлежать тому же субъекту
	if accessToken != "" {
		accessClaims, err := s.tokenService.Verify(accessToken, s.tokenService.AccessSecret(), true)
		if err != nil || accessClaims.UserID != claims.UserID {
			return nil, model.ErrUnauthorized
		}
	}

	user, err := s.userRepository.FindRefreshByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrUnauthorized
		}
		return nil, err
	}
	if user.RefreshTokenHash == nil {
		return nil, model.ErrUnauthorized
	}

	if !security.CompareRefreshToken(refreshToken, *user.RefreshTokenHash) {
		return nil, model.ErrUnauthorized
	}

	accessTTL := security.ParseExpirySeconds(s.jwt.AccessTokenTTL)
	access, err := s.tokenService.Sign(user.ID, user.Username, s.tokenService.AccessSecret(), accessTTL)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка генерации токенов", err)
	}

	return &model.AuthTokens{
		TokensPair: model.TokensPair{
			AccessToken:  access,
			RefreshToken: refreshToken,
		},
		ExpiresIn: accessTTL,
		ExpiresAt: time.Now().UnixMilli() + accessTTL*1000,
	}, nil
}

// Logout снимает активную сессию: хэш refresh токена обнуляется
func (s *AuthenticationService) Logout(ctx context.Context, userID int64) error {
	if err := s.userRepository.UpdateRefreshHash(ctx, userID, nil); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrUnauthorized
		}
		return err
	}
	return nil
}

// LogoutByToken восстанавливает субъекта из refresh токена и снимает сессию
func (s *AuthenticationService) LogoutByToken(ctx context.Context, refreshToken string) error {
	claims, err := s.tokenService.Verify(refreshToken, s.tokenService.RefreshSecret(), false)
	if err != nil {
		return model.ErrUnauthorized
	}
	return s.Logout(ctx, claims.UserID)
}

// GetProfile : чистое чтение; исчезнувший пользователь даёт ErrUnauthorized
func (s *AuthenticationService) GetProfile(ctx context.Context, userID int64) (*model.PublicUser, error) {
	profile, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrUnauthorized
		}
		return nil, err
	}
	return profile, nil
}

// issueAccessAndRefresh : общий помощник register/login. Подписывает пару
// токенов и сохраняет хэш refresh токена (сам токен в БД не попадает).
// Перезапись хэша безусловная: при двух параллельных логинах выигрывает
// последняя запись, первый refresh токен молча инвалидируется
func (s *AuthenticationService) issueAccessAndRefresh(ctx context.Context, userID int64, username string) (*model.AuthTokens, error) {
	accessTTL := security.ParseExpirySeconds(s.jwt.AccessTokenTTL)
	refreshTTL := security.ParseExpirySeconds(s.jwt.RefreshTokenTTL)

	access, err := s.tokenService.Sign(userID, username, s.tokenService.AccessSecret(), accessTTL)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка генерации токенов", err)
	}

	refresh, err := s.tokenService.Sign(userID, username, s.tokenService.RefreshSecret(), refreshTTL)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка генерации токенов", err)
	}

	hash := security.HashRefreshToken(refresh)
	if err := s.userRepository.UpdateRefreshHash(ctx, userID, &hash); err != nil {
		return nil, fmt.Errorf("[AuthService] не удалось сохранить refresh хэш: %w", err)
	}

	return &model.AuthTokens{
		TokensPair: model.TokensPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
		ExpiresIn: accessTTL,
		ExpiresAt: time.Now().UnixMilli() + accessTTL*1000,
	}, nil
}
