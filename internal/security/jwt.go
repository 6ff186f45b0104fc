package security

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"blog-web-server/config"
	"blog-web-server/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"

	// DefaultExpirySeconds : fallback при некорректной строке TTL (30 минут)
	DefaultExpirySeconds int64 = 1800
)

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService подписывает и проверяет JWT. Ничего не персистит:
// чистая функция sign/verify над секретами и claims
type TokenService struct {
	*config.JWTConfig
}

func NewTokenService(cfg *config.JWTConfig) *TokenService {
	return &TokenService{cfg}
}

func (service *TokenService) AccessSecret() []byte {
	return []byte(service.SecretKey)
}

// RefreshSecret : отдельный секрет для refresh токенов; при пустом значении
// используется access секрет
func (service *TokenService) RefreshSecret() []byte {
	if service.RefreshSecretKey != "" {
		return []byte(service.RefreshSecretKey)
	}
	return []byte(service.SecretKey)
}

// Sign выпускает токен с полями user_id/username, iat и exp = iat + ttl.
// Два вызова с одинаковыми аргументами в разные моменты дают разные токены
// (разный iat)
func (service *TokenService) Sign(userID int64, username string, secret []byte, ttlSeconds int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlSeconds) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "blog-web-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString(secret)
	if err != nil {
		return "", util.LogError("ошибка подписи токена", err)
	}

	return signed, nil
}

// Verify проверяет подпись и срок жизни токена.
// ignoreExpiration пропускает проверку exp (подпись проверяется всегда) —
// используется только для proof-of-possession по истёкшему access токену
func (service *TokenService) Verify(jwtTokenStr string, secret []byte, ignoreExpiration bool) (*Claims, error) {
	var claims = &Claims{}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secret, nil
	}

	var jwtToken *jwt.Token
	var err error
	if ignoreExpiration {
		parser := jwt.NewParser(jwt.WithoutClaimsValidation())
		jwtToken, err = parser.ParseWithClaims(jwtTokenStr, claims, keyFunc)
	} else {
		jwtToken, err = jwt.ParseWithClaims(jwtTokenStr, claims, keyFunc)
	}

	if err != nil || !jwtToken.Valid {
		return nil, util.LogError("невалидный токен", err)
	}

	return claims, nil
}

var expiryPattern = regexp.MustCompile(`^([0-9]+)([smhd])?$`)

// ParseExpirySeconds : TTL либо целое число секунд, либо строка <число><юнит>,
// юнит ∈ {s, m, h, d}. Нераспознанная строка даёт DefaultExpirySeconds.
// Правило воспроизводится точно — от него зависят сохранённые сроки жизни
func ParseExpirySeconds(exp string) int64 {
	m := expiryPattern.FindStringSubmatch(exp)
	if m == nil {
		return DefaultExpirySeconds
	}

	var n int64
	if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil {
		return DefaultExpirySeconds
	}

	switch m[2] {
	case "", "s":
		return n
	case "m":
		return n * 60
	case "h":
		return n * 3600
	case "d":
		return n * 86400
	}
	return n
}

// JWTMiddleware проверяет Bearer access токен и кладёт claims в context
func JWTMiddleware(tokenService *TokenService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				http.Error(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authorizationHeader, "Bearer ")

			claims, err := tokenService.Verify(token, tokenService.AccessSecret(), false)
			if err != nil {
				http.Error(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
			next.ServeHTTP(writer, req)
		})
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
