package ports

import (
	"blog-web-server/internal/security"
)

// TokenServiceInterface : подпись и проверка JWT; секреты передаются явно,
// чтобы один и тот же код обслуживал access и refresh токены
type TokenServiceInterface interface {
	Sign(userID int64, username string, secret []byte, ttlSeconds int64) (string, error)
	Verify(token string, secret []byte, ignoreExpiration bool) (*security.Claims, error)
	AccessSecret() []byte
	RefreshSecret() []byte
}
