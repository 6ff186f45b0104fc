package security_test

import (
	"testing"
	"time"

	"blog-web-server/config"
	"blog-web-server/internal/security"

	"github.com/stretchr/testify/assert"
)

func newTestTokenService() *security.TokenService {
	return security.NewTokenService(&config.JWTConfig{
		SecretKey:        "test-access-secret",
		RefreshSecretKey: "test-refresh-secret",
		AccessTokenTTL:   "30m",
		RefreshTokenTTL:  "30d",
	})
}

// 1. Подпись и проверка валидного токена
func TestSignAndVerify(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.Sign(42, "alice", svc.AccessSecret(), 3600)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token, svc.AccessSecret(), false)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

// 2. Токен с чужим секретом не проходит проверку
func TestVerify_WrongSecret(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.Sign(42, "alice", []byte("другой-секрет"), 3600)
	assert.NoError(t, err)

	_, err = svc.Verify(token, svc.AccessSecret(), false)
	assert.Error(t, err)
}

// 3. Истёкший токен не проходит обычную проверку
func TestVerify_Expired(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.Sign(42, "alice", svc.AccessSecret(), -60)
	assert.NoError(t, err)

	_, err = svc.Verify(token, svc.AccessSecret(), false)
	assert.Error(t, err)
}

// 4. ignoreExpiration пропускает exp, но подпись проверяется
func TestVerify_IgnoreExpiration(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.Sign(42, "alice", svc.AccessSecret(), -60)
	assert.NoError(t, err)

	claims, err := svc.Verify(token, svc.AccessSecret(), true)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)

	tampered := token + "x"
	_, err = svc.Verify(tampered, svc.AccessSecret(), true)
	assert.Error(t, err)
}

// 5. Разделение секретов: refresh токен не валиден как access
func TestVerify_SecretSeparation(t *testing.T) {
	svc := newTestTokenService()

	refresh, err := svc.Sign(42, "alice", svc.RefreshSecret(), 3600)
	assert.NoError(t, err)

	_, err = svc.Verify(refresh, svc.AccessSecret(), false)
	assert.Error(t, err)

	_, err = svc.Verify(refresh, svc.RefreshSecret(), false)
	assert.NoError(t, err)
}

// 6. Пустой refresh секрет откатывается на access секрет
func TestRefreshSecret_Fallback(t *testing.T) {
	svc := security.NewTokenService(&config.JWTConfig{SecretKey: "only-secret"})
	assert.Equal(t, svc.AccessSecret(), svc.RefreshSecret())
}

// 7. Срок жизни токена задаёт exp = iat + ttl
func TestSign_ExpiryWindow(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.Sign(1, "bob", svc.AccessSecret(), 120)
	assert.NoError(t, err)

	claims, err := svc.Verify(token, svc.AccessSecret(), false)
	assert.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 120*time.Second, ttl)
}

func TestParseExpirySeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"30m", 1800},
		{"45s", 45},
		{"45", 45},
		{"2h", 7200},
		{"1d", 86400},
		{"30d", 2592000},
		{"", security.DefaultExpirySeconds},
		{"garbage", security.DefaultExpirySeconds},
		{"10w", security.DefaultExpirySeconds},
		{"-5m", security.DefaultExpirySeconds},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, security.ParseExpirySeconds(c.in), "вход: %q", c.in)
	}
}
