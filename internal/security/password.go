package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword : bcrypt со случайной солью; два хэша одного пароля не совпадают
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword возвращает false на любое несовпадение, не различая
// «неверный пароль» и «битый дайджест»
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashRefreshToken : sha256 -> base64.RawURLEncoding.
// bcrypt не подходит: JWT длиннее его лимита в 72 байта. Токен — не пароль,
// энтропии подписи достаточно, соль не нужна
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// CompareRefreshToken сравнивает предъявленный токен с сохранённым хэшем
// за постоянное время
func CompareRefreshToken(token, storedHash string) bool {
	presented := HashRefreshToken(token)
	return subtle.ConstantTimeCompare([]byte(presented), []byte(storedHash)) == 1
}
