package model

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (JWT, подписан refresh-секретом; в БД хранится только хэш)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refreshToken"`
}

// AuthTokens : пара токенов плюс срок жизни access токена.
// ExpiresIn — секунды, ExpiresAt — epoch в миллисекундах
type AuthTokens struct {
	TokensPair
	ExpiresIn int64 `json:"expiresIn"`
	ExpiresAt int64 `json:"expiresAt"`
}

// AuthResult : ответ register/login — токены и публичный профиль
type AuthResult struct {
	AuthTokens
	User *PublicUser `json:"user"`
}
