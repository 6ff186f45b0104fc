package requestresponse

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	FullName string  `json:"fullName" example:"Alice Liddell"`
	Username string  `json:"username" example:"alice"`
	Email    string  `json:"email" example:"a@x.com"`
	Phone    *string `json:"phone,omitempty" example:"+79990001122"`
	Password string  `json:"password" example:"secret1"`
}

// LoginRequest : тело запроса на аутентификацию.
// Identifier — username или email
type LoginRequest struct {
	Identifier string `json:"identifier" example:"alice"`
	Password   string `json:"password" example:"secret1"`
}

// RefreshRequest : запрос на обновление access токена
type RefreshRequest struct {
	Token        string `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// LogoutResponse : ответ на завершение сессии
type LogoutResponse struct {
	Success bool `json:"success" example:"true"`
}
