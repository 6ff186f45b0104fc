package requestresponse

import "blog-web-server/internal/model"

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"for example: invalid login or password"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// CreateUserRequest : тело запроса на создание пользователя
type CreateUserRequest struct {
	Username string  `json:"username" example:"alice"`
	Email    string  `json:"email" example:"a@x.com"`
	Password string  `json:"password" example:"secret1"`
	Phone    *string `json:"phone,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// UpdateUserRequest : тело запроса на обновление профиля,
// отсутствующие поля не меняются
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// UserListResponse : страница пользователей
type UserListResponse struct {
	Items []*model.PublicUser `json:"items"`
	Meta  model.PageMeta      `json:"meta"`
}
