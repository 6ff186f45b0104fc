package model

import "time"

type User struct {
	ID               int64     `db:"id" json:"id"`
	Username         string    `db:"username" json:"username"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	Phone            *string   `db:"phone" json:"phone,omitempty"`
	Nickname         *string   `db:"nickname" json:"nickname,omitempty"`
	Image            *string   `db:"image" json:"image,omitempty"`
	RefreshTokenHash *string   `db:"refresh_token_hash" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// PublicUser : проекция пользователя без password_hash и refresh_token_hash.
// Только она пересекает границу сервиса
type PublicUser struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Nickname  *string   `db:"nickname" json:"nickname,omitempty"`
	Image     *string   `db:"image" json:"image,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Nickname:  u.Nickname,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateUserInput : поля нового пользователя (пароль в открытом виде,
// хэшируется сервисом)
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Phone    *string
	Nickname *string
	Image    *string
}

type UpdateUserInput struct {
	Username *string
	Email    *string
	Phone    *string
	Nickname *string
	Image    *string
}

type UserListParams struct {
	Page    int
	Limit   int
	Search  string
	OrderBy string
	Order   string
}
