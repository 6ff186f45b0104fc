package ports

import (
	"context"

	"blog-web-server/internal/model"
)

// UserRepository : хранилище учётных данных. Только оно владеет полями
// password_hash и refresh_token_hash
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.PublicUser, error)
	FindByID(ctx context.Context, id int64) (*model.PublicUser, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	FindRefreshByID(ctx context.Context, id int64) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateRefreshHash(ctx context.Context, id int64, hash *string) error
	Update(ctx context.Context, id int64, input model.UpdateUserInput) (*model.PublicUser, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params model.UserListParams) ([]*model.PublicUser, int64, error)
}

type UserService interface {
	Create(ctx context.Context, input model.CreateUserInput) (*model.PublicUser, error)
	Get(ctx context.Context, id int64) (*model.PublicUser, error)
	Update(ctx context.Context, id int64, input model.UpdateUserInput) (*model.PublicUser, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params model.UserListParams) ([]*model.PublicUser, int64, error)
	Posts(ctx context.Context, userID int64, params model.PostListParams) ([]*model.Post, error)
}
