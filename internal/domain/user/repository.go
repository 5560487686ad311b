package user

import "context"

// UserRepository defines data access methods for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, user User) error
	SetActive(ctx context.Context, id string, active bool) error
}
