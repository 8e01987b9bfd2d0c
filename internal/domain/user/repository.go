package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
	// GetByLogin matches either username or email.
	GetByLogin(ctx context.Context, login string) (*User, error)
}
