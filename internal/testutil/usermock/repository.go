package usermock

import (
	"context"

	domain "cfc-deblocages/internal/domain/user"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies user.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, u *domain.User) error
	GetByIDFn    func(ctx context.Context, id uint64) (*domain.User, error)
	GetByLoginFn func(ctx context.Context, login string) (*domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	if m.GetByLoginFn != nil {
		return m.GetByLoginFn(ctx, login)
	}
	return nil, gorm.ErrRecordNotFound
}
