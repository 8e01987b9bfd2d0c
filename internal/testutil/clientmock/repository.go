package clientmock

import (
	"context"

	domain "cfc-deblocages/internal/domain/client"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies client.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, c *domain.Client) error
	SaveFn              func(ctx context.Context, c *domain.Client) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Client, error)
	GetByClientNumberFn func(ctx context.Context, clientNumber string) (*domain.Client, error)
	ListFn              func(ctx context.Context, offset, limit int) ([]domain.Client, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Client) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Client) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Client, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByClientNumber(ctx context.Context, clientNumber string) (*domain.Client, error) {
	if m.GetByClientNumberFn != nil {
		return m.GetByClientNumberFn(ctx, clientNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, offset, limit int) ([]domain.Client, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	return nil, nil
}
