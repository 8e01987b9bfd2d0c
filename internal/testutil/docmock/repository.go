package docmock

import (
	"context"

	domain "cfc-deblocages/internal/domain/document"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies document.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, d *domain.Document) error
	GetByIDFn        func(ctx context.Context, id uint64) (*domain.Document, error)
	ListByLoanIDFn   func(ctx context.Context, loanID uint64) ([]domain.Document, error)
	ListByClientIDFn func(ctx context.Context, clientID uint64) ([]domain.Document, error)
	DeleteFn         func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Document, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Document, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) ListByClientID(ctx context.Context, clientID uint64) ([]domain.Document, error) {
	if m.ListByClientIDFn != nil {
		return m.ListByClientIDFn(ctx, clientID)
	}
	return nil, nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
