package loanmock

import (
	"context"

	domain "cfc-deblocages/internal/domain/loan"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies loan.Repository.
// Only set the funcs a test needs; the rest default to not-found/no-op.
type Repo struct {
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
	GetByIDFn                  func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByLoanNumberFn          func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetByLoanNumberForUpdateFn func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	ListFn                     func(ctx context.Context, offset, limit int) ([]domain.Loan, error)
	ListByStatusFn             func(ctx context.Context, statuses ...domain.Status) ([]domain.Loan, error)
	ListInGracePeriodFn        func(ctx context.Context) ([]domain.Loan, error)
	LastLoanNumberFn           func(ctx context.Context, prefix string) (string, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByLoanNumberFn != nil {
		return m.GetByLoanNumberFn(ctx, loanNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByLoanNumberForUpdateFn != nil {
		return m.GetByLoanNumberForUpdateFn(ctx, loanNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, offset, limit int) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, statuses ...domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, statuses...)
	}
	return nil, nil
}

func (m *Repo) ListInGracePeriod(ctx context.Context) ([]domain.Loan, error) {
	if m.ListInGracePeriodFn != nil {
		return m.ListInGracePeriodFn(ctx)
	}
	return nil, nil
}

func (m *Repo) LastLoanNumber(ctx context.Context, prefix string) (string, error) {
	if m.LastLoanNumberFn != nil {
		return m.LastLoanNumberFn(ctx, prefix)
	}
	return "", gorm.ErrRecordNotFound
}
