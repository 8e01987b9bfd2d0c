package disbmock

import (
	"context"

	domain "cfc-deblocages/internal/domain/disbursement"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies disbursement.Repository.
type Repo struct {
	CreateFn                      func(ctx context.Context, d *domain.Disbursement) error
	SaveFn                        func(ctx context.Context, d *domain.Disbursement) error
	GetByIDFn                     func(ctx context.Context, id uint64) (*domain.Disbursement, error)
	ListByLoanIDFn                func(ctx context.Context, loanID uint64) ([]domain.Disbursement, error)
	NextSequenceFn                func(ctx context.Context, loanID uint64) (int, error)
	ListActiveOnDisbursingLoansFn func(ctx context.Context) ([]domain.Disbursement, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Disbursement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Disbursement) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Disbursement, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Disbursement, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) NextSequence(ctx context.Context, loanID uint64) (int, error) {
	if m.NextSequenceFn != nil {
		return m.NextSequenceFn(ctx, loanID)
	}
	return 1, nil
}

func (m *Repo) ListActiveOnDisbursingLoans(ctx context.Context) ([]domain.Disbursement, error) {
	if m.ListActiveOnDisbursingLoansFn != nil {
		return m.ListActiveOnDisbursingLoansFn(ctx)
	}
	return nil, nil
}
