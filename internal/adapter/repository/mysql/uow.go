package mysql

import (
	"context"

	"cfc-deblocages/internal/domain/loan"
	"cfc-deblocages/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:         &LoanRepository{db: tx},
		Disbursements: &DisbursementRepository{db: tx},
		Alerts:        &AlertRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanNumber string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanNumberForUpdate(ctx, loanNumber)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
