package uow

import (
	"context"

	"cfc-deblocages/internal/domain/alert"
	"cfc-deblocages/internal/domain/disbursement"
	"cfc-deblocages/internal/domain/loan"
)

type Repos struct {
	Loans         loan.Repository
	Disbursements disbursement.Repository
	Alerts        alert.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanNumber string, fn func(r Repos, l *loan.Loan) error) error
}
