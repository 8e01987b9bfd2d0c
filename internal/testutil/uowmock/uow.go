package uowmock

import (
	"context"

	"cfc-deblocages/internal/domain/loan"
	"cfc-deblocages/internal/domain/uow"

	"gorm.io/gorm"
)

// UoW runs callbacks against the supplied repos without a real
// transaction. WithinLoanTx resolves the loan through Repos.Loans.
type UoW struct {
	Repos uow.Repos
}

func (m *UoW) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	return fn(m.Repos)
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanNumber string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.Repos.Loans == nil {
		return gorm.ErrRecordNotFound
	}
	l, err := m.Repos.Loans.GetByLoanNumber(ctx, loanNumber)
	if err != nil {
		return err
	}
	return fn(m.Repos, l)
}
