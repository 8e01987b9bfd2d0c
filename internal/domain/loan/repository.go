package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	GetByLoanNumber(ctx context.Context, loanNumber string) (*Loan, error)
	GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*Loan, error)
	List(ctx context.Context, offset, limit int) ([]Loan, error)

	// Sweep queries.
	ListByStatus(ctx context.Context, statuses ...Status) ([]Loan, error)
	// ListInGracePeriod returns DEBLOCAGE loans with a positive grace
	// period and a known first payment date.
	ListInGracePeriod(ctx context.Context) ([]Loan, error)

	// LastLoanNumber returns the highest loan_number with the given
	// "YYYY/AGENCY/" prefix, or "" when none exists yet.
	LastLoanNumber(ctx context.Context, prefix string) (string, error)
}
