package disbursement

import "context"

type Repository interface {
	Create(ctx context.Context, d *Disbursement) error
	Save(ctx context.Context, d *Disbursement) error
	GetByID(ctx context.Context, id uint64) (*Disbursement, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Disbursement, error)

	// NextSequence returns 1 + the highest sequence number already
	// requested for the loan.
	NextSequence(ctx context.Context, loanID uint64) (int, error)

	// ListActiveOnDisbursingLoans returns EN_COURS disbursements whose
	// owning loan is in DEBLOCAGE, for the work-delay sweep.
	ListActiveOnDisbursingLoans(ctx context.Context) ([]Disbursement, error)
}
