package document

import "context"

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uint64) (*Document, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Document, error)
	ListByClientID(ctx context.Context, clientID uint64) ([]Document, error)
	Delete(ctx context.Context, id uint64) error
}
