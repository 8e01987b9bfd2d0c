package mysql

import (
	"context"

	loanDomain "cfc-deblocages/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanNumber(ctx context.Context, loanNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_number = ?", loanNumber).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_number = ?", loanNumber).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context, offset, limit int) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByStatus(ctx context.Context, statuses ...loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).Where("status IN ?", statuses).Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListInGracePeriod(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("status = ? AND grace_period_months > 0 AND first_payment_date IS NOT NULL",
			loanDomain.StatusDisbursing).
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) LastLoanNumber(ctx context.Context, prefix string) (string, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("loan_number LIKE ?", prefix+"%").
		Order("id DESC").
		First(&out)
	if res.Error != nil {
		return "", res.Error
	}
	return out.LoanNumber, nil
}
