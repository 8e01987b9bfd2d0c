package mysql

import (
	"context"

	disbDomain "cfc-deblocages/internal/domain/disbursement"
	loanDomain "cfc-deblocages/internal/domain/loan"

	"gorm.io/gorm"
)

type DisbursementRepository struct{ db *gorm.DB }

func NewDisbursementRepository(db *gorm.DB) *DisbursementRepository {
	return &DisbursementRepository{db: db}
}

func (r *DisbursementRepository) Create(ctx context.Context, d *disbDomain.Disbursement) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DisbursementRepository) Save(ctx context.Context, d *disbDomain.Disbursement) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DisbursementRepository) GetByID(ctx context.Context, id uint64) (*disbDomain.Disbursement, error) {
	var out disbDomain.Disbursement
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *DisbursementRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]disbDomain.Disbursement, error) {
	var out []disbDomain.Disbursement
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("sequence_number ASC").
		Find(&out)
	return out, res.Error
}

func (r *DisbursementRepository) NextSequence(ctx context.Context, loanID uint64) (int, error) {
	var max int
	res := r.db.WithContext(ctx).
		Model(&disbDomain.Disbursement{}).
		Where("loan_id = ?", loanID).
		Select("COALESCE(MAX(sequence_number), 0)").
		Scan(&max)
	if res.Error != nil {
		return 0, res.Error
	}
	return max + 1, nil
}

func (r *DisbursementRepository) ListActiveOnDisbursingLoans(ctx context.Context) ([]disbDomain.Disbursement, error) {
	var out []disbDomain.Disbursement
	res := r.db.WithContext(ctx).
		Joins("JOIN loans ON loans.id = disbursements.loan_id").
		Where("disbursements.status = ? AND loans.status = ?",
			disbDomain.StatusInProgress, loanDomain.StatusDisbursing).
		Find(&out)
	return out, res.Error
}
