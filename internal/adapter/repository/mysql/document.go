package mysql

import (
	"context"

	docDomain "cfc-deblocages/internal/domain/document"

	"gorm.io/gorm"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *docDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uint64) (*docDomain.Document, error) {
	var out docDomain.Document
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *DocumentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]docDomain.Document, error) {
	var out []docDomain.Document
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).Find(&out)
	return out, res.Error
}

func (r *DocumentRepository) ListByClientID(ctx context.Context, clientID uint64) ([]docDomain.Document, error) {
	var out []docDomain.Document
	res := r.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&out)
	return out, res.Error
}

func (r *DocumentRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&docDomain.Document{}, id).Error
}
