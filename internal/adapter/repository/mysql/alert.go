package mysql

import (
	"context"

	alertDomain "cfc-deblocages/internal/domain/alert"

	"gorm.io/gorm"
)

type AlertRepository struct{ db *gorm.DB }

func NewAlertRepository(db *gorm.DB) *AlertRepository { return &AlertRepository{db: db} }

func (r *AlertRepository) Create(ctx context.Context, a *alertDomain.Alert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AlertRepository) Save(ctx context.Context, a *alertDomain.Alert) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AlertRepository) GetByID(ctx context.Context, id uint64) (*alertDomain.Alert, error) {
	var out alertDomain.Alert
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *AlertRepository) List(ctx context.Context, f alertDomain.Filter) ([]alertDomain.Alert, error) {
	q := r.db.WithContext(ctx)
	if f.LoanID != 0 {
		q = q.Where("loan_id = ?", f.LoanID)
	}
	if f.Type != "" {
		q = q.Where("alert_type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 100
	}
	var out []alertDomain.Alert
	res := q.Order("triggered_at DESC, id DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&out)
	return out, res.Error
}

func (r *AlertRepository) FindUnresolved(ctx context.Context, loanID uint64, alertType alertDomain.Type) (*alertDomain.Alert, error) {
	var out alertDomain.Alert
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND alert_type = ? AND status <> ?",
			loanID, alertType, alertDomain.StatusResolved).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *AlertRepository) ListActive(ctx context.Context) ([]alertDomain.Alert, error) {
	var out []alertDomain.Alert
	res := r.db.WithContext(ctx).
		Where("status IN ?", []alertDomain.Status{alertDomain.StatusPending, alertDomain.StatusAcknowledged}).
		Find(&out)
	return out, res.Error
}
