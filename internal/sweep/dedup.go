package sweep

import (
	"context"
	"errors"

	"cfc-deblocages/internal/domain/alert"

	"gorm.io/gorm"
)

// Deduplicator suppresses a candidate when an unresolved alert of the
// same (loan, type) already exists. The existing alert is left untouched:
// its message and severity are not refreshed by the sweep.
type Deduplicator struct {
	alerts alert.Repository
}

func NewDeduplicator(alerts alert.Repository) *Deduplicator {
	return &Deduplicator{alerts: alerts}
}

// ShouldCreate reports whether a new alert row may be created for
// (loanID, alertType). A store error is returned as-is so the caller can
// skip just this candidate.
func (d *Deduplicator) ShouldCreate(ctx context.Context, loanID uint64, alertType alert.Type) (bool, error) {
	_, err := d.alerts.FindUnresolved(ctx, loanID, alertType)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return true, nil
	default:
		return false, err
	}
}
