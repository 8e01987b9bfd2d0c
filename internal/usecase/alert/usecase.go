package alert

import (
	"context"
	"errors"
	"time"

	domain "cfc-deblocages/internal/domain/alert"

	"gorm.io/gorm"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(repo domain.Repository) *Usecase { return &Usecase{repo: repo} }

type AlertDTO struct {
	ID             uint64     `json:"id"`
	LoanID         uint64     `json:"loan_id"`
	Type           string     `json:"alert_type"`
	Status         string     `json:"status"`
	Severity       string     `json:"severity"`
	Message        string     `json:"message"`
	TriggeredAt    time.Time  `json:"triggered_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	EmailSent      bool       `json:"email_sent"`
	SMSSent        bool       `json:"sms_sent"`
}

type SummaryDTO struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
	ByType     map[string]int `json:"by_type"`
	ByStatus   map[string]int `json:"by_status"`
}

func (u *Usecase) List(ctx context.Context, f domain.Filter) ([]AlertDTO, error) {
	as, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]AlertDTO, 0, len(as))
	for i := range as {
		out = append(out, *toDTO(&as[i]))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*AlertDTO, error) {
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(a), nil
}

// Summary aggregates PENDING and ACKNOWLEDGED alerts for the dashboard
// and the daily report.
func (u *Usecase) Summary(ctx context.Context) (*SummaryDTO, error) {
	as, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s := &SummaryDTO{
		Total:      len(as),
		BySeverity: map[string]int{},
		ByType:     map[string]int{},
		ByStatus:   map[string]int{},
	}
	for i := range as {
		s.BySeverity[string(as[i].Severity)]++
		s.ByType[string(as[i].Type)]++
		s.ByStatus[string(as[i].Status)]++
	}
	return s, nil
}

// Acknowledge marks the alert as seen by an operator.
func (u *Usecase) Acknowledge(ctx context.Context, id uint64, operatorID uint64) (*AlertDTO, error) {
	return u.setStatus(ctx, id, domain.StatusAcknowledged, &operatorID)
}

// Resolve closes the alert; the sweep may then raise a fresh one for the
// same loan and type.
func (u *Usecase) Resolve(ctx context.Context, id uint64) (*AlertDTO, error) {
	return u.setStatus(ctx, id, domain.StatusResolved, nil)
}

// Escalate flags an alert that aged without being handled. The sweep
// never upgrades severities on its own, so this is the operator's lever.
func (u *Usecase) Escalate(ctx context.Context, id uint64) (*AlertDTO, error) {
	return u.setStatus(ctx, id, domain.StatusEscalated, nil)
}

func (u *Usecase) setStatus(ctx context.Context, id uint64, st domain.Status, operatorID *uint64) (*AlertDTO, error) {
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if a.Status == domain.StatusResolved {
		return nil, domain.ErrAlreadyResolved
	}

	now := time.Now().UTC()
	a.Status = st
	switch st {
	case domain.StatusAcknowledged:
		a.AcknowledgedAt = &now
		a.AcknowledgedBy = operatorID
	case domain.StatusResolved:
		a.ResolvedAt = &now
	}
	if err := u.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func toDTO(a *domain.Alert) *AlertDTO {
	return &AlertDTO{
		ID:             a.ID,
		LoanID:         a.LoanID,
		Type:           string(a.Type),
		Status:         string(a.Status),
		Severity:       string(a.Severity),
		Message:        a.Message,
		TriggeredAt:    a.TriggeredAt,
		AcknowledgedAt: a.AcknowledgedAt,
		ResolvedAt:     a.ResolvedAt,
		EmailSent:      a.EmailSent,
		SMSSent:        a.SMSSent,
	}
}
