package sweep

import (
	"context"
	"fmt"
	"log"
	"time"

	"cfc-deblocages/internal/domain/alert"
	"cfc-deblocages/internal/domain/disbursement"
	"cfc-deblocages/internal/domain/loan"
)

// Dispatcher receives ids of freshly persisted alerts. Enqueue must not
// block; delivery is best-effort and happens outside the sweep.
type Dispatcher interface {
	Enqueue(alertID uint64)
}

// Sweeper drives one full evaluation pass over loans and disbursements.
// Overlap protection between passes is the trigger's job, not ours.
type Sweeper struct {
	loans         loan.Repository
	disbursements disbursement.Repository
	alerts        alert.Repository
	dedup         *Deduplicator
	dispatcher    Dispatcher
	locale        Locale
}

func NewSweeper(loans loan.Repository, disbs disbursement.Repository, alerts alert.Repository, dispatcher Dispatcher, locale Locale) *Sweeper {
	return &Sweeper{
		loans:         loans,
		disbursements: disbs,
		alerts:        alerts,
		dedup:         NewDeduplicator(alerts),
		dispatcher:    dispatcher,
		locale:        locale,
	}
}

// Run evaluates every in-scope loan and disbursement at the given instant.
// A load failure aborts the pass (the trigger retries); a failure on a
// single candidate is logged and skipped.
func (s *Sweeper) Run(ctx context.Context, now time.Time) error {
	var cands []Candidate

	active, err := s.loans.ListByStatus(ctx, loan.StatusApproved, loan.StatusInProgress)
	if err != nil {
		return fmt.Errorf("sweep: load active loans: %w", err)
	}
	for i := range active {
		if c, ok := EvaluateValidity(&active[i], now); ok {
			cands = append(cands, c)
		}
	}

	tranches, err := s.disbursements.ListActiveOnDisbursingLoans(ctx)
	if err != nil {
		return fmt.Errorf("sweep: load active disbursements: %w", err)
	}
	for i := range tranches {
		d := &tranches[i]
		if d.RequestDate.IsZero() {
			log.Printf("sweep: disbursement %d has no request date, skipped", d.ID)
			continue
		}
		if c, ok := EvaluateWorkDelay(d, now); ok {
			cands = append(cands, c)
		}
	}

	inGrace, err := s.loans.ListInGracePeriod(ctx)
	if err != nil {
		return fmt.Errorf("sweep: load grace-period loans: %w", err)
	}
	for i := range inGrace {
		if c, ok := EvaluateRepayment(&inGrace[i], now); ok {
			cands = append(cands, c)
		}
	}

	for _, c := range cands {
		if err := s.apply(ctx, c, now); err != nil {
			log.Printf("sweep: loan %d %s: %v", c.LoanID, c.Type, err)
		}
	}
	return nil
}

// apply runs one candidate through dedup, persists it and hands it to the
// dispatcher. Dispatch is fire-and-forget: a failed delivery never rolls
// back the alert row.
func (s *Sweeper) apply(ctx context.Context, c Candidate, now time.Time) error {
	ok, err := s.dedup.ShouldCreate(ctx, c.LoanID, c.Type)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	a := &alert.Alert{
		LoanID:      c.LoanID,
		Type:        c.Type,
		Severity:    c.Severity,
		Message:     RenderMessage(s.locale, c),
		Status:      alert.StatusPending,
		TriggeredAt: now,
	}
	if err := s.alerts.Create(ctx, a); err != nil {
		return err
	}

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(a.ID)
	}
	return nil
}
