package sweep

import (
	"time"

	"cfc-deblocages/internal/domain/alert"
	"cfc-deblocages/internal/domain/disbursement"
	"cfc-deblocages/internal/domain/loan"
)

// Candidate is a rule hit before dedup: structured data only, the text is
// rendered at persistence time with an explicit locale.
type Candidate struct {
	LoanID   uint64
	Type     alert.Type
	Severity alert.Severity

	// Rule-specific payload, interpreted per Type.
	DaysRemaining    int // validity rules
	DaysUntilPayment int // repayment rules
	CompletionPct    int // work-delay rule
}

// wholeDays truncates a duration to whole 24h days. The rules only act on
// strictly positive counts, so truncation and floor agree where it matters.
func wholeDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}

const (
	validityRedDays = 5

	// A tranche is expected to progress 3% per day; a gap of more than 20
	// percentage points behind that counts as a delay.
	expectedDailyProgressPct = 3
	delayTolerancePct        = 20

	repaymentRedDays    = 7
	repaymentOrangeDays = 30
)

// EvaluateValidity checks how close a loan offer is to expiring. It only
// applies to APPROUVE and EN_COURS loans; expired offers (zero or fewer
// days left) produce nothing here, cancellation is a loan-level concern.
func EvaluateValidity(l *loan.Loan, now time.Time) (Candidate, bool) {
	if l.Status != loan.StatusApproved && l.Status != loan.StatusInProgress {
		return Candidate{}, false
	}

	days := wholeDays(l.ValidityEndDate.Sub(now))
	switch {
	case days > 0 && days <= validityRedDays:
		return Candidate{
			LoanID:        l.ID,
			Type:          alert.TypeValidityCritical,
			Severity:      alert.SeverityRed,
			DaysRemaining: days,
		}, true
	case days > validityRedDays && days <= l.Type.WarnThresholdDays():
		return Candidate{
			LoanID:        l.ID,
			Type:          alert.TypeValidityWarning,
			Severity:      alert.SeverityOrange,
			DaysRemaining: days,
		}, true
	}
	return Candidate{}, false
}

// EvaluateWorkDelay compares actual work completion of an in-progress
// tranche against the 3%-per-day expectation since the request date.
func EvaluateWorkDelay(d *disbursement.Disbursement, now time.Time) (Candidate, bool) {
	if d.Status != disbursement.StatusInProgress || d.RequestDate.IsZero() {
		return Candidate{}, false
	}

	elapsed := wholeDays(now.Sub(d.RequestDate))
	expected := elapsed * expectedDailyProgressPct
	if expected > 100 {
		expected = 100
	}

	if d.WorkCompletionPercentage < expected-delayTolerancePct {
		return Candidate{
			LoanID:        d.LoanID,
			Type:          alert.TypeWorkDelayWarning,
			Severity:      alert.SeverityOrange,
			CompletionPct: d.WorkCompletionPercentage,
		}, true
	}
	return Candidate{}, false
}

// EvaluateRepayment warns as the end of the grace period approaches:
// RED inside 7 days, ORANGE inside 30.
func EvaluateRepayment(l *loan.Loan, now time.Time) (Candidate, bool) {
	if l.Status != loan.StatusDisbursing {
		return Candidate{}, false
	}
	graceEnd, ok := l.GraceEnd()
	if !ok {
		return Candidate{}, false
	}

	days := wholeDays(graceEnd.Sub(now))
	switch {
	case days > 0 && days <= repaymentRedDays:
		return Candidate{
			LoanID:           l.ID,
			Type:             alert.TypeRepaymentImminent,
			Severity:         alert.SeverityRed,
			DaysUntilPayment: days,
		}, true
	case days > repaymentRedDays && days <= repaymentOrangeDays:
		return Candidate{
			LoanID:           l.ID,
			Type:             alert.TypeRepaymentUpcoming,
			Severity:         alert.SeverityOrange,
			DaysUntilPayment: days,
		}, true
	}
	return Candidate{}, false
}
