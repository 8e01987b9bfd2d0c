package sweep

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cfc-deblocages/internal/domain/alert"
	"cfc-deblocages/internal/domain/disbursement"
	"cfc-deblocages/internal/domain/loan"
	"cfc-deblocages/internal/testutil/alertmock"
	"cfc-deblocages/internal/testutil/disbmock"
	"cfc-deblocages/internal/testutil/loanmock"
)

type recordingDispatcher struct {
	mu  sync.Mutex
	ids []uint64
}

func (d *recordingDispatcher) Enqueue(alertID uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids = append(d.ids, alertID)
}

func (d *recordingDispatcher) all() []uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]uint64(nil), d.ids...)
}

func sweepFixtures() (*loanmock.Repo, *disbmock.Repo) {
	first := sweepNow.Add(-170 * 24 * time.Hour) // grace ends in 10 days (6 months grace)
	loans := &loanmock.Repo{
		ListByStatusFn: func(_ context.Context, _ ...loan.Status) ([]loan.Loan, error) {
			return []loan.Loan{
				// 3 days left: VALIDITY_CRITICAL
				{ID: 1, Type: loan.TypeClassicAcquirer, Status: loan.StatusApproved,
					ValidityEndDate: sweepNow.Add(3 * 24 * time.Hour)},
				// 50 days left: nothing for a 60-day product
				{ID: 2, Type: loan.TypeClassicAcquirer, Status: loan.StatusApproved,
					ValidityEndDate: sweepNow.Add(50 * 24 * time.Hour)},
			}, nil
		},
		ListInGracePeriodFn: func(_ context.Context) ([]loan.Loan, error) {
			return []loan.Loan{
				{ID: 3, Status: loan.StatusDisbursing, GracePeriodMonths: 6, FirstPaymentDate: &first},
			}, nil
		},
	}
	disbs := &disbmock.Repo{
		ListActiveOnDisbursingLoansFn: func(_ context.Context) ([]disbursement.Disbursement, error) {
			return []disbursement.Disbursement{
				// 10 days in, 5% done: behind schedule
				{ID: 21, LoanID: 4, Status: disbursement.StatusInProgress,
					RequestDate: sweepNow.Add(-10 * 24 * time.Hour), WorkCompletionPercentage: 5},
			}, nil
		},
	}
	return loans, disbs
}

func TestSweeper_Run_CreatesAlertsAndDispatches(t *testing.T) {
	loans, disbs := sweepFixtures()
	alerts := alertmock.NewMemRepo()
	disp := &recordingDispatcher{}

	s := NewSweeper(loans, disbs, alerts, disp, LocaleFR)
	if err := s.Run(context.Background(), sweepNow); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(alerts.Alerts) != 3 {
		t.Fatalf("created %d alerts, want 3", len(alerts.Alerts))
	}

	byLoan := map[uint64]alert.Alert{}
	for _, a := range alerts.Alerts {
		byLoan[a.LoanID] = a
	}
	if a := byLoan[1]; a.Type != alert.TypeValidityCritical || a.Severity != alert.SeverityRed {
		t.Fatalf("loan 1: got %s/%s", a.Type, a.Severity)
	}
	if a := byLoan[4]; a.Type != alert.TypeWorkDelayWarning {
		t.Fatalf("loan 4: got %s", a.Type)
	}
	if a := byLoan[3]; a.Type != alert.TypeRepaymentUpcoming {
		t.Fatalf("loan 3: got %s", a.Type)
	}

	for _, a := range alerts.Alerts {
		if a.Status != alert.StatusPending {
			t.Fatalf("alert %d status = %s, want PENDING", a.ID, a.Status)
		}
		if !a.TriggeredAt.Equal(sweepNow) {
			t.Fatalf("alert %d triggered at %s, want %s", a.ID, a.TriggeredAt, sweepNow)
		}
		if a.Message == "" {
			t.Fatalf("alert %d has empty message", a.ID)
		}
	}

	if got := disp.all(); len(got) != 3 {
		t.Fatalf("dispatched %d alerts, want 3", len(got))
	}
}

func TestSweeper_Run_IdempotentAcrossRuns(t *testing.T) {
	loans, disbs := sweepFixtures()
	alerts := alertmock.NewMemRepo()
	disp := &recordingDispatcher{}

	s := NewSweeper(loans, disbs, alerts, disp, LocaleFR)
	if err := s.Run(context.Background(), sweepNow); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := s.Run(context.Background(), sweepNow.Add(time.Hour)); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(alerts.Alerts) != 3 {
		t.Fatalf("second run added rows: %d alerts, want 3", len(alerts.Alerts))
	}
	if got := disp.all(); len(got) != 3 {
		t.Fatalf("second run dispatched again: %d, want 3", len(got))
	}
}

func TestSweeper_Run_ResolvedAlertFiresAgain(t *testing.T) {
	loans, disbs := sweepFixtures()
	alerts := alertmock.NewMemRepo()

	s := NewSweeper(loans, disbs, alerts, &recordingDispatcher{}, LocaleFR)
	if err := s.Run(context.Background(), sweepNow); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Resolving clears the dedup window for that loan+type.
	for i := range alerts.Alerts {
		if alerts.Alerts[i].LoanID == 1 {
			alerts.Alerts[i].Status = alert.StatusResolved
		}
	}

	if err := s.Run(context.Background(), sweepNow.Add(time.Hour)); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(alerts.Alerts) != 4 {
		t.Fatalf("got %d alerts, want 4 (one re-raised)", len(alerts.Alerts))
	}
}

func TestSweeper_Run_AcknowledgedAlertStillSuppresses(t *testing.T) {
	loans, disbs := sweepFixtures()
	alerts := alertmock.NewMemRepo()

	s := NewSweeper(loans, disbs, alerts, &recordingDispatcher{}, LocaleFR)
	if err := s.Run(context.Background(), sweepNow); err != nil {
		t.Fatalf("first run: %v", err)
	}
	for i := range alerts.Alerts {
		alerts.Alerts[i].Status = alert.StatusAcknowledged
	}
	if err := s.Run(context.Background(), sweepNow.Add(time.Hour)); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(alerts.Alerts) != 3 {
		t.Fatalf("acknowledged alerts must still dedup; got %d rows", len(alerts.Alerts))
	}
}

func TestSweeper_Run_LoadFailureAborts(t *testing.T) {
	boom := errors.New("db down")
	loans := &loanmock.Repo{
		ListByStatusFn: func(_ context.Context, _ ...loan.Status) ([]loan.Loan, error) {
			return nil, boom
		},
	}
	s := NewSweeper(loans, &disbmock.Repo{}, alertmock.NewMemRepo(), &recordingDispatcher{}, LocaleFR)
	if err := s.Run(context.Background(), sweepNow); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

func TestSweeper_Run_PerItemFailureIsSkipped(t *testing.T) {
	loans, disbs := sweepFixtures()
	mem := alertmock.NewMemRepo()
	failing := &alertmock.Repo{
		FindUnresolvedFn: mem.FindUnresolved,
		CreateFn: func(ctx context.Context, a *alert.Alert) error {
			if a.LoanID == 1 {
				return errors.New("constraint violation")
			}
			return mem.Create(ctx, a)
		},
	}
	disp := &recordingDispatcher{}

	s := NewSweeper(loans, disbs, failing, disp, LocaleFR)
	if err := s.Run(context.Background(), sweepNow); err != nil {
		t.Fatalf("Run should not fail on a single bad item: %v", err)
	}

	if len(mem.Alerts) != 2 {
		t.Fatalf("got %d alerts, want 2 (loan 1 skipped)", len(mem.Alerts))
	}
	if got := disp.all(); len(got) != 2 {
		t.Fatalf("dispatched %d, want 2", len(got))
	}
}

func TestSweeper_Run_MissingRequestDateSkipped(t *testing.T) {
	loans := &loanmock.Repo{}
	disbs := &disbmock.Repo{
		ListActiveOnDisbursingLoansFn: func(_ context.Context) ([]disbursement.Disbursement, error) {
			return []disbursement.Disbursement{
				{ID: 31, LoanID: 9, Status: disbursement.StatusInProgress, WorkCompletionPercentage: 0},
			}, nil
		},
	}
	alerts := alertmock.NewMemRepo()

	s := NewSweeper(loans, disbs, alerts, &recordingDispatcher{}, LocaleFR)
	if err := s.Run(context.Background(), sweepNow); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(alerts.Alerts) != 0 {
		t.Fatalf("malformed tranche produced %d alerts, want 0", len(alerts.Alerts))
	}
}
