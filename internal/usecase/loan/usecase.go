package loan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	domainAlert "cfc-deblocages/internal/domain/alert"
	domainClient "cfc-deblocages/internal/domain/client"
	domain "cfc-deblocages/internal/domain/loan"
	"cfc-deblocages/internal/sweep"

	"gorm.io/gorm"
)

type Usecase struct {
	repo    domain.Repository
	clients domainClient.Repository
	alerts  domainAlert.Repository
	agency  string
	locale  sweep.Locale
}

func NewUsecase(repo domain.Repository, clients domainClient.Repository, alerts domainAlert.Repository, agency string, locale sweep.Locale) *Usecase {
	return &Usecase{repo: repo, clients: clients, alerts: alerts, agency: agency, locale: locale}
}

type CreateLoanInput struct {
	ClientID          uint64  `json:"client_id"`
	Type              string  `json:"loan_type"`
	Amount            float64 `json:"amount"`
	DurationMonths    int     `json:"duration_months"`
	GracePeriodMonths int     `json:"grace_period_months"`
	InterestRate      float64 `json:"interest_rate"`

	MortgageAmount      float64 `json:"mortgage_amount"`
	PropertyTitleNumber string  `json:"property_title_number"`
	PropertyLocation    string  `json:"property_location"`
}

type LoanDTO struct {
	LoanNumber        string     `json:"loan_number"`
	ClientID          uint64     `json:"client_id"`
	Type              string     `json:"loan_type"`
	Status            string     `json:"status"`
	Amount            float64    `json:"amount"`
	DurationMonths    int        `json:"duration_months"`
	GracePeriodMonths int        `json:"grace_period_months"`
	InterestRate      float64    `json:"interest_rate"`
	MonthlyPayment    float64    `json:"monthly_payment"`
	ValidityEndDate   time.Time  `json:"validity_end_date"`
	FirstPaymentDate  *time.Time `json:"first_payment_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// MonthlyPayment computes the annuity payment for a principal at an
// annual percentage rate over n months. Zero-rate loans amortize linearly.
func MonthlyPayment(amount, annualRatePct float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	r := annualRatePct / 100 / 12
	if r == 0 {
		return amount / float64(months)
	}
	f := math.Pow(1+r, float64(months))
	return amount * r * f / (f - 1)
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	t := domain.Type(in.Type)
	if !t.Valid() {
		return nil, fmt.Errorf("unknown loan type %q", in.Type)
	}
	if in.Amount <= 0 || in.DurationMonths <= 0 || in.GracePeriodMonths < 0 {
		return nil, errors.New("invalid input")
	}
	if _, err := u.clients.GetByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainClient.ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	number, err := u.nextLoanNumber(ctx, t, now)
	if err != nil {
		return nil, err
	}

	l := &domain.Loan{
		LoanNumber:          number,
		ClientID:            in.ClientID,
		Type:                t,
		Status:              domain.StatusDraft,
		Amount:              in.Amount,
		DurationMonths:      in.DurationMonths,
		GracePeriodMonths:   in.GracePeriodMonths,
		InterestRate:        in.InterestRate,
		MonthlyPayment:      MonthlyPayment(in.Amount, in.InterestRate, in.DurationMonths),
		ValidityEndDate:     now.Add(time.Duration(t.ValidityDays()) * 24 * time.Hour),
		MortgageAmount:      in.MortgageAmount,
		PropertyTitleNumber: in.PropertyTitleNumber,
		PropertyLocation:    in.PropertyLocation,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	// Seed a tracking alert so the offer expiry is visible from day one.
	a := &domainAlert.Alert{
		LoanID:      l.ID,
		Type:        domainAlert.TypeValidityWarning,
		Severity:    domainAlert.SeverityOrange,
		Status:      domainAlert.StatusPending,
		Message:     fmt.Sprintf("L'offre de prêt %s expire le %s", l.LoanNumber, l.ValidityEndDate.Format("02/01/2006")),
		TriggeredAt: now,
	}
	if err := u.alerts.Create(ctx, a); err != nil {
		return nil, err
	}

	return toDTO(l), nil
}

// nextLoanNumber builds "YYYY/AGENCY/SEQ7/CODE" with a per-year,
// per-agency sequence.
func (u *Usecase) nextLoanNumber(ctx context.Context, t domain.Type, now time.Time) (string, error) {
	prefix := fmt.Sprintf("%d/%s/", now.Year(), u.agency)
	last, err := u.repo.LastLoanNumber(ctx, prefix)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	seq := 1
	if last != "" {
		parts := strings.Split(last, "/")
		if len(parts) >= 3 {
			if n, err := strconv.Atoi(parts[2]); err == nil {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%s%07d/%s", prefix, seq, t.Code()), nil
}

func (u *Usecase) Get(ctx context.Context, loanNumber string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanNumber(ctx, loanNumber)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) List(ctx context.Context, offset, limit int) ([]LoanDTO, error) {
	ls, err := u.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out, nil
}

// Approve moves a draft offer to APPROUVE and stamps the approval date.
func (u *Usecase) Approve(ctx context.Context, loanNumber string) (*LoanDTO, error) {
	return u.transition(ctx, loanNumber, domain.StatusDraft, domain.StatusApproved, func(l *domain.Loan, now time.Time) {
		l.ApprovalDate = &now
	})
}

// Sign records the client's signature and opens the active phase.
func (u *Usecase) Sign(ctx context.Context, loanNumber string) (*LoanDTO, error) {
	return u.transition(ctx, loanNumber, domain.StatusApproved, domain.StatusInProgress, func(l *domain.Loan, now time.Time) {
		l.SignatureDate = &now
	})
}

// StartDisbursing opens the tranche-release phase and fixes the first
// payment date one month out.
func (u *Usecase) StartDisbursing(ctx context.Context, loanNumber string) (*LoanDTO, error) {
	return u.transition(ctx, loanNumber, domain.StatusInProgress, domain.StatusDisbursing, func(l *domain.Loan, now time.Time) {
		first := now.Add(30 * 24 * time.Hour)
		l.FirstPaymentDate = &first
	})
}

func (u *Usecase) transition(ctx context.Context, loanNumber string, from, to domain.Status, mut func(*domain.Loan, time.Time)) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanNumber(ctx, loanNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if l.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now().UTC()
	l.Status = to
	mut(l, now)
	if err := u.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

type ValidityDTO struct {
	Status        string    `json:"status"`
	DaysRemaining int       `json:"days_remaining"`
	ExpiryDate    time.Time `json:"expiry_date"`
}

// CheckValidity reports how long the offer remains open. An expired offer
// is cancelled on the spot; otherwise the tracking alert for the current
// window is created or refreshed (unlike the sweep, this path does update
// an existing alert's message).
func (u *Usecase) CheckValidity(ctx context.Context, loanNumber string, now time.Time) (*ValidityDTO, error) {
	l, err := u.repo.GetByLoanNumber(ctx, loanNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	days := int(l.ValidityEndDate.Sub(now) / (24 * time.Hour))

	if days <= 0 {
		l.Status = domain.StatusCancelled
		if err := u.repo.Save(ctx, l); err != nil {
			return nil, err
		}
		return &ValidityDTO{Status: "expired", DaysRemaining: days, ExpiryDate: l.ValidityEndDate}, nil
	}

	if c, ok := sweep.EvaluateValidity(l, now); ok {
		if err := u.upsertAlert(ctx, l.ID, c, now); err != nil {
			return nil, err
		}
	}
	return &ValidityDTO{Status: "valid", DaysRemaining: days, ExpiryDate: l.ValidityEndDate}, nil
}

func (u *Usecase) upsertAlert(ctx context.Context, loanID uint64, c sweep.Candidate, now time.Time) error {
	msg := sweep.RenderMessage(u.locale, c)
	existing, err := u.alerts.FindUnresolved(ctx, loanID, c.Type)
	switch {
	case err == nil:
		existing.Message = msg
		existing.Severity = c.Severity
		return u.alerts.Save(ctx, existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return u.alerts.Create(ctx, &domainAlert.Alert{
			LoanID:      loanID,
			Type:        c.Type,
			Severity:    c.Severity,
			Status:      domainAlert.StatusPending,
			Message:     msg,
			TriggeredAt: now,
		})
	default:
		return err
	}
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanNumber:        l.LoanNumber,
		ClientID:          l.ClientID,
		Type:              string(l.Type),
		Status:            string(l.Status),
		Amount:            l.Amount,
		DurationMonths:    l.DurationMonths,
		GracePeriodMonths: l.GracePeriodMonths,
		InterestRate:      l.InterestRate,
		MonthlyPayment:    l.MonthlyPayment,
		ValidityEndDate:   l.ValidityEndDate,
		FirstPaymentDate:  l.FirstPaymentDate,
		CreatedAt:         l.CreatedAt,
	}
}
