package disbursement

import (
	"context"
	"errors"
	"time"

	domain "cfc-deblocages/internal/domain/disbursement"
	domainLoan "cfc-deblocages/internal/domain/loan"
	"cfc-deblocages/internal/domain/uow"

	"gorm.io/gorm"
)

var ErrBETReportMissing = errors.New("BET report required before approval")

type Usecase struct {
	repo  domain.Repository
	loans domainLoan.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(repo domain.Repository, loans domainLoan.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, loans: loans, uow: tx}
}

type RequestInput struct {
	LoanNumber      string  `json:"loan_number"`
	RequestedAmount float64 `json:"requested_amount"`
	WorkDescription string  `json:"work_description"`
	BETName         string  `json:"bet_name"`
}

type DisbursementDTO struct {
	ID                       uint64     `json:"id"`
	LoanNumber               string     `json:"loan_number"`
	SequenceNumber           int        `json:"sequence_number"`
	Status                   string     `json:"status"`
	RequestedAmount          float64    `json:"requested_amount"`
	ApprovedAmount           *float64   `json:"approved_amount,omitempty"`
	RequestDate              time.Time  `json:"request_date"`
	ApprovalDate             *time.Time `json:"approval_date,omitempty"`
	WorkCompletionPercentage int        `json:"work_completion_percentage"`
	BETReportReceived        bool       `json:"bet_report_received"`
}

// Request opens a new tranche on a loan in its disbursement phase.
func (u *Usecase) Request(ctx context.Context, in RequestInput) (*DisbursementDTO, error) {
	if in.RequestedAmount <= 0 {
		return nil, errors.New("requested amount must be positive")
	}

	l, err := u.loans.GetByLoanNumber(ctx, in.LoanNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	if l.Status != domainLoan.StatusDisbursing {
		return nil, domain.ErrLoanNotDisbursing
	}

	seq, err := u.repo.NextSequence(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	d := &domain.Disbursement{
		LoanID:          l.ID,
		SequenceNumber:  seq,
		Status:          domain.StatusRequested,
		RequestedAmount: in.RequestedAmount,
		RequestDate:     time.Now().UTC(),
		WorkDescription: in.WorkDescription,
		BETName:         in.BETName,
	}
	if err := u.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDTO(d, l.LoanNumber), nil
}

// RecordBETReport marks the technical inspection report as received.
func (u *Usecase) RecordBETReport(ctx context.Context, id uint64, report string, visited time.Time) (*DisbursementDTO, error) {
	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	d.BETReportReceived = true
	d.SiteVisitReport = report
	d.SiteVisitDate = &visited
	if err := u.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	return u.withLoanNumber(ctx, d)
}

// Approve releases the tranche. The loan row is locked for the duration
// so two approvals cannot interleave; the BET report gates approval.
func (u *Usecase) Approve(ctx context.Context, id uint64, approvedAmount float64) (*DisbursementDTO, error) {
	if u.uow == nil {
		return nil, errors.New("unit of work not configured")
	}

	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	l, err := u.loans.GetByID(ctx, d.LoanID)
	if err != nil {
		return nil, err
	}

	var dto *DisbursementDTO
	err = u.uow.WithinLoanTx(ctx, l.LoanNumber, func(r uow.Repos, locked *domainLoan.Loan) error {
		cur, err := r.Disbursements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur.Status != domain.StatusRequested {
			return domainLoan.ErrInvalidTransition
		}
		if !cur.BETReportReceived && cur.SequenceNumber > 1 {
			// The first tranche is released on signature alone; later
			// ones need the inspection report.
			return ErrBETReportMissing
		}
		now := time.Now().UTC()
		cur.Status = domain.StatusApproved
		cur.ApprovedAmount = &approvedAmount
		cur.ApprovalDate = &now
		if err := r.Disbursements.Save(ctx, cur); err != nil {
			return err
		}
		dto = toDTO(cur, locked.LoanNumber)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Start moves an approved tranche into active works.
func (u *Usecase) Start(ctx context.Context, id uint64) (*DisbursementDTO, error) {
	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if d.Status != domain.StatusApproved {
		return nil, domainLoan.ErrInvalidTransition
	}
	now := time.Now().UTC()
	d.Status = domain.StatusInProgress
	d.DisbursementDate = &now
	d.DisbursedAmount = d.ApprovedAmount
	if err := u.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	return u.withLoanNumber(ctx, d)
}

// UpdateProgress records verified work completion for an active tranche.
func (u *Usecase) UpdateProgress(ctx context.Context, id uint64, pct int) (*DisbursementDTO, error) {
	if pct < 0 || pct > 100 {
		return nil, domain.ErrInvalidProgress
	}
	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if d.Status != domain.StatusInProgress {
		return nil, domainLoan.ErrInvalidTransition
	}
	d.WorkCompletionPercentage = pct
	if pct == 100 {
		d.Status = domain.StatusCompleted
	}
	if err := u.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	return u.withLoanNumber(ctx, d)
}

func (u *Usecase) ListByLoan(ctx context.Context, loanNumber string) ([]DisbursementDTO, error) {
	l, err := u.loans.GetByLoanNumber(ctx, loanNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	ds, err := u.repo.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]DisbursementDTO, 0, len(ds))
	for i := range ds {
		out = append(out, *toDTO(&ds[i], l.LoanNumber))
	}
	return out, nil
}

func (u *Usecase) withLoanNumber(ctx context.Context, d *domain.Disbursement) (*DisbursementDTO, error) {
	l, err := u.loans.GetByID(ctx, d.LoanID)
	if err != nil {
		return nil, err
	}
	return toDTO(d, l.LoanNumber), nil
}

func toDTO(d *domain.Disbursement, loanNumber string) *DisbursementDTO {
	return &DisbursementDTO{
		ID:                       d.ID,
		LoanNumber:               loanNumber,
		SequenceNumber:           d.SequenceNumber,
		Status:                   string(d.Status),
		RequestedAmount:          d.RequestedAmount,
		ApprovedAmount:           d.ApprovedAmount,
		RequestDate:              d.RequestDate,
		ApprovalDate:             d.ApprovalDate,
		WorkCompletionPercentage: d.WorkCompletionPercentage,
		BETReportReceived:        d.BETReportReceived,
	}
}
