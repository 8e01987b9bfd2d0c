package disbursement

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("disbursement not found")
	ErrInvalidProgress = errors.New("work completion must be between 0 and 100")
	ErrLoanNotDisbursing = errors.New("loan is not in disbursement phase")
)

type Status string

const (
	StatusRequested  Status = "DEMANDE"
	StatusApproved   Status = "APPROUVE"
	StatusInProgress Status = "EN_COURS"
	StatusCompleted  Status = "COMPLETE"
	StatusRejected   Status = "REJETE"
	StatusSuspended  Status = "SUSPENDU"
)

// Disbursement is one tranche of loan funds tied to verified work progress.
type Disbursement struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"id"`
	LoanID         uint64 `gorm:"column:loan_id;not null;index:idx_disbursements_loan" json:"loan_id"`
	SequenceNumber int    `gorm:"column:sequence_number;not null" json:"sequence_number"`

	Status Status `gorm:"column:status;size:32;not null;default:'DEMANDE'" json:"status"`

	RequestedAmount float64  `gorm:"column:requested_amount;type:decimal(15,2);not null" json:"requested_amount"`
	ApprovedAmount  *float64 `gorm:"column:approved_amount;type:decimal(15,2)" json:"approved_amount,omitempty"`
	DisbursedAmount *float64 `gorm:"column:disbursed_amount;type:decimal(15,2)" json:"disbursed_amount,omitempty"`

	RequestDate      time.Time  `gorm:"column:request_date;not null" json:"request_date"`
	ApprovalDate     *time.Time `gorm:"column:approval_date" json:"approval_date,omitempty"`
	DisbursementDate *time.Time `gorm:"column:disbursement_date" json:"disbursement_date,omitempty"`

	WorkDescription          string     `gorm:"column:work_description;type:text" json:"work_description"`
	WorkCompletionPercentage int        `gorm:"column:work_completion_percentage;default:0" json:"work_completion_percentage"`
	SiteVisitDate            *time.Time `gorm:"column:site_visit_date" json:"site_visit_date,omitempty"`
	SiteVisitReport          string     `gorm:"column:site_visit_report;type:text" json:"site_visit_report"`

	// BET = Bureau d'Études Techniques, the inspection body whose report
	// gates approval.
	BETName           string `gorm:"column:bet_name;size:200" json:"bet_name"`
	BETReportReceived bool   `gorm:"column:bet_report_received;default:false" json:"bet_report_received"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Disbursement) TableName() string { return "disbursements" }
