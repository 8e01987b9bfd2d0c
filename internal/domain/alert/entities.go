package alert

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("alert not found")
	ErrAlreadyResolved = errors.New("alert already resolved")
)

type Type string

const (
	// Offer validity alerts.
	TypeValidityWarning  Type = "VALIDITY_WARNING"
	TypeValidityCritical Type = "VALIDITY_CRITICAL"

	// Disbursement alerts.
	TypeWorkDelayWarning  Type = "WORK_DELAY_WARNING"
	TypeWorkDelayCritical Type = "WORK_DELAY_CRITICAL"

	// Repayment alerts.
	TypeRepaymentUpcoming Type = "REPAYMENT_UPCOMING"
	TypeRepaymentImminent Type = "REPAYMENT_IMMINENT"

	// Document alerts.
	TypeMissingDocument Type = "MISSING_DOCUMENT"
	TypeDocumentExpiry  Type = "DOCUMENT_EXPIRY"
)

type Severity string

const (
	SeverityRed    Severity = "RED"
	SeverityOrange Severity = "ORANGE"
	SeverityGreen  Severity = "GREEN"
)

type Status string

const (
	StatusPending      Status = "PENDING"
	StatusAcknowledged Status = "ACKNOWLEDGED"
	StatusResolved     Status = "RESOLVED"
	StatusEscalated    Status = "ESCALATED"
)

type Alert struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"id"`
	LoanID uint64 `gorm:"column:loan_id;not null;index:idx_alerts_loan" json:"loan_id"`

	Type     Type     `gorm:"column:alert_type;size:32;not null;index:idx_alerts_loan" json:"alert_type"`
	Status   Status   `gorm:"column:status;size:16;not null;default:'PENDING'" json:"status"`
	Severity Severity `gorm:"column:severity;size:16" json:"severity"`
	Message  string   `gorm:"column:message;type:text;not null" json:"message"`

	TriggeredAt    time.Time  `gorm:"column:triggered_at;not null" json:"triggered_at"`
	AcknowledgedAt *time.Time `gorm:"column:acknowledged_at" json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`

	EmailSent bool `gorm:"column:email_sent;default:false" json:"email_sent"`
	SMSSent   bool `gorm:"column:sms_sent;default:false" json:"sms_sent"`

	AcknowledgedBy *uint64 `gorm:"column:acknowledged_by" json:"acknowledged_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Alert) TableName() string { return "alerts" }

// Unresolved reports whether the alert still blocks a new alert of the
// same type for its loan. Everything except RESOLVED counts.
func (a *Alert) Unresolved() bool { return a.Status != StatusResolved }
