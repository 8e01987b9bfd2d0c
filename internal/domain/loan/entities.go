package loan

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrExpired           = errors.New("loan offer expired")
)

// Type is the closed set of mortgage products. Each product carries its
// offer validity window as data so callers never inspect the raw string.
type Type string

const (
	TypeClassicAcquirer Type = "PRET_CLASSIQUE_ACQUEREUR"
	TypeClassicBuilder  Type = "PRET_CLASSIQUE_CONSTRUCTEUR"
	TypeRentalOrdinary  Type = "PRET_LOCATIF_ORDINAIRE"
	TypeYoungLand       Type = "FONCIER_CLASSIQUE_JEUNES"
)

func (t Type) Valid() bool {
	switch t {
	case TypeClassicAcquirer, TypeClassicBuilder, TypeRentalOrdinary, TypeYoungLand:
		return true
	}
	return false
}

// ValidityDays is how long the loan offer stays open: 60 days for the
// classic products, 90 days for the others.
func (t Type) ValidityDays() int {
	switch t {
	case TypeClassicAcquirer, TypeClassicBuilder:
		return 60
	default:
		return 90
	}
}

// WarnThresholdDays is the orange-alert threshold, two thirds of the
// validity window (40 days classic, 60 otherwise).
func (t Type) WarnThresholdDays() int {
	return t.ValidityDays() * 2 / 3
}

// Code is the product segment of a loan number (YYYY/AGENCY/SEQ/CODE).
func (t Type) Code() string {
	switch t {
	case TypeClassicAcquirer:
		return "541"
	case TypeClassicBuilder:
		return "542"
	case TypeRentalOrdinary:
		return "567"
	case TypeYoungLand:
		return "571"
	default:
		return "500"
	}
}

type Status string

const (
	StatusDraft      Status = "BROUILLON"
	StatusApproved   Status = "APPROUVE"
	StatusInProgress Status = "EN_COURS"
	StatusDisbursing Status = "DEBLOCAGE"
	StatusCompleted  Status = "COMPLETE"
	StatusCancelled  Status = "ANNULE"
	StatusSuspended  Status = "SUSPENDU"
)

type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanNumber string `gorm:"size:100;uniqueIndex:ux_loans_loan_number" json:"loan_number"`
	ClientID   uint64 `gorm:"column:client_id;not null;index:idx_loans_client" json:"client_id"`

	Type   Type   `gorm:"column:loan_type;size:64;not null" json:"loan_type"`
	Status Status `gorm:"column:status;size:32;not null;default:'BROUILLON';index:idx_loans_status" json:"status"`

	Amount            float64 `gorm:"type:decimal(15,2)" json:"amount"`
	DurationMonths    int     `gorm:"column:duration_months;not null" json:"duration_months"`
	GracePeriodMonths int     `gorm:"column:grace_period_months;default:0" json:"grace_period_months"`
	InterestRate      float64 `gorm:"column:interest_rate;type:decimal(5,2)" json:"interest_rate"`
	MonthlyPayment    float64 `gorm:"column:monthly_payment;type:decimal(15,2)" json:"monthly_payment"`

	ApprovalDate     *time.Time `gorm:"column:approval_date" json:"approval_date,omitempty"`
	SignatureDate    *time.Time `gorm:"column:signature_date" json:"signature_date,omitempty"`
	FirstPaymentDate *time.Time `gorm:"column:first_payment_date" json:"first_payment_date,omitempty"`
	ValidityEndDate  time.Time  `gorm:"column:validity_end_date;not null" json:"validity_end_date"`

	MortgageAmount      float64 `gorm:"column:mortgage_amount;type:decimal(15,2)" json:"mortgage_amount"`
	PropertyTitleNumber string  `gorm:"column:property_title_number;size:100" json:"property_title_number"`
	PropertyLocation    string  `gorm:"column:property_location;type:text" json:"property_location"`

	LifeInsuranceCompany string `gorm:"column:life_insurance_company;size:100" json:"life_insurance_company"`
	FireInsuranceCompany string `gorm:"column:fire_insurance_company;size:100" json:"fire_insurance_company"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// GraceEnd is when repayment actually starts: the first payment date
// pushed back by 30 days per grace month. Second return is false when the
// loan has no usable repayment schedule.
func (l *Loan) GraceEnd() (time.Time, bool) {
	if l.FirstPaymentDate == nil || l.GracePeriodMonths <= 0 {
		return time.Time{}, false
	}
	return l.FirstPaymentDate.Add(time.Duration(30*l.GracePeriodMonths) * 24 * time.Hour), true
}
