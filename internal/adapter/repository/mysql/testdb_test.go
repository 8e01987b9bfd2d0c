package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no decimal/enum column types) ---

type loanSQLite struct {
	ID                uint64     `gorm:"primaryKey;column:id"`
	LoanNumber        string     `gorm:"size:100;column:loan_number"`
	ClientID          uint64     `gorm:"column:client_id"`
	Type              string     `gorm:"type:text;column:loan_type"`
	Status            string     `gorm:"type:text;column:status"`
	Amount            float64    `gorm:"column:amount"`
	DurationMonths    int        `gorm:"column:duration_months"`
	GracePeriodMonths int        `gorm:"column:grace_period_months"`
	InterestRate      float64    `gorm:"column:interest_rate"`
	MonthlyPayment    float64    `gorm:"column:monthly_payment"`
	ApprovalDate      *time.Time `gorm:"column:approval_date"`
	SignatureDate     *time.Time `gorm:"column:signature_date"`
	FirstPaymentDate  *time.Time `gorm:"column:first_payment_date"`
	ValidityEndDate   time.Time  `gorm:"column:validity_end_date"`

	MortgageAmount      float64 `gorm:"column:mortgage_amount"`
	PropertyTitleNumber string  `gorm:"column:property_title_number"`
	PropertyLocation    string  `gorm:"type:text;column:property_location"`

	LifeInsuranceCompany string `gorm:"column:life_insurance_company"`
	FireInsuranceCompany string `gorm:"column:fire_insurance_company"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type alertSQLite struct {
	ID             uint64     `gorm:"primaryKey;column:id"`
	LoanID         uint64     `gorm:"column:loan_id"`
	Type           string     `gorm:"type:text;column:alert_type"`
	Status         string     `gorm:"type:text;column:status"`
	Severity       string     `gorm:"type:text;column:severity"`
	Message        string     `gorm:"type:text;column:message"`
	TriggeredAt    time.Time  `gorm:"column:triggered_at"`
	AcknowledgedAt *time.Time `gorm:"column:acknowledged_at"`
	ResolvedAt     *time.Time `gorm:"column:resolved_at"`
	EmailSent      bool       `gorm:"column:email_sent"`
	SMSSent        bool       `gorm:"column:sms_sent"`
	AcknowledgedBy *uint64    `gorm:"column:acknowledged_by"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (alertSQLite) TableName() string { return "alerts" }

type disbursementSQLite struct {
	ID                       uint64     `gorm:"primaryKey;column:id"`
	LoanID                   uint64     `gorm:"column:loan_id"`
	SequenceNumber           int        `gorm:"column:sequence_number"`
	Status                   string     `gorm:"type:text;column:status"`
	RequestedAmount          float64    `gorm:"column:requested_amount"`
	ApprovedAmount           *float64   `gorm:"column:approved_amount"`
	DisbursedAmount          *float64   `gorm:"column:disbursed_amount"`
	RequestDate              time.Time  `gorm:"column:request_date"`
	ApprovalDate             *time.Time `gorm:"column:approval_date"`
	DisbursementDate         *time.Time `gorm:"column:disbursement_date"`
	WorkDescription          string     `gorm:"type:text;column:work_description"`
	WorkCompletionPercentage int        `gorm:"column:work_completion_percentage"`
	SiteVisitDate            *time.Time `gorm:"column:site_visit_date"`
	SiteVisitReport          string     `gorm:"type:text;column:site_visit_report"`
	BETName                  string     `gorm:"column:bet_name"`
	BETReportReceived        bool       `gorm:"column:bet_report_received"`
	CreatedAt                time.Time  `gorm:"column:created_at"`
	UpdatedAt                time.Time  `gorm:"column:updated_at"`
}

func (disbursementSQLite) TableName() string { return "disbursements" }

type userSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	Username       string    `gorm:"column:username"`
	Email          string    `gorm:"column:email"`
	HashedPassword string    `gorm:"column:hashed_password"`
	FullName       string    `gorm:"column:full_name"`
	Role           string    `gorm:"type:text;column:role"`
	IsActive       bool      `gorm:"column:is_active"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (userSQLite) TableName() string { return "users" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &alertSQLite{}, &disbursementSQLite{}, &userSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
