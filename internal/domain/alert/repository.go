package alert

import "context"

// Filter narrows List; zero values mean "no constraint".
type Filter struct {
	LoanID   uint64
	Type     Type
	Status   Status
	Severity Severity
	Offset   int
	Limit    int
}

type Repository interface {
	Create(ctx context.Context, a *Alert) error
	Save(ctx context.Context, a *Alert) error
	GetByID(ctx context.Context, id uint64) (*Alert, error)
	List(ctx context.Context, f Filter) ([]Alert, error)

	// FindUnresolved returns the newest alert for (loanID, alertType)
	// whose status is not RESOLVED, or gorm.ErrRecordNotFound.
	FindUnresolved(ctx context.Context, loanID uint64, alertType Type) (*Alert, error)

	// ListActive returns PENDING and ACKNOWLEDGED alerts for the summary.
	ListActive(ctx context.Context) ([]Alert, error)
}
