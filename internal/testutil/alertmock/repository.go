package alertmock

import (
	"context"
	"sync"

	domain "cfc-deblocages/internal/domain/alert"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies alert.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, a *domain.Alert) error
	SaveFn           func(ctx context.Context, a *domain.Alert) error
	GetByIDFn        func(ctx context.Context, id uint64) (*domain.Alert, error)
	ListFn           func(ctx context.Context, f domain.Filter) ([]domain.Alert, error)
	FindUnresolvedFn func(ctx context.Context, loanID uint64, alertType domain.Type) (*domain.Alert, error)
	ListActiveFn     func(ctx context.Context) ([]domain.Alert, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Alert) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Alert) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Alert, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Alert, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) FindUnresolved(ctx context.Context, loanID uint64, alertType domain.Type) (*domain.Alert, error) {
	if m.FindUnresolvedFn != nil {
		return m.FindUnresolvedFn(ctx, loanID, alertType)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListActive(ctx context.Context) ([]domain.Alert, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, nil
}

// MemRepo is an in-memory alert.Repository for sweep tests where the
// dedup behavior needs real create/find semantics.
type MemRepo struct {
	mu     sync.Mutex
	nextID uint64
	Alerts []domain.Alert
}

func NewMemRepo() *MemRepo { return &MemRepo{nextID: 1} }

func (m *MemRepo) Create(_ context.Context, a *domain.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.nextID
	m.nextID++
	m.Alerts = append(m.Alerts, *a)
	return nil
}

func (m *MemRepo) Save(_ context.Context, a *domain.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Alerts {
		if m.Alerts[i].ID == a.ID {
			m.Alerts[i] = *a
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *MemRepo) GetByID(_ context.Context, id uint64) (*domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Alerts {
		if m.Alerts[i].ID == id {
			out := m.Alerts[i]
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MemRepo) List(_ context.Context, f domain.Filter) ([]domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Alert
	for i := range m.Alerts {
		a := m.Alerts[i]
		if f.LoanID != 0 && a.LoanID != f.LoanID {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *MemRepo) FindUnresolved(_ context.Context, loanID uint64, alertType domain.Type) (*domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Alerts) - 1; i >= 0; i-- {
		a := m.Alerts[i]
		if a.LoanID == loanID && a.Type == alertType && a.Status != domain.StatusResolved {
			out := a
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MemRepo) ListActive(_ context.Context) ([]domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Alert
	for i := range m.Alerts {
		if m.Alerts[i].Status == domain.StatusPending || m.Alerts[i].Status == domain.StatusAcknowledged {
			out = append(out, m.Alerts[i])
		}
	}
	return out, nil
}
