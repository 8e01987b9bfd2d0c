package sinkmock

import (
	"context"
	"sync"

	"cfc-deblocages/internal/notification"
)

// Sink records every dispatched alert id; safe for concurrent use.
type Sink struct {
	mu  sync.Mutex
	ids []uint64

	DispatchFn func(ctx context.Context, alertID uint64) (notification.Receipt, error)
}

func (s *Sink) Dispatch(ctx context.Context, alertID uint64) (notification.Receipt, error) {
	s.mu.Lock()
	s.ids = append(s.ids, alertID)
	s.mu.Unlock()
	if s.DispatchFn != nil {
		return s.DispatchFn(ctx, alertID)
	}
	return notification.Receipt{Email: true, SMS: true, Push: true}, nil
}

func (s *Sink) Dispatched() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(s.ids))
	copy(out, s.ids)
	return out
}
