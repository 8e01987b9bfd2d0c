package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type countingSweeper struct {
	runs int32
	err  error
}

func (s *countingSweeper) Run(_ context.Context, _ time.Time) error {
	atomic.AddInt32(&s.runs, 1)
	return s.err
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	m := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return m, c
}

func TestRunSweep_AcquiresAndReleasesLock(t *testing.T) {
	m, rdb := newTestRedis(t)
	sw := &countingSweeper{}
	s := New(rdb, sw, nil, nil)

	s.runSweep()

	if got := atomic.LoadInt32(&sw.runs); got != 1 {
		t.Fatalf("sweeper ran %d times, want 1", got)
	}
	// Lock released afterwards so the next tick can run.
	if m.Exists(sweepLockKey) {
		t.Fatal("sweep lock still held after completion")
	}
}

func TestRunSweep_SkipsWhenLockHeld(t *testing.T) {
	m, rdb := newTestRedis(t)
	if err := m.Set(sweepLockKey, "other-instance"); err != nil {
		t.Fatal(err)
	}

	sw := &countingSweeper{}
	s := New(rdb, sw, nil, nil)
	s.runSweep()

	if got := atomic.LoadInt32(&sw.runs); got != 0 {
		t.Fatalf("sweeper ran %d times while locked elsewhere, want 0", got)
	}
	// The foreign lock must be left alone.
	if v, _ := m.Get(sweepLockKey); v != "other-instance" {
		t.Fatalf("lock value = %q, want untouched", v)
	}
}

func TestRunSweep_ReleasesLockOnFailure(t *testing.T) {
	m, rdb := newTestRedis(t)
	sw := &countingSweeper{err: context.DeadlineExceeded}
	s := New(rdb, sw, nil, nil)

	s.runSweep()
	if m.Exists(sweepLockKey) {
		t.Fatal("lock must be released even when the sweep fails")
	}
}

func TestStart_RejectsBadSpec(t *testing.T) {
	_, rdb := newTestRedis(t)
	s := New(rdb, &countingSweeper{}, nil, nil)
	if err := s.Start("not a cron spec", "0 8 * * *"); err == nil {
		t.Fatal("invalid sweep spec should fail Start")
	}
	s.Stop()
}

func TestStart_SchedulesJobs(t *testing.T) {
	_, rdb := newTestRedis(t)
	s := New(rdb, &countingSweeper{}, func(ctx context.Context) error { return nil }, time.UTC)
	if err := s.Start("0 * * * *", "0 8 * * *"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
