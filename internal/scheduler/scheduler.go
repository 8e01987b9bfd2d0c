package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const (
	sweepLockKey = "cfc:sweep:lock"
	// Bounds a lock held by a crashed instance; a sweep is expected to
	// finish well within this.
	sweepLockTTL = 30 * time.Minute
	sweepTimeout = 10 * time.Minute
)

// SweepRunner is the periodic evaluation pass.
type SweepRunner interface {
	Run(ctx context.Context, now time.Time) error
}

// Scheduler is the external trigger for the sweep: hourly by default,
// with a redis lock so at most one instance sweeps at a time.
type Scheduler struct {
	cron    *cron.Cron
	rdb     *redis.Client
	sweeper SweepRunner
	report  func(ctx context.Context) error
}

// New builds a scheduler whose cron specs are interpreted in loc; pass
// nil for server local time. The sweep rules themselves are instant-based,
// only the report hour cares about the zone.
func New(rdb *redis.Client, sweeper SweepRunner, report func(ctx context.Context) error, loc *time.Location) *Scheduler {
	var opts []cron.Option
	if loc != nil {
		opts = append(opts, cron.WithLocation(loc))
	}
	return &Scheduler{cron: cron.New(opts...), rdb: rdb, sweeper: sweeper, report: report}
}

func (s *Scheduler) Start(sweepSpec, reportSpec string) error {
	if _, err := s.cron.AddFunc(sweepSpec, s.runSweep); err != nil {
		return err
	}
	if s.report != nil {
		if _, err := s.cron.AddFunc(reportSpec, s.runReport); err != nil {
			return err
		}
	}
	s.cron.Start()
	log.Printf("scheduler: started (sweep %q, report %q)", sweepSpec, reportSpec)
	return nil
}

// Stop halts scheduling and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	ok, err := s.rdb.SetNX(ctx, sweepLockKey, time.Now().UTC().Format(time.RFC3339), sweepLockTTL).Result()
	if err != nil {
		log.Printf("scheduler: sweep lock: %v", err)
		return
	}
	if !ok {
		log.Println("scheduler: sweep already running elsewhere, skipped")
		return
	}
	defer func() {
		if err := s.rdb.Del(context.Background(), sweepLockKey).Err(); err != nil {
			log.Printf("scheduler: release sweep lock: %v", err)
		}
	}()

	start := time.Now()
	if err := s.sweeper.Run(ctx, time.Now().UTC()); err != nil {
		// Left failed; the next tick retries.
		log.Printf("scheduler: sweep failed: %v", err)
		return
	}
	log.Printf("scheduler: sweep completed in %s", time.Since(start).Round(time.Millisecond))
}

func (s *Scheduler) runReport() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.report(ctx); err != nil {
		log.Printf("scheduler: daily report: %v", err)
	}
}
