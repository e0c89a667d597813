// Package scheduler triggers the forecast pipeline on a recurrence rule.
//
// The loop runs each invocation to completion before waiting for the next
// trigger, so at most one run executes at a time. The pipeline's
// full-replace persistence relies on that.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Mode selects the recurrence rule.
type Mode string

const (
	// ModeDaily fires once a day at a fixed local time.
	ModeDaily Mode = "daily"
	// ModeInterval fires at a fixed interval from the previous completion.
	ModeInterval Mode = "interval"
)

// Trigger describes when the scheduler fires.
type Trigger struct {
	Mode     Mode
	Hour     int            // ModeDaily
	Minute   int            // ModeDaily
	Interval time.Duration  // ModeInterval
	Location *time.Location // nil means UTC
}

// RunFunc is the work invoked on each trigger.
type RunFunc func(ctx context.Context) error

// Scheduler fires a RunFunc on a Trigger using an injected clock, so tests
// can drive it deterministically.
type Scheduler struct {
	clock   clockwork.Clock
	trigger Trigger
	run     RunFunc
	logger  *slog.Logger
}

// New validates the trigger and creates a Scheduler.
func New(clock clockwork.Clock, trigger Trigger, run RunFunc, logger *slog.Logger) (*Scheduler, error) {
	switch trigger.Mode {
	case ModeDaily:
		if trigger.Hour < 0 || trigger.Hour > 23 || trigger.Minute < 0 || trigger.Minute > 59 {
			return nil, fmt.Errorf("invalid daily trigger time %02d:%02d", trigger.Hour, trigger.Minute)
		}
	case ModeInterval:
		if trigger.Interval <= 0 {
			return nil, fmt.Errorf("interval trigger requires a positive interval, got %s", trigger.Interval)
		}
	default:
		return nil, fmt.Errorf("unknown trigger mode %q", trigger.Mode)
	}
	if trigger.Location == nil {
		trigger.Location = time.UTC
	}
	return &Scheduler{clock: clock, trigger: trigger, run: run, logger: logger}, nil
}

// Run fires the trigger until the context is cancelled. A failed run is
// logged; the next trigger still fires.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started", "mode", s.trigger.Mode)
	for {
		now := s.clock.Now()
		next := s.NextFire(now)
		s.logger.Debug("scheduler waiting", "next_fire", next)

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping", "reason", ctx.Err())
			return nil
		case <-s.clock.After(next.Sub(now)):
		}

		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error("scheduled run failed", "error", err)
		}
	}
}

// NextFire returns the first trigger time strictly after now.
func (s *Scheduler) NextFire(now time.Time) time.Time {
	switch s.trigger.Mode {
	case ModeDaily:
		local := now.In(s.trigger.Location)
		fire := time.Date(local.Year(), local.Month(), local.Day(),
			s.trigger.Hour, s.trigger.Minute, 0, 0, s.trigger.Location)
		if !fire.After(now) {
			fire = fire.AddDate(0, 0, 1)
		}
		return fire
	default:
		return now.Add(s.trigger.Interval)
	}
}
