package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	clock := clockwork.NewFakeClock()
	noop := func(context.Context) error { return nil }

	t.Run("valid daily trigger", func(t *testing.T) {
		s, err := New(clock, Trigger{Mode: ModeDaily, Hour: 11, Minute: 59}, noop, slog.Default())
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("valid interval trigger", func(t *testing.T) {
		_, err := New(clock, Trigger{Mode: ModeInterval, Interval: time.Hour}, noop, slog.Default())
		require.NoError(t, err)
	})

	t.Run("invalid daily time", func(t *testing.T) {
		_, err := New(clock, Trigger{Mode: ModeDaily, Hour: 24}, noop, slog.Default())
		assert.Error(t, err)
	})

	t.Run("non-positive interval", func(t *testing.T) {
		_, err := New(clock, Trigger{Mode: ModeInterval}, noop, slog.Default())
		assert.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := New(clock, Trigger{Mode: "weekly"}, noop, slog.Default())
		assert.Error(t, err)
	})
}

func TestNextFire_Daily(t *testing.T) {
	clock := clockwork.NewFakeClock()
	noop := func(context.Context) error { return nil }

	s, err := New(clock, Trigger{Mode: ModeDaily, Hour: 11, Minute: 59}, noop, slog.Default())
	require.NoError(t, err)

	t.Run("before the daily time fires today", func(t *testing.T) {
		now := time.Date(2020, time.October, 1, 8, 0, 0, 0, time.UTC)
		next := s.NextFire(now)
		assert.Equal(t, time.Date(2020, time.October, 1, 11, 59, 0, 0, time.UTC), next)
	})

	t.Run("at or after the daily time fires tomorrow", func(t *testing.T) {
		now := time.Date(2020, time.October, 1, 11, 59, 0, 0, time.UTC)
		next := s.NextFire(now)
		assert.Equal(t, time.Date(2020, time.October, 2, 11, 59, 0, 0, time.UTC), next)
	})

	t.Run("respects the configured timezone", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		s, err := New(clock, Trigger{Mode: ModeDaily, Hour: 11, Minute: 59, Location: ny}, noop, slog.Default())
		require.NoError(t, err)

		// 14:00 UTC in summer is 10:00 in New York, so today's 11:59 local
		// fire is still ahead.
		now := time.Date(2020, time.July, 1, 14, 0, 0, 0, time.UTC)
		next := s.NextFire(now)
		assert.Equal(t, time.Date(2020, time.July, 1, 11, 59, 0, 0, ny).UTC(), next.UTC())
	})
}

func TestNextFire_Interval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s, err := New(clock, Trigger{Mode: ModeInterval, Interval: 30 * time.Minute},
		func(context.Context) error { return nil }, slog.Default())
	require.NoError(t, err)

	now := time.Date(2020, time.October, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(30*time.Minute), s.NextFire(now))
}

func TestRun(t *testing.T) {
	t.Run("fires on the interval and keeps going after a failure", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		fired := make(chan int, 4)
		var calls atomic.Int32

		run := func(context.Context) error {
			n := int(calls.Add(1))
			fired <- n
			if n == 1 {
				return errors.New("transient failure")
			}
			return nil
		}

		s, err := New(clock, Trigger{Mode: ModeInterval, Interval: time.Minute}, run, slog.Default())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			_ = s.Run(ctx)
			close(done)
		}()

		clock.BlockUntil(1)
		clock.Advance(time.Minute)
		assert.Equal(t, 1, <-fired)

		clock.BlockUntil(1)
		clock.Advance(time.Minute)
		assert.Equal(t, 2, <-fired)

		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not stop on cancellation")
		}
	})

	t.Run("stops without firing when cancelled", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		var calls atomic.Int32
		run := func(context.Context) error { calls.Add(1); return nil }

		s, err := New(clock, Trigger{Mode: ModeInterval, Interval: time.Hour}, run, slog.Default())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			_ = s.Run(ctx)
			close(done)
		}()

		clock.BlockUntil(1)
		cancel()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not stop on cancellation")
		}
		assert.Zero(t, calls.Load())
	})
}
