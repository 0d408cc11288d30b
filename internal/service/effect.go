package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/pkordes/postbot/backend/internal/domain"
	"github.com/pkordes/postbot/backend/internal/metrics"
)

// Effect is the external step a submission waits on (campaign generation,
// publishing). Implementations must honour ctx cancellation.
type Effect interface {
	Run(ctx context.Context) error
}

// EffectFunc adapts a plain function to Effect.
type EffectFunc func(ctx context.Context) error

// Run calls f(ctx).
func (f EffectFunc) Run(ctx context.Context) error { return f(ctx) }

// SimulatedEffect stands in for a remote API: it waits Delay and succeeds.
type SimulatedEffect struct {
	Delay time.Duration
}

// Run blocks for Delay or until ctx is done, whichever comes first.
func (e SimulatedEffect) Run(ctx context.Context) error {
	if e.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(e.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// singleFlight admits at most one submission at a time. A second caller is
// turned away rather than queued.
type singleFlight struct {
	sem    *semaphore.Weighted
	active atomic.Bool
}

func newSingleFlight() *singleFlight {
	return &singleFlight{sem: semaphore.NewWeighted(1)}
}

func (s *singleFlight) begin() bool {
	if !s.sem.TryAcquire(1) {
		return false
	}
	s.active.Store(true)
	return true
}

func (s *singleFlight) end() {
	s.active.Store(false)
	s.sem.Release(1)
}

func (s *singleFlight) running() bool {
	return s.active.Load()
}

// submission runs an Effect under a deadline. No retries.
type submission struct {
	kind    string
	effect  Effect
	timeout time.Duration
}

// run executes the effect and maps a missed deadline to ErrSubmissionTimeout.
func (s submission) run(ctx context.Context) error {
	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := s.effect.Run(runCtx)
	elapsed := time.Since(start).Seconds()

	switch {
	case err == nil:
		metrics.RecordSubmission(s.kind, metrics.OutcomeSuccess, elapsed)
		return nil
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		metrics.RecordSubmission(s.kind, metrics.OutcomeTimeout, elapsed)
		return fmt.Errorf("%w after %s", domain.ErrSubmissionTimeout, s.timeout)
	default:
		metrics.RecordSubmission(s.kind, metrics.OutcomeError, elapsed)
		return err
	}
}
