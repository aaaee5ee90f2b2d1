// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrPollTimeout is returned when every attempt in the budget failed.
var ErrPollTimeout = errors.New("poll budget exhausted")

// SleepFunc pauses for d or until ctx is canceled.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the production SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poller retries a probe at a fixed interval within an attempt budget.
// It holds no state across calls.
type Poller struct {
	interval time.Duration
	timeout  time.Duration
	sleep    SleepFunc
}

// NewPoller creates a Poller. sleep may be nil to use Sleep.
func NewPoller(interval, timeout time.Duration, sleep SleepFunc) *Poller {
	if sleep == nil {
		sleep = Sleep
	}
	return &Poller{interval: interval, timeout: timeout, sleep: sleep}
}

// Attempts returns floor(timeout / interval).
func (p *Poller) Attempts() int {
	if p.interval <= 0 {
		return 0
	}
	return int(p.timeout / p.interval)
}

// Poll invokes probe until it succeeds or the budget runs out. A failed probe
// is logged with retryMsg and followed by one interval of sleep. The budget is counted in
// attempts, not wall-clock time. Returns ErrPollTimeout on exhaustion or the
// context error if ctx is canceled while sleeping.
func Poll[T any](ctx context.Context, p *Poller, retryMsg string, probe func(context.Context) (T, error)) (T, error) {
	var zero T

	attempts := p.Attempts()
	for i := 1; i <= attempts; i++ {
		v, err := probe(ctx)
		if err == nil {
			return v, nil
		}

		slog.Info(retryMsg, "attempt", i, "max_attempts", attempts, "error", err)

		if err := p.sleep(ctx, p.interval); err != nil {
			return zero, err
		}
	}

	return zero, ErrPollTimeout
}
