package application

import (
	"context"

	"github.com/ericfisherdev/waitfordeploy/internal/domain/port/driven"
)

// URLWaiter polls a URL until a GET completes.
type URLWaiter struct {
	prober driven.URLProber
	poller *Poller
}

// NewURLWaiter creates a URLWaiter.
func NewURLWaiter(prober driven.URLProber, poller *Poller) *URLWaiter {
	return &URLWaiter{prober: prober, poller: poller}
}

// Wait returns nil once the URL answers, or ErrPollTimeout.
func (w *URLWaiter) Wait(ctx context.Context, url string) error {
	_, err := Poll(ctx, w.poller, "url unavailable, retrying...", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, w.prober.Probe(ctx, url)
	})
	return err
}
