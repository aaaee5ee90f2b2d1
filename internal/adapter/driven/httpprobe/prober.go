// Package httpprobe implements the URLProber port with a plain HTTP GET.
package httpprobe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/waitfordeploy/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.URLProber = (*Prober)(nil)

// Prober issues GET requests and treats any completed response as reachable.
// The status code is logged but never checked.
type Prober struct {
	client *http.Client
}

// NewProber returns a Prober using the given client, or http.DefaultClient when nil.
func NewProber(client *http.Client) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	return &Prober{client: client}
}

// Probe performs a single GET against url.
func (p *Prober) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", url, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	slog.Debug("url probe completed", "url", url, "status", resp.StatusCode)
	return nil
}
