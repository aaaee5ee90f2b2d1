package driven

import "context"

// URLProber issues a single GET against a URL. A nil error means the request
// completed, whatever status code came back.
type URLProber interface {
	Probe(ctx context.Context, url string) error
}
