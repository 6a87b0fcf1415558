// Package http provides an HTTP-based implementation of docwright.Fetcher
// for retrieving page bodies and probing locator accessibility.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/docwright/docwright"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the extractor to origin servers.
const DefaultUserAgent = "docwright/1.0 (+https://github.com/docwright/docwright)"

// Ensure Fetcher implements the fetch and probe interfaces at compile time.
var (
	_ docwright.Fetcher = (*Fetcher)(nil)
	_ docwright.Prober  = (*Fetcher)(nil)
)

// Fetcher retrieves page bodies from URLs using plain HTTP requests.
// It applies a fixed per-request timeout and never retries.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body at the given URL. Non-2xx responses yield an
// EUNAVAILABLE error carrying the status; exceeded deadlines yield ETIMEOUT.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docwright.Errorf(docwright.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", docwright.Errorf(docwright.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fetchError(url, err)
	}

	return string(body), nil
}

// Probe checks accessibility with a HEAD request, falling back to the status
// of the response only; the body is never downloaded. Probing is opt-in and
// independent of classification.
func (f *Fetcher) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return docwright.Errorf(docwright.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return docwright.Errorf(docwright.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}
	return nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// fetchError maps transport failures onto the domain error taxonomy.
func fetchError(url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return docwright.Errorf(docwright.ETIMEOUT, "fetch timed out for %s", url)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return docwright.Errorf(docwright.ETIMEOUT, "fetch timed out for %s", url)
	}
	return docwright.Errorf(docwright.EUNAVAILABLE, "fetch failed for %s: %v", url, err)
}
