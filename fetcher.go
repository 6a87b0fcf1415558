package docwright

import "context"

// Fetcher retrieves raw page bodies from URLs.
// Implementations apply a fixed per-request timeout and never retry.
type Fetcher interface {
	// Fetch retrieves the body at url. Non-2xx responses yield an
	// EUNAVAILABLE error carrying the status code; exceeded deadlines yield
	// ETIMEOUT. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Prober checks whether a locator is reachable without downloading it.
// Probing is explicitly opt-in and never part of classification.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

// ContentFinder extracts the main content region from raw HTML, removing
// boilerplate. It is used by extractors as a fallback when structural region
// candidates fail.
type ContentFinder interface {
	FindMainContent(html string) (contentHTML string, err error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. The input should be
	// clean HTML (e.g., a main-content region chosen by an extractor).
	Convert(html string) (string, error)
}
