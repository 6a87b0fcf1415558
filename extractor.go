package docwright

import (
	"context"
	"time"
)

// DefaultMaxImages bounds image collection when options leave it unset.
const DefaultMaxImages = 10

// ExtractOptions configures web content extraction.
type ExtractOptions struct {
	IncludeImages  bool
	MaxImages      int
	ImageMinWidth  int
	ImageMinHeight int
	Timeout        time.Duration
	UserAgent      string
}

// DefaultExtractOptions returns the extraction defaults: images on, up to
// DefaultMaxImages of them, 100x100 minimum dimensions, 10s timeout.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		IncludeImages:  true,
		MaxImages:      DefaultMaxImages,
		ImageMinWidth:  100,
		ImageMinHeight: 100,
		Timeout:        10 * time.Second,
	}
}

// Extractor pulls raw content from a web page locator.
// Each call is a pure function of its inputs plus network responses at call
// time; implementations hold no state between extractions.
type Extractor interface {
	// Extract fetches and parses the page at url. It returns the extracted
	// content together with soft validation warnings. Hard failures (fetch
	// errors, non-2xx responses, content under the minimum length) return an
	// error and no content.
	Extract(ctx context.Context, url string, opts ExtractOptions) (*ExtractedContent, []string, error)
}
