package mock

import (
	"context"

	"github.com/docwright/docwright"
)

var _ docwright.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docwright.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, url string, opts docwright.ExtractOptions) (*docwright.ExtractedContent, []string, error)
}

func (e *Extractor) Extract(ctx context.Context, url string, opts docwright.ExtractOptions) (*docwright.ExtractedContent, []string, error) {
	return e.ExtractFn(ctx, url, opts)
}
