package docwright

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ExtractOutcome is the per-locator result of a batch extraction. Exactly one
// of Content or Err is meaningful; Warnings may accompany either.
type ExtractOutcome struct {
	URL      string            `json:"url"`
	Content  *ExtractedContent `json:"content,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
	Err      error             `json:"-"`
}

// ExtractAll extracts multiple URLs concurrently. The result slice always has
// one entry per input URL in input order, regardless of completion order;
// per-item failures are recorded in place and never abort the batch.
// Concurrency values below 1 default to 3.
func ExtractAll(ctx context.Context, extractor Extractor, urls []string, opts ExtractOptions, concurrency int) []ExtractOutcome {
	if concurrency < 1 {
		concurrency = 3
	}

	outcomes := make([]ExtractOutcome, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, url := range urls {
		g.Go(func() error {
			content, warnings, err := extractor.Extract(ctx, url, opts)
			outcomes[i] = ExtractOutcome{
				URL:      url,
				Content:  content,
				Warnings: warnings,
				Err:      err,
			}
			// Item failures stay in the outcome slice; returning them here
			// would cancel the sibling extractions.
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
