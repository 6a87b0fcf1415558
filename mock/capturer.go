package mock

import (
	"context"

	"github.com/docwright/docwright"
)

var _ docwright.Capturer = (*Capturer)(nil)

// Capturer is a mock implementation of docwright.Capturer. Unset functions
// succeed with zero values, so tests only wire the calls they care about.
type Capturer struct {
	NavigateFn func(ctx context.Context, videoID string) error
	SeekFn     func(ctx context.Context, timestamp float64) error
	CaptureFn  func(ctx context.Context) (string, error)
	CloseFn    func() error
}

func (c *Capturer) Navigate(ctx context.Context, videoID string) error {
	if c.NavigateFn == nil {
		return nil
	}
	return c.NavigateFn(ctx, videoID)
}

func (c *Capturer) Seek(ctx context.Context, timestamp float64) error {
	if c.SeekFn == nil {
		return nil
	}
	return c.SeekFn(ctx, timestamp)
}

func (c *Capturer) Capture(ctx context.Context) (string, error) {
	if c.CaptureFn == nil {
		return "", nil
	}
	return c.CaptureFn(ctx)
}

func (c *Capturer) Close() error {
	if c.CloseFn == nil {
		return nil
	}
	return c.CloseFn()
}
