package mock

import (
	"context"

	"github.com/docwright/docwright"
)

var _ docwright.MetadataFetcher = (*MetadataFetcher)(nil)

// MetadataFetcher is a mock implementation of docwright.MetadataFetcher.
type MetadataFetcher struct {
	FetchMetadataFn func(ctx context.Context, videoID string) (*docwright.VideoMetadata, error)
}

func (m *MetadataFetcher) FetchMetadata(ctx context.Context, videoID string) (*docwright.VideoMetadata, error) {
	return m.FetchMetadataFn(ctx, videoID)
}

var _ docwright.TranscriptFetcher = (*TranscriptFetcher)(nil)

// TranscriptFetcher is a mock implementation of docwright.TranscriptFetcher.
type TranscriptFetcher struct {
	FetchTranscriptFn func(ctx context.Context, videoID, language string) ([]docwright.TranscriptSegment, error)
}

func (m *TranscriptFetcher) FetchTranscript(ctx context.Context, videoID, language string) ([]docwright.TranscriptSegment, error) {
	return m.FetchTranscriptFn(ctx, videoID, language)
}

var _ docwright.VideoProcessor = (*VideoProcessor)(nil)

// VideoProcessor is a mock implementation of docwright.VideoProcessor.
type VideoProcessor struct {
	ProcessFn func(ctx context.Context, url string, opts docwright.ProcessOptions) (*docwright.ExtractedContent, []string, error)
}

func (m *VideoProcessor) Process(ctx context.Context, url string, opts docwright.ProcessOptions) (*docwright.ExtractedContent, []string, error) {
	return m.ProcessFn(ctx, url, opts)
}
