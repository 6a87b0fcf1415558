package youtube_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/docwright/docwright"
	"github.com/docwright/docwright/mock"
	"github.com/docwright/docwright/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMetadataFetcher() *mock.MetadataFetcher {
	return &mock.MetadataFetcher{
		FetchMetadataFn: func(ctx context.Context, videoID string) (*docwright.VideoMetadata, error) {
			return &docwright.VideoMetadata{
				Title:       "How to Solder",
				Description: "A soldering walkthrough covering tip cleaning, flux technique, and joint inspection.",
				Channel:     "Workshop Channel",
				Duration:    300,
			}, nil
		},
	}
}

func testSegments() []docwright.TranscriptSegment {
	return []docwright.TranscriptSegment{
		{Start: 1, Duration: 3, Text: "First step is cleaning the tip"},
		{Start: 10, Duration: 3, Text: "I will show you the technique"},
		{Start: 25, Duration: 3, Text: "the joint is complete"},
	}
}

func TestProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("builds video content from metadata and transcript", func(t *testing.T) {
		t.Parallel()

		transcripts := &mock.TranscriptFetcher{
			FetchTranscriptFn: func(ctx context.Context, videoID, language string) ([]docwright.TranscriptSegment, error) {
				assert.Equal(t, "dQw4w9WgXcQ", videoID)
				return testSegments(), nil
			},
		}

		p := youtube.NewProcessor(testMetadataFetcher(), transcripts)
		content, warnings, err := p.Process(context.Background(), "https://youtu.be/dQw4w9WgXcQ", docwright.DefaultProcessOptions())

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, "How to Solder", content.Title)
		assert.Equal(t, docwright.ContentTypeVideo, content.Type)
		assert.Equal(t, "en", content.Metadata.Language)
		assert.NotEmpty(t, content.Metadata.ContentHash)

		require.NotNil(t, content.Video)
		assert.Equal(t, "dQw4w9WgXcQ", content.Video.VideoID)
		assert.Equal(t, 300.0, content.Video.Duration)
		assert.Contains(t, content.Video.Transcript, "First step is cleaning the tip")
		assert.NotEmpty(t, content.Video.KeyMoments)

		assert.Contains(t, content.TextContent, "How to Solder")
		assert.Contains(t, content.TextContent, "Duration: 5m0s")
		assert.Contains(t, content.TextContent, "Channel: Workshop Channel")
		assert.Contains(t, content.TextContent, "the joint is complete")
	})

	t.Run("walks the language fallback chain", func(t *testing.T) {
		t.Parallel()

		var attempted []string
		transcripts := &mock.TranscriptFetcher{
			FetchTranscriptFn: func(ctx context.Context, videoID, language string) ([]docwright.TranscriptSegment, error) {
				attempted = append(attempted, language)
				if language != "en-auto" {
					return nil, docwright.Errorf(docwright.ENOTFOUND, "no %s transcript", language)
				}
				return testSegments(), nil
			},
		}

		opts := docwright.DefaultProcessOptions()
		opts.TranscriptLanguage = "es"

		p := youtube.NewProcessor(testMetadataFetcher(), transcripts)
		content, warnings, err := p.Process(context.Background(), "https://youtu.be/dQw4w9WgXcQ", opts)

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, []string{"es", "en", "en-auto"}, attempted)
		assert.Equal(t, "en", content.Metadata.Language)
		assert.NotEmpty(t, content.Video.Transcript)
	})

	t.Run("missing transcript degrades to placeholder moments", func(t *testing.T) {
		t.Parallel()

		transcripts := &mock.TranscriptFetcher{
			FetchTranscriptFn: func(ctx context.Context, videoID, language string) ([]docwright.TranscriptSegment, error) {
				return nil, docwright.Errorf(docwright.ENOTFOUND, "no transcript")
			},
		}

		p := youtube.NewProcessor(testMetadataFetcher(), transcripts)
		content, warnings, err := p.Process(context.Background(), "https://youtu.be/dQw4w9WgXcQ", docwright.DefaultProcessOptions())

		require.NoError(t, err)
		require.NotEmpty(t, warnings)
		assert.Contains(t, warnings[0], "transcript unavailable")
		assert.Empty(t, content.Video.Transcript)
		assert.Len(t, content.Video.KeyMoments, 5) // one per minute of a 5 minute video
	})

	t.Run("transcript can be switched off", func(t *testing.T) {
		t.Parallel()

		transcripts := &mock.TranscriptFetcher{
			FetchTranscriptFn: func(ctx context.Context, videoID, language string) ([]docwright.TranscriptSegment, error) {
				t.Fatal("transcript fetch should not be called")
				return nil, nil
			},
		}

		opts := docwright.DefaultProcessOptions()
		opts.IncludeTranscript = false

		p := youtube.NewProcessor(testMetadataFetcher(), transcripts)
		content, warnings, err := p.Process(context.Background(), "https://youtu.be/dQw4w9WgXcQ", opts)

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.NotEmpty(t, content.Video.KeyMoments)
	})

	t.Run("metadata failure is a hard error", func(t *testing.T) {
		t.Parallel()

		metadata := &mock.MetadataFetcher{
			FetchMetadataFn: func(ctx context.Context, videoID string) (*docwright.VideoMetadata, error) {
				return nil, docwright.Errorf(docwright.EUNAVAILABLE, "watch page unreachable")
			},
		}

		p := youtube.NewProcessor(metadata, &mock.TranscriptFetcher{})
		_, _, err := p.Process(context.Background(), "https://youtu.be/dQw4w9WgXcQ", docwright.DefaultProcessOptions())

		require.Error(t, err)
		assert.Equal(t, docwright.EUNAVAILABLE, docwright.ErrorCode(err))
	})

	t.Run("rejects non-video locators", func(t *testing.T) {
		t.Parallel()

		p := youtube.NewProcessor(testMetadataFetcher(), &mock.TranscriptFetcher{})

		_, _, err := p.Process(context.Background(), "https://example.com/article", docwright.DefaultProcessOptions())
		require.Error(t, err)
		assert.Equal(t, docwright.EINVALID, docwright.ErrorCode(err))
	})
}

func TestProcessor_Screenshots(t *testing.T) {
	t.Parallel()

	t.Run("captures prioritized moments with relevance scores", func(t *testing.T) {
		t.Parallel()

		transcripts := &mock.TranscriptFetcher{
			FetchTranscriptFn: func(ctx context.Context, videoID, language string) ([]docwright.TranscriptSegment, error) {
				return testSegments(), nil
			},
		}

		var navigated string
		var captures int
		capturer := &mock.Capturer{
			NavigateFn: func(ctx context.Context, videoID string) error {
				navigated = videoID
				return nil
			},
			CaptureFn: func(ctx context.Context) (string, error) {
				captures++
				return fmt.Sprintf("file:///tmp/shot-%d.png", captures), nil
			},
		}

		opts := docwright.DefaultProcessOptions()
		opts.CaptureScreenshots = true

		p := youtube.NewProcessor(testMetadataFetcher(), transcripts, youtube.WithCapturer(capturer))
		content, warnings, err := p.Process(context.Background(), "https://youtu.be/dQw4w9WgXcQ", opts)

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, "dQw4w9WgXcQ", navigated)
		require.NotEmpty(t, content.Video.Screenshots)

		for _, shot := range content.Video.Screenshots {
			assert.NotEmpty(t, shot.ImageURL)
			assert.NotEmpty(t, shot.Caption)
			assert.GreaterOrEqual(t, shot.RelevanceScore, 0.0)
			assert.LessOrEqual(t, shot.RelevanceScore, 1.0)
		}
	})

	t.Run("a failed capture becomes a warning and processing continues", func(t *testing.T) {
		t.Parallel()

		transcripts := &mock.TranscriptFetcher{
			FetchTranscriptFn: func(ctx context.Context, videoID, language string) ([]docwright.TranscriptSegment, error) {
				return testSegments(), nil
			},
		}

		var calls int
		capturer := &mock.Capturer{
			CaptureFn: func(ctx context.Context) (string, error) {
				calls++
				if calls == 1 {
					return "", docwright.Errorf(docwright.EINTERNAL, "render failed")
				}
				return "file:///tmp/shot.png", nil
			},
		}

		opts := docwright.DefaultProcessOptions()
		opts.CaptureScreenshots = true

		p := youtube.NewProcessor(testMetadataFetcher(), transcripts, youtube.WithCapturer(capturer))
		content, warnings, err := p.Process(context.Background(), "https://youtu.be/dQw4w9WgXcQ", opts)

		require.NoError(t, err)
		require.NotEmpty(t, warnings)
		assert.Contains(t, warnings[0], "capture at")
		assert.GreaterOrEqual(t, calls, 2)
		assert.NotEmpty(t, content.Video.Screenshots)
	})

	t.Run("capture is skipped without a capturer", func(t *testing.T) {
		t.Parallel()

		transcripts := &mock.TranscriptFetcher{
			FetchTranscriptFn: func(ctx context.Context, videoID, language string) ([]docwright.TranscriptSegment, error) {
				return testSegments(), nil
			},
		}

		opts := docwright.DefaultProcessOptions()
		opts.CaptureScreenshots = true

		p := youtube.NewProcessor(testMetadataFetcher(), transcripts)
		content, warnings, err := p.Process(context.Background(), "https://youtu.be/dQw4w9WgXcQ", opts)

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Empty(t, content.Video.Screenshots)
	})
}
