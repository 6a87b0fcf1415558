package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/docwright/docwright"
	"golang.org/x/time/rate"
)

// Ensure Processor implements docwright.VideoProcessor at compile time.
var _ docwright.VideoProcessor = (*Processor)(nil)

// Processor turns a video locator into extracted content. It composes a
// MetadataFetcher, a TranscriptFetcher, and an optional Capturer; only the
// metadata is required, so a missing transcript or failed captures degrade to
// warnings rather than errors.
type Processor struct {
	metadata    docwright.MetadataFetcher
	transcripts docwright.TranscriptFetcher
	capturer    docwright.Capturer
	weights     docwright.MomentWeights
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithCapturer enables screenshot capture.
func WithCapturer(capturer docwright.Capturer) ProcessorOption {
	return func(p *Processor) { p.capturer = capturer }
}

// WithMomentWeights overrides the moment scoring tables.
func WithMomentWeights(weights docwright.MomentWeights) ProcessorOption {
	return func(p *Processor) { p.weights = weights }
}

// WithCaptureRateLimit sets the pacing between screenshot captures.
func WithCaptureRateLimit(limiter *rate.Limiter) ProcessorOption {
	return func(p *Processor) { p.limiter = limiter }
}

// WithLogger sets the processing logger.
func WithLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = logger }
}

// NewProcessor creates a Processor over the given metadata and transcript
// fetchers.
func NewProcessor(metadata docwright.MetadataFetcher, transcripts docwright.TranscriptFetcher, opts ...ProcessorOption) *Processor {
	p := &Processor{
		metadata:    metadata,
		transcripts: transcripts,
		weights:     docwright.DefaultMomentWeights(),
		limiter:     rate.NewLimiter(rate.Limit(2), 1),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process extracts content from the video at rawURL. Metadata failures are
// hard errors; everything downstream of metadata degrades to warnings.
func (p *Processor) Process(ctx context.Context, rawURL string, opts docwright.ProcessOptions) (*docwright.ExtractedContent, []string, error) {
	c := docwright.Classify(rawURL)
	if !c.Valid {
		return nil, nil, docwright.Errorf(docwright.EINVALID, "invalid locator: %s", c.Reason)
	}
	if c.Type != docwright.ContentTypeVideo {
		return nil, nil, docwright.Errorf(docwright.EINVALID, "locator is not a video: %s", rawURL)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	meta, err := p.metadata.FetchMetadata(ctx, c.VideoID)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string

	segments, language, transcriptWarnings := p.resolveTranscript(ctx, c.VideoID, opts)
	warnings = append(warnings, transcriptWarnings...)

	var moments []docwright.VideoMoment
	if len(segments) > 0 {
		moments = docwright.AnalyzeTranscript(segments)
	} else {
		moments = docwright.PlaceholderMoments(meta.Duration)
	}

	var screenshots []docwright.VideoScreenshot
	if opts.CaptureScreenshots && p.capturer != nil {
		var captureWarnings []string
		screenshots, captureWarnings = p.captureMoments(ctx, c.VideoID, moments)
		warnings = append(warnings, captureWarnings...)
	}

	transcript := joinSegments(segments)
	summary := buildSummary(meta, transcript)

	content := &docwright.ExtractedContent{
		URL:         rawURL,
		Title:       meta.Title,
		Type:        docwright.ContentTypeVideo,
		TextContent: summary,
		Video: &docwright.VideoContent{
			VideoID:     c.VideoID,
			Duration:    meta.Duration,
			Transcript:  transcript,
			KeyMoments:  moments,
			Screenshots: screenshots,
		},
		Metadata: docwright.ContentMetadata{
			Title:       meta.Title,
			Description: meta.Description,
			Author:      meta.Channel,
			PublishDate: meta.PublishDate,
			Language:    language,
			ContentHash: strconv.FormatUint(xxhash.Sum64String(summary), 16),
		},
		ExtractedAt: time.Now().UTC(),
	}

	// Video content is validated softly: a short summary for a video with no
	// transcript is expected, not a failure.
	warnings = append(warnings, docwright.ValidateContent(content).Issues...)

	p.logger.Debug("processed video",
		"videoId", c.VideoID,
		"duration", meta.Duration,
		"moments", len(moments),
		"screenshots", len(screenshots),
		"warnings", len(warnings),
	)

	return content, warnings, nil
}

// resolveTranscript walks the language fallback chain: the requested
// language, then English, then the auto-generated English track. The language
// of the track that succeeded is returned without its auto suffix.
func (p *Processor) resolveTranscript(ctx context.Context, videoID string, opts docwright.ProcessOptions) ([]docwright.TranscriptSegment, string, []string) {
	requested := opts.TranscriptLanguage
	if requested == "" {
		requested = "en"
	}
	if !opts.IncludeTranscript {
		return nil, requested, nil
	}

	chain := []string{requested}
	for _, fallback := range []string{"en", "en" + autoSuffix} {
		if fallback != requested {
			chain = append(chain, fallback)
		}
	}

	for _, lang := range chain {
		segments, err := p.transcripts.FetchTranscript(ctx, videoID, lang)
		if err != nil {
			p.logger.Debug("transcript attempt failed", "videoId", videoID, "language", lang, "err", err)
			continue
		}
		base, _ := strings.CutSuffix(lang, autoSuffix)
		return segments, base, nil
	}

	warning := fmt.Sprintf("transcript unavailable for video %s; key moments are duration-based placeholders", videoID)
	return nil, requested, []string{warning}
}

// captureMoments screenshots the capture-worthy moments in priority order.
// Each capture is paced by the limiter; per-moment failures become warnings
// and do not stop the remaining captures.
func (p *Processor) captureMoments(ctx context.Context, videoID string, moments []docwright.VideoMoment) ([]docwright.VideoScreenshot, []string) {
	targets := docwright.PrioritizeForCapture(moments, p.weights)
	if len(targets) == 0 {
		return nil, nil
	}

	// The capturer is owned by whoever constructed the processor; it is
	// navigated here but never closed.
	if err := p.capturer.Navigate(ctx, videoID); err != nil {
		return nil, []string{fmt.Sprintf("screenshot capture unavailable: %v", err)}
	}

	var screenshots []docwright.VideoScreenshot
	var warnings []string
	for _, m := range targets {
		if err := p.limiter.Wait(ctx); err != nil {
			warnings = append(warnings, fmt.Sprintf("screenshot capture stopped at %.0fs: %v", m.Timestamp, err))
			break
		}
		if err := p.capturer.Seek(ctx, m.Timestamp); err != nil {
			warnings = append(warnings, fmt.Sprintf("seek to %.0fs failed: %v", m.Timestamp, err))
			continue
		}
		imageURL, err := p.capturer.Capture(ctx)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("capture at %.0fs failed: %v", m.Timestamp, err))
			continue
		}

		shot := docwright.VideoScreenshot{
			Timestamp:      m.Timestamp,
			ImageURL:       imageURL,
			Caption:        m.Description,
			RelevanceScore: docwright.ScreenshotRelevance(m, p.weights),
		}
		if m.Action == docwright.ActionStep {
			shot.AssociatedStep = m.Description
		}
		screenshots = append(screenshots, shot)
	}
	return screenshots, warnings
}

// joinSegments flattens transcript segments into one text.
func joinSegments(segments []docwright.TranscriptSegment) string {
	if len(segments) == 0 {
		return ""
	}
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}
	return strings.Join(parts, " ")
}

// buildSummary assembles the text representation of a video: title, duration,
// channel, description, then the transcript, joined by blank lines with empty
// parts skipped.
func buildSummary(meta *docwright.VideoMetadata, transcript string) string {
	var parts []string
	if meta.Title != "" {
		parts = append(parts, meta.Title)
	}
	if meta.Duration > 0 {
		d := time.Duration(meta.Duration * float64(time.Second)).Round(time.Second)
		parts = append(parts, "Duration: "+d.String())
	}
	if meta.Channel != "" {
		parts = append(parts, "Channel: "+meta.Channel)
	}
	if meta.Description != "" {
		parts = append(parts, meta.Description)
	}
	if transcript != "" {
		parts = append(parts, transcript)
	}
	return strings.Join(parts, "\n\n")
}
