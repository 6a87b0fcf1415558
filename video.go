package docwright

import (
	"context"
	"time"
)

// Importance ranks how central a video moment is to the content.
type Importance string

// Importance levels.
const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// ActionType classifies what a video moment depicts.
type ActionType string

// ActionType values.
const (
	ActionStep          ActionType = "step"
	ActionExplanation   ActionType = "explanation"
	ActionDemonstration ActionType = "demonstration"
	ActionResult        ActionType = "result"
)

// VideoContent holds video-specific extraction output.
type VideoContent struct {
	VideoID     string            `json:"videoId"`
	Duration    float64           `json:"duration"` // seconds
	Transcript  string            `json:"transcript"`
	KeyMoments  []VideoMoment     `json:"keyMoments"`
	Screenshots []VideoScreenshot `json:"screenshots"`
}

// VideoMoment is a timestamped, classified point of interest derived from a
// transcript or, absent one, from the video duration.
type VideoMoment struct {
	Timestamp   float64    `json:"timestamp"` // seconds
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
	Action      ActionType `json:"actionType"`
}

// VideoScreenshot records a captured frame and its relevance to the content.
type VideoScreenshot struct {
	Timestamp      float64 `json:"timestamp"`
	ImageURL       string  `json:"imageUrl"`
	Caption        string  `json:"caption"`
	RelevanceScore float64 `json:"relevanceScore"` // [0,1]
	AssociatedStep string  `json:"associatedStep,omitempty"`
}

// VideoMetadata is the raw metadata a MetadataFetcher resolves for a video.
type VideoMetadata struct {
	Title       string
	Description string
	Channel     string
	Duration    float64 // seconds, 0 when unknown
	PublishDate *time.Time
}

// MetadataFetcher resolves video metadata by ID.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, videoID string) (*VideoMetadata, error)
}

// TranscriptSegment is one timed caption line.
type TranscriptSegment struct {
	Start    float64 // seconds
	Duration float64 // seconds
	Text     string
}

// TranscriptFetcher retrieves the caption track for a video in a given
// language. A missing track yields an ENOTFOUND error; callers decide the
// fallback language chain.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID, language string) ([]TranscriptSegment, error)
}

// ProcessOptions configures video content processing.
type ProcessOptions struct {
	IncludeTranscript  bool
	TranscriptLanguage string
	CaptureScreenshots bool
	Timeout            time.Duration
}

// DefaultProcessOptions returns the processing defaults: transcript on in
// English, no screenshot capture, 15s timeout.
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{
		IncludeTranscript:  true,
		TranscriptLanguage: "en",
		Timeout:            15 * time.Second,
	}
}

// VideoProcessor turns a video locator into extracted content with key
// moments and optional screenshots. Soft problems (no transcript, failed
// captures) are returned as warnings alongside full content.
type VideoProcessor interface {
	Process(ctx context.Context, url string, opts ProcessOptions) (*ExtractedContent, []string, error)
}

// Capturer is an opaque screen-capture capability. The processor only decides
// when and at what timestamps to call it; rendering is out of scope here.
type Capturer interface {
	// Navigate opens the player page for a video.
	Navigate(ctx context.Context, videoID string) error

	// Seek moves playback to the given offset in seconds.
	Seek(ctx context.Context, timestamp float64) error

	// Capture grabs the current frame and returns a URL for the stored image.
	Capture(ctx context.Context) (imageURL string, err error)

	// Close releases capture resources.
	Close() error
}
