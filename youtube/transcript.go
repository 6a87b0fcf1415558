package youtube

import (
	"context"
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/docwright/docwright"
	"golang.org/x/time/rate"
)

// Ensure TimedTextFetcher implements docwright.TranscriptFetcher at compile time.
var _ docwright.TranscriptFetcher = (*TimedTextFetcher)(nil)

// autoSuffix marks a language as requesting the auto-generated track.
const autoSuffix = "-auto"

// TimedTextFetcher retrieves caption tracks from the timedtext endpoint.
// Requests are paced through a rate limiter so fallback language chains do
// not hammer the endpoint.
type TimedTextFetcher struct {
	fetcher docwright.Fetcher
	limiter *rate.Limiter
	baseURL string
}

// TimedTextOption configures a TimedTextFetcher.
type TimedTextOption func(*TimedTextFetcher)

// WithRateLimit sets the pacing for transcript requests.
func WithRateLimit(limiter *rate.Limiter) TimedTextOption {
	return func(f *TimedTextFetcher) { f.limiter = limiter }
}

// WithBaseURL overrides the timedtext endpoint, primarily for tests.
func WithBaseURL(baseURL string) TimedTextOption {
	return func(f *TimedTextFetcher) { f.baseURL = baseURL }
}

// NewTimedTextFetcher creates a TimedTextFetcher over the given fetcher.
func NewTimedTextFetcher(fetcher docwright.Fetcher, opts ...TimedTextOption) *TimedTextFetcher {
	f := &TimedTextFetcher{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(2), 1),
		baseURL: "https://www.youtube.com/api/timedtext",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchTranscript retrieves the caption track for videoID in language. A
// language with an "-auto" suffix requests the auto-generated track for the
// base language. A missing track is ENOTFOUND.
func (f *TimedTextFetcher) FetchTranscript(ctx context.Context, videoID, language string) ([]docwright.TranscriptSegment, error) {
	if videoID == "" {
		return nil, docwright.Errorf(docwright.EINVALID, "empty video ID")
	}
	if language == "" {
		language = "en"
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, docwright.Errorf(docwright.ETIMEOUT, "transcript request cancelled: %v", err)
	}

	params := url.Values{"v": {videoID}}
	if base, ok := strings.CutSuffix(language, autoSuffix); ok {
		params.Set("lang", base)
		params.Set("kind", "asr")
	} else {
		params.Set("lang", language)
	}

	body, err := f.fetcher.Fetch(ctx, f.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, docwright.Errorf(docwright.ENOTFOUND, "no %s transcript for video %s", language, videoID)
	}

	segments, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, docwright.Errorf(docwright.ENOTFOUND, "no %s transcript for video %s", language, videoID)
	}
	return segments, nil
}

// parseTimedText decodes the <transcript><text start dur> XML format.
func parseTimedText(body string) ([]docwright.TranscriptSegment, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, docwright.Errorf(docwright.EINTERNAL, "malformed transcript XML: %v", err)
	}

	root := doc.SelectElement("transcript")
	if root == nil {
		return nil, docwright.Errorf(docwright.ENOTFOUND, "no transcript element in response")
	}

	var segments []docwright.TranscriptSegment
	for _, el := range root.SelectElements("text") {
		text := strings.TrimSpace(html.UnescapeString(el.Text()))
		if text == "" {
			continue
		}
		start, _ := strconv.ParseFloat(el.SelectAttrValue("start", "0"), 64)
		dur, _ := strconv.ParseFloat(el.SelectAttrValue("dur", "0"), 64)
		segments = append(segments, docwright.TranscriptSegment{
			Start:    start,
			Duration: dur,
			Text:     text,
		})
	}
	return segments, nil
}
