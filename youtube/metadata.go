// Package youtube processes video locators: it resolves metadata from watch
// pages, retrieves timed-text transcripts, and composes both into extracted
// content with key moments and optional screenshots.
package youtube

import (
	"context"
	"encoding/json"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/docwright/docwright"
)

// Ensure PageMetadataFetcher implements docwright.MetadataFetcher at compile time.
var _ docwright.MetadataFetcher = (*PageMetadataFetcher)(nil)

// playerResponseMarker precedes the embedded player JSON on watch pages.
const playerResponseMarker = "ytInitialPlayerResponse = "

var (
	ogTitlePattern     = regexp.MustCompile(`<meta property="og:title" content="([^"]*)"`)
	titleTagPattern    = regexp.MustCompile(`<title>([^<]*)</title>`)
	descriptionPattern = regexp.MustCompile(`<meta (?:property="og:description"|name="description") content="([^"]*)"`)
	durationPattern    = regexp.MustCompile(`"lengthSeconds"\s*:\s*"(\d+)"`)
	channelPattern     = regexp.MustCompile(`"ownerChannelName"\s*:\s*"([^"]*)"`)
	publishPattern     = regexp.MustCompile(`"publishDate"\s*:\s*"([^"]*)"`)
)

// PageMetadataFetcher resolves video metadata by scraping the watch page. It
// prefers the embedded player response JSON and falls back to meta tags when
// the blob is missing or malformed.
type PageMetadataFetcher struct {
	fetcher docwright.Fetcher
}

// NewPageMetadataFetcher creates a PageMetadataFetcher over the given fetcher.
func NewPageMetadataFetcher(fetcher docwright.Fetcher) *PageMetadataFetcher {
	return &PageMetadataFetcher{fetcher: fetcher}
}

// FetchMetadata retrieves and parses the watch page for videoID.
func (f *PageMetadataFetcher) FetchMetadata(ctx context.Context, videoID string) (*docwright.VideoMetadata, error) {
	if videoID == "" {
		return nil, docwright.Errorf(docwright.EINVALID, "empty video ID")
	}

	pageHTML, err := f.fetcher.Fetch(ctx, "https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		return nil, err
	}

	meta := parsePlayerResponse(pageHTML)
	if meta == nil {
		meta = &docwright.VideoMetadata{}
	}

	// Meta tags fill whatever the player response did not provide.
	if meta.Title == "" {
		meta.Title = metaTagTitle(pageHTML)
	}
	if meta.Description == "" {
		if m := descriptionPattern.FindStringSubmatch(pageHTML); m != nil {
			meta.Description = html.UnescapeString(m[1])
		}
	}
	if meta.Channel == "" {
		if m := channelPattern.FindStringSubmatch(pageHTML); m != nil {
			meta.Channel = decodeJSONString(m[1])
		}
	}
	if meta.Duration == 0 {
		if m := durationPattern.FindStringSubmatch(pageHTML); m != nil {
			if secs, err := strconv.Atoi(m[1]); err == nil {
				meta.Duration = float64(secs)
			}
		}
	}
	if meta.PublishDate == nil {
		if m := publishPattern.FindStringSubmatch(pageHTML); m != nil {
			if ts, err := dateparse.ParseAny(m[1]); err == nil {
				utc := ts.UTC()
				meta.PublishDate = &utc
			}
		}
	}

	if meta.Title == "" {
		return nil, docwright.Errorf(docwright.ENOTFOUND, "no metadata found for video %s", videoID)
	}
	return meta, nil
}

// playerResponse mirrors the subset of the embedded player JSON we read.
type playerResponse struct {
	VideoDetails struct {
		Title            string `json:"title"`
		ShortDescription string `json:"shortDescription"`
		Author           string `json:"author"`
		LengthSeconds    string `json:"lengthSeconds"`
	} `json:"videoDetails"`
	Microformat struct {
		PlayerMicroformatRenderer struct {
			PublishDate string `json:"publishDate"`
		} `json:"playerMicroformatRenderer"`
	} `json:"microformat"`
}

// parsePlayerResponse locates and decodes the ytInitialPlayerResponse blob.
// Returns nil when the blob is absent or undecodable.
func parsePlayerResponse(pageHTML string) *docwright.VideoMetadata {
	start := strings.Index(pageHTML, playerResponseMarker)
	if start < 0 {
		return nil
	}
	blob := extractJSONObject(pageHTML[start+len(playerResponseMarker):])
	if blob == "" {
		return nil
	}

	var pr playerResponse
	if err := json.Unmarshal([]byte(blob), &pr); err != nil {
		return nil
	}

	meta := &docwright.VideoMetadata{
		Title:       pr.VideoDetails.Title,
		Description: pr.VideoDetails.ShortDescription,
		Channel:     pr.VideoDetails.Author,
	}
	if secs, err := strconv.Atoi(pr.VideoDetails.LengthSeconds); err == nil {
		meta.Duration = float64(secs)
	}
	if raw := pr.Microformat.PlayerMicroformatRenderer.PublishDate; raw != "" {
		if ts, err := dateparse.ParseAny(raw); err == nil {
			utc := ts.UTC()
			meta.PublishDate = &utc
		}
	}
	return meta
}

// extractJSONObject scans a balanced top-level JSON object starting at the
// first opening brace, honoring string literals and escapes.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = inString
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// metaTagTitle reads the title from og:title or the title tag, trimming the
// site suffix the latter carries.
func metaTagTitle(pageHTML string) string {
	if m := ogTitlePattern.FindStringSubmatch(pageHTML); m != nil {
		return html.UnescapeString(m[1])
	}
	if m := titleTagPattern.FindStringSubmatch(pageHTML); m != nil {
		title := html.UnescapeString(strings.TrimSpace(m[1]))
		return strings.TrimSuffix(title, " - YouTube")
	}
	return ""
}

// decodeJSONString interprets backslash escapes in a raw JSON string value.
func decodeJSONString(raw string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &out); err != nil {
		return raw
	}
	return out
}
