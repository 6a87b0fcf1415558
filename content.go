package docwright

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Content length bounds used by validation, measured in characters (runes).
const (
	// MinTextLength is the hard minimum for extracted text content.
	// Content below this length fails extraction.
	MinTextLength = 100

	// MaxTextLength is the soft maximum for extracted text content.
	// Content above this length is flagged but still returned.
	MaxTextLength = 100000
)

// ExtractedContent is the normalized result of pulling raw content from one
// locator. It is owned by the extractor that produced it and immutable once
// returned.
type ExtractedContent struct {
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Type        ContentType     `json:"contentType"`
	TextContent string          `json:"textContent"`
	Video       *VideoContent   `json:"videoContent,omitempty"`
	Images      []ImageData     `json:"images"`
	Metadata    ContentMetadata `json:"metadata"`
	ExtractedAt time.Time       `json:"extractionTimestamp"`
}

// ContentMetadata holds document-level metadata resolved by an extractor.
type ContentMetadata struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishDate *time.Time `json:"publishDate,omitempty"`
	Language    string     `json:"language"`
	Tags        []string   `json:"tags,omitempty"`

	// ContentHash is an xxhash64 digest of the text content, useful for
	// change detection by callers.
	ContentHash string `json:"contentHash,omitempty"`
}

// ImageData describes one image collected during extraction. URL is always
// fully resolved (no relative paths) before leaving the extractor.
type ImageData struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Caption string `json:"caption,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// ValidationResult reports content quality checks. Issues are independent and
// all reported together; Valid is false only for hard failures.
type ValidationResult struct {
	Valid  bool     `json:"isValid"`
	Issues []string `json:"issues"`
}

// ValidateContent runs quality checks against extracted content. An empty
// title, missing language, and over-long text are soft issues; text under
// MinTextLength is a hard failure.
func ValidateContent(c *ExtractedContent) ValidationResult {
	result := ValidationResult{Valid: true}

	if c.Title == "" {
		result.Issues = append(result.Issues, "title is empty")
	}
	length := utf8.RuneCountInString(c.TextContent)
	if length < MinTextLength {
		result.Valid = false
		result.Issues = append(result.Issues, fmt.Sprintf("text content under %d characters", MinTextLength))
	}
	if length > MaxTextLength {
		result.Issues = append(result.Issues, fmt.Sprintf("text content over %d characters", MaxTextLength))
	}
	if c.Metadata.Language == "" {
		result.Issues = append(result.Issues, "language not detected")
	}

	return result
}
