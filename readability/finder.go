// Package readability provides a docwright.ContentFinder backed by
// go-readability, as an alternative to the trafilatura finder.
package readability

import (
	"strings"

	"github.com/docwright/docwright"
	"github.com/go-shiori/go-readability"
)

// Ensure Finder implements docwright.ContentFinder at compile time.
var _ docwright.ContentFinder = (*Finder)(nil)

// Finder extracts the main content region from HTML using the readability
// algorithm.
type Finder struct{}

// NewFinder creates a new Finder.
func NewFinder() *Finder {
	return &Finder{}
}

// FindMainContent processes raw HTML and returns the main content as HTML.
func (f *Finder) FindMainContent(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", docwright.Errorf(docwright.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", docwright.Errorf(docwright.EINTERNAL, "content extraction failed: %v", err)
	}

	if strings.TrimSpace(article.Content) == "" {
		return "", docwright.Errorf(docwright.ENOTFOUND, "no main content found")
	}

	return article.Content, nil
}
