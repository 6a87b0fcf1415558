// Package trafilatura provides a boilerplate-removing implementation of
// docwright.ContentFinder backed by go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/docwright/docwright"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Finder implements docwright.ContentFinder at compile time.
var _ docwright.ContentFinder = (*Finder)(nil)

// Finder extracts the main content region from HTML, removing navigation,
// footers, sidebars, and ads. Extractors use it when their structural region
// candidates fail, before falling back to the whole body.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", docwright.Errorf(docwright.EINTERNAL, "content extraction failed: %v", err)
	}

	if result.ContentNode == nil {
		return "", docwright.Errorf(docwright.ENOTFOUND, "no main content found")
	}

	return renderNode(result.ContentNode)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
