package mock

import "github.com/docwright/docwright"

var _ docwright.ContentFinder = (*ContentFinder)(nil)

// ContentFinder is a mock implementation of docwright.ContentFinder.
type ContentFinder struct {
	FindMainContentFn func(html string) (string, error)
}

func (f *ContentFinder) FindMainContent(html string) (string, error) {
	return f.FindMainContentFn(html)
}
