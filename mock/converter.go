package mock

import "github.com/docwright/docwright"

var _ docwright.Converter = (*Converter)(nil)

// Converter is a mock implementation of docwright.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
