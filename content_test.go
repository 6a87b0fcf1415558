package docwright_test

import (
	"strings"
	"testing"

	"github.com/docwright/docwright"
	"github.com/stretchr/testify/assert"
)

func TestValidateContent(t *testing.T) {
	t.Parallel()

	valid := func() *docwright.ExtractedContent {
		return &docwright.ExtractedContent{
			Title:       "A Page",
			TextContent: strings.Repeat("content ", 20),
			Metadata:    docwright.ContentMetadata{Language: "en"},
		}
	}

	t.Run("accepts well-formed content", func(t *testing.T) {
		t.Parallel()

		result := docwright.ValidateContent(valid())

		assert.True(t, result.Valid)
		assert.Empty(t, result.Issues)
	})

	t.Run("short content is a hard failure", func(t *testing.T) {
		t.Parallel()

		c := valid()
		c.TextContent = "too short"

		result := docwright.ValidateContent(c)

		assert.False(t, result.Valid)
		assert.Len(t, result.Issues, 1)
	})

	t.Run("soft issues do not fail validation", func(t *testing.T) {
		t.Parallel()

		c := valid()
		c.Title = ""
		c.Metadata.Language = ""
		c.TextContent = strings.Repeat("x", docwright.MaxTextLength+1)

		result := docwright.ValidateContent(c)

		assert.True(t, result.Valid)
		assert.Len(t, result.Issues, 3)
	})

	t.Run("length bounds count characters, not bytes", func(t *testing.T) {
		t.Parallel()

		// 99 two-byte runes: under the minimum in characters even though the
		// byte count clears it.
		c := valid()
		c.TextContent = strings.Repeat("é", docwright.MinTextLength-1)

		result := docwright.ValidateContent(c)

		assert.False(t, result.Valid)
		assert.Len(t, result.Issues, 1)

		c = valid()
		c.TextContent = strings.Repeat("é", docwright.MaxTextLength)

		result = docwright.ValidateContent(c)

		assert.True(t, result.Valid)
		assert.Empty(t, result.Issues)
	})

	t.Run("all issues are reported together", func(t *testing.T) {
		t.Parallel()

		c := &docwright.ExtractedContent{}

		result := docwright.ValidateContent(c)

		assert.False(t, result.Valid)
		assert.Len(t, result.Issues, 3) // empty title, short content, no language
	})
}
