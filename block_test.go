package docwright_test

import (
	"testing"

	"github.com/docwright/docwright"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlocks(t *testing.T) {
	t.Parallel()

	t.Run("heading level is the count of markers", func(t *testing.T) {
		t.Parallel()

		blocks := docwright.ParseBlocks("# Top\n### Deep")

		require.Len(t, blocks, 2)
		assert.Equal(t, docwright.BlockHeading, blocks[0].Type)
		assert.Equal(t, "Top", blocks[0].Content)
		assert.Equal(t, 1, blocks[0].Level)
		assert.Equal(t, 3, blocks[1].Level)
	})

	t.Run("contiguous text lines merge joined with spaces", func(t *testing.T) {
		t.Parallel()

		blocks := docwright.ParseBlocks("first line\nsecond line\n\nanother paragraph")

		require.Len(t, blocks, 2)
		assert.Equal(t, docwright.BlockText, blocks[0].Type)
		assert.Equal(t, "first line second line", blocks[0].Content)
		assert.Equal(t, "another paragraph", blocks[1].Content)
	})

	t.Run("contiguous list items merge into one list block", func(t *testing.T) {
		t.Parallel()

		blocks := docwright.ParseBlocks("- one\n- two\n* three\n\n1. numbered\n2) also numbered")

		require.Len(t, blocks, 2)
		assert.Equal(t, docwright.BlockList, blocks[0].Type)
		assert.Equal(t, "- one\n- two\n* three", blocks[0].Content)
		assert.Equal(t, docwright.BlockList, blocks[1].Type)
	})

	t.Run("fenced code merges into one code block", func(t *testing.T) {
		t.Parallel()

		blocks := docwright.ParseBlocks("text before\n```\nfunc main() {}\n# not a heading\n```\ntext after")

		require.Len(t, blocks, 3)
		assert.Equal(t, docwright.BlockCode, blocks[1].Type)
		assert.Equal(t, "func main() {}\n# not a heading", blocks[1].Content)
	})

	t.Run("unterminated fence still yields a code block", func(t *testing.T) {
		t.Parallel()

		blocks := docwright.ParseBlocks("```\ndangling code")

		require.Len(t, blocks, 1)
		assert.Equal(t, docwright.BlockCode, blocks[0].Type)
	})

	t.Run("empty input yields no blocks", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docwright.ParseBlocks(""))
		assert.Empty(t, docwright.ParseBlocks("\n\n\n"))
	})
}

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	got := docwright.NormalizeWhitespace("  a\t\tb  \n\n\n\nc  ")

	assert.Equal(t, "a b \n\nc", got)
}
