package docwright_test

import (
	"context"
	"strings"
	"testing"

	"github.com/docwright/docwright"
	"github.com/docwright/docwright/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAll(t *testing.T) {
	t.Parallel()

	t.Run("one outcome per input in input order, failures isolated", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(ctx context.Context, url string, opts docwright.ExtractOptions) (*docwright.ExtractedContent, []string, error) {
				if strings.Contains(url, "bad") {
					return nil, nil, docwright.Errorf(docwright.EINVALID, "bad locator")
				}
				return &docwright.ExtractedContent{URL: url, Title: "ok"}, nil, nil
			},
		}

		urls := []string{
			"https://example.com/one",
			"https://example.com/two",
			"https://bad.example.com/three",
		}
		outcomes := docwright.ExtractAll(context.Background(), extractor, urls, docwright.DefaultExtractOptions(), 2)

		require.Len(t, outcomes, 3)
		for i, url := range urls {
			assert.Equal(t, url, outcomes[i].URL)
		}
		require.NotNil(t, outcomes[0].Content)
		require.NotNil(t, outcomes[1].Content)
		assert.Nil(t, outcomes[2].Content)
		assert.Equal(t, docwright.EINVALID, docwright.ErrorCode(outcomes[2].Err))
	})

	t.Run("zero concurrency defaults instead of deadlocking", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(ctx context.Context, url string, opts docwright.ExtractOptions) (*docwright.ExtractedContent, []string, error) {
				return &docwright.ExtractedContent{URL: url}, nil, nil
			},
		}

		outcomes := docwright.ExtractAll(context.Background(), extractor, []string{"https://example.com"}, docwright.DefaultExtractOptions(), 0)

		require.Len(t, outcomes, 1)
		assert.NotNil(t, outcomes[0].Content)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{}
		outcomes := docwright.ExtractAll(context.Background(), extractor, nil, docwright.DefaultExtractOptions(), 3)

		assert.Empty(t, outcomes)
	})
}
