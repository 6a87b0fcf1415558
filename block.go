package docwright

import (
	"regexp"
	"strings"
)

// BlockType classifies a transient content block.
type BlockType string

// BlockType values.
const (
	BlockText    BlockType = "text"
	BlockHeading BlockType = "heading"
	BlockList    BlockType = "list"
	BlockCode    BlockType = "code"
)

// ContentBlock is a transient, typed fragment produced while parsing raw
// text. Blocks exist only during organization and are not persisted.
type ContentBlock struct {
	Type    BlockType
	Content string
	Level   int // heading level, 0 otherwise
}

var (
	headingLineRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	listItemRe    = regexp.MustCompile(`^(\s*)([-*+]|\d+[.)])\s+`)
)

// ParseBlocks splits markdown-flavored text into an ordered list of typed
// content blocks. Heading level is the count of leading marker characters;
// contiguous list items merge into one list block; fenced code merges into
// one code block; contiguous plain lines merge into one text block joined
// with spaces.
func ParseBlocks(text string) []ContentBlock {
	var blocks []ContentBlock
	var textLines []string
	var listLines []string
	var codeLines []string
	inCode := false

	flushText := func() {
		if len(textLines) > 0 {
			blocks = append(blocks, ContentBlock{Type: BlockText, Content: strings.Join(textLines, " ")})
			textLines = nil
		}
	}
	flushList := func() {
		if len(listLines) > 0 {
			blocks = append(blocks, ContentBlock{Type: BlockList, Content: strings.Join(listLines, "\n")})
			listLines = nil
		}
	}

	for line := range strings.SplitSeq(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				blocks = append(blocks, ContentBlock{Type: BlockCode, Content: strings.Join(codeLines, "\n")})
				codeLines = nil
				inCode = false
			} else {
				flushText()
				flushList()
				inCode = true
			}
			continue
		}
		if inCode {
			codeLines = append(codeLines, line)
			continue
		}

		if trimmed == "" {
			flushText()
			flushList()
			continue
		}

		if m := headingLineRe.FindStringSubmatch(trimmed); m != nil {
			flushText()
			flushList()
			blocks = append(blocks, ContentBlock{
				Type:    BlockHeading,
				Content: strings.TrimSpace(m[2]),
				Level:   len(m[1]),
			})
			continue
		}

		if listItemRe.MatchString(line) {
			flushText()
			listLines = append(listLines, trimmed)
			continue
		}

		flushList()
		textLines = append(textLines, trimmed)
	}

	// An unterminated fence still yields a code block.
	if inCode && len(codeLines) > 0 {
		blocks = append(blocks, ContentBlock{Type: BlockCode, Content: strings.Join(codeLines, "\n")})
	}
	flushText()
	flushList()

	return blocks
}

// whitespaceRuns collapses horizontal whitespace; newlineRuns collapses 3+
// newlines down to a blank line.
var (
	whitespaceRuns = regexp.MustCompile(`[ \t]+`)
	newlineRuns    = regexp.MustCompile(`\n{3,}`)
)

// NormalizeWhitespace collapses runs of spaces and tabs, reduces 3+ newlines
// to 2, and trims the result.
func NormalizeWhitespace(s string) string {
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
