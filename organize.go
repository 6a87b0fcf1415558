package docwright

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxSectionLength is the content length above which a section is
// split into a "(continued)" subsection.
const DefaultMaxSectionLength = 2000

// Organizer turns parsed content blocks into a hierarchical, typed section
// tree. Organizers are cheap to construct and safe for concurrent use; all
// state lives in the per-call walk.
type Organizer struct {
	maxSectionLength    int
	requireIntroduction bool
	logger              *slog.Logger
	newID               func() string
}

// OrganizerOption configures an Organizer.
type OrganizerOption func(*Organizer)

// WithMaxSectionLength sets the content length threshold for section
// splitting. Defaults to DefaultMaxSectionLength.
func WithMaxSectionLength(n int) OrganizerOption {
	return func(o *Organizer) { o.maxSectionLength = n }
}

// WithIntroduction makes the organizer synthesize an introduction section
// from leading text blocks when the document does not open with a heading.
func WithIntroduction() OrganizerOption {
	return func(o *Organizer) { o.requireIntroduction = true }
}

// WithLogger sets the logger used to report hierarchy validation findings.
func WithLogger(logger *slog.Logger) OrganizerOption {
	return func(o *Organizer) { o.logger = logger }
}

// NewOrganizer creates an Organizer.
func NewOrganizer(opts ...OrganizerOption) *Organizer {
	o := &Organizer{
		maxSectionLength: DefaultMaxSectionLength,
		logger:           slog.New(slog.DiscardHandler),
		newID:            uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OrganizeText parses raw text into blocks and organizes them into a section
// tree for the given document type.
func (o *Organizer) OrganizeText(text string, docType DocumentType) []*DocumentSection {
	return o.Organize(ParseBlocks(text), docType)
}

// Organize walks content blocks into a section tree. Level-1 headings open
// top-level sections; deeper headings become subsections of the current
// top-level section; other blocks attach to the most recently opened
// subsection, else to the current section. Afterwards sections are reordered
// by the document type's canonical order and over-long sections are split.
func (o *Organizer) Organize(blocks []ContentBlock, docType DocumentType) []*DocumentSection {
	var sections []*DocumentSection
	var current *DocumentSection
	var currentSub *DocumentSection

	blocks = o.extractIntroduction(blocks, docType, &sections)

	appendContent := func(dst *DocumentSection, content string) {
		if dst.Content == "" {
			dst.Content = content
		} else {
			dst.Content += "\n\n" + content
		}
	}

	for _, block := range blocks {
		if block.Type == BlockHeading {
			if block.Level == 1 || current == nil {
				current = &DocumentSection{
					ID:    o.newID(),
					Title: block.Content,
					Level: 1,
					Type:  classifyHeading(block.Content, docType),
				}
				sections = append(sections, current)
				currentSub = nil
				continue
			}
			// Only one level of nesting is modeled: any deeper heading
			// becomes a direct subsection of the current top-level section.
			currentSub = &DocumentSection{
				ID:    o.newID(),
				Title: block.Content,
				Level: 2,
				Type:  current.Type,
			}
			current.Subsections = append(current.Subsections, currentSub)
			continue
		}

		content := blockContent(block)
		if content == "" {
			continue
		}
		switch {
		case currentSub != nil:
			appendContent(currentSub, content)
		case current != nil:
			appendContent(current, content)
		default:
			// Content before any heading and no synthesized introduction:
			// open a general section so nothing is dropped.
			current = &DocumentSection{
				ID:      o.newID(),
				Title:   "Overview",
				Content: content,
				Level:   1,
				Type:    SectionOverview,
			}
			sections = append(sections, current)
		}
	}

	sections = sortCanonical(sections, docType)

	for _, section := range sections {
		o.splitLongSection(section)
	}

	o.validateHierarchy(sections)

	return sections
}

// extractIntroduction synthesizes an introduction section from the first
// one or two leading text blocks when configured to do so.
func (o *Organizer) extractIntroduction(blocks []ContentBlock, docType DocumentType, sections *[]*DocumentSection) []ContentBlock {
	if !o.requireIntroduction {
		return blocks
	}

	var leading []string
	consumed := 0
	for _, block := range blocks {
		if block.Type != BlockText || len(leading) == 2 {
			break
		}
		leading = append(leading, block.Content)
		consumed++
	}
	if len(leading) == 0 {
		return blocks
	}

	*sections = append(*sections, &DocumentSection{
		ID:      o.newID(),
		Title:   "Introduction",
		Content: strings.Join(leading, "\n\n"),
		Level:   1,
		Type:    SectionIntroduction,
	})
	return blocks[consumed:]
}

// splitLongSection splits a section whose content exceeds the configured
// maximum at the sentence boundary nearest the midpoint. The continuation
// becomes a subsection inserted ahead of any pre-existing subsections.
func (o *Organizer) splitLongSection(section *DocumentSection) {
	if o.maxSectionLength <= 0 || len(section.Content) <= o.maxSectionLength {
		return
	}

	cut := sentenceBoundaryNear(section.Content, len(section.Content)/2)
	if cut <= 0 || cut >= len(section.Content) {
		return
	}

	continued := &DocumentSection{
		ID:      o.newID(),
		Title:   section.Title + " (continued)",
		Content: strings.TrimSpace(section.Content[cut:]),
		Level:   section.Level + 1,
		Type:    section.Type,
	}
	section.Content = strings.TrimSpace(section.Content[:cut])
	section.Subsections = append([]*DocumentSection{continued}, section.Subsections...)
}

// validateHierarchy checks the tree for duplicate IDs and empty titles.
// Violations are logged, never fatal: the formatter downstream can render a
// slightly malformed tree, while failing here would discard good content.
func (o *Organizer) validateHierarchy(sections []*DocumentSection) {
	seen := make(map[string]bool)
	var walk func(s *DocumentSection)
	walk = func(s *DocumentSection) {
		if s.Title == "" {
			o.logger.Warn("section has empty title", "id", s.ID)
		}
		if seen[s.ID] {
			o.logger.Warn("duplicate section ID", "id", s.ID, "title", s.Title)
		}
		seen[s.ID] = true
		for _, sub := range s.Subsections {
			walk(sub)
		}
	}
	for _, s := range sections {
		walk(s)
	}
}

// classifyHeading infers a section type from heading text using the keyword
// table, falling back to the document type's default.
func classifyHeading(heading string, docType DocumentType) SectionType {
	lower := strings.ToLower(heading)
	for _, entry := range sectionKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.sectionType
			}
		}
	}
	if def, ok := defaultSectionTypes[docType]; ok {
		return def
	}
	return SectionGeneral
}

// sortCanonical reorders sections by the document type's canonical type
// order. Unlisted types sort after all listed ones; the sort is stable so
// ties preserve original relative order.
func sortCanonical(sections []*DocumentSection, docType DocumentType) []*DocumentSection {
	order, ok := canonicalOrders[docType]
	if !ok {
		return sections
	}

	rank := make(map[SectionType]int, len(order))
	for i, t := range order {
		rank[t] = i
	}
	unlisted := len(order)

	sort.SliceStable(sections, func(i, j int) bool {
		ri, ok := rank[sections[i].Type]
		if !ok {
			ri = unlisted
		}
		rj, ok := rank[sections[j].Type]
		if !ok {
			rj = unlisted
		}
		return ri < rj
	})
	return sections
}

// blockContent renders a block for section content accumulation. Code blocks
// keep their fences so the formatter can render them verbatim.
func blockContent(block ContentBlock) string {
	switch block.Type {
	case BlockCode:
		if strings.TrimSpace(block.Content) == "" {
			return ""
		}
		return "```\n" + block.Content + "\n```"
	default:
		return strings.TrimSpace(block.Content)
	}
}

// sentenceBoundaryNear returns the index just past the sentence terminator
// closest to pos, or -1 when the text has no usable boundary.
func sentenceBoundaryNear(text string, pos int) int {
	best := -1
	bestDist := len(text)
	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && text[i+1] == ' ' {
			dist := abs(i + 1 - pos)
			if dist < bestDist {
				best = i + 1
				bestDist = dist
			}
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
