package docwright_test

import (
	"strings"
	"testing"

	"github.com/docwright/docwright"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizer_Organize(t *testing.T) {
	t.Parallel()

	t.Run("level-1 headings open top-level sections", func(t *testing.T) {
		t.Parallel()

		text := "# Installation\nRun the installer.\n\n# Usage\nStart the app."
		sections := docwright.NewOrganizer().OrganizeText(text, docwright.DocumentGeneric)

		require.Len(t, sections, 2)
		assert.Equal(t, "Installation", sections[0].Title)
		assert.Equal(t, docwright.SectionInstallation, sections[0].Type)
		assert.Equal(t, "Run the installer.", sections[0].Content)
		assert.Equal(t, docwright.SectionUsage, sections[1].Type)
	})

	t.Run("deeper headings nest one level under the current section", func(t *testing.T) {
		t.Parallel()

		text := "# Setup\nIntro text.\n\n## On Linux\nUse apt.\n\n### Details\nMore text."
		sections := docwright.NewOrganizer().OrganizeText(text, docwright.DocumentGeneric)

		require.Len(t, sections, 1)
		require.Len(t, sections[0].Subsections, 2)
		assert.Equal(t, "On Linux", sections[0].Subsections[0].Title)
		assert.Equal(t, "Use apt.", sections[0].Subsections[0].Content)
		// Only one level of nesting: the H3 becomes a sibling subsection.
		assert.Equal(t, "Details", sections[0].Subsections[1].Title)
		assert.Equal(t, 2, sections[0].Subsections[1].Level)
	})

	t.Run("content attaches to the most recently opened subsection", func(t *testing.T) {
		t.Parallel()

		text := "# Setup\n## Step one\nfirst\n\nsecond"
		sections := docwright.NewOrganizer().OrganizeText(text, docwright.DocumentGeneric)

		require.Len(t, sections, 1)
		require.Len(t, sections[0].Subsections, 1)
		assert.Equal(t, "first\n\nsecond", sections[0].Subsections[0].Content)
		assert.Empty(t, sections[0].Content)
	})

	t.Run("synthesizes an introduction from leading text", func(t *testing.T) {
		t.Parallel()

		text := "Welcome paragraph.\n\nSecond paragraph.\n\n# Usage\nDo things."
		organizer := docwright.NewOrganizer(docwright.WithIntroduction())
		sections := organizer.OrganizeText(text, docwright.DocumentUserManual)

		require.Len(t, sections, 2)
		assert.Equal(t, docwright.SectionIntroduction, sections[0].Type)
		assert.Equal(t, "Welcome paragraph.\n\nSecond paragraph.", sections[0].Content)
	})

	t.Run("never emits a section with an empty title", func(t *testing.T) {
		t.Parallel()

		text := "stray paragraph without any heading"
		sections := docwright.NewOrganizer().OrganizeText(text, docwright.DocumentGeneric)

		require.Len(t, sections, 1)
		assert.NotEmpty(t, sections[0].Title)
		var walk func([]*docwright.DocumentSection)
		walk = func(ss []*docwright.DocumentSection) {
			for _, s := range ss {
				assert.NotEmpty(t, s.Title)
				walk(s.Subsections)
			}
		}
		walk(sections)
	})

	t.Run("user manual canonical order puts introduction before troubleshooting", func(t *testing.T) {
		t.Parallel()

		text := "# Troubleshooting\nFix problems here to make this long enough.\n\n# Introduction\nWelcome to the manual."
		sections := docwright.NewOrganizer().OrganizeText(text, docwright.DocumentUserManual)

		require.Len(t, sections, 2)
		assert.Equal(t, docwright.SectionIntroduction, sections[0].Type)
		assert.Equal(t, docwright.SectionTroubleshooting, sections[1].Type)
	})

	t.Run("unlisted types sort after canonical ones preserving order", func(t *testing.T) {
		t.Parallel()

		text := "# Random Notes A\naaa\n\n# Other Notes B\nbbb\n\n# Installation\ninstall it"
		sections := docwright.NewOrganizer().OrganizeText(text, docwright.DocumentUserManual)

		require.Len(t, sections, 3)
		assert.Equal(t, docwright.SectionInstallation, sections[0].Type)
		assert.Equal(t, "Random Notes A", sections[1].Title)
		assert.Equal(t, "Other Notes B", sections[2].Title)
	})

	t.Run("code blocks keep their fences in section content", func(t *testing.T) {
		t.Parallel()

		text := "# Usage\n```\ngo run .\n```"
		sections := docwright.NewOrganizer().OrganizeText(text, docwright.DocumentGeneric)

		require.Len(t, sections, 1)
		assert.Equal(t, "```\ngo run .\n```", sections[0].Content)
	})
}

func TestOrganizer_SplitLongSections(t *testing.T) {
	t.Parallel()

	t.Run("splits at the sentence boundary nearest the midpoint", func(t *testing.T) {
		t.Parallel()

		sentence := "This sentence pads the section out to a useful length. "
		content := strings.TrimSpace(strings.Repeat(sentence, 10))
		text := "# Usage\n" + content

		organizer := docwright.NewOrganizer(docwright.WithMaxSectionLength(300))
		sections := organizer.OrganizeText(text, docwright.DocumentGeneric)

		require.Len(t, sections, 1)
		section := sections[0]
		require.Len(t, section.Subsections, 1)

		continued := section.Subsections[0]
		assert.Equal(t, "Usage (continued)", continued.Title)
		assert.Equal(t, section.Type, continued.Type)

		// The two halves concatenate back to roughly the original length.
		total := len(section.Content) + len(continued.Content)
		assert.InDelta(t, len(content), total, 4)
		assert.LessOrEqual(t, len(section.Content), 300+len(sentence))
	})

	t.Run("continuation is inserted ahead of existing subsections", func(t *testing.T) {
		t.Parallel()

		long := strings.TrimSpace(strings.Repeat("Filler sentence for the parent section body. ", 12))
		text := "# Usage\n" + long + "\n\n## Existing Sub\nsub content"

		organizer := docwright.NewOrganizer(docwright.WithMaxSectionLength(200))
		sections := organizer.OrganizeText(text, docwright.DocumentGeneric)

		require.Len(t, sections, 1)
		require.Len(t, sections[0].Subsections, 2)
		assert.Equal(t, "Usage (continued)", sections[0].Subsections[0].Title)
		assert.Equal(t, "Existing Sub", sections[0].Subsections[1].Title)
	})

	t.Run("short sections are left alone", func(t *testing.T) {
		t.Parallel()

		sections := docwright.NewOrganizer().OrganizeText("# Usage\nshort", docwright.DocumentGeneric)

		require.Len(t, sections, 1)
		assert.Empty(t, sections[0].Subsections)
	})
}
