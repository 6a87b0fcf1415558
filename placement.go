package docwright

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Position is where an image sits within its section.
type Position string

// Position values.
const (
	PositionTop    Position = "top"
	PositionMiddle Position = "middle"
	PositionBottom Position = "bottom"
)

// Size is the rendering size hint for a placed image.
type Size string

// Size values.
const (
	SizeSmall     Size = "small"
	SizeMedium    Size = "medium"
	SizeLarge     Size = "large"
	SizeFullWidth Size = "full-width"
)

// Alignment is the horizontal alignment hint for a placed image.
type Alignment string

// Alignment values.
const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Distribution selects the image-to-section assignment strategy.
type Distribution string

// Distribution values.
const (
	DistributionEven         Distribution = "even"
	DistributionContentBased Distribution = "content-based"
	DistributionManual       Distribution = "manual"
)

// ImagePlacement binds an image to a section with layout hints for the
// downstream formatter.
type ImagePlacement struct {
	ImageID   string    `json:"imageId"`
	SectionID string    `json:"sectionId"`
	Position  Position  `json:"position"`
	Caption   string    `json:"caption"`
	Size      Size      `json:"size"`
	Alignment Alignment `json:"alignment"`
	Priority  float64   `json:"priority"` // (0, 200]
}

// PlacementWeights holds the scoring tables for placement priority. Exposed
// as data rather than literals; only the relative ordering is meaningful.
type PlacementWeights struct {
	// KeywordMatch is the relevance contribution of one caption/section
	// keyword match.
	KeywordMatch float64

	// SectionType weights bias priority toward sections where images help
	// most.
	SectionType map[SectionType]float64
}

// DefaultPlacementWeights returns the standard placement scoring tables.
func DefaultPlacementWeights() PlacementWeights {
	return PlacementWeights{
		KeywordMatch: 0.1,
		SectionType: map[SectionType]float64{
			SectionInstallation:    50,
			SectionUsage:           45,
			SectionExamples:        45,
			SectionConfiguration:   40,
			SectionTroubleshooting: 35,
			SectionMaintenance:     30,
			SectionRequirements:    20,
			SectionOverview:        15,
			SectionIntroduction:    10,
			SectionReference:       10,
			SectionGeneral:         25,
		},
	}
}

// PlaceOptions configures image placement.
type PlaceOptions struct {
	MaxImagesPerSection int
	PrioritizeRelevance bool
	PreferredPosition   Position
	Distribution        Distribution
	Weights             PlacementWeights

	// Manual holds caller-preassigned placements, passed through unchanged
	// when Distribution is DistributionManual.
	Manual []ImagePlacement
}

// DefaultPlaceOptions returns the placement defaults: content-based
// distribution, up to 3 images per section, relevance prioritized, top
// position.
func DefaultPlaceOptions() PlaceOptions {
	return PlaceOptions{
		MaxImagesPerSection: 3,
		PrioritizeRelevance: true,
		PreferredPosition:   PositionTop,
		Distribution:        DistributionContentBased,
		Weights:             DefaultPlacementWeights(),
	}
}

// PlacementResult is the output of PlaceImages.
type PlacementResult struct {
	Placements []ImagePlacement `json:"placements"`
	Unplaced   []ImageData      `json:"unplacedImages"`
	Score      float64          `json:"placementScore"` // mean relevance, [0,1]
}

// Placeholder placement parameters.
const (
	// PlaceholderPriority is the fixed priority of synthetic placements
	// that signal "this section could use an image".
	PlaceholderPriority = 25

	// PlaceholderMinContent is the minimum section content length that
	// earns a placeholder suggestion.
	PlaceholderMinContent = 300
)

// ImageID derives a stable identifier for an image from its resolved URL.
func ImageID(img ImageData) string {
	return fmt.Sprintf("img_%016x", xxhash.Sum64String(img.URL))
}

// PlaceImages matches images to top-level sections using the configured
// distribution strategy and emits placement records with layout hints.
// It is a pure function: sections are read, never mutated.
func PlaceImages(images []ImageData, sections []*DocumentSection, opts PlaceOptions) PlacementResult {
	if opts.MaxImagesPerSection < 1 {
		opts.MaxImagesPerSection = 3
	}
	if opts.PreferredPosition == "" {
		opts.PreferredPosition = PositionTop
	}
	if opts.Weights.SectionType == nil {
		opts.Weights = DefaultPlacementWeights()
	}

	if opts.Distribution == DistributionManual {
		return PlacementResult{Placements: opts.Manual, Score: manualScore(opts.Manual)}
	}

	if len(images) == 0 || len(sections) == 0 {
		return PlacementResult{Unplaced: images}
	}

	var result PlacementResult
	var totalRelevance float64
	switch opts.Distribution {
	case DistributionEven:
		result, totalRelevance = placeEven(images, sections, opts)
	default:
		result, totalRelevance = placeByContent(images, sections, opts)
	}

	if n := len(result.Placements); n > 0 {
		result.Score = totalRelevance / float64(n)
	}
	return result
}

// placeEven slices images into contiguous chunks of ceil(total/sections) and
// assigns them section by section in input order.
func placeEven(images []ImageData, sections []*DocumentSection, opts PlaceOptions) (PlacementResult, float64) {
	var result PlacementResult
	var totalRelevance float64
	chunk := (len(images) + len(sections) - 1) / len(sections)
	if chunk > opts.MaxImagesPerSection {
		chunk = opts.MaxImagesPerSection
	}

	// Even distribution ignores content overlap, so every placement gets a
	// neutral relevance.
	const evenRelevance = 0.5

	idx := 0
	for _, section := range sections {
		count := 0
		for idx < len(images) && count < chunk {
			result.Placements = append(result.Placements, buildPlacement(images[idx], section, count, evenRelevance, opts))
			totalRelevance += evenRelevance
			idx++
			count++
		}
	}
	result.Unplaced = images[idx:]
	return result, totalRelevance
}

// placeByContent assigns each section the images whose caption words overlap
// the section's title and content, highest relevance first when configured,
// capped per section.
func placeByContent(images []ImageData, sections []*DocumentSection, opts PlaceOptions) (PlacementResult, float64) {
	var result PlacementResult
	var totalRelevance float64
	placed := make([]bool, len(images))

	type candidate struct {
		index     int
		relevance float64
	}

	for _, section := range sections {
		sectionWords := tokenize(section.Title + " " + section.Content)

		var candidates []candidate
		for i, img := range images {
			if placed[i] {
				continue
			}
			rel := captionRelevance(img, sectionWords, opts.Weights.KeywordMatch)
			if rel > 0 {
				candidates = append(candidates, candidate{i, rel})
			}
		}

		if opts.PrioritizeRelevance {
			sort.SliceStable(candidates, func(a, b int) bool {
				return candidates[a].relevance > candidates[b].relevance
			})
		}

		limit := opts.MaxImagesPerSection
		if limit > 3 {
			limit = 3
		}
		for n, c := range candidates {
			if n >= limit {
				break
			}
			result.Placements = append(result.Placements, buildPlacement(images[c.index], section, n, c.relevance, opts))
			totalRelevance += c.relevance
			placed[c.index] = true
		}
	}

	for i, img := range images {
		if !placed[i] {
			result.Unplaced = append(result.Unplaced, img)
		}
	}
	return result, totalRelevance
}

// FallbackPlacements guarantees every image some placement by round-robin
// assigning unplaced images across sections with neutral layout defaults.
func FallbackPlacements(unplaced []ImageData, sections []*DocumentSection) []ImagePlacement {
	if len(sections) == 0 {
		return nil
	}
	placements := make([]ImagePlacement, 0, len(unplaced))
	for i, img := range unplaced {
		section := sections[i%len(sections)]
		placements = append(placements, ImagePlacement{
			ImageID:   ImageID(img),
			SectionID: section.ID,
			Position:  PositionMiddle,
			Caption:   imageCaption(img),
			Size:      SizeMedium,
			Alignment: AlignCenter,
			Priority:  1,
		})
	}
	return placements
}

// PlaceholderPlacements emits a synthetic placement for every section that is
// not an introduction and has enough content to warrant an illustration. The
// downstream formatter treats these as "this section could use an image".
func PlaceholderPlacements(sections []*DocumentSection) []ImagePlacement {
	var placements []ImagePlacement
	for _, section := range sections {
		if section.Type == SectionIntroduction || len(section.Content) < PlaceholderMinContent {
			continue
		}
		placements = append(placements, ImagePlacement{
			ImageID:   "placeholder_" + section.ID,
			SectionID: section.ID,
			Position:  PositionMiddle,
			Caption:   "Suggested illustration for " + section.Title,
			Size:      SizeMedium,
			Alignment: AlignCenter,
			Priority:  PlaceholderPriority,
		})
	}
	return placements
}

// buildPlacement computes the layout attributes for one image in one section.
func buildPlacement(img ImageData, section *DocumentSection, ordinal int, relevance float64, opts PlaceOptions) ImagePlacement {
	return ImagePlacement{
		ImageID:   ImageID(img),
		SectionID: section.ID,
		Position:  placementPosition(ordinal, opts.PreferredPosition),
		Caption:   imageCaption(img),
		Size:      placementSize(img, section),
		Alignment: placementAlignment(img, section),
		Priority:  placementPriority(relevance, section.Type, opts.Weights),
	}
}

// placementPosition defaults to the preferred position for the first image in
// a section and spreads later ones down the section.
func placementPosition(ordinal int, preferred Position) Position {
	switch ordinal {
	case 0:
		return preferred
	case 1:
		return PositionMiddle
	default:
		return PositionBottom
	}
}

// placementAlignment centers images with extreme aspect ratios (banners,
// tall screenshots) and in short sections; otherwise floats them left so
// text wraps around.
func placementAlignment(img ImageData, section *DocumentSection) Alignment {
	if img.Width > 0 && img.Height > 0 {
		ratio := float64(img.Width) / float64(img.Height)
		if ratio > 2.5 || ratio < 0.4 {
			return AlignCenter
		}
	}
	if len(section.Content) < 500 {
		return AlignCenter
	}
	return AlignLeft
}

// placementSize scales with image dimensions and hosting section length.
func placementSize(img ImageData, section *DocumentSection) Size {
	switch {
	case img.Width >= 1200:
		return SizeFullWidth
	case img.Width >= 800:
		return SizeLarge
	case img.Width > 0 && img.Width < 300:
		if len(section.Content) > 1500 {
			return SizeMedium
		}
		return SizeSmall
	default:
		return SizeMedium
	}
}

// placementPriority combines image relevance with the section-type weight,
// bounded to (0, 200].
func placementPriority(relevance float64, sectionType SectionType, weights PlacementWeights) float64 {
	priority := relevance*100 + weights.SectionType[sectionType]
	return math.Min(200, math.Max(1, priority))
}

// captionRelevance scores caption/section word overlap: a word matches when
// it appears as a substring of (or contains) a section word. The score is
// matches * perMatch, capped at 1.
func captionRelevance(img ImageData, sectionWords []string, perMatch float64) float64 {
	text := img.Caption
	if text == "" {
		text = img.AltText
	}
	matches := 0
	for _, word := range tokenize(text) {
		for _, sw := range sectionWords {
			if strings.Contains(sw, word) || strings.Contains(word, sw) {
				matches++
				break
			}
		}
	}
	return math.Min(1, float64(matches)*perMatch)
}

// manualScore treats caller-assigned placements as fully relevant.
func manualScore(placements []ImagePlacement) float64 {
	if len(placements) == 0 {
		return 0
	}
	return 1
}

// tokenize splits text into lowercase words of 3+ characters, dropping
// stop-word noise that would inflate substring matching.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 3 && !stopWords[f] {
			words = append(words, f)
		}
	}
	return words
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "are": true, "was": true, "you": true, "your": true,
	"from": true, "have": true, "has": true, "can": true, "will": true,
}

// imageCaption picks the best available caption text for a placement.
func imageCaption(img ImageData) string {
	if img.Caption != "" {
		return img.Caption
	}
	return img.AltText
}
