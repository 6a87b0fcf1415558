package main

import (
	"encoding/json"
	"io"

	"github.com/docwright/docwright"
)

// Document is the JSON output shape: the extracted content, its organized
// section tree with placements attached, and the soft findings gathered along
// the way.
type Document struct {
	URL        string                       `json:"url"`
	Type       docwright.DocumentType       `json:"documentType"`
	Content    *docwright.ExtractedContent  `json:"content"`
	Sections   []*docwright.DocumentSection `json:"sections"`
	Placements docwright.PlacementResult    `json:"placements"`
	Warnings   []string                     `json:"warnings,omitempty"`
}

// buildDocument organizes extracted content into sections and places its
// images. Screenshots of a video count as images for placement purposes.
func buildDocument(content *docwright.ExtractedContent, warnings []string, docType docwright.DocumentType, placeImages bool) *Document {
	organizer := docwright.NewOrganizer(docwright.WithIntroduction())
	sections := organizer.OrganizeText(content.TextContent, docType)

	doc := &Document{
		URL:      content.URL,
		Type:     docType,
		Content:  content,
		Sections: sections,
		Warnings: warnings,
	}

	if !placeImages {
		return doc
	}

	images := placeableImages(content)
	if len(images) == 0 {
		// No images at all: emit placeholder suggestions so a formatter
		// knows which sections could use one.
		doc.Placements.Placements = docwright.PlaceholderPlacements(sections)
		annotateSections(sections, doc.Placements.Placements)
		return doc
	}

	result := docwright.PlaceImages(images, sections, docwright.DefaultPlaceOptions())
	if len(result.Unplaced) > 0 {
		fallback := docwright.FallbackPlacements(result.Unplaced, sections)
		result.Placements = append(result.Placements, fallback...)
		result.Unplaced = nil
	}

	doc.Placements = result
	annotateSections(sections, result.Placements)
	return doc
}

// placeableImages gathers the images to place: collected page images plus any
// video screenshots, converted to image records.
func placeableImages(content *docwright.ExtractedContent) []docwright.ImageData {
	images := make([]docwright.ImageData, 0, len(content.Images))
	images = append(images, content.Images...)

	if content.Video != nil {
		for _, shot := range content.Video.Screenshots {
			images = append(images, docwright.ImageData{
				URL:     shot.ImageURL,
				AltText: shot.Caption,
				Caption: shot.Caption,
			})
		}
	}
	return images
}

// annotateSections attaches placements to the sections they reference.
func annotateSections(sections []*docwright.DocumentSection, placements []docwright.ImagePlacement) {
	byID := make(map[string]*docwright.DocumentSection)
	var index func(s *docwright.DocumentSection)
	index = func(s *docwright.DocumentSection) {
		byID[s.ID] = s
		for _, sub := range s.Subsections {
			index(sub)
		}
	}
	for _, s := range sections {
		index(s)
	}

	for _, p := range placements {
		if s, ok := byID[p.SectionID]; ok {
			s.Images = append(s.Images, p)
		}
	}
}

// writeDocument encodes the document as JSON.
func writeDocument(w io.Writer, doc *Document, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}
