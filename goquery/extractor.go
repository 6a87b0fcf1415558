// Package goquery provides the web content extractor: it parses fetched
// pages with CSS selector traversal, resolves metadata through a priority
// waterfall, chooses the main text region from structural candidates, and
// collects filtered, deduplicated images.
package goquery

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/araddon/dateparse"
	"github.com/cespare/xxhash/v2"
	"github.com/docwright/docwright"
)

// Ensure Extractor implements docwright.Extractor at compile time.
var _ docwright.Extractor = (*Extractor)(nil)

// contentRegionSelectors are the structural region candidates tried in order
// for the main text. The first non-empty match wins.
var contentRegionSelectors = []string{
	"main",
	"article",
	"[role=main]",
	"#content",
	".content",
	"#main",
	".main-content",
	".post-content",
	".entry-content",
	".article-body",
}

// Extractor pulls raw content from web pages. It composes a Fetcher for
// network access, a Converter for HTML-to-markdown text, and an optional
// ContentFinder consulted when no structural region candidate matches.
type Extractor struct {
	fetcher   docwright.Fetcher
	converter docwright.Converter
	finder    docwright.ContentFinder
	logger    *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithContentFinder sets the fallback main-content finder consulted between
// the structural region candidates and the whole-body fallback.
func WithContentFinder(finder docwright.ContentFinder) ExtractorOption {
	return func(e *Extractor) { e.finder = finder }
}

// WithLogger sets the extraction logger.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) { e.logger = logger }
}

// NewExtractor creates an Extractor over the given fetcher and converter.
func NewExtractor(fetcher docwright.Fetcher, converter docwright.Converter, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		fetcher:   fetcher,
		converter: converter,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract fetches and parses the page at rawURL. Soft validation findings
// come back as warnings; content under the minimum length is a hard failure.
func (e *Extractor) Extract(ctx context.Context, rawURL string, opts docwright.ExtractOptions) (*docwright.ExtractedContent, []string, error) {
	c := docwright.Classify(rawURL)
	if !c.Valid {
		return nil, nil, docwright.Errorf(docwright.EINVALID, "invalid locator: %s", c.Reason)
	}
	if c.Type != docwright.ContentTypeWebsite {
		return nil, nil, docwright.Errorf(docwright.EINVALID, "locator is not a web page: %s", rawURL)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	pageHTML, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, nil, docwright.Errorf(docwright.EINTERNAL, "failed to parse HTML: %v", err)
	}

	regionHTML := e.mainContentRegion(doc, pageHTML)
	text, err := e.regionText(regionHTML, doc)
	if err != nil {
		return nil, nil, err
	}

	meta := e.resolveMetadata(doc, text)
	meta.ContentHash = strconv.FormatUint(xxhash.Sum64String(text), 16)

	content := &docwright.ExtractedContent{
		URL:         rawURL,
		Title:       meta.Title,
		Type:        docwright.ContentTypeWebsite,
		TextContent: text,
		Metadata:    meta,
		ExtractedAt: time.Now().UTC(),
	}

	if opts.IncludeImages {
		content.Images = collectImages(doc, rawURL, opts)
	}

	validation := docwright.ValidateContent(content)
	if !validation.Valid {
		return nil, nil, docwright.Errorf(docwright.EINVALID, "extracted content failed validation: %s", strings.Join(validation.Issues, "; "))
	}

	e.logger.Debug("extracted page",
		"url", rawURL,
		"chars", len(text),
		"images", len(content.Images),
		"warnings", len(validation.Issues),
	)

	return content, validation.Issues, nil
}

// mainContentRegion tries the structural candidates in order, then the
// configured finder, then the whole body.
func (e *Extractor) mainContentRegion(doc *goquery.Document, pageHTML string) string {
	for _, selector := range contentRegionSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 || strings.TrimSpace(sel.Text()) == "" {
			continue
		}
		if regionHTML, err := goquery.OuterHtml(sel); err == nil {
			return regionHTML
		}
	}

	if e.finder != nil {
		if regionHTML, err := e.finder.FindMainContent(pageHTML); err == nil {
			return regionHTML
		} else {
			e.logger.Debug("content finder fallback failed", "err", err)
		}
	}

	if bodyHTML, err := goquery.OuterHtml(doc.Find("body").First()); err == nil && bodyHTML != "" {
		return bodyHTML
	}
	return pageHTML
}

// regionText converts the chosen region to whitespace-normalized markdown.
func (e *Extractor) regionText(regionHTML string, doc *goquery.Document) (string, error) {
	markdown, err := e.converter.Convert(regionHTML)
	if err != nil {
		// A region the converter chokes on falls back to the document's
		// plain text rather than failing the extraction.
		e.logger.Debug("markdown conversion failed", "err", err)
		markdown = doc.Find("body").Text()
	}
	return docwright.NormalizeWhitespace(markdown), nil
}

// resolveMetadata runs the per-field priority waterfall:
// Open Graph tag, Twitter-card tag, generic meta tag, document fallback,
// default.
func (e *Extractor) resolveMetadata(doc *goquery.Document, text string) docwright.ContentMetadata {
	meta := docwright.ContentMetadata{
		Title: firstNonEmpty(
			metaContent(doc, "meta[property='og:title']"),
			metaContent(doc, "meta[name='twitter:title']"),
			metaContent(doc, "meta[name='title']"),
			strings.TrimSpace(doc.Find("title").First().Text()),
			"Untitled",
		),
		Description: firstNonEmpty(
			metaContent(doc, "meta[property='og:description']"),
			metaContent(doc, "meta[name='twitter:description']"),
			metaContent(doc, "meta[name='description']"),
		),
		Author: firstNonEmpty(
			metaContent(doc, "meta[property='article:author']"),
			metaContent(doc, "meta[name='twitter:creator']"),
			metaContent(doc, "meta[name='author']"),
		),
		Language: e.resolveLanguage(doc, text),
	}

	if raw := firstNonEmpty(
		metaContent(doc, "meta[property='article:published_time']"),
		metaContent(doc, "meta[name='date']"),
		doc.Find("time[datetime]").First().AttrOr("datetime", ""),
	); raw != "" {
		if ts, err := dateparse.ParseAny(raw); err == nil {
			utc := ts.UTC()
			meta.PublishDate = &utc
		}
	}

	if keywords := metaContent(doc, "meta[name='keywords']"); keywords != "" {
		for tag := range strings.SplitSeq(keywords, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				meta.Tags = append(meta.Tags, tag)
			}
		}
	}

	return meta
}

// resolveLanguage tries declared language attributes before statistical
// detection over the extracted text, defaulting to English.
func (e *Extractor) resolveLanguage(doc *goquery.Document, text string) string {
	if lang := doc.Find("html").First().AttrOr("lang", ""); lang != "" {
		return normalizeLang(lang)
	}
	if locale := metaContent(doc, "meta[property='og:locale']"); locale != "" {
		return normalizeLang(locale)
	}
	if len(text) >= 200 {
		info := whatlanggo.Detect(text)
		if info.IsReliable() {
			return info.Lang.Iso6391()
		}
	}
	return "en"
}

// collectImages walks img elements, resolving lazy-load attributes to
// absolute URLs, deduplicating by resolved URL, and filtering out data URIs,
// tracking pixels, and undersized images. Collection stops at MaxImages.
func collectImages(doc *goquery.Document, pageURL string, opts docwright.ExtractOptions) []docwright.ImageData {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	maxImages := opts.MaxImages
	if maxImages <= 0 {
		maxImages = docwright.DefaultMaxImages
	}

	seen := make(map[string]bool)
	var images []docwright.ImageData

	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src := firstNonEmpty(
			sel.AttrOr("src", ""),
			sel.AttrOr("data-src", ""),
			sel.AttrOr("data-lazy-src", ""),
			sel.AttrOr("data-original", ""),
		)
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}

		resolved := resolveImageURL(base, src)
		if resolved == "" || seen[resolved] {
			return true
		}
		if strings.Contains(resolved, "1x1") || strings.Contains(resolved, "pixel") {
			return true
		}

		width := intAttr(sel, "width")
		height := intAttr(sel, "height")
		if (width > 0 && width < opts.ImageMinWidth) || (height > 0 && height < opts.ImageMinHeight) {
			return true
		}

		seen[resolved] = true
		images = append(images, docwright.ImageData{
			URL:     resolved,
			AltText: strings.TrimSpace(sel.AttrOr("alt", "")),
			Caption: strings.TrimSpace(sel.AttrOr("title", "")),
			Width:   width,
			Height:  height,
		})

		return len(images) < maxImages
	})

	return images
}

// resolveImageURL resolves src against the page URL, returning only absolute
// HTTP(S) results.
func resolveImageURL(base *url.URL, src string) string {
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// metaContent returns the content attribute of the first element matching
// selector.
func metaContent(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}

// intAttr parses a numeric attribute, tolerating a px suffix.
func intAttr(sel *goquery.Selection, name string) int {
	raw := strings.TrimSuffix(strings.TrimSpace(sel.AttrOr(name, "")), "px")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// normalizeLang reduces language declarations like en-US or en_US to the
// bare ISO 639-1 code.
func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, sep := range []string{"-", "_"} {
		if i := strings.Index(lang, sep); i > 0 {
			lang = lang[:i]
		}
	}
	return lang
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
