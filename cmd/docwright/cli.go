package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/docwright/docwright"
	"github.com/docwright/docwright/goquery"
	"github.com/docwright/docwright/htmltomarkdown"
	dochttp "github.com/docwright/docwright/http"
	"github.com/docwright/docwright/readability"
	"github.com/docwright/docwright/rod"
	"github.com/docwright/docwright/trafilatura"
	"github.com/docwright/docwright/youtube"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Type               string        `default:"generic" enum:"user_manual,guide,reference,generic" help:"Document type controlling section ordering"`
	Images             bool          `default:"true" negatable:"" help:"Collect and place images"`
	MaxImages          int           `default:"10" help:"Maximum images to collect"`
	Timeout            time.Duration `short:"t" default:"10s" help:"Fetch timeout"`
	Engine             string        `default:"trafilatura" enum:"goquery,trafilatura,readability" help:"Main-content fallback engine for web pages"`
	TranscriptLanguage string        `default:"en" help:"Preferred transcript language for videos"`
	Capture            bool          `help:"Capture video screenshots (requires Chrome)"`
	JSONIndent         bool          `name:"json-indent" help:"Indent JSON output"`
	URL                string        `arg:"" required:"" help:"Web page or video URL to process"`
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docwright"),
		kong.Description("Extract web or video content into an organized, image-annotated document"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	c := docwright.Classify(cli.URL)
	if !c.Valid {
		fmt.Fprintf(stderr, "error: %s\n", c.Reason)
		return docwright.Errorf(docwright.EINVALID, "invalid URL: %s", c.Reason)
	}

	fetcher := dochttp.NewFetcher(dochttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()

	var content *docwright.ExtractedContent
	var warnings []string

	switch c.Type {
	case docwright.ContentTypeVideo:
		content, warnings, err = m.processVideo(ctx, cli, fetcher, stderr)
	default:
		content, warnings, err = m.extractPage(ctx, cli, fetcher)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", docwright.ErrorMessage(err))
		return err
	}

	doc := buildDocument(content, warnings, docwright.DocumentType(cli.Type), cli.Images)
	return writeDocument(stdout, doc, cli.JSONIndent)
}

// extractPage runs the web extraction path.
func (m *Main) extractPage(ctx context.Context, cli *CLI, fetcher docwright.Fetcher) (*docwright.ExtractedContent, []string, error) {
	var extractorOpts []goquery.ExtractorOption
	switch cli.Engine {
	case "trafilatura":
		extractorOpts = append(extractorOpts, goquery.WithContentFinder(trafilatura.NewFinder()))
	case "readability":
		extractorOpts = append(extractorOpts, goquery.WithContentFinder(readability.NewFinder()))
	}

	extractor := goquery.NewExtractor(fetcher, htmltomarkdown.NewConverter(), extractorOpts...)

	opts := docwright.DefaultExtractOptions()
	opts.IncludeImages = cli.Images
	opts.MaxImages = cli.MaxImages
	opts.Timeout = cli.Timeout

	return extractor.Extract(ctx, cli.URL, opts)
}

// processVideo runs the video processing path.
func (m *Main) processVideo(ctx context.Context, cli *CLI, fetcher docwright.Fetcher, stderr io.Writer) (*docwright.ExtractedContent, []string, error) {
	var processorOpts []youtube.ProcessorOption
	if cli.Capture {
		capturer, err := rod.NewCapturer()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --capture")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		defer capturer.Close()
		processorOpts = append(processorOpts, youtube.WithCapturer(capturer))
	}

	processor := youtube.NewProcessor(
		youtube.NewPageMetadataFetcher(fetcher),
		youtube.NewTimedTextFetcher(fetcher),
		processorOpts...,
	)

	opts := docwright.DefaultProcessOptions()
	opts.TranscriptLanguage = cli.TranscriptLanguage
	opts.CaptureScreenshots = cli.Capture
	opts.Timeout = cli.Timeout

	return processor.Process(ctx, cli.URL, opts)
}
