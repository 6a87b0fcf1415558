// Package rod implements screenshot capture with Chrome browser automation.
package rod

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/docwright/docwright"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Capturer implements docwright.Capturer at compile time.
var _ docwright.Capturer = (*Capturer)(nil)

// Capturer drives a headless Chrome player page to grab video frames.
// Navigate must be called before Seek or Capture, and Close when the
// Capturer is no longer needed.
type Capturer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	outDir   string
	shots    int
}

// CapturerOption configures a Capturer.
type CapturerOption func(*Capturer)

// WithOutputDir sets where captured frames are written. Defaults to a fresh
// temporary directory.
func WithOutputDir(dir string) CapturerOption {
	return func(c *Capturer) { c.outDir = dir }
}

// NewCapturer launches a headless Chrome browser for frame capture.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewCapturer(opts ...CapturerOption) (*Capturer, error) {
	c := &Capturer{}
	for _, opt := range opts {
		opt(c)
	}

	if c.outDir == "" {
		dir, err := os.MkdirTemp("", "docwright-frames-")
		if err != nil {
			return nil, fmt.Errorf("creating frame directory: %w", err)
		}
		c.outDir = dir
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	c.browser = browser
	c.launcher = l
	return c, nil
}

// Navigate opens the embed player page for the video and waits for the player
// element to appear.
func (c *Capturer) Navigate(ctx context.Context, videoID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	page, err := c.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return err
	}
	page = page.Context(ctx)

	// The embed page renders the bare player without watch-page chrome.
	url := "https://www.youtube.com/embed/" + videoID + "?autoplay=1&mute=1"
	if err := page.Navigate(url); err != nil {
		page.Close()
		return err
	}
	if err := page.WaitLoad(); err != nil {
		page.Close()
		return err
	}
	if _, err := page.Element("video"); err != nil {
		page.Close()
		return docwright.Errorf(docwright.ENOTFOUND, "no video element on player page for %s", videoID)
	}

	if c.page != nil {
		c.page.Close()
	}
	c.page = page
	return nil
}

// Seek moves playback to the given offset in seconds and pauses so the frame
// is stable for capture.
func (c *Capturer) Seek(ctx context.Context, timestamp float64) error {
	if c.page == nil {
		return docwright.Errorf(docwright.EINTERNAL, "seek before navigate")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	js := `(ts) => {
		const v = document.querySelector('video');
		v.currentTime = ts;
		v.pause();
	}`
	if _, err := c.page.Context(ctx).Eval(js, timestamp); err != nil {
		return docwright.Errorf(docwright.EINTERNAL, "seek to %.1fs failed: %v", timestamp, err)
	}

	// Give the player a moment to decode the sought frame.
	return c.page.Context(ctx).WaitStable(300 * time.Millisecond)
}

// Capture screenshots the player element and returns a file URL for the
// stored image.
func (c *Capturer) Capture(ctx context.Context) (string, error) {
	if c.page == nil {
		return "", docwright.Errorf(docwright.EINTERNAL, "capture before navigate")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	el, err := c.page.Context(ctx).Element("video")
	if err != nil {
		return "", docwright.Errorf(docwright.ENOTFOUND, "no video element to capture")
	}

	data, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return "", docwright.Errorf(docwright.EINTERNAL, "screenshot failed: %v", err)
	}

	c.shots++
	path := filepath.Join(c.outDir, fmt.Sprintf("frame-%03d.png", c.shots))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing frame: %w", err)
	}
	return "file://" + path, nil
}

// Close releases the page and browser resources.
func (c *Capturer) Close() error {
	if c.page != nil {
		c.page.Close()
		c.page = nil
	}
	return c.browser.Close()
}
