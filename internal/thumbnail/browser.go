// Package thumbnail produces catalog preview images by screenshotting a
// template's HTML preview in headless Chrome.
package thumbnail

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// A4 at 96 dpi.
const (
	viewportWidth  = 794
	viewportHeight = 1123
)

// Capturer turns an HTML page into a PNG screenshot.
type Capturer interface {
	Capture(ctx context.Context, html string) ([]byte, error)
}

// ChromeCapturer screenshots pages with a headless Chrome instance.
// Requires Chrome/Chromium to be installed on the system.
type ChromeCapturer struct {
	ExecPath string
	Timeout  time.Duration
	Verbose  bool
}

// NewChromeCapturer creates a capturer. CHROME_PATH overrides the browser
// binary when execPath is empty.
func NewChromeCapturer(execPath string, timeout time.Duration, verbose bool) *ChromeCapturer {
	if execPath == "" {
		execPath = os.Getenv("CHROME_PATH")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromeCapturer{ExecPath: execPath, Timeout: timeout, Verbose: verbose}
}

// Capture loads html from a temporary file and screenshots the first page.
func (c *ChromeCapturer) Capture(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, c.Timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-thumb-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write preview html: %w", err)
	}

	if c.Verbose {
		log.Printf("[THUMBNAIL] Capturing %s", htmlPath)
	}

	var png []byte
	err = chromedp.Run(browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDeviceMetricsOverride(viewportWidth, viewportHeight, 1, false).Do(ctx)
		}),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.CaptureScreenshot(&png),
	)
	if err != nil {
		return nil, fmt.Errorf("browser screenshot failed: %w", err)
	}

	if c.Verbose {
		log.Printf("[THUMBNAIL] Captured %d bytes", len(png))
	}
	return png, nil
}
