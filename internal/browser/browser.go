// Package browser renders the reservation calendar in headless Chrome.
// The calendar table is built client-side, so a plain GET returns an empty
// shell; rendering is the default fetch path for real runs.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	renderTimeout = 45 * time.Second
	settleDelay   = 1 * time.Second
	waitSelector  = "table"
)

// Renderer drives a headless Chrome instance for one run.
type Renderer struct {
	execPath   string
	windowSize string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithExecPath points the renderer at a specific Chrome binary.
func WithExecPath(path string) Option {
	return func(r *Renderer) {
		r.execPath = path
	}
}

// New creates a Renderer with defaults suitable for CI runners.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		windowSize: "1280,2200",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderHTML navigates to the calendar page, waits for the calendar table to
// appear, and returns the rendered page HTML plus a full-page screenshot.
// The browser is allocated and released entirely within this call.
func (r *Renderer) RenderHTML(ctx context.Context, pageURL string) (string, []byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("window-size", r.windowSize),
		chromedp.Flag("lang", "ja-JP"),
	)
	if r.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelRun()

	var pageHTML string
	var screenshot []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery),
		chromedp.FullScreenshot(&screenshot, 80),
	)
	if err != nil {
		return "", nil, fmt.Errorf("rendering %s: %w", pageURL, err)
	}

	return pageHTML, screenshot, nil
}
