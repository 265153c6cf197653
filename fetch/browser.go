package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/matthewmueller/webfetch"
)

// Browser owns a long-lived headless Chrome instance. Each Render opens a
// fresh tab so concurrent renders don't share page state. Close tears the
// whole instance down.
type Browser struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	browserCtx  context.Context
	cancelCtx   context.CancelFunc
}

func newBrowser(userAgent string) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	// Launch now so a missing Chrome binary fails the first rendered fetch
	// with a clear error instead of hanging inside a navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("fetch: starting browser: %w", err)
	}

	return &Browser{
		allocCtx:    allocCtx,
		cancelAlloc: cancelAlloc,
		browserCtx:  browserCtx,
		cancelCtx:   cancelCtx,
	}, nil
}

// Render navigates to a URL in a new tab, waits per the options, and
// returns the rendered document plus an optional full-page screenshot.
func (b *Browser) Render(ctx context.Context, url string, opts webfetch.FetchOptions, timeout time.Duration) (string, []byte, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()

	// The tab context descends from the browser, not the caller, so the
	// caller's deadline is carried over by hand.
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	tasks := chromedp.Tasks{chromedp.Navigate(url)}
	if opts.WaitForSelector != "" {
		tasks = append(tasks, chromedp.WaitVisible(opts.WaitForSelector, chromedp.ByQuery))
	} else {
		tasks = append(tasks, chromedp.WaitReady("body", chromedp.ByQuery))
	}
	if opts.RenderWaitMs > 0 {
		tasks = append(tasks, chromedp.Sleep(time.Duration(opts.RenderWaitMs)*time.Millisecond))
	}

	var html string
	tasks = append(tasks, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	var screenshot []byte
	if opts.Screenshot {
		tasks = append(tasks, chromedp.FullScreenshot(&screenshot, 90))
	}

	if err := chromedp.Run(tabCtx, tasks); err != nil {
		return "", nil, err
	}
	return html, screenshot, nil
}

// Close shuts down the browser and its allocator.
func (b *Browser) Close() {
	b.cancelCtx()
	b.cancelAlloc()
}
