// Package fetch retrieves remote resources over plain HTTP or through a
// headless browser for JavaScript-heavy pages. It implements
// webfetch.Fetcher; the conversion core never touches the network itself.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/matthewmueller/webfetch"
	"github.com/matthewmueller/webfetch/internal/cache"
)

const (
	defaultUserAgent = "webfetch/0.1 (+https://github.com/matthewmueller/webfetch)"
	defaultTimeout   = 30 * time.Second
	defaultMaxBody   = 5 << 20 // 5MB
)

// Client retrieves URLs. The zero options give a plain HTTP client with a
// lazily-started headless browser for rendered fetches; construct once and
// Close on shutdown to tear the browser down.
type Client struct {
	log       *slog.Logger
	hc        *http.Client
	userAgent string
	timeout   time.Duration
	maxBody   int64
	noBrowser bool
	payloads  *cache.Cache[webfetch.Payload]

	mu         sync.Mutex
	browser    *Browser
	browserErr error
}

var _ webfetch.Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for plain fetches.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithUserAgent sets the User-Agent header for both fetch paths.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout sets the per-request timeout for both fetch paths.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxBody caps how many bytes are read from a plain HTTP response.
func WithMaxBody(n int64) Option {
	return func(c *Client) { c.maxBody = n }
}

// WithCacheTTL caches plain HTTP payloads by URL for the given window, so
// repeated fetches of the same resource skip the network. Rendered fetches
// are never cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.payloads = cache.New[webfetch.Payload](ttl)
		}
	}
}

// WithoutBrowser disables the headless browser path entirely. Rendered
// fetches fall back to plain HTTP with a warning.
func WithoutBrowser() Option {
	return func(c *Client) { c.noBrowser = true }
}

// New creates a retrieval client. The browser isn't started until the first
// rendered fetch asks for it.
func New(log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		log:       log,
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
		maxBody:   defaultMaxBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hc == nil {
		c.hc = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Fetch retrieves a URL, choosing the browser path when rendering was
// requested. Transport failures are returned as-is; the caller decides how
// to surface them. There are no retries at this layer.
func (c *Client) Fetch(ctx context.Context, rawURL string, opts webfetch.FetchOptions) (*webfetch.Payload, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("fetch: unsupported scheme %q", u.Scheme)
	}

	var payload *webfetch.Payload
	if opts.Render && !c.noBrowser {
		payload, err = c.fetchRendered(ctx, rawURL, opts)
	} else {
		if opts.Render {
			c.log.Warn("fetch: browser disabled, falling back to plain http", "url", rawURL)
		}
		payload, err = c.fetchPlain(ctx, rawURL)
	}
	if err != nil {
		return nil, err
	}

	if opts.ExtractMain && strings.Contains(strings.ToLower(payload.MediaType), "html") {
		c.extractMain(payload, u)
	}
	return payload, nil
}

// fetchPlain is fetchHTTP behind the optional payload cache. Values are
// copied in and out so later mutation (main-content extraction) never leaks
// back into the cache.
func (c *Client) fetchPlain(ctx context.Context, rawURL string) (*webfetch.Payload, error) {
	if c.payloads != nil {
		if hit, ok := c.payloads.Get(rawURL); ok {
			c.log.Debug("fetch: cache hit", "url", rawURL)
			return &hit, nil
		}
	}
	payload, err := c.fetchHTTP(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if c.payloads != nil {
		c.payloads.Set(rawURL, *payload)
	}
	return payload, nil
}

func (c *Client) fetchHTTP(ctx context.Context, rawURL string) (*webfetch.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch: %s returned status %d", rawURL, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("fetch: reading response: %w", err)
	}

	headers := make(map[string]string, len(res.Header))
	for name := range res.Header {
		headers[name] = res.Header.Get(name)
	}

	return &webfetch.Payload{
		Text:      string(body),
		MediaType: res.Header.Get("Content-Type"),
		Headers:   headers,
	}, nil
}

func (c *Client) fetchRendered(ctx context.Context, rawURL string, opts webfetch.FetchOptions) (*webfetch.Payload, error) {
	browser, err := c.ensureBrowser()
	if err != nil {
		return nil, err
	}
	html, shot, err := browser.Render(ctx, rawURL, opts, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("fetch: rendering %s: %w", rawURL, err)
	}
	return &webfetch.Payload{
		Text:       html,
		MediaType:  "text/html",
		Headers:    map[string]string{"Content-Type": "text/html"},
		Screenshot: shot,
	}, nil
}

// ensureBrowser starts the headless browser on first use. A startup failure
// is cached; a missing Chrome binary won't heal between calls.
func (c *Client) ensureBrowser() (*Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser == nil && c.browserErr == nil {
		c.log.Debug("fetch: starting headless browser")
		c.browser, c.browserErr = newBrowser(c.userAgent)
	}
	return c.browser, c.browserErr
}

// extractMain swaps the payload body for the readable main content. Best
// effort: when readability can't find an article, the full page stays.
func (c *Client) extractMain(payload *webfetch.Payload, u *url.URL) {
	article, err := readability.FromReader(strings.NewReader(payload.Text), u)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		c.log.Debug("fetch: readability extraction failed, keeping full page", "url", u.String())
		return
	}
	payload.Text = article.Content
}

// Close tears down the headless browser if it was started.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser != nil {
		c.browser.Close()
		c.browser = nil
	}
	return nil
}
