package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/livebud/cli"
	"github.com/livebud/color"

	"github.com/matthewmueller/webfetch"
	"github.com/matthewmueller/webfetch/convert"
	"github.com/matthewmueller/webfetch/fetch"
	"github.com/matthewmueller/webfetch/internal/batch"
	"github.com/matthewmueller/webfetch/internal/env"
	"github.com/matthewmueller/webfetch/internal/history"
	"github.com/matthewmueller/webfetch/internal/mcpserver"
	"github.com/matthewmueller/webfetch/tools"
)

// Version is stamped by the build; "dev" otherwise.
var Version = "dev"

func New(log *slog.Logger) *CLI {
	return &CLI{
		log:    log,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

type CLI struct {
	log    *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (c *CLI) Parse(ctx context.Context, args ...string) error {
	cli := cli.New("webfetch", "fetch urls and reformat them for agents")
	cli.Run(func(ctx context.Context) error {
		return c.Serve(ctx)
	})

	{ // $ webfetch get <url>...
		cmd := &Get{}
		cli := cli.Command("get", "fetch urls once and print the converted output")
		cli.Flag("format", "output format").Short('f').Enum(&cmd.Format, webfetch.Formats...).Default("auto")
		cli.Flag("browser", "render with a headless browser").Bool(&cmd.Browser).Default(false)
		cli.Flag("wait-for", "css selector to wait for when rendering").Optional().String(&cmd.WaitFor)
		cli.Flag("wait-ms", "extra milliseconds to wait after load when rendering").Int(&cmd.WaitMs).Default(0)
		cli.Flag("main", "extract only the main readable content").Bool(&cmd.Main).Default(false)
		cli.Flag("screenshot", "write a full-page screenshot to this file (implies --browser, single url only)").Optional().String(&cmd.Screenshot)
		cli.Args("urls", "urls to fetch").Strings(&cmd.URLs)
		cli.Run(func(ctx context.Context) error {
			return c.Get(ctx, cmd)
		})
	}

	return cli.Parse(ctx, args...)
}

// Serve runs the MCP server over stdio until the context is canceled. This
// is the default command: hosts configure `webfetch` as a stdio MCP server.
func (c *CLI) Serve(ctx context.Context) error {
	e, err := env.Load()
	if err != nil {
		return fmt.Errorf("cli: unable to load env: %w", err)
	}

	fetcher := fetch.New(c.log, fetchOptions(e)...)
	defer fetcher.Close()

	hist := history.New(e.HistorySize)
	server := mcpserver.New(c.log, Version, tools.All(c.log, fetcher, hist), hist)
	return server.Listen(ctx, c.Stdin, c.Stdout)
}

type Get struct {
	Format     string
	Browser    bool
	WaitFor    *string
	WaitMs     int
	Main       bool
	Screenshot *string
	URLs       []string
}

// Get fetches each URL once, converts it and writes the result to stdout.
func (c *CLI) Get(ctx context.Context, in *Get) error {
	if len(in.URLs) == 0 {
		return fmt.Errorf("cli: at least one url is required")
	}
	format, err := webfetch.ParseFormat(in.Format)
	if err != nil {
		return err
	}

	e, err := env.Load()
	if err != nil {
		return fmt.Errorf("cli: unable to load env: %w", err)
	}

	fetcher := fetch.New(c.log, fetchOptions(e)...)
	defer fetcher.Close()

	opts := webfetch.FetchOptions{
		Render:       in.Browser,
		RenderWaitMs: in.WaitMs,
		ExtractMain:  in.Main,
	}
	if in.WaitFor != nil {
		opts.WaitForSelector = *in.WaitFor
	}
	if in.Screenshot != nil {
		if len(in.URLs) > 1 {
			return fmt.Errorf("cli: --screenshot takes a single url")
		}
		opts.Render = true
		opts.Screenshot = true
	}

	// Fetch and convert concurrently, then print in argument order.
	type page struct {
		url      string
		family   webfetch.Family
		resolved webfetch.Format
		out      string
		shot     []byte
	}
	b, ctx := batch.New[page](ctx)
	b.Limit(4)
	for _, url := range in.URLs {
		b.Go(func() (page, error) {
			payload, err := fetcher.Fetch(ctx, url, opts)
			if err != nil {
				return page{}, fmt.Errorf("cli: fetching %s: %w", url, err)
			}
			family := webfetch.Classify(payload.MediaType, url, payload.Text)
			resolved := format.Resolve(family)
			out, err := convert.To(resolved, &webfetch.Request{
				Content: payload.Text,
				Source:  family,
				URL:     url,
			})
			if err != nil {
				return page{}, fmt.Errorf("cli: converting %s: %w", url, err)
			}
			return page{url, family, resolved, out, payload.Screenshot}, nil
		})
	}
	pages, err := b.Wait()
	if err != nil {
		return err
	}

	for _, p := range pages {
		fmt.Fprintln(c.Stderr, color.Dim(fmt.Sprintf("%s %s as %s", p.url, p.family, p.resolved)))
		fmt.Fprintln(c.Stdout, p.out)
		if in.Screenshot != nil && len(p.shot) > 0 {
			if err := os.WriteFile(*in.Screenshot, p.shot, 0644); err != nil {
				return fmt.Errorf("cli: writing screenshot: %w", err)
			}
			fmt.Fprintln(c.Stderr, color.Dim(fmt.Sprintf("screenshot written to %s", *in.Screenshot)))
		}
	}
	return nil
}

func fetchOptions(e *env.Env) []fetch.Option {
	opts := []fetch.Option{
		fetch.WithTimeout(e.Timeout),
		fetch.WithMaxBody(e.MaxBodyBytes),
	}
	if e.UserAgent != "" {
		opts = append(opts, fetch.WithUserAgent(e.UserAgent))
	}
	if e.NoBrowser {
		opts = append(opts, fetch.WithoutBrowser())
	}
	if e.CacheTTL > 0 {
		opts = append(opts, fetch.WithCacheTTL(e.CacheTTL))
	}
	return opts
}
