package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matthewmueller/webfetch"
	"github.com/matthewmueller/webfetch/convert"
	"github.com/matthewmueller/webfetch/internal/history"
)

// FetchInput defines the input parameters for the fetch_url tool.
type FetchInput struct {
	URL             string `json:"url" is:"required" description:"URL to fetch content from"`
	Format          string `json:"format" enums:"auto,html,json,markdown,text" description:"Output format (default: auto, which matches the detected content type)"`
	UseBrowser      bool   `json:"use_browser" description:"Render the page with a headless browser before converting (for JavaScript-heavy pages)"`
	WaitMs          int    `json:"wait_ms" description:"Extra milliseconds to wait after page load when rendering"`
	WaitForSelector string `json:"wait_for_selector" description:"CSS selector to wait for when rendering"`
	ExtractMain     bool   `json:"extract_main" description:"Extract only the main readable content before converting"`
}

// FetchURL creates the general fetch tool: retrieve a URL and convert it to
// the requested output format, defaulting to the detected source family.
func FetchURL(log *slog.Logger, fetcher webfetch.Fetcher, hist *history.Log) webfetch.Tool {
	return webfetch.Func("fetch_url",
		"Fetch a URL and convert its content to html, json, markdown or text. With format=auto the output format follows the detected content type.",
		func(ctx context.Context, in FetchInput) (string, error) {
			format, err := webfetch.ParseFormat(in.Format)
			if err != nil {
				return "", err
			}
			return fetchAndConvert(ctx, log, fetcher, hist, in, format)
		},
	)
}

// PageInput is the input for the fixed-format fetch tools.
type PageInput struct {
	URL             string `json:"url" is:"required" description:"URL to fetch content from"`
	UseBrowser      bool   `json:"use_browser" description:"Render the page with a headless browser before converting (for JavaScript-heavy pages)"`
	WaitMs          int    `json:"wait_ms" description:"Extra milliseconds to wait after page load when rendering"`
	WaitForSelector string `json:"wait_for_selector" description:"CSS selector to wait for when rendering"`
	ExtractMain     bool   `json:"extract_main" description:"Extract only the main readable content before converting"`
}

// FetchHTML creates a tool that always produces sanitized HTML.
func FetchHTML(log *slog.Logger, fetcher webfetch.Fetcher, hist *history.Log) webfetch.Tool {
	return fixedFormat(log, fetcher, hist, "fetch_html", webfetch.FormatHTML,
		"Fetch a URL and return its content as sanitized HTML, whatever the source format.")
}

// FetchJSON creates a tool that always produces pretty-printed JSON.
func FetchJSON(log *slog.Logger, fetcher webfetch.Fetcher, hist *history.Log) webfetch.Tool {
	return fixedFormat(log, fetcher, hist, "fetch_json", webfetch.FormatJSON,
		"Fetch a URL and return its content as pretty-printed JSON, whatever the source format.")
}

// FetchMarkdown creates a tool that always produces Markdown.
func FetchMarkdown(log *slog.Logger, fetcher webfetch.Fetcher, hist *history.Log) webfetch.Tool {
	return fixedFormat(log, fetcher, hist, "fetch_markdown", webfetch.FormatMarkdown,
		"Fetch a URL and return its content as Markdown, whatever the source format.")
}

// FetchTxt creates a tool that always produces plain text.
func FetchTxt(log *slog.Logger, fetcher webfetch.Fetcher, hist *history.Log) webfetch.Tool {
	return fixedFormat(log, fetcher, hist, "fetch_txt", webfetch.FormatText,
		"Fetch a URL and return its content as plain text, whatever the source format.")
}

func fixedFormat(log *slog.Logger, fetcher webfetch.Fetcher, hist *history.Log, name string, format webfetch.Format, description string) webfetch.Tool {
	return webfetch.Func(name, description,
		func(ctx context.Context, in PageInput) (string, error) {
			return fetchAndConvert(ctx, log, fetcher, hist, FetchInput{
				URL:             in.URL,
				UseBrowser:      in.UseBrowser,
				WaitMs:          in.WaitMs,
				WaitForSelector: in.WaitForSelector,
				ExtractMain:     in.ExtractMain,
			}, format)
		},
	)
}

// fetchAndConvert is the single control path behind every fetch tool:
// retrieve, classify, convert, record.
func fetchAndConvert(ctx context.Context, log *slog.Logger, fetcher webfetch.Fetcher, hist *history.Log, in FetchInput, format webfetch.Format) (string, error) {
	payload, err := fetcher.Fetch(ctx, in.URL, webfetch.FetchOptions{
		Render:          in.UseBrowser,
		RenderWaitMs:    in.WaitMs,
		WaitForSelector: in.WaitForSelector,
		ExtractMain:     in.ExtractMain,
	})
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", in.URL, err)
	}

	family := webfetch.Classify(payload.MediaType, in.URL, payload.Text)
	resolved := format.Resolve(family)
	log.Debug("tools: converting", "url", in.URL, "family", family, "format", resolved)

	out, err := convert.To(resolved, &webfetch.Request{
		Content: payload.Text,
		Source:  family,
		URL:     in.URL,
	})
	if err != nil {
		log.Warn("tools: conversion failed", "url", in.URL, "format", resolved, "err", err)
		return "", err
	}

	method := "http"
	if in.UseBrowser {
		method = "browser"
	}
	hist.Add(in.URL, string(resolved), method)

	return out, nil
}
