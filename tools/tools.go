// Package tools provides the callable operations exposed to a host agent:
// fetch a URL and reformat it, plus a view of recent fetches.
package tools

import (
	"log/slog"

	"github.com/matthewmueller/webfetch"
	"github.com/matthewmueller/webfetch/internal/history"
)

// All returns every tool with the provided dependencies.
func All(log *slog.Logger, fetcher webfetch.Fetcher, hist *history.Log) []webfetch.Tool {
	return []webfetch.Tool{
		FetchURL(log, fetcher, hist),
		FetchHTML(log, fetcher, hist),
		FetchJSON(log, fetcher, hist),
		FetchMarkdown(log, fetcher, hist),
		FetchTxt(log, fetcher, hist),
		RecentFetches(hist),
	}
}
