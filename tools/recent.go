package tools

import (
	"context"

	"github.com/matthewmueller/webfetch"
	"github.com/matthewmueller/webfetch/internal/history"
)

// RecentInput is empty; recent_fetches takes no parameters.
type RecentInput struct{}

// RecentFetches creates a tool that lists the most recent fetches, newest
// first, as recorded by this process. The list is bounded and ephemeral.
func RecentFetches(hist *history.Log) webfetch.Tool {
	return webfetch.Func("recent_fetches",
		"List the most recent URLs fetched in this session, newest first.",
		func(ctx context.Context, in RecentInput) ([]history.Entry, error) {
			return hist.Recent(), nil
		},
	)
}
