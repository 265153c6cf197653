package convert

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// FragmentPolicy returns the singleton bluemonday policy used everywhere
// hypertext is emitted or transformed. It allows the standard formatting
// tags plus images and all heading levels; scripts, styles, event handlers
// and javascript: URLs are stripped. Built once, policies are safe for
// concurrent use.
func FragmentPolicy() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowElements(
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "br", "hr",
			"ul", "ol", "li",
			"blockquote", "pre", "code",
			"em", "strong", "b", "i", "u", "s",
			"table", "thead", "tbody", "tr", "th", "td",
			"div", "span", "article", "section",
		)
		p.AllowAttrs("href", "name", "target").OnElements("a")
		p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
		fragmentPolicy = p
	})
	return fragmentPolicy
}

// Sanitize strips unsafe markup from an HTML fragment using FragmentPolicy.
func Sanitize(html string) string {
	return strings.TrimSpace(FragmentPolicy().Sanitize(html))
}
