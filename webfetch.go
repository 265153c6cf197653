// Package webfetch fetches remote resources and reformats them for
// consumption by agents. A retrieved payload is classified into one of six
// content families, then converted into one of four output formats: JSON,
// HTML, Markdown or plain text.
package webfetch

import (
	"context"
	"fmt"
)

// Family is the detected content family of a retrieved payload.
// Exactly one family is assigned per retrieval; FamilyText is the universal
// fallback, so every converter has a defined case for every family.
type Family string

const (
	FamilyStructured Family = "structured" // JSON-like data
	FamilyHypertext  Family = "hypertext"  // HTML
	FamilyMarkup     Family = "markup"     // Markdown
	FamilyXML        Family = "xml"        // XML
	FamilyTabular    Family = "tabular"    // CSV
	FamilyText       Family = "text"       // plain text
)

// Format is a requested output format. FormatAuto resolves to the detected
// source family's natural format.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Formats lists the selectable output formats, in the order they're
// surfaced to callers.
var Formats = []string{
	string(FormatAuto),
	string(FormatHTML),
	string(FormatJSON),
	string(FormatMarkdown),
	string(FormatText),
}

// ParseFormat validates a format string. An empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatHTML, FormatJSON, FormatMarkdown, FormatText:
		return Format(s), nil
	}
	return "", fmt.Errorf("webfetch: unknown format %q", s)
}

// DefaultFormat returns the output format that best matches a source family,
// used to resolve FormatAuto. Structured data renders as JSON, hypertext as
// HTML, markup as Markdown. XML and CSV don't have a matching output format,
// so they fall back to text along with plain text itself.
func (f Family) DefaultFormat() Format {
	switch f {
	case FamilyStructured:
		return FormatJSON
	case FamilyHypertext:
		return FormatHTML
	case FamilyMarkup:
		return FormatMarkdown
	default:
		return FormatText
	}
}

// Resolve maps FormatAuto to the family's default format and leaves explicit
// formats untouched.
func (f Format) Resolve(source Family) Format {
	if f == FormatAuto {
		return source.DefaultFormat()
	}
	return f
}

// Request fully determines a conversion: the raw content, its classified
// source family and the origin URL (used for provenance only). Conversion is
// a pure function of these fields plus the wall clock for the provenance
// timestamp.
type Request struct {
	Content string
	Source  Family
	URL     string
}

// Payload is the raw result of a retrieval: the textual content plus the
// declared media type and response headers. Screenshot is only populated
// when a browser render with capture was requested.
type Payload struct {
	Text       string
	MediaType  string
	Headers    map[string]string
	Screenshot []byte
}

// FetchOptions control the retrieval path.
type FetchOptions struct {
	Render          bool   // render with a headless browser instead of a plain GET
	RenderWaitMs    int    // extra wait after load, browser path only
	WaitForSelector string // CSS selector to wait for, browser path only
	Screenshot      bool   // capture a full-page screenshot, browser path only
	ExtractMain     bool   // run readability to isolate the main content
}

// Fetcher retrieves a URL. Implementations live in the fetch package; the
// core treats retrieval as a single opaque suspension point and never
// retries.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts FetchOptions) (*Payload, error)
}

// ConversionError reports an unrecoverable failure while producing a
// specific output format.
type ConversionError struct {
	Target Format
	Cause  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting to %s: %v", e.Target, e.Cause)
}

func (e *ConversionError) Unwrap() error { return e.Cause }
