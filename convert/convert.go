// Package convert transforms retrieved content between content families.
// There is one converter per output format; each is a total function over
// the six source families with plain text as the default arm. Converters are
// pure aside from the wall-clock provenance stamp and hold no shared state,
// so concurrent conversions need no coordination.
package convert

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/matthewmueller/webfetch"
)

// To converts a request into the given output format. The format must be
// concrete (FormatAuto is resolved by the caller against the detected
// source family).
func To(format webfetch.Format, req *webfetch.Request) (string, error) {
	switch format {
	case webfetch.FormatJSON:
		return JSON(req)
	case webfetch.FormatHTML:
		return HTML(req)
	case webfetch.FormatMarkdown:
		return Markdown(req)
	case webfetch.FormatText:
		return Text(req)
	}
	return "", fmt.Errorf("convert: unknown output format %q", format)
}

// failed wraps an unrecoverable converter error with its target format.
func failed(target webfetch.Format, cause error) error {
	return &webfetch.ConversionError{Target: target, Cause: cause}
}

// timestamp is the human-readable provenance stamp. It has no structural
// meaning in any output format.
func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// escapeHTML neutralizes characters that would otherwise be interpreted as
// markup when raw text is embedded in generated hypertext.
var escapeHTML = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
).Replace

// escapeText escapes only the characters that would break out of a text
// node, leaving quotes alone so string tokens stay recognizable.
var escapeText = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
).Replace

// prettyJSON re-serializes any parsed JSON value with 2-space indentation.
func prettyJSON(v any) (string, error) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// parseJSON parses content as an arbitrary JSON value.
func parseJSON(content string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// reformatJSON parses and pretty-prints JSON content in one step.
func reformatJSON(content string) (string, error) {
	v, err := parseJSON(content)
	if err != nil {
		return "", err
	}
	return prettyJSON(v)
}

// collapseWhitespace reduces every run of whitespace to a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
