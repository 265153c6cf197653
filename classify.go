package webfetch

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Classify assigns exactly one content family to a retrieved payload.
// Evidence is checked in a fixed precedence order: the declared media type
// outranks the URL suffix, which outranks content sniffing. Sniffing for
// structured data requires a successful parse, not just matching braces, to
// avoid false positives on prose wrapped in braces. When everything is
// inconclusive the payload is plain text.
func Classify(mediaType, rawURL, content string) Family {
	if f, ok := classifyMediaType(mediaType); ok {
		return f
	}
	if f, ok := classifySuffix(rawURL); ok {
		return f
	}
	if f, ok := sniff(content); ok {
		return f
	}
	return FamilyText
}

func classifyMediaType(mediaType string) (Family, bool) {
	mt := strings.ToLower(mediaType)
	if mt == "" {
		return "", false
	}
	switch {
	case strings.Contains(mt, "json"):
		return FamilyStructured, true
	case strings.Contains(mt, "html"):
		return FamilyHypertext, true
	case strings.Contains(mt, "markdown"), strings.Contains(mt, "md"):
		return FamilyMarkup, true
	case strings.Contains(mt, "xml"):
		return FamilyXML, true
	case strings.Contains(mt, "csv"):
		return FamilyTabular, true
	}
	return "", false
}

func classifySuffix(rawURL string) (Family, bool) {
	path := strings.ToLower(rawURL)
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = strings.ToLower(u.Path)
	}
	switch {
	case strings.HasSuffix(path, ".json"):
		return FamilyStructured, true
	case strings.HasSuffix(path, ".html"), strings.HasSuffix(path, ".htm"):
		return FamilyHypertext, true
	case strings.HasSuffix(path, ".md"), strings.HasSuffix(path, ".markdown"):
		return FamilyMarkup, true
	case strings.HasSuffix(path, ".xml"):
		return FamilyXML, true
	case strings.HasSuffix(path, ".csv"):
		return FamilyTabular, true
	}
	return "", false
}

func sniff(content string) (Family, bool) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") && json.Valid([]byte(trimmed)) {
		return FamilyStructured, true
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(trimmed, "<") && strings.Contains(lower, "</html>") {
		return FamilyHypertext, true
	}
	if strings.Contains(content, "<?xml") || (strings.Contains(content, "<") && strings.Contains(content, "/>")) {
		return FamilyXML, true
	}
	if sniffTabular(content) {
		return FamilyTabular, true
	}
	return "", false
}

// sniffTabular looks for CSV shape: commas and newlines, no markup or brace
// characters, and a matching nonzero comma count on the first two lines.
func sniffTabular(content string) bool {
	if !strings.Contains(content, ",") || !strings.Contains(content, "\n") {
		return false
	}
	if strings.Contains(content, "<") || strings.Contains(content, "{") {
		return false
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return false
	}
	first := strings.Count(lines[0], ",")
	second := strings.Count(lines[1], ",")
	return first > 0 && first == second
}
