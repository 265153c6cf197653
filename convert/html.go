package convert

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/matthewmueller/webfetch"
	"github.com/yuin/goldmark"
)

// HTML converts content from any source family into hypertext. Hypertext
// sources are sanitized in place and returned as a bare fragment; every
// other family is wrapped in a minimal standalone document with a
// provenance footer.
func HTML(req *webfetch.Request) (string, error) {
	switch req.Source {
	case webfetch.FamilyHypertext:
		return Sanitize(req.Content), nil

	case webfetch.FamilyStructured:
		pretty, err := reformatJSON(req.Content)
		if err != nil {
			return pageDoc("Text Content", "<pre>"+escapeHTML(req.Content)+"</pre>", req.URL), nil
		}
		body := `<pre class="json">` + highlightJSON(pretty) + `</pre>`
		return pageDoc("JSON Content", body, req.URL), nil

	case webfetch.FamilyMarkup:
		html, err := renderMarkdown(req.Content)
		if err != nil {
			return "", failed(webfetch.FormatHTML, err)
		}
		return pageDoc("Markdown Content", html, req.URL), nil

	case webfetch.FamilyTabular:
		body, err := csvToTable(req.Content)
		if err != nil {
			return "", failed(webfetch.FormatHTML, err)
		}
		return pageDoc("CSV Data", body, req.URL), nil

	case webfetch.FamilyXML:
		tree, err := parseXML(req.Content)
		if err != nil {
			return pageDoc("Text Content", "<pre>"+escapeHTML(req.Content)+"</pre>", req.URL), nil
		}
		pretty, err := prettyJSON(tree)
		if err != nil {
			return "", failed(webfetch.FormatHTML, err)
		}
		body := "<h2>Original XML</h2><pre>" + escapeHTML(req.Content) + "</pre>" +
			`<h2>Converted to JSON</h2><pre class="json">` + highlightJSON(pretty) + "</pre>"
		return pageDoc("XML Content", body, req.URL), nil

	default:
		return pageDoc("Text Content", "<pre>"+escapeHTML(req.Content)+"</pre>", req.URL), nil
	}
}

// renderMarkdown converts Markdown to an HTML fragment.
func renderMarkdown(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

// csvToTable renders parsed CSV as an HTML table with escaped cells. Header
// only content is an error; there's no meaningful table to build.
func csvToTable(content string) (string, error) {
	t, err := parseCSV(content)
	if err != nil {
		return "", err
	}
	if len(t.rows) == 0 {
		return "", fmt.Errorf("csv has no data rows")
	}
	var b strings.Builder
	b.WriteString("<table>\n<thead>\n<tr>")
	for _, field := range t.header {
		b.WriteString("<th>" + escapeHTML(field) + "</th>")
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range t.rows {
		b.WriteString("<tr>")
		for i := range t.header {
			b.WriteString("<td>" + escapeHTML(t.cell(row, i)) + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String(), nil
}

const pageStyle = `body { font-family: sans-serif; margin: 2rem; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
footer { margin-top: 2rem; color: #666; font-size: 0.85rem; }
.json-key { color: #d73a49; }
.json-string { color: #032f62; }
.json-number { color: #005cc5; }
.json-boolean { color: #e36209; }
.json-null { color: #6a737d; }`

// pageDoc wraps a body fragment in a minimal standalone document with the
// shared provenance footer.
func pageDoc(title, body, sourceURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
%s
<footer>
<p>Source: %s</p>
<p>Converted: %s</p>
</footer>
</body>
</html>`, escapeHTML(title), pageStyle, body, escapeHTML(sourceURL), timestamp())
}

// jsonToken matches one JSON token at a time in pretty-printed output:
// a string (optionally a key, when followed by a colon), a literal, or a
// number. The input is only &/</> escaped so quotes stay intact.
var jsonToken = regexp.MustCompile(`"(\\u[0-9a-fA-F]{4}|\\[^u]|[^\\"])*"(\s*:)?|\b(true|false|null)\b|-?\d+(\.\d+)?([eE][+-]?\d+)?`)

// highlightJSON wraps each token of pretty-printed JSON in a class-tagged
// span for styling. Keys keep their trailing colon outside the span.
func highlightJSON(pretty string) string {
	escaped := escapeText(pretty)
	return jsonToken.ReplaceAllStringFunc(escaped, func(tok string) string {
		class := "number"
		suffix := ""
		switch {
		case strings.HasPrefix(tok, `"`):
			if strings.HasSuffix(strings.TrimSpace(tok), ":") {
				class = "key"
				i := strings.LastIndex(tok, `"`)
				suffix = tok[i+1:]
				tok = tok[:i+1]
			} else {
				class = "string"
			}
		case tok == "true", tok == "false":
			class = "boolean"
		case tok == "null":
			class = "null"
		}
		return `<span class="json-` + class + `">` + tok + `</span>` + suffix
	})
}
