package convert

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/matthewmueller/webfetch"
)

// markdownRowLimit caps table output so huge CSVs don't overwhelm the
// consuming agent.
const markdownRowLimit = 50

// Markdown converts content from any source family into Markdown. Markdown
// sources pass through byte for byte with no provenance appended; every
// other branch appends a provenance trailer.
func Markdown(req *webfetch.Request) (string, error) {
	switch req.Source {
	case webfetch.FamilyMarkup:
		return req.Content, nil

	case webfetch.FamilyHypertext:
		markdown, err := htmltomarkdown.ConvertString(Sanitize(req.Content))
		if err != nil {
			return "", failed(webfetch.FormatMarkdown, err)
		}
		return strings.TrimSpace(markdown) + markdownTrailer(req.URL), nil

	case webfetch.FamilyStructured:
		pretty, err := reformatJSON(req.Content)
		if err != nil {
			return fence("", req.Content) + markdownTrailer(req.URL), nil
		}
		return "# JSON Content\n\n" + fence("json", pretty) + markdownTrailer(req.URL), nil

	case webfetch.FamilyTabular:
		body, err := csvToMarkdownTable(req.Content)
		if err != nil {
			return "", failed(webfetch.FormatMarkdown, err)
		}
		return body + markdownTrailer(req.URL), nil

	case webfetch.FamilyXML:
		tree, err := parseXML(req.Content)
		if err != nil {
			return fence("", req.Content) + markdownTrailer(req.URL), nil
		}
		pretty, err := prettyJSON(tree)
		if err != nil {
			return "", failed(webfetch.FormatMarkdown, err)
		}
		return "# XML Content\n\n" +
			"## Converted to JSON\n\n" + fence("json", pretty) + "\n" +
			"## Original XML\n\n" + fence("xml", req.Content) +
			markdownTrailer(req.URL), nil

	default:
		// Short prose fits in a fence; long prose is emitted verbatim since
		// fencing large bodies runs into code-block escaping issues.
		if len(req.Content) < 1000 {
			return "# Text Content\n\n" + fence("", req.Content) + markdownTrailer(req.URL), nil
		}
		return "# Text Content\n\n" + req.Content + markdownTrailer(req.URL), nil
	}
}

func fence(lang, content string) string {
	return "```" + lang + "\n" + content + "\n```\n"
}

func markdownTrailer(sourceURL string) string {
	return fmt.Sprintf("\n---\n\nSource: %s\nConverted: %s\n", sourceURL, timestamp())
}

// csvToMarkdownTable renders up to markdownRowLimit data rows as a Markdown
// table, appending a truncation notice when rows were dropped. Header-only
// content is an error.
func csvToMarkdownTable(content string) (string, error) {
	t, err := parseCSV(content)
	if err != nil {
		return "", err
	}
	if len(t.rows) == 0 {
		return "", fmt.Errorf("csv has no data rows")
	}

	var b strings.Builder
	b.WriteString("| " + strings.Join(escapeCells(t.header), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(t.header)) + "\n")

	total := len(t.rows)
	shown := min(total, markdownRowLimit)
	for _, row := range t.rows[:shown] {
		cells := make([]string, len(t.header))
		for i := range t.header {
			cells[i] = escapeCell(t.cell(row, i))
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	if total > shown {
		fmt.Fprintf(&b, "\n*Truncated: showing %d of %d data rows*\n", shown, total)
	}
	return b.String(), nil
}

// escapeCell keeps cell content from breaking the table syntax.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = escapeCell(c)
	}
	return out
}
