package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matthewmueller/webfetch"
)

// textRowLimit caps plain-text table output, tighter than the Markdown
// limit since pipe tables are harder to skim.
const textRowLimit = 25

// Text converts content from any source family into plain prose. Parse
// failures always degrade to the raw content; this converter never fails.
func Text(req *webfetch.Request) (string, error) {
	switch req.Source {
	case webfetch.FamilyHypertext:
		doc, err := parsePage(req.Content)
		if err != nil {
			return req.Content + textTrailer(req.URL), nil
		}
		// Provenance joins the prose with spaces so the output stays a
		// single run of text.
		return strings.Join([]string{
			pageText(doc),
			"Source: " + req.URL,
			"Converted: " + timestamp(),
		}, " "), nil

	case webfetch.FamilyStructured:
		pretty, err := reformatJSON(req.Content)
		if err != nil {
			return req.Content + textTrailer(req.URL), nil
		}
		return pretty + textTrailer(req.URL), nil

	case webfetch.FamilyMarkup:
		return stripMarkdown(req.Content) + textTrailer(req.URL), nil

	case webfetch.FamilyTabular:
		return csvToText(req.Content) + textTrailer(req.URL), nil

	case webfetch.FamilyXML:
		tree, err := parseXML(req.Content)
		if err != nil {
			return req.Content + textTrailer(req.URL), nil
		}
		pretty, err := prettyJSON(tree)
		if err != nil {
			return req.Content + textTrailer(req.URL), nil
		}
		return pretty + textTrailer(req.URL), nil

	default:
		return req.Content + textTrailer(req.URL), nil
	}
}

func textTrailer(sourceURL string) string {
	return fmt.Sprintf("\n\nSource: %s\nConverted: %s", sourceURL, timestamp())
}

// Markdown stripping rules, applied in order. Fenced blocks go first so
// their contents never match the inline rules; images before links so the
// link rule doesn't swallow the image syntax; bullets before emphasis so
// the italic rule can't pair asterisks across list lines.
var (
	reFencedCode = regexp.MustCompile("(?s)```[^\n]*\n.*?```")
	reImage      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)
	reLink       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	reHeading    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	reBold       = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reBullet     = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
)

// stripMarkdown removes Markdown syntax, leaving readable prose. Links
// become "text (url)" and images "[Image: alt]"; fenced code blocks are
// dropped entirely.
func stripMarkdown(markdown string) string {
	s := reFencedCode.ReplaceAllString(markdown, "")
	s = reImage.ReplaceAllString(s, "[Image: $1]")
	s = reLink.ReplaceAllString(s, "$1 ($2)")
	s = reHeading.ReplaceAllString(s, "")
	s = reBullet.ReplaceAllString(s, "- ")
	s = reBold.ReplaceAllString(s, "$1$2")
	s = reItalic.ReplaceAllString(s, "$1$2")
	s = reInlineCode.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// csvToText renders a pipe-delimited text table capped at textRowLimit data
// rows. Unlike the table-building branches of the HTML and Markdown
// converters, an empty CSV isn't an error here: the caller asked for prose,
// so an explicit notice reads better than a failure.
func csvToText(content string) string {
	t, err := parseCSV(content)
	if err != nil {
		return content
	}
	if len(t.rows) == 0 {
		return "CSV content contains no data rows."
	}

	var b strings.Builder
	b.WriteString(strings.Join(t.header, " | ") + "\n")

	total := len(t.rows)
	shown := min(total, textRowLimit)
	for _, row := range t.rows[:shown] {
		cells := make([]string, len(t.header))
		for i := range t.header {
			cells[i] = t.cell(row, i)
		}
		b.WriteString(strings.Join(cells, " | ") + "\n")
	}
	if total > shown {
		fmt.Fprintf(&b, "... (%d more rows)\n", total-shown)
	}
	return strings.TrimRight(b.String(), "\n")
}
