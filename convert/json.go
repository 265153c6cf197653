package convert

import (
	"bytes"
	"encoding/json"

	"github.com/matthewmueller/webfetch"
)

// JSON converts content from any source family into a pretty-printed JSON
// document. Parse failures degrade to a raw-content wrapper everywhere
// except the XML branch, which propagates so malformed markup surfaces to
// the caller.
func JSON(req *webfetch.Request) (string, error) {
	switch req.Source {
	case webfetch.FamilyStructured:
		out, err := reformatJSON(req.Content)
		if err != nil {
			return prettyJSON(map[string]string{"content": req.Content})
		}
		return out, nil

	case webfetch.FamilyHypertext:
		return htmlToJSON(req.Content)

	case webfetch.FamilyMarkup:
		return markdownToJSON(req.Content)

	case webfetch.FamilyTabular:
		return csvToJSON(req.Content)

	case webfetch.FamilyXML:
		tree, err := parseXML(req.Content)
		if err != nil {
			return "", failed(webfetch.FormatJSON, err)
		}
		return prettyJSON(tree)

	default:
		return prettyJSON(textDocument{
			Content:   req.Content,
			Type:      string(req.Source),
			Source:    req.URL,
			Timestamp: timestamp(),
			Length:    len(req.Content),
		})
	}
}

// textDocument wraps unconvertible content with its provenance.
type textDocument struct {
	Content   string `json:"content"`
	Type      string `json:"type"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
	Length    int    `json:"length"`
}

// htmlPage is the structured summary of a hypertext document.
type htmlPage struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Headings    []string   `json:"headings"`
	Text        string     `json:"text"`
	Links       []pageLink `json:"links"`
	HTMLLength  int        `json:"htmlLength"`
}

func htmlToJSON(content string) (string, error) {
	// Title and meta description live in the head, which sanitization
	// strips, so they're read from the original document. Everything else
	// comes from the sanitized fragment.
	orig, err := parsePage(content)
	if err != nil {
		return "", failed(webfetch.FormatJSON, err)
	}
	sanitized := Sanitize(content)
	doc, err := parsePage(sanitized)
	if err != nil {
		return "", failed(webfetch.FormatJSON, err)
	}
	return prettyJSON(htmlPage{
		Title:       pageTitle(orig),
		Description: pageDescription(orig),
		Headings:    pageH1s(doc),
		Text:        pageText(doc),
		Links:       pageLinks(doc),
		HTMLLength:  len(sanitized),
	})
}

// markdownPage is the structured summary of a markdown document, extracted
// from its rendered hypertext.
type markdownPage struct {
	Title    string        `json:"title"`
	Headings []pageHeading `json:"headings"`
	Text     string        `json:"text"`
	Links    []pageLink    `json:"links"`
}

func markdownToJSON(markdown string) (string, error) {
	html, err := renderMarkdown(markdown)
	if err != nil {
		return "", failed(webfetch.FormatJSON, err)
	}
	doc, err := parsePage(html)
	if err != nil {
		return "", failed(webfetch.FormatJSON, err)
	}
	title := ""
	if h1s := pageH1s(doc); len(h1s) > 0 {
		title = h1s[0]
	}
	return prettyJSON(markdownPage{
		Title:    title,
		Headings: pageHeadings(doc),
		Text:     pageText(doc),
		Links:    pageLinks(doc),
	})
}

func csvToJSON(content string) (string, error) {
	t, err := parseCSV(content)
	if err != nil {
		return "", failed(webfetch.FormatJSON, err)
	}
	records := make([]orderedRecord, len(t.rows))
	for i, row := range t.rows {
		records[i] = orderedRecord{table: t, row: row}
	}
	return prettyJSON(records)
}

// orderedRecord marshals a CSV row as an object with fields in the original
// header order. encoding/json sorts map keys, which would lose the column
// order, so the object is written by hand.
type orderedRecord struct {
	table *table
	row   []string
}

func (r orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range r.table.header {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.table.cell(r.row, i))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
