package webfetch_test

import (
	"testing"

	"github.com/matryer/is"
	"github.com/matthewmueller/webfetch"
)

func TestClassifyMediaType(t *testing.T) {
	is := is.New(t)
	is.Equal(webfetch.Classify("application/json", "", ""), webfetch.FamilyStructured)
	is.Equal(webfetch.Classify("text/html; charset=utf-8", "", ""), webfetch.FamilyHypertext)
	is.Equal(webfetch.Classify("text/markdown", "", ""), webfetch.FamilyMarkup)
	is.Equal(webfetch.Classify("application/xml", "", ""), webfetch.FamilyXML)
	is.Equal(webfetch.Classify("text/csv", "", ""), webfetch.FamilyTabular)
	// html wins over xml for xhtml, per the fixed check order
	is.Equal(webfetch.Classify("application/xhtml+xml", "", ""), webfetch.FamilyHypertext)
}

func TestClassifyHeaderBeatsSuffix(t *testing.T) {
	is := is.New(t)
	family := webfetch.Classify("text/html", "https://example.com/data.json", "{}")
	is.Equal(family, webfetch.FamilyHypertext)
}

func TestClassifySuffix(t *testing.T) {
	is := is.New(t)
	is.Equal(webfetch.Classify("", "https://example.com/data.json", ""), webfetch.FamilyStructured)
	is.Equal(webfetch.Classify("", "https://example.com/page.html", ""), webfetch.FamilyHypertext)
	is.Equal(webfetch.Classify("", "https://example.com/page.htm", ""), webfetch.FamilyHypertext)
	is.Equal(webfetch.Classify("", "https://example.com/README.md", ""), webfetch.FamilyMarkup)
	is.Equal(webfetch.Classify("", "https://example.com/feed.xml", ""), webfetch.FamilyXML)
	is.Equal(webfetch.Classify("", "https://example.com/export.csv", ""), webfetch.FamilyTabular)
	// query strings don't count as suffixes
	is.Equal(webfetch.Classify("", "https://example.com/page?file=.json", ""), webfetch.FamilyText)
}

func TestClassifySniffJSON(t *testing.T) {
	is := is.New(t)
	is.Equal(webfetch.Classify("", "", `{"a": 1}`), webfetch.FamilyStructured)
	// braces around prose don't parse, so this is not structured data
	is.Equal(webfetch.Classify("", "", `{this is just prose}`), webfetch.FamilyText)
}

func TestClassifySniffHTML(t *testing.T) {
	is := is.New(t)
	is.Equal(webfetch.Classify("", "", "<html><body>hi</body></html>"), webfetch.FamilyHypertext)
	is.Equal(webfetch.Classify("octet/stream", "", "  <!DOCTYPE html><html></html>"), webfetch.FamilyHypertext)
}

func TestClassifySniffXML(t *testing.T) {
	is := is.New(t)
	is.Equal(webfetch.Classify("", "", `<?xml version="1.0"?><root/>`), webfetch.FamilyXML)
	is.Equal(webfetch.Classify("", "", `<note><to name="x"/></note>`), webfetch.FamilyXML)
}

func TestClassifySniffCSV(t *testing.T) {
	is := is.New(t)
	is.Equal(webfetch.Classify("", "", "a,b,c\n1,2,3\n"), webfetch.FamilyTabular)
	// mismatched comma counts suggest prose, not a table
	is.Equal(webfetch.Classify("", "", "one, two\nand three, four, five\n"), webfetch.FamilyText)
}

func TestClassifyFallback(t *testing.T) {
	is := is.New(t)
	is.Equal(webfetch.Classify("", "", "just some plain text"), webfetch.FamilyText)
	is.Equal(webfetch.Classify("application/octet-stream", "https://example.com/file.bin", "data"), webfetch.FamilyText)
}

func TestFormatResolve(t *testing.T) {
	is := is.New(t)
	is.Equal(webfetch.FormatAuto.Resolve(webfetch.FamilyStructured), webfetch.FormatJSON)
	is.Equal(webfetch.FormatAuto.Resolve(webfetch.FamilyHypertext), webfetch.FormatHTML)
	is.Equal(webfetch.FormatAuto.Resolve(webfetch.FamilyMarkup), webfetch.FormatMarkdown)
	is.Equal(webfetch.FormatAuto.Resolve(webfetch.FamilyTabular), webfetch.FormatText)
	is.Equal(webfetch.FormatAuto.Resolve(webfetch.FamilyXML), webfetch.FormatText)
	// explicit formats are untouched
	is.Equal(webfetch.FormatMarkdown.Resolve(webfetch.FamilyStructured), webfetch.FormatMarkdown)
}

func TestParseFormat(t *testing.T) {
	is := is.New(t)
	f, err := webfetch.ParseFormat("")
	is.NoErr(err)
	is.Equal(f, webfetch.FormatAuto)
	f, err = webfetch.ParseFormat("markdown")
	is.NoErr(err)
	is.Equal(f, webfetch.FormatMarkdown)
	_, err = webfetch.ParseFormat("pdf")
	is.True(err != nil)
}
