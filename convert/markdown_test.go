package convert_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/matthewmueller/webfetch"
	"github.com/matthewmueller/webfetch/convert"
)

// Markdown sources pass through byte for byte, so converting twice changes
// nothing and no provenance trailer is appended.
func TestMarkdownIdempotent(t *testing.T) {
	is := is.New(t)
	req := &webfetch.Request{
		Content: samples[webfetch.FamilyMarkup],
		Source:  webfetch.FamilyMarkup,
		URL:     testURL,
	}

	once, err := convert.Markdown(req)
	is.NoErr(err)
	is.Equal(once, samples[webfetch.FamilyMarkup])

	twice, err := convert.Markdown(&webfetch.Request{
		Content: once,
		Source:  webfetch.FamilyMarkup,
		URL:     testURL,
	})
	is.NoErr(err)
	is.Equal(twice, once)
	is.True(!strings.Contains(once, "Source:"))
}

func TestMarkdownFromJSON(t *testing.T) {
	is := is.New(t)
	out, err := convert.Markdown(&webfetch.Request{
		Content: `{"a":1}`,
		Source:  webfetch.FamilyStructured,
		URL:     testURL,
	})
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "# JSON Content\n\n```json\n{\n  \"a\": 1\n}\n```\n"))
	is.True(strings.Contains(out, "\n---\n\nSource: "+testURL+"\n"))
}

func TestMarkdownFromHTML(t *testing.T) {
	is := is.New(t)
	out, err := convert.Markdown(&webfetch.Request{
		Content: samples[webfetch.FamilyHypertext],
		Source:  webfetch.FamilyHypertext,
		URL:     testURL,
	})
	is.NoErr(err)
	is.True(strings.Contains(out, "# Welcome"))
	is.True(strings.Contains(out, "**content**"))
	is.True(strings.Contains(out, "[More](https://example.com/more)"))
	is.True(!strings.Contains(out, "var x"))
	is.True(strings.Contains(out, "Source: "+testURL))
}

func TestMarkdownTableTruncation(t *testing.T) {
	is := is.New(t)
	var b strings.Builder
	b.WriteString("id,value\n")
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "%d,v%d\n", i, i)
	}

	out, err := convert.Markdown(&webfetch.Request{
		Content: b.String(),
		Source:  webfetch.FamilyTabular,
		URL:     testURL,
	})
	is.NoErr(err)
	is.True(strings.Contains(out, "| id | value |"))
	is.True(strings.Contains(out, "*Truncated: showing 50 of 60 data rows*"))
	// header, separator, 50 data rows
	is.Equal(strings.Count(out, "\n| "), 51)
	is.True(strings.Contains(out, "| 49 | v49 |"))
	is.True(!strings.Contains(out, "| 50 | v50 |"))
}

func TestMarkdownHeaderOnlyCSV(t *testing.T) {
	is := is.New(t)
	_, err := convert.Markdown(&webfetch.Request{
		Content: "a,b,c\n",
		Source:  webfetch.FamilyTabular,
		URL:     testURL,
	})
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "no data rows"))
}

func TestMarkdownCellEscaping(t *testing.T) {
	is := is.New(t)
	out, err := convert.Markdown(&webfetch.Request{
		Content: "name,note\nAlice,\"has|pipe\"\n",
		Source:  webfetch.FamilyTabular,
		URL:     testURL,
	})
	is.NoErr(err)
	is.True(strings.Contains(out, `has\|pipe`))
}
