package convert

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageLink is a hyperlink extracted from hypertext, in document order.
type pageLink struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// pageHeading is a heading with its level, in document order.
type pageHeading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// parsePage parses an HTML document or fragment for extraction. goquery
// normalizes fragments into a full document, so body selections always work.
func parsePage(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func pageTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func pageDescription(doc *goquery.Document) string {
	desc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(desc)
}

func pageH1s(doc *goquery.Document) []string {
	headings := []string{}
	doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, strings.TrimSpace(s.Text()))
	})
	return headings
}

func pageHeadings(doc *goquery.Document) []pageHeading {
	headings := []pageHeading{}
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level := int(s.Nodes[0].Data[1] - '0')
		headings = append(headings, pageHeading{
			Level: level,
			Text:  strings.TrimSpace(s.Text()),
		})
	})
	return headings
}

func pageLinks(doc *goquery.Document) []pageLink {
	links := []pageLink{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, pageLink{
			Text: strings.TrimSpace(s.Text()),
			Href: href,
		})
	})
	return links
}

// pageText extracts visible text with whitespace runs collapsed. Script and
// style subtrees are removed first so their contents never leak into prose.
func pageText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()
	return collapseWhitespace(doc.Find("body").Text())
}
