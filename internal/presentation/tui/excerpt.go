package tui

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RenderExcerpt converts a sanitized excerpt fragment into terminal text,
// passing every <mark> run through highlight. Entities are decoded.
func RenderExcerpt(fragment string, highlight func(string) string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + fragment + "</div>"))
	if err != nil {
		return fragment
	}

	var b strings.Builder
	doc.Find("body > div").First().Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "mark" {
			b.WriteString(highlight(s.Text()))
			return
		}
		b.WriteString(s.Text())
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
