package search

import (
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultLimit caps the number of results shown.
const DefaultLimit = 8

// excerptPolicy keeps <mark> highlights and strips every other tag.
var excerptPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("mark")
	return p
}()

// Normalize converts raw hits into display items: at most limit items,
// hits without a URL dropped, excerpts sanitized to plain text plus <mark>.
func Normalize(hits []domain.Hit, limit int) []domain.ResultItem {
	if limit <= 0 {
		limit = DefaultLimit
	}
	items := make([]domain.ResultItem, 0, min(len(hits), limit))
	for _, h := range hits {
		if len(items) == limit {
			break
		}
		if strings.TrimSpace(h.URL) == "" {
			continue
		}
		title := strings.TrimSpace(h.Title)
		if title == "" {
			title = h.URL
		}
		items = append(items, domain.ResultItem{
			URL:     h.URL,
			Title:   title,
			Excerpt: strings.TrimSpace(excerptPolicy.Sanitize(h.Excerpt)),
		})
	}
	return items
}
