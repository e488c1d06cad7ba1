package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/search"
)

// PrintResults writes a numbered, non-interactive listing of items.
func PrintResults(w io.Writer, query string, items []domain.ResultItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, stepStyle.Render(fmt.Sprintf(search.NoResultsMessage, query)))
		return
	}
	for i, item := range items {
		fmt.Fprintf(w, "%d. %s  %s\n", i+1, titleStyle.Render(item.Title), urlStyle.Render(item.URL))
		if item.Excerpt != "" {
			fmt.Fprintf(w, "   %s\n", RenderExcerpt(item.Excerpt, func(s string) string { return markStyle.Render(s) }))
		}
	}
}
