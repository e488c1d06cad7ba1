package domain

// Hit is a raw ranked hit as returned by a search index.
type Hit struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Excerpt string  `json:"excerpt"`
	Score   float64 `json:"score,omitempty"`
}

// ResultItem is a normalized hit displayed by the search overlay.
// Excerpt is an HTML snippet where matches are wrapped in <mark>.
type ResultItem struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}
