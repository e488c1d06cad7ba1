package domain

// Entry is one page of the documentation content collection.
type Entry struct {
	// Slug is the location of the page relative to the collection root.
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       *int   `json:"order,omitempty"`
	Group       string `json:"group,omitempty"`
	Draft       bool   `json:"draft"`
	Body        string `json:"body,omitempty"`
}
