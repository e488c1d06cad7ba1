package memory

import (
	"context"
	"html"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aretw0/wayfinder/pkg/domain"
)

const excerptRadius = 60

// Index is an in-memory full-text index over the documentation collection.
// A pending index answers every lookup with domain.ErrIndexNotReady until
// Load is called.
type Index struct {
	mu      sync.RWMutex
	entries []domain.Entry
	ready   bool
	baseURL string
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithBaseURL prefixes every hit URL.
func WithBaseURL(base string) IndexOption {
	return func(i *Index) {
		i.baseURL = strings.TrimSuffix(base, "/")
	}
}

// NewIndex builds a ready index over entries.
func NewIndex(entries []domain.Entry, opts ...IndexOption) *Index {
	idx := NewPendingIndex(opts...)
	idx.Load(entries)
	return idx
}

// NewPendingIndex builds an index that is not ready yet.
func NewPendingIndex(opts ...IndexOption) *Index {
	idx := &Index{}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Load replaces the indexed entries and marks the index ready.
func (i *Index) Load(entries []domain.Entry) {
	cp := make([]domain.Entry, len(entries))
	copy(cp, entries)

	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries = cp
	i.ready = true
}

// Ready reports whether Load has been called.
func (i *Index) Ready() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.ready
}

// Search returns entries containing every term of query, best first.
// Title matches weigh 3, description 2 and body 1.
func (i *Index) Search(ctx context.Context, query string) ([]domain.Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	if !i.ready {
		return nil, domain.ErrIndexNotReady
	}

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	var hits []domain.Hit
	for _, e := range i.entries {
		score, ok := scoreEntry(e, terms)
		if !ok {
			continue
		}
		hits = append(hits, domain.Hit{
			URL:     i.urlFor(e.Slug),
			Title:   e.Title,
			Excerpt: Excerpt(excerptSource(e, terms[0]), terms),
			Score:   score,
		})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Title < hits[b].Title
	})
	return hits, nil
}

func (i *Index) urlFor(slug string) string {
	return i.baseURL + "/" + strings.TrimPrefix(slug, "/")
}

func scoreEntry(e domain.Entry, terms []string) (float64, bool) {
	title := strings.ToLower(e.Title)
	desc := strings.ToLower(e.Description)
	body := strings.ToLower(e.Body)

	var score float64
	for _, t := range terms {
		s := 3*float64(strings.Count(title, t)) +
			2*float64(strings.Count(desc, t)) +
			float64(strings.Count(body, t))
		if s == 0 {
			return 0, false
		}
		score += s
	}
	return score, true
}

func excerptSource(e domain.Entry, term string) string {
	if strings.Contains(strings.ToLower(e.Body), term) {
		return e.Body
	}
	if e.Description != "" {
		return e.Description
	}
	return e.Title
}

// Excerpt cuts a window of text around the first match and wraps every
// occurrence of terms in <mark>. The rest of the text is HTML escaped.
// Matching is case-insensitive and offsets always refer to text itself.
func Excerpt(text string, terms []string) string {
	text = strings.Join(strings.Fields(text), " ")

	start, end := 0, len(text)
	if len(terms) > 0 {
		if at, n := indexFold(text, terms[0]); at >= 0 {
			start = max(0, at-excerptRadius)
			end = min(len(text), at+n+excerptRadius)
		}
	}
	for start > 0 && !isBoundary(text[start-1]) {
		start--
	}
	for end < len(text) && !isBoundary(text[end]) {
		end++
	}

	window := text[start:end]
	var b strings.Builder
	if start > 0 {
		b.WriteString("…")
	}
	for pos := 0; pos < len(window); {
		at, n := nextMatch(window[pos:], terms)
		if at < 0 {
			b.WriteString(html.EscapeString(window[pos:]))
			break
		}
		b.WriteString(html.EscapeString(window[pos : pos+at]))
		b.WriteString("<mark>")
		b.WriteString(html.EscapeString(window[pos+at : pos+at+n]))
		b.WriteString("</mark>")
		pos += at + n
	}
	if end < len(text) {
		b.WriteString("…")
	}
	return b.String()
}

// nextMatch returns the byte offset and byte length in s of the earliest
// term match, preferring the longest match at the same offset.
func nextMatch(s string, terms []string) (int, int) {
	best, bestLen := -1, 0
	for _, t := range terms {
		at, n := indexFold(s, t)
		if at >= 0 && (best < 0 || at < best || (at == best && n > bestLen)) {
			best, bestLen = at, n
		}
	}
	return best, bestLen
}

// indexFold finds term in s under Unicode simple case folding. It compares
// windows of s holding as many runes as term, so the returned length is the
// byte length of the match in s, which may differ from len(term).
func indexFold(s, term string) (int, int) {
	runes := utf8.RuneCountInString(term)
	if runes == 0 {
		return -1, 0
	}
	for i := range s {
		end := i
		for k := 0; k < runes && end < len(s); k++ {
			_, size := utf8.DecodeRuneInString(s[end:])
			end += size
		}
		if strings.EqualFold(s[i:end], term) {
			return i, end - i
		}
	}
	return -1, 0
}

func isBoundary(c byte) bool {
	return c == ' '
}
