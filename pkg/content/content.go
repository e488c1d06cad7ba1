// Package content turns documentation pages into validated entries of the
// search collection.
package content

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// Schema is the frontmatter contract of a documentation page.
var Schema = schema.Schema{
	"title":       schema.String(),
	"description": schema.String(),
	"order":       schema.Optional(schema.Int(), nil),
	"group":       schema.Optional(schema.String(), nil),
	"draft":       schema.Optional(schema.Bool(), false),
}

// EntryMetadata is the decoded frontmatter of a documentation page.
type EntryMetadata struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Order       *int   `mapstructure:"order"`
	Group       string `mapstructure:"group"`
	Draft       bool   `mapstructure:"draft"`
}

// Parse validates frontmatter and builds an Entry.
func Parse(slug string, frontmatter map[string]any, body string) (domain.Entry, error) {
	data, err := schema.Normalize(Schema, frontmatter)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("invalid frontmatter in %s: %w", slug, err)
	}

	var meta EntryMetadata
	if err := mapstructure.Decode(data, &meta); err != nil {
		return domain.Entry{}, fmt.Errorf("failed to decode frontmatter in %s: %w", slug, err)
	}
	return domain.Entry{
		Slug:        Slug(slug),
		Title:       meta.Title,
		Description: meta.Description,
		Order:       meta.Order,
		Group:       meta.Group,
		Draft:       meta.Draft,
		Body:        strings.TrimSpace(body),
	}, nil
}

// Slug strips the file extension and a trailing "index" segment.
func Slug(id string) string {
	s := strings.TrimSuffix(id, path.Ext(id))
	s = strings.TrimSuffix(s, "/index")
	if s == "index" {
		return ""
	}
	return strings.Trim(s, "/")
}

// Collection is the set of documentation entries.
type Collection struct {
	entries []domain.Entry
}

// New builds a collection from already parsed entries.
func New(entries []domain.Entry) *Collection {
	cp := make([]domain.Entry, len(entries))
	copy(cp, entries)
	return &Collection{entries: cp}
}

// Load reads every entry from src.
func Load(ctx context.Context, src ports.ContentSource) (*Collection, error) {
	entries, err := src.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	return New(entries), nil
}

// All returns every entry, drafts included, in source order.
func (c *Collection) All() []domain.Entry {
	cp := make([]domain.Entry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

// Published drops drafts and sorts by group, then order (unordered last),
// then title.
func (c *Collection) Published() []domain.Entry {
	out := make([]domain.Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if !e.Draft {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		switch {
		case a.Order != nil && b.Order != nil && *a.Order != *b.Order:
			return *a.Order < *b.Order
		case a.Order != nil && b.Order == nil:
			return true
		case a.Order == nil && b.Order != nil:
			return false
		}
		return a.Title < b.Title
	})
	return out
}

// Entries implements ports.ContentSource over the published entries.
func (c *Collection) Entries(ctx context.Context) ([]domain.Entry, error) {
	return c.Published(), nil
}
