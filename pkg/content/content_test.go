package content_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/wayfinder/pkg/content"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestParse(t *testing.T) {
	e, err := content.Parse("guides/agents.md", map[string]any{
		"title":       "Agents",
		"description": "Build a ReAct agent",
		"order":       json.Number("2"),
		"group":       "Guides",
	}, "\nBody text\n")
	require.NoError(t, err)

	assert.Equal(t, domain.Entry{
		Slug:        "guides/agents",
		Title:       "Agents",
		Description: "Build a ReAct agent",
		Order:       intPtr(2),
		Group:       "Guides",
		Body:        "Body text",
	}, e)
}

func TestParse_DecodesDefaultsAndIgnoresUnknownFields(t *testing.T) {
	e, err := content.Parse("index.md", map[string]any{
		"title":       "Home",
		"description": "Start here",
		"draft":       true,
		"layout":      "splash",
		"hero":        map[string]any{"tagline": "ignored"},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "", e.Slug)
	assert.Nil(t, e.Order)
	assert.Empty(t, e.Group)
	assert.True(t, e.Draft)
}

func TestParse_MissingRequired(t *testing.T) {
	_, err := content.Parse("broken.md", map[string]any{"title": "Only title"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.md")

	errs := schema.ValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "description", errs[0].(*schema.ValidationError).Key)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "guides/agents", content.Slug("guides/agents.md"))
	assert.Equal(t, "guides", content.Slug("guides/index.mdx"))
	assert.Equal(t, "", content.Slug("index.md"))
}

func TestCollection_Published(t *testing.T) {
	c := content.New([]domain.Entry{
		{Slug: "c", Title: "Zeta", Group: "Guides"},
		{Slug: "d", Title: "Hidden", Group: "Guides", Draft: true},
		{Slug: "b", Title: "Second", Group: "Guides", Order: intPtr(2)},
		{Slug: "a", Title: "First", Group: "Guides", Order: intPtr(1)},
		{Slug: "e", Title: "Alpha", Group: "Reference"},
		{Slug: "f", Title: "Beta", Group: "Guides"},
	})

	var slugs []string
	for _, e := range c.Published() {
		slugs = append(slugs, e.Slug)
	}
	assert.Equal(t, []string{"a", "b", "f", "c", "e"}, slugs)
	assert.Len(t, c.All(), 6)

	entries, err := c.Entries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
