package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/wayfinder/pkg/adapters/sqlite"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var docs = []domain.Entry{
	{Slug: "guides/rag", Title: "RAG pipelines", Description: "Retrieval augmented generation", Body: "Combine a vector store with a prompt to answer questions."},
	{Slug: "guides/agents", Title: "Agents", Description: "ReAct agents with tools", Body: "Agents call tools and keep memory in a checkpoint."},
	{Slug: "reference/checkpoint", Title: "Checkpointing", Description: "Persist agent state", Body: "SQLite and PostgreSQL backends store the checkpoint."},
}

func openIndex(t *testing.T) *sqlite.Index {
	t.Helper()
	idx, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "index.db"), sqlite.WithBaseURL("/docs/"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	require.NoError(t, idx.Build(context.Background(), docs))
	return idx
}

func TestIndex_Search(t *testing.T) {
	idx := openIndex(t)
	ctx := context.Background()

	hits, err := idx.Search(ctx, "checkpoint")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "/docs/reference/checkpoint", hits[0].URL, "title match ranks first")
	assert.Contains(t, hits[0].Excerpt, "<mark>")

	hits, err = idx.Search(ctx, "agent check")
	require.NoError(t, err)
	urls := make([]string, len(hits))
	for i, h := range hits {
		urls[i] = h.URL
	}
	assert.ElementsMatch(t, []string{"/docs/guides/agents", "/docs/reference/checkpoint"}, urls)

	hits, err = idx.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.Search(ctx, `"unbalanced`)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_BuildReplaces(t *testing.T) {
	idx := openIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Build(ctx, docs[:1]))
	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	hits, err := idx.Search(ctx, "agents")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMatchExpr(t *testing.T) {
	assert.Equal(t, `"rag"* "pipe"*`, sqlite.MatchExpr(" rag  pipe "))
	assert.Equal(t, `"say"* """hi"""*`, sqlite.MatchExpr(`say "hi"`))
	assert.Empty(t, sqlite.MatchExpr(""))
}
