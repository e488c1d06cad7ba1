package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/wayfinder/internal/compiler"
	"github.com/aretw0/wayfinder/internal/testutils"
	"github.com/aretw0/wayfinder/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportDir_RoundTrip(t *testing.T) {
	graph, err := catalog.Graph()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, ExportDir(context.Background(), dir, graph.Nodes()))

	loader, err := Open(dir)
	require.NoError(t, err)

	ids, err := loader.ListNodes()
	require.NoError(t, err)
	assert.ElementsMatch(t, graph.IDs(), ids)

	for _, n := range graph.Nodes() {
		want, err := compiler.Encode(n)
		require.NoError(t, err)

		got, err := loader.GetNode(n.NodeID())
		require.NoError(t, err, n.NodeID())
		assert.JSONEq(t, string(want), string(got), n.NodeID())
	}
}

func TestExport_UsesRepository(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))
	graph, err := catalog.Graph()
	require.NoError(t, err)

	require.NoError(t, Export(context.Background(), repo, graph.Nodes()[:1]))

	docs, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
