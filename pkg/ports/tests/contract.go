// Package tests holds contract suites shared by the adapter tests.
package tests

import (
	"testing"

	"github.com/aretw0/wayfinder/internal/compiler"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GraphLoaderContractTest checks that loader serves exactly the nodes in
// want, byte for byte, and that what it serves compiles into a decision
// graph where every node is reachable under its own id.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, want map[string][]byte) {
	t.Helper()

	t.Run("GetNode", func(t *testing.T) {
		for id, raw := range want {
			got, err := loader.GetNode(id)
			require.NoError(t, err, "node %s", id)
			assert.Equal(t, string(raw), string(got), "node %s", id)
		}
	})

	t.Run("GetNode unknown id", func(t *testing.T) {
		_, err := loader.GetNode("no-such-node")
		assert.Error(t, err)
	})

	t.Run("ListNodes", func(t *testing.T) {
		ids, err := loader.ListNodes()
		require.NoError(t, err)

		expected := make([]string, 0, len(want))
		for id := range want {
			expected = append(expected, id)
		}
		assert.ElementsMatch(t, expected, ids)
	})

	t.Run("Compiles into a graph", func(t *testing.T) {
		g, err := compiler.NewParser().Compile(loader, "")
		require.NoError(t, err)
		assert.Equal(t, len(want), g.Len())

		for id := range want {
			node, ok := g.Lookup(id)
			require.True(t, ok, "node %s missing from graph", id)
			assert.Equal(t, id, node.NodeID())
			switch node.(type) {
			case *domain.Step, *domain.Result:
			default:
				t.Errorf("node %s compiled to %T", id, node)
			}
		}
	})
}
