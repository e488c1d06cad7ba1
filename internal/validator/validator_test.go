package validator

import (
	"testing"

	"github.com/aretw0/wayfinder/internal/compiler"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphOf(t *testing.T, nodes ...domain.Node) *domain.Graph {
	t.Helper()
	g := domain.NewGraph("start")
	for _, n := range nodes {
		require.NoError(t, g.Add(n))
	}
	return g
}

func problems(t *testing.T, err error) []string {
	t.Helper()
	var ge *GraphError
	require.ErrorAs(t, err, &ge)
	return ge.Problems
}

func TestCheck_ValidGraph(t *testing.T) {
	g := graphOf(t,
		&domain.Step{ID: "start", Question: "Q", Options: []domain.Option{
			domain.GoTo("deeper", "a"),
			domain.Recommend("done", "r1"),
		}},
		&domain.Step{ID: "a", Question: "A", Options: []domain.Option{domain.Recommend("x", "r2")}},
		&domain.Result{ID: "r1"},
		&domain.Result{ID: "r2"},
	)

	assert.NoError(t, Check(g))
}

func TestCheck_Defects(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []domain.Node
		opts    []Option
		contain string
	}{
		{
			name: "Broken Link",
			nodes: []domain.Node{
				&domain.Step{ID: "start", Options: []domain.Option{domain.GoTo("ghost", "ghost_node")}},
			},
			contain: "Missing node: 'ghost_node' referenced by 'start'",
		},
		{
			name: "Variant Mismatch",
			nodes: []domain.Node{
				&domain.Step{ID: "start", Options: []domain.Option{domain.GoTo("oops", "r")}},
				&domain.Result{ID: "r"},
			},
			contain: "expects step 'r' but found result",
		},
		{
			name: "Option Leads Nowhere",
			nodes: []domain.Node{
				&domain.Step{ID: "start", Options: []domain.Option{{Label: "nil target"}}},
			},
			contain: "Option 0 of 'start' leads nowhere",
		},
		{
			name: "Cycle",
			nodes: []domain.Node{
				&domain.Step{ID: "start", Options: []domain.Option{domain.GoTo("to a", "a")}},
				&domain.Step{ID: "a", Options: []domain.Option{domain.GoTo("loop", "start")}},
			},
			contain: "Cycle detected through 'start'",
		},
		{
			name: "Orphaned Result",
			nodes: []domain.Node{
				&domain.Step{ID: "start", Options: []domain.Option{domain.Recommend("r", "r")}},
				&domain.Result{ID: "r"},
				&domain.Result{ID: "lonely"},
			},
			contain: "Orphaned result: 'lonely'",
		},
		{
			name: "Root Is Result",
			nodes: []domain.Node{
				&domain.Result{ID: "start"},
			},
			contain: "Root node 'start' must be a step",
		},
		{
			name: "Too Deep",
			nodes: []domain.Node{
				&domain.Step{ID: "start", Options: []domain.Option{domain.GoTo("1", "a")}},
				&domain.Step{ID: "a", Options: []domain.Option{domain.Recommend("2", "r")}},
				&domain.Result{ID: "r"},
			},
			opts:    []Option{WithMaxDepth(1)},
			contain: "Node 'r' is 2 selections deep (max 1)",
		},
		{
			name: "Duplicate Labels",
			nodes: []domain.Node{
				&domain.Step{ID: "start", Options: []domain.Option{
					domain.Recommend("same", "r"),
					domain.Recommend("same", "r"),
				}},
				&domain.Result{ID: "r"},
			},
			contain: "repeats option label 'same'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(graphOf(t, tt.nodes...), tt.opts...)
			found := problems(t, err)
			joined := ""
			for _, p := range found {
				joined += p + "\n"
			}
			assert.Contains(t, joined, tt.contain)
		})
	}
}

func TestCheck_MissingRoot(t *testing.T) {
	g := domain.NewGraph("nowhere")
	assert.Equal(t, []string{"Root node 'nowhere' not found"}, problems(t, Check(g)))
}

func TestValidateGraph_FromLoader(t *testing.T) {
	parser := compiler.NewParser()

	loader := memory.NewLoader(map[string]string{
		"start": `{"id":"start","type":"step","question":"Q","options":[{"label":"go","result":"end"}]}`,
		"end":   `{"id":"end","type":"result","recommendation":{"name":"end"}}`,
	})
	assert.NoError(t, ValidateGraph(loader, parser, "start"))

	broken := memory.NewLoader(map[string]string{
		"start": `{"id":"start","type":"step","question":"Q","options":[{"label":"go"}]}`,
	})
	err := ValidateGraph(broken, parser, "start")
	assert.ErrorContains(t, err, "neither next nor result")
}
