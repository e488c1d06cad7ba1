package wayfinder_test

import (
	"context"
	"testing"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/testutils"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/catalog"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogEngine(t *testing.T, opts ...wayfinder.Option) *wayfinder.Engine {
	t.Helper()
	loader, err := catalog.Loader()
	require.NoError(t, err)

	eng, err := wayfinder.New("", append([]wayfinder.Option{wayfinder.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return eng
}

func TestEngine_ReActAgentScenario(t *testing.T) {
	eng := newCatalogEngine(t)
	ctx := context.Background()

	state := eng.Start(ctx, "s1")
	state, err := eng.Select(ctx, state, domain.GoTo("A ReAct agent with tools", "agent-memory"))
	require.NoError(t, err)
	state, err = eng.Select(ctx, state, domain.Recommend("No, in-memory is fine", "wesichain-agent"))
	require.NoError(t, err)

	node, err := eng.Current(state)
	require.NoError(t, err)
	result, ok := node.(*domain.Result)
	require.True(t, ok)
	assert.Equal(t, "wesichain-agent", result.Recommendation.Name)
	assert.NotEmpty(t, result.Recommendation.Install)
	assert.NotEmpty(t, result.Recommendation.Example)
}

// walk performs every selection path from the root, depth first.
func walk(t *testing.T, eng *wayfinder.Engine, state *domain.State, visit func(*domain.State)) {
	t.Helper()
	ctx := context.Background()
	visit(state)

	node, err := eng.Current(state)
	require.NoError(t, err)
	step, ok := node.(*domain.Step)
	if !ok {
		return
	}
	for i := range step.Options {
		next, err := eng.SelectIndex(ctx, state, i)
		require.NoError(t, err)
		walk(t, eng, next, visit)
	}
}

func TestEngine_PathProperties(t *testing.T) {
	eng := newCatalogEngine(t)
	ctx := context.Background()

	reached := map[string]bool{}
	walk(t, eng, eng.Start(ctx, "prop"), func(s *domain.State) {
		assert.Equal(t, s.Depth()+1, len(s.History))
		assert.Equal(t, "start", s.History[0])

		node, err := eng.Current(s)
		require.NoError(t, err)
		if r, ok := node.(*domain.Result); ok {
			reached[r.ID] = true
		}

		assert.Equal(t, []string{"start"}, eng.Reset(ctx, s).History)

		if !s.AtRoot() {
			back := eng.Back(ctx, s)
			assert.Equal(t, s.History[:len(s.History)-1], back.History)
		}
	})

	for _, n := range eng.Inspect() {
		if n.NodeType() == domain.NodeTypeResult {
			assert.True(t, reached[n.NodeID()], "result %s is reachable", n.NodeID())
		}
	}
}

func TestEngine_BackThenSelectIsPathEquivalent(t *testing.T) {
	eng := newCatalogEngine(t)
	ctx := context.Background()

	direct, err := eng.SelectIndex(ctx, eng.Start(ctx, "s"), 1)
	require.NoError(t, err)

	detour, err := eng.SelectIndex(ctx, eng.Start(ctx, "s"), 0)
	require.NoError(t, err)
	detour, err = eng.SelectIndex(ctx, eng.Back(ctx, detour), 1)
	require.NoError(t, err)

	assert.Equal(t, direct.History, detour.History)
}

func TestNew_RejectsInvalidGraph(t *testing.T) {
	loader, err := memory.NewFromNodes(
		&domain.Step{ID: "start", Question: "?", Options: []domain.Option{domain.GoTo("x", "missing")}},
	)
	require.NoError(t, err)

	_, err = wayfinder.New("", wayfinder.WithLoader(loader))
	assert.Error(t, err)
}

func TestNew_RequiresPathWithoutLoader(t *testing.T) {
	_, err := wayfinder.New("")
	assert.Error(t, err)
}

func TestNew_FromMarkdownDirectory(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"start.md": `---
question: What are you building?
options:
  - label: Just getting started
    result: wesichain
---
`,
		"wesichain.md": `---
crate: wesichain
install: ["cargo add wesichain"]
---
The umbrella crate.
`,
	})

	eng, err := wayfinder.New(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, eng.Name)

	ctx := context.Background()
	state, err := eng.SelectIndex(ctx, eng.Start(ctx, "md"), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "wesichain"}, state.History)
}

func TestEngine_WatchUnsupported(t *testing.T) {
	eng := newCatalogEngine(t)
	_, err := eng.Watch(context.Background())
	assert.Error(t, err)
}
