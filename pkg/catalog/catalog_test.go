package catalog_test

import (
	"context"
	"testing"

	"github.com/aretw0/wayfinder/internal/runtime"
	"github.com/aretw0/wayfinder/internal/validator"
	"github.com/aretw0/wayfinder/pkg/catalog"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_IsValid(t *testing.T) {
	g, err := catalog.Graph()
	require.NoError(t, err)
	require.NoError(t, validator.Check(g))

	var steps, results int
	for _, n := range g.Nodes() {
		switch n.(type) {
		case *domain.Step:
			steps++
		case *domain.Result:
			results++
		}
	}
	assert.Equal(t, 7, steps)
	assert.Equal(t, 11, results)
}

func TestCatalog_EveryResultHasInstallAndExample(t *testing.T) {
	g, err := catalog.Graph()
	require.NoError(t, err)

	for _, n := range g.Nodes() {
		r, ok := n.(*domain.Result)
		if !ok {
			continue
		}
		assert.NotEmpty(t, r.Recommendation.Install, r.ID)
		assert.NotEmpty(t, r.Recommendation.Example, r.ID)
		assert.Equal(t, r.ID, r.Recommendation.Name)
	}
}

func TestCatalog_AgentWithoutPersistence(t *testing.T) {
	g, err := catalog.Graph()
	require.NoError(t, err)
	engine, err := runtime.NewEngineFromGraph(g)
	require.NoError(t, err)
	ctx := context.Background()

	state := engine.Start(ctx, "demo")
	state, err = engine.Select(ctx, state, domain.GoTo("A ReAct agent with tools", "agent-memory"))
	require.NoError(t, err)
	state, err = engine.Select(ctx, state, domain.Recommend("No, in-memory is fine", "wesichain-agent"))
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "agent-memory", "wesichain-agent"}, state.History)
	node, err := engine.Current(state)
	require.NoError(t, err)
	r := node.(*domain.Result)
	assert.Equal(t, []string{"cargo add wesichain-agent"}, r.Recommendation.Install)
}
