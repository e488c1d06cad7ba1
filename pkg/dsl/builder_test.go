package dsl

import (
	"testing"

	"github.com/aretw0/wayfinder/internal/compiler"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := New()

	b.Add("start").
		Question("What are you building?").
		Describe("Pick the closest match").
		Next("An agent", "agent-memory").
		Recommend("Just exploring", "core")

	b.Add("agent-memory").
		Question("Does it need memory?").
		Recommend("No", "core")

	b.Result("core").
		Crate("wesichain-core").
		Description("Foundation").
		Install("cargo add wesichain-core").
		Example("fn main() {}")

	loader, err := b.Build()
	require.NoError(t, err)

	ids, err := loader.ListNodes()
	require.NoError(t, err)
	assert.Equal(t, []string{"agent-memory", "core", "start"}, ids)

	raw, err := loader.GetNode("start")
	require.NoError(t, err)
	node, err := compiler.NewParser().Parse(raw)
	require.NoError(t, err)

	step, ok := node.(*domain.Step)
	require.True(t, ok)
	assert.Equal(t, "Pick the closest match", step.Description)
	assert.Equal(t, []domain.Option{
		domain.GoTo("An agent", "agent-memory"),
		domain.Recommend("Just exploring", "core"),
	}, step.Options)

	raw, err = loader.GetNode("core")
	require.NoError(t, err)
	node, err = compiler.NewParser().Parse(raw)
	require.NoError(t, err)
	result, ok := node.(*domain.Result)
	require.True(t, ok)
	assert.Equal(t, "wesichain-core", result.Recommendation.Name)
	assert.Equal(t, []string{"cargo add wesichain-core"}, result.Recommendation.Install)
}

func TestBuilder_AddReturnsSameStep(t *testing.T) {
	b := New()
	b.Add("start").Question("?")
	b.Add("start").Recommend("go", "end")
	b.Result("end")

	g, err := b.Graph("start")
	require.NoError(t, err)
	step, ok := g.Step("start")
	require.True(t, ok)
	assert.Equal(t, "?", step.Question)
	assert.Len(t, step.Options, 1)
}

func TestBuilder_Collision(t *testing.T) {
	b := New()
	b.Add("x").Question("?")
	b.Result("x")

	_, err := b.Build()
	var collision *domain.CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "x", collision.ID)
}
