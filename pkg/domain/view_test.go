package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewView(t *testing.T) {
	step := &Step{
		ID:       "start",
		Question: "What are you building?",
		Options: []Option{
			GoTo("A RAG pipeline", "rag-complexity"),
			Recommend("Just getting started", "wesichain"),
		},
	}

	v := NewView(NewState("s1", "start"), step)
	assert.Equal(t, "s1", v.SessionID)
	assert.Equal(t, NodeTypeStep, v.Kind)
	assert.Equal(t, 1, v.Step)
	assert.False(t, v.CanGoBack)
	assert.Equal(t, []ViewOption{
		{Index: 0, Label: "A RAG pipeline", Terminal: false},
		{Index: 1, Label: "Just getting started", Terminal: true},
	}, v.Options)
	assert.Nil(t, v.Recommendation)

	result := &Result{ID: "wesichain", Recommendation: Recommendation{Name: "wesichain", Install: []string{"cargo add wesichain"}}}
	state := &State{SessionID: "s1", History: []string{"start", "wesichain"}}
	v = NewView(state, result)
	assert.Equal(t, NodeTypeResult, v.Kind)
	assert.Equal(t, 2, v.Step)
	assert.True(t, v.CanGoBack)
	assert.Empty(t, v.Options)
	if assert.NotNil(t, v.Recommendation) {
		assert.Equal(t, "wesichain", v.Recommendation.Name)
	}

	state.History[0] = "mutated"
	assert.Equal(t, "start", v.History[0])
}
