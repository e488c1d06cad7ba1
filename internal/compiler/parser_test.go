package compiler

import (
	"testing"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name     string
		raw      string
		wantType string
		wantErr  bool
	}{
		{
			name:     "Explicit Step",
			raw:      `{"id":"start","type":"step","question":"Q?","options":[{"label":"a","next":"b"}]}`,
			wantType: domain.NodeTypeStep,
		},
		{
			name:     "Inferred Result",
			raw:      `{"id":"wesichain","recommendation":{"name":"wesichain","install":["cargo add wesichain"]}}`,
			wantType: domain.NodeTypeResult,
		},
		{
			name:     "Inferred Step",
			raw:      `{"id":"q","question":"Q?"}`,
			wantType: domain.NodeTypeStep,
		},
		{name: "Missing ID", raw: `{"type":"step"}`, wantErr: true},
		{name: "Unknown Type", raw: `{"id":"x","type":"tool"}`, wantErr: true},
		{name: "Option Without Target", raw: `{"id":"x","type":"step","options":[{"label":"dead end"}]}`, wantErr: true},
		{name: "Malformed", raw: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := p.Parse([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, node.NodeType())
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	p := NewParser()
	original := &domain.Step{
		ID:          "agent-memory",
		Question:    "Does your agent need persistence?",
		Description: "Save and resume agent state across restarts",
		Options: []domain.Option{
			domain.GoTo("Yes, I need checkpointing", "checkpoint-backend"),
			domain.Recommend("No, in-memory is fine", "wesichain-agent"),
		},
	}

	raw, err := Encode(original)
	require.NoError(t, err)

	node, err := p.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, original, node)
}
