package compiler

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Parser is responsible for converting raw bytes into a Node.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// envelope peeks at the discriminator before decoding the variant.
type envelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Parse takes the raw JSON content and decodes it into a Step or a Result.
// A missing type is inferred: nodes with a recommendation are results,
// everything else is a step.
func (p *Parser) Parse(data []byte) (domain.Node, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse node: %w", err)
	}
	if env.ID == "" {
		return nil, fmt.Errorf("node missing ID")
	}

	nodeType := env.Type
	if nodeType == "" {
		var peek struct {
			Recommendation json.RawMessage `json:"recommendation"`
		}
		_ = json.Unmarshal(data, &peek)
		nodeType = domain.NodeTypeStep
		if len(peek.Recommendation) > 0 {
			nodeType = domain.NodeTypeResult
		}
	}

	switch nodeType {
	case domain.NodeTypeStep:
		var step domain.Step
		if err := json.Unmarshal(data, &step); err != nil {
			return nil, fmt.Errorf("failed to parse step %s: %w", env.ID, err)
		}
		return &step, nil
	case domain.NodeTypeResult:
		var result domain.Result
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to parse result %s: %w", env.ID, err)
		}
		return &result, nil
	default:
		return nil, fmt.Errorf("node %s has unknown type %q", env.ID, nodeType)
	}
}

// Encode is the inverse of Parse. Loaders use it to hand nodes to the engine
// in the same raw format regardless of where they were read from.
func Encode(n domain.Node) ([]byte, error) {
	switch v := n.(type) {
	case *domain.Step:
		return json.Marshal(struct {
			Type string `json:"type"`
			*domain.Step
		}{domain.NodeTypeStep, v})
	case *domain.Result:
		return json.Marshal(struct {
			Type string `json:"type"`
			*domain.Result
		}{domain.NodeTypeResult, v})
	default:
		return nil, fmt.Errorf("cannot encode node of type %T", n)
	}
}
