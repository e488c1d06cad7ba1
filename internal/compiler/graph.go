package compiler

import (
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Compile loads every node listed by the loader and assembles the combined
// Step/Result table. It stops at the first load, parse or collision error.
func (p *Parser) Compile(loader ports.GraphLoader, rootID string) (*domain.Graph, error) {
	ids, err := loader.ListNodes()
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	g := domain.NewGraph(rootID)
	for _, id := range ids {
		raw, err := loader.GetNode(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load node %s: %w", id, err)
		}
		node, err := p.Parse(raw)
		if err != nil {
			return nil, err
		}
		if err := g.Add(node); err != nil {
			return nil, err
		}
	}
	return g, nil
}
