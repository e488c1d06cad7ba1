package dsl

import (
	"fmt"

	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	order   []string
	steps   map[string]*StepBuilder
	results map[string]*ResultBuilder
	errs    []error
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		steps:   make(map[string]*StepBuilder),
		results: make(map[string]*ResultBuilder),
	}
}

// Add declares a step. Calling Add again with the same id returns the same
// builder. Reusing a result id is reported by Build.
func (b *Builder) Add(id string) *StepBuilder {
	if sb, ok := b.steps[id]; ok {
		return sb
	}
	if _, ok := b.results[id]; ok {
		b.errs = append(b.errs, &domain.CollisionError{ID: id, Existing: domain.NodeTypeResult, Incoming: domain.NodeTypeStep})
	}
	sb := &StepBuilder{step: &domain.Step{ID: id}}
	b.steps[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Result declares a terminal recommendation.
func (b *Builder) Result(id string) *ResultBuilder {
	if rb, ok := b.results[id]; ok {
		return rb
	}
	if _, ok := b.steps[id]; ok {
		b.errs = append(b.errs, &domain.CollisionError{ID: id, Existing: domain.NodeTypeStep, Incoming: domain.NodeTypeResult})
	}
	rb := &ResultBuilder{result: &domain.Result{ID: id, Recommendation: domain.Recommendation{Name: id}}}
	b.results[id] = rb
	b.order = append(b.order, id)
	return rb
}

// Nodes returns the declared nodes in declaration order.
func (b *Builder) Nodes() ([]domain.Node, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	nodes := make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		if sb, ok := b.steps[id]; ok {
			nodes = append(nodes, sb.step)
			continue
		}
		nodes = append(nodes, b.results[id].result)
	}
	return nodes, nil
}

// Graph assembles the nodes into a domain.Graph rooted at root.
func (b *Builder) Graph(root string) (*domain.Graph, error) {
	nodes, err := b.Nodes()
	if err != nil {
		return nil, err
	}
	g := domain.NewGraph(root)
	for _, n := range nodes {
		if err := g.Add(n); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Build compiles the graph into a MemoryLoader.
func (b *Builder) Build() (*memory.Loader, error) {
	nodes, err := b.Nodes()
	if err != nil {
		return nil, err
	}

	loader, err := memory.NewFromNodes(nodes...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}

	return loader, nil
}
