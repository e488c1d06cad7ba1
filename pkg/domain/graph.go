package domain

import (
	"fmt"
	"sort"
)

// DefaultRootID is the entry step used when none is configured.
const DefaultRootID = "start"

// Graph is the combined lookup table of Steps and Results.
// Step and Result identifiers share one namespace.
type Graph struct {
	Root  string
	nodes map[string]Node
	order []string
}

// NewGraph creates an empty graph rooted at root (DefaultRootID if empty).
func NewGraph(root string) *Graph {
	if root == "" {
		root = DefaultRootID
	}
	return &Graph{
		Root:  root,
		nodes: make(map[string]Node),
	}
}

// Add inserts a node. It fails on an empty id or when the id is already taken,
// whichever variant holds it.
func (g *Graph) Add(n Node) error {
	if n == nil {
		return fmt.Errorf("cannot add nil node")
	}
	id := n.NodeID()
	if id == "" {
		return fmt.Errorf("%s node missing ID", n.NodeType())
	}
	if existing, ok := g.nodes[id]; ok {
		return &CollisionError{ID: id, Existing: existing.NodeType(), Incoming: n.NodeType()}
	}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return nil
}

// Lookup resolves an id against the combined table.
func (g *Graph) Lookup(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Step returns the step with the given id, if any.
func (g *Graph) Step(id string) (*Step, bool) {
	s, ok := g.nodes[id].(*Step)
	return s, ok
}

// Result returns the result with the given id, if any.
func (g *Graph) Result(id string) (*Result, bool) {
	r, ok := g.nodes[id].(*Result)
	return r, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// IDs returns all node ids, sorted.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}
