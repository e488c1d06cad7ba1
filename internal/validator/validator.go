package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/internal/compiler"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// DefaultMaxDepth bounds the number of selections between the root and any result.
const DefaultMaxDepth = 8

// GraphError aggregates every defect found in a graph.
type GraphError struct {
	Problems []string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Problems), strings.Join(e.Problems, "\n- "))
}

// Option configures validation.
type Option func(*checker)

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *checker) {
		c.maxDepth = depth
	}
}

// ValidateGraph compiles the graph served by loader and checks it starting from rootID.
func ValidateGraph(loader ports.GraphLoader, parser *compiler.Parser, rootID string, opts ...Option) error {
	g, err := parser.Compile(loader, rootID)
	if err != nil {
		return &GraphError{Problems: []string{err.Error()}}
	}
	return Check(g, opts...)
}

// Check verifies that g is a DAG rooted at a Step, that every option leads to
// an existing node of the kind it claims, that every node is reachable from the
// root and that no path is deeper than the configured bound.
func Check(g *domain.Graph, opts ...Option) error {
	c := &checker{
		graph:    g,
		maxDepth: DefaultMaxDepth,
		state:    make(map[string]visit),
		depth:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}

	root, ok := g.Lookup(g.Root)
	if !ok {
		return &GraphError{Problems: []string{fmt.Sprintf("Root node '%s' not found", g.Root)}}
	}
	if _, isStep := root.(*domain.Step); !isStep {
		c.report("Root node '%s' must be a step, got %s", g.Root, root.NodeType())
	}

	c.walk(g.Root, 0)

	for _, n := range g.Nodes() {
		if _, seen := c.state[n.NodeID()]; !seen {
			if n.NodeType() == domain.NodeTypeResult {
				c.report("Orphaned result: '%s' is not reachable from '%s'", n.NodeID(), g.Root)
			} else {
				c.report("Unreachable step: '%s'", n.NodeID())
			}
		}
	}

	if len(c.problems) > 0 {
		return &GraphError{Problems: c.problems}
	}
	return nil
}

type visit int

const (
	visiting visit = iota + 1
	done
)

type checker struct {
	graph    *domain.Graph
	maxDepth int
	state    map[string]visit
	depth    map[string]int
	problems []string
	seen     map[string]bool
}

func (c *checker) report(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	if c.seen[msg] {
		return
	}
	c.seen[msg] = true
	c.problems = append(c.problems, msg)
}

// walk is a depth-first traversal; a node seen while still "visiting" closes a cycle.
func (c *checker) walk(id string, depth int) {
	switch c.state[id] {
	case visiting:
		c.report("Cycle detected through '%s'", id)
		return
	case done:
		if depth <= c.depth[id] {
			return
		}
	}

	if depth > c.maxDepth {
		c.report("Node '%s' is %d selections deep (max %d)", id, depth, c.maxDepth)
		c.state[id] = done
		return
	}

	c.state[id] = visiting
	c.depth[id] = depth
	defer func() { c.state[id] = done }()

	node, _ := c.graph.Lookup(id)
	step, ok := node.(*domain.Step)
	if !ok {
		return
	}

	if len(step.Options) == 0 {
		c.report("Step '%s' has no options", id)
	}

	labels := make(map[string]bool, len(step.Options))
	for i, opt := range step.Options {
		if labels[opt.Label] {
			c.report("Step '%s' repeats option label '%s'", id, opt.Label)
		}
		labels[opt.Label] = true

		if opt.Target == nil {
			c.report("Option %d of '%s' leads nowhere", i, id)
			continue
		}

		targetID := opt.Target.TargetID()
		target, exists := c.graph.Lookup(targetID)
		if !exists {
			c.report("Missing node: '%s' referenced by '%s'", targetID, id)
			continue
		}

		wantResult := opt.Target.Terminal()
		if isResult := target.NodeType() == domain.NodeTypeResult; isResult != wantResult {
			c.report("Option '%s' of '%s' expects %s '%s' but found %s",
				opt.Label, id, expectedKind(wantResult), targetID, target.NodeType())
			continue
		}

		c.walk(targetID, depth+1)
	}
}

func expectedKind(result bool) string {
	if result {
		return domain.NodeTypeResult
	}
	return domain.NodeTypeStep
}
