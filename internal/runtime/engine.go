package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/wayfinder/internal/compiler"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/internal/validator"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Engine navigates a compiled decision graph. It holds no per-session data:
// every operation takes a *domain.State and returns a new one.
type Engine struct {
	graph    *domain.Graph
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	rootID   string
	maxDepth int
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithEntryNode overrides the root step id (default "start").
func WithEntryNode(id string) EngineOption {
	return func(e *Engine) {
		if id != "" {
			e.rootID = id
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers navigation observers.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMaxDepth overrides the selection depth bound checked at build time.
func WithMaxDepth(depth int) EngineOption {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// NewEngine compiles and validates the graph exposed by loader.
// An invalid graph never produces an Engine.
func NewEngine(loader ports.GraphLoader, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		logger:   logging.NewNop(),
		rootID:   domain.DefaultRootID,
		maxDepth: validator.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}

	graph, err := compiler.NewParser().Compile(loader, e.rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to compile graph: %w", err)
	}
	return e.withGraph(graph)
}

// NewEngineFromGraph validates an already assembled graph.
func NewEngineFromGraph(graph *domain.Graph, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		logger:   logging.NewNop(),
		rootID:   graph.Root,
		maxDepth: validator.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	graph.Root = e.rootID
	return e.withGraph(graph)
}

func (e *Engine) withGraph(graph *domain.Graph) (*Engine, error) {
	if err := validator.Check(graph, validator.WithMaxDepth(e.maxDepth)); err != nil {
		return nil, err
	}
	e.graph = graph
	e.logger.Debug("graph ready", "root", e.rootID, "nodes", graph.Len())
	return e, nil
}

// Graph returns the compiled graph.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Inspect lists every node of the graph in insertion order.
func (e *Engine) Inspect() []domain.Node {
	return e.graph.Nodes()
}

// RootID returns the entry step.
func (e *Engine) RootID() string {
	return e.rootID
}
