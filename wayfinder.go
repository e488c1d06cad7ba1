package wayfinder

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/internal/runtime"
	loamAdapter "github.com/aretw0/wayfinder/pkg/adapters/loam"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Engine is the high-level entry point for the navigator.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime     *runtime.Engine
	loader      ports.GraphLoader
	runtimeOpts []runtime.EngineOption
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom GraphLoader, bypassing the default Loam initialization.
func WithLoader(l ports.GraphLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEntryNode configures the root step (default: "start").
func WithEntryNode(nodeID string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithEntryNode(nodeID))
	}
}

// WithMaxDepth overrides the maximum number of selections between the root
// and any result.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithMaxDepth(depth))
	}
}

// New compiles and validates a decision graph.
// By default the graph is read from a Loam repository at repoPath. With
// WithLoader, repoPath only names the graph. An invalid graph is an error.
func New(repoPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom loader is provided")
		}
		loader, err := loamAdapter.Open(repoPath)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	}
	if repoPath != "" {
		if abs, err := filepath.Abs(repoPath); err == nil {
			eng.Name = filepath.Base(abs)
		}
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("graph", eng.Name)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)

	rt, err := runtime.NewEngine(eng.loader, runtimeOpts...)
	if err != nil {
		return nil, err
	}
	eng.runtime = rt
	return eng, nil
}

// Start creates a session positioned at the root step.
func (e *Engine) Start(ctx context.Context, sessionID string) *domain.State {
	return e.runtime.Start(ctx, sessionID)
}

// Current resolves the node the session is looking at.
func (e *Engine) Current(state *domain.State) (domain.Node, error) {
	return e.runtime.Current(state)
}

// Select follows an option of the current step. Stale options are ignored.
func (e *Engine) Select(ctx context.Context, state *domain.State, opt domain.Option) (*domain.State, error) {
	return e.runtime.Select(ctx, state, opt)
}

// SelectIndex follows the i-th option of the current step.
func (e *Engine) SelectIndex(ctx context.Context, state *domain.State, i int) (*domain.State, error) {
	return e.runtime.SelectIndex(ctx, state, i)
}

// Back undoes the last selection.
func (e *Engine) Back(ctx context.Context, state *domain.State) *domain.State {
	return e.runtime.Back(ctx, state)
}

// Reset returns to the root step.
func (e *Engine) Reset(ctx context.Context, state *domain.State) *domain.State {
	return e.runtime.Reset(ctx, state)
}

// Inspect returns every node for visualization or introspection tools.
func (e *Engine) Inspect() []domain.Node {
	return e.runtime.Inspect()
}

// Graph returns the compiled graph.
func (e *Engine) Graph() *domain.Graph {
	return e.runtime.Graph()
}

// RootID returns the entry step.
func (e *Engine) RootID() string {
	return e.runtime.RootID()
}

// Watch returns a channel that signals when the underlying graph changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying GraphLoader used by the engine.
func (e *Engine) Loader() ports.GraphLoader {
	return e.loader
}
