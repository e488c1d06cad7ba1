package ports

import "context"

// GraphLoader defines how the engine retrieves node definitions.
// This allows the storage layer (Loam, YAML, Memory) to be decoupled.
type GraphLoader interface {
	// GetNode retrieves the raw definition of a node by ID.
	// It returns the raw bytes (which the compiler will parse) or an error.
	GetNode(id string) ([]byte, error)

	// ListNodes returns a simplified list of all node IDs available in the graph.
	// The engine compiles every listed node up front, so the whole table is
	// known before the first session starts.
	ListNodes() ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that is signaled with the changed ID whenever
	// the underlying source changes.
	Watch(ctx context.Context) (<-chan string, error)
}
