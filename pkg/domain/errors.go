package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidOption is returned when an option has no target, two targets, or
// does not exist at the requested position.
var ErrInvalidOption = errors.New("invalid option")

// ErrNodeNotFound is returned when a referenced node does not exist.
var ErrNodeNotFound = errors.New("node not found")

// ErrIndexNotReady is returned by search indexes that are still loading.
var ErrIndexNotReady = errors.New("search index not ready")

// GraphDefectError signals a malformed graph detected while resolving a state.
// It is a configuration defect, not a condition callers should retry.
type GraphDefectError struct {
	NodeID string
	Reason string
}

func (e *GraphDefectError) Error() string {
	return fmt.Sprintf("graph defect at %q: %s", e.NodeID, e.Reason)
}

func (e *GraphDefectError) Unwrap() error {
	return ErrNodeNotFound
}

// CollisionError is returned when two nodes claim the same identifier.
type CollisionError struct {
	ID       string
	Existing string
	Incoming string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("collision detected: ID '%s' is already a %s, cannot add %s", e.ID, e.Existing, e.Incoming)
}
