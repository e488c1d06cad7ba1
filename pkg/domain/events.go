package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSelect       EventType = "select"
	EventBack         EventType = "back"
	EventReset        EventType = "reset"
	EventResultReach  EventType = "result_reached"
	EventLookup       EventType = "lookup"
	EventLookupFailed EventType = "lookup_failed"
	EventLookupStale  EventType = "lookup_stale"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NavigationEvent describes a history change.
type NavigationEvent struct {
	EventBase
	SessionID string `json:"session_id"`
	FromID    string `json:"from_id"`
	ToID      string `json:"to_id"`
	Label     string `json:"label,omitempty"`
	Depth     int    `json:"depth"`
}

// LifecycleHooks defines callbacks for navigator observability.
type LifecycleHooks struct {
	OnSelect func(context.Context, *NavigationEvent)
	OnBack   func(context.Context, *NavigationEvent)
	OnReset  func(context.Context, *NavigationEvent)
	OnResult func(context.Context, *NavigationEvent)
}

// LookupEvent describes one search lookup.
type LookupEvent struct {
	EventBase
	Query      string        `json:"query"`
	Generation uint64        `json:"generation"`
	Hits       int           `json:"hits"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// SearchHooks defines callbacks for search overlay observability.
type SearchHooks struct {
	OnLookup  func(*LookupEvent)
	OnResults func(*LookupEvent)
	OnFailure func(*LookupEvent)
	OnStale   func(*LookupEvent)
}
