package domain

// StateDiff represents the changes between two states.
// It is serialized to JSON for partial updates on stream subscribers.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// CurrentNodeID is set when the last history entry changed.
	CurrentNodeID *string `json:"current_node_id,omitempty"`

	// History describes how the stack moved.
	History *HistoryDelta `json:"history,omitempty"`
}

// HistoryDelta represents changes to the history stack.
// Clients drop Truncated entries from the tail, then append Appended.
type HistoryDelta struct {
	Truncated int      `json:"truncated,omitempty"`
	Appended  []string `json:"appended,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	if oldState == nil || oldState.CurrentID() != newState.CurrentID() {
		current := newState.CurrentID()
		diff.CurrentNodeID = &current
	}

	diff.History = diffHistory(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffHistory finds the common prefix and reports what was popped and pushed.
func diffHistory(old *State, new *State) *HistoryDelta {
	if old == nil {
		if len(new.History) == 0 {
			return nil
		}
		return &HistoryDelta{Appended: append([]string(nil), new.History...)}
	}

	common := 0
	for common < len(old.History) && common < len(new.History) && old.History[common] == new.History[common] {
		common++
	}

	truncated := len(old.History) - common
	appended := new.History[common:]
	if truncated == 0 && len(appended) == 0 {
		return nil
	}

	delta := &HistoryDelta{Truncated: truncated}
	if len(appended) > 0 {
		delta.Appended = append([]string(nil), appended...)
	}
	return delta
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.CurrentNodeID == nil && d.History == nil
}

// Apply replays the diff on a history slice and returns the result.
func (d *StateDiff) Apply(history []string) []string {
	if d == nil || d.History == nil {
		return history
	}
	keep := len(history) - d.History.Truncated
	if keep < 0 {
		keep = 0
	}
	out := append([]string(nil), history[:keep]...)
	return append(out, d.History.Appended...)
}
