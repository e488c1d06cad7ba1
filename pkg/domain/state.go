package domain

// State is the snapshot of one navigator session.
type State struct {
	// SessionID identifies the session in stores and streams.
	SessionID string `json:"session_id"`

	// History is the stack of visited node ids, starting with the root.
	// It is never empty.
	History []string `json:"history"`
}

// NewState creates a clean state positioned at the root node.
func NewState(sessionID, rootID string) *State {
	return &State{
		SessionID: sessionID,
		History:   []string{rootID},
	}
}

// CurrentID returns the last history entry, or "" for an empty history.
func (s *State) CurrentID() string {
	if len(s.History) == 0 {
		return ""
	}
	return s.History[len(s.History)-1]
}

// Depth is the number of selections made so far.
func (s *State) Depth() int {
	if len(s.History) == 0 {
		return 0
	}
	return len(s.History) - 1
}

// AtRoot reports whether Back would be a no-op.
func (s *State) AtRoot() bool {
	return len(s.History) <= 1
}

// Clone returns a deep copy safe for mutation.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.History = make([]string, len(s.History))
	copy(next.History, s.History)
	return &next
}
