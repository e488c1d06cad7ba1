package domain

// View is the presentation-neutral rendering of a session's current node.
// Adapters (HTTP, MCP, terminal) serialize it as-is.
type View struct {
	SessionID string   `json:"session_id"`
	NodeID    string   `json:"node_id"`
	Kind      string   `json:"kind"`
	Step      int      `json:"step"`
	History   []string `json:"history"`
	CanGoBack bool     `json:"can_go_back"`

	Question    string       `json:"question,omitempty"`
	Description string       `json:"description,omitempty"`
	Options     []ViewOption `json:"options,omitempty"`

	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// ViewOption is a selectable option. Index is what callers pass back to
// select it.
type ViewOption struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Terminal bool   `json:"terminal"`
}

// NewView combines a state with the node it currently points at.
func NewView(state *State, node Node) *View {
	v := &View{
		SessionID: state.SessionID,
		NodeID:    node.NodeID(),
		Kind:      node.NodeType(),
		Step:      len(state.History),
		History:   append([]string(nil), state.History...),
		CanGoBack: !state.AtRoot(),
	}
	switch n := node.(type) {
	case *Step:
		v.Question = n.Question
		v.Description = n.Description
		v.Options = make([]ViewOption, len(n.Options))
		for i, opt := range n.Options {
			v.Options[i] = ViewOption{Index: i, Label: opt.Label, Terminal: opt.Target != nil && opt.Target.Terminal()}
		}
	case *Result:
		rec := n.Recommendation
		v.Recommendation = &rec
	}
	return v
}
