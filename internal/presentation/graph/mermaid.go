package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Overlay marks the path of a session on the exported graph.
type Overlay struct {
	Visited []string
	Current string
}

// OverlayFor builds the overlay of a session state.
func OverlayFor(state *domain.State) *Overlay {
	if state == nil {
		return nil
	}
	return &Overlay{Visited: state.History, Current: state.CurrentID()}
}

// GenerateMermaid renders a flowchart of the decision graph.
// The root step is a circle, other steps are decision rhombi and results
// are rounded boxes labelled with the recommended crate.
func GenerateMermaid(nodes []domain.Node, rootID string, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		id := sanitizeMermaidID(node.NodeID())

		switch n := node.(type) {
		case *domain.Step:
			opener, closer := "{", "}"
			if n.ID == rootID {
				opener, closer = "((", "))"
			}
			fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, quote(n.Question), closer)
			for _, opt := range n.Options {
				arrow := "-->"
				if opt.Target.Terminal() {
					arrow = "-.->"
				}
				fmt.Fprintf(&sb, "    %s %s|\"%s\"| %s\n", id, arrow, quote(opt.Label), sanitizeMermaidID(opt.Target.TargetID()))
			}
		case *domain.Result:
			name := n.Recommendation.Name
			if name == "" {
				name = n.ID
			}
			fmt.Fprintf(&sb, "    %s(\"%s\")\n", id, quote(name))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Session path\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, v := range overlay.Visited {
			id := sanitizeMermaidID(v)
			if id == "" || seen[id] || v == overlay.Current {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", id)
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

func quote(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_").Replace(id)
}
