package loam

// NodeMetadata is the frontmatter of a graph node file.
//
// A step declares a question and options; a result declares a crate. The
// markdown body becomes the step description or the result description when
// the frontmatter does not set one.
type NodeMetadata struct {
	ID          string           `json:"id" mapstructure:"id"`
	Type        string           `json:"type" mapstructure:"type"`
	Question    string           `json:"question" mapstructure:"question"`
	Description string           `json:"description" mapstructure:"description"`
	Options     []OptionMetadata `json:"options" mapstructure:"options"`

	Crate   string   `json:"crate" mapstructure:"crate"`
	Install []string `json:"install" mapstructure:"install"`
	Example string   `json:"example" mapstructure:"example"`
}

// OptionMetadata is one entry of a step's options list.
type OptionMetadata struct {
	Label  string `json:"label" mapstructure:"label"`
	Next   string `json:"next" mapstructure:"next"`
	Result string `json:"result" mapstructure:"result"`
}

func (m NodeMetadata) isResult() bool {
	switch m.Type {
	case "result":
		return true
	case "step":
		return false
	}
	return m.Crate != "" || len(m.Install) > 0
}
