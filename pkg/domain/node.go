package domain

import (
	"encoding/json"
	"fmt"
)

// NodeType constants identify the two variants of Node in serialized form.
const (
	// NodeTypeStep poses a question and waits for an Option to be selected.
	NodeTypeStep = "step"
	// NodeTypeResult is a terminal recommendation.
	NodeTypeResult = "result"
)

// Node is a vertex in the decision graph: either a *Step or a *Result.
// The interface is sealed; no other package can add variants.
type Node interface {
	NodeID() string
	NodeType() string
	isNode()
}

// Step is a non-terminal node.
type Step struct {
	ID          string   `json:"id" yaml:"id"`
	Question    string   `json:"question" yaml:"question"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Options     []Option `json:"options" yaml:"options"`
}

func (s *Step) NodeID() string   { return s.ID }
func (s *Step) NodeType() string { return NodeTypeStep }
func (s *Step) isNode()          {}

// Contains reports whether opt is one of the step's options.
func (s *Step) Contains(opt Option) bool {
	for _, o := range s.Options {
		if o.Equal(opt) {
			return true
		}
	}
	return false
}

// Result is a terminal node. It has no outgoing transitions.
type Result struct {
	ID             string         `json:"id" yaml:"id"`
	Recommendation Recommendation `json:"recommendation" yaml:"recommendation"`
}

func (r *Result) NodeID() string   { return r.ID }
func (r *Result) NodeType() string { return NodeTypeResult }
func (r *Result) isNode()          {}

// Recommendation is opaque display data attached to a Result.
type Recommendation struct {
	Name        string   `json:"name" yaml:"name" mapstructure:"name"`
	Description string   `json:"description" yaml:"description" mapstructure:"description"`
	Install     []string `json:"install" yaml:"install" mapstructure:"install"`
	Example     string   `json:"example" yaml:"example" mapstructure:"example"`
}

// Target is where an Option leads. It is either NextStep or ShowResult.
type Target interface {
	TargetID() string
	Terminal() bool
	isTarget()
}

// NextStep points an Option to another Step.
type NextStep string

func (t NextStep) TargetID() string { return string(t) }
func (t NextStep) Terminal() bool   { return false }
func (t NextStep) isTarget()        {}

// ShowResult points an Option to a terminal Result.
type ShowResult string

func (t ShowResult) TargetID() string { return string(t) }
func (t ShowResult) Terminal() bool   { return true }
func (t ShowResult) isTarget()        {}

// Option is a selectable answer of a Step.
type Option struct {
	Label  string
	Target Target
}

// GoTo builds an Option leading to another step.
func GoTo(label, stepID string) Option {
	return Option{Label: label, Target: NextStep(stepID)}
}

// Recommend builds an Option leading to a result.
func Recommend(label, resultID string) Option {
	return Option{Label: label, Target: ShowResult(resultID)}
}

// Equal compares label and target.
func (o Option) Equal(other Option) bool {
	if o.Label != other.Label {
		return false
	}
	if o.Target == nil || other.Target == nil {
		return o.Target == nil && other.Target == nil
	}
	return o.Target.Terminal() == other.Target.Terminal() &&
		o.Target.TargetID() == other.Target.TargetID()
}

// optionWire is the serialized shape shared by JSON, YAML and frontmatter:
// {label, next} or {label, result}.
type optionWire struct {
	Label  string `json:"label" yaml:"label" mapstructure:"label"`
	Next   string `json:"next,omitempty" yaml:"next,omitempty" mapstructure:"next"`
	Result string `json:"result,omitempty" yaml:"result,omitempty" mapstructure:"result"`
}

// OptionFromWire converts the {label, next, result} form into an Option,
// rejecting options that have both or neither reference.
func OptionFromWire(label, next, result string) (Option, error) {
	switch {
	case next != "" && result != "":
		return Option{}, fmt.Errorf("option %q: %w: both next and result set", label, ErrInvalidOption)
	case next != "":
		return GoTo(label, next), nil
	case result != "":
		return Recommend(label, result), nil
	default:
		return Option{}, fmt.Errorf("option %q: %w: neither next nor result set", label, ErrInvalidOption)
	}
}

func (o Option) toWire() (optionWire, error) {
	w := optionWire{Label: o.Label}
	switch t := o.Target.(type) {
	case NextStep:
		w.Next = string(t)
	case ShowResult:
		w.Result = string(t)
	default:
		return w, fmt.Errorf("option %q: %w: missing target", o.Label, ErrInvalidOption)
	}
	return w, nil
}

// MarshalJSON implements json.Marshaler.
func (o Option) MarshalJSON() ([]byte, error) {
	w, err := o.toWire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Option) UnmarshalJSON(data []byte) error {
	var w optionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	opt, err := OptionFromWire(w.Label, w.Next, w.Result)
	if err != nil {
		return err
	}
	*o = opt
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (o Option) MarshalYAML() (any, error) {
	return o.toWire()
}

// UnmarshalYAML implements the function-style yaml unmarshaler.
func (o *Option) UnmarshalYAML(unmarshal func(any) error) error {
	var w optionWire
	if err := unmarshal(&w); err != nil {
		return err
	}
	opt, err := OptionFromWire(w.Label, w.Next, w.Result)
	if err != nil {
		return err
	}
	*o = opt
	return nil
}
