package dsl

import "github.com/aretw0/wayfinder/pkg/domain"

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	step *domain.Step
}

// Question sets the prompt shown for the step.
func (s *StepBuilder) Question(text string) *StepBuilder {
	s.step.Question = text
	return s
}

// Describe sets the optional help text under the question.
func (s *StepBuilder) Describe(text string) *StepBuilder {
	s.step.Description = text
	return s
}

// Next adds an option leading to another step.
func (s *StepBuilder) Next(label, stepID string) *StepBuilder {
	s.step.Options = append(s.step.Options, domain.GoTo(label, stepID))
	return s
}

// Recommend adds an option leading to a result.
func (s *StepBuilder) Recommend(label, resultID string) *StepBuilder {
	s.step.Options = append(s.step.Options, domain.Recommend(label, resultID))
	return s
}

// Build returns the underlying step.
func (s *StepBuilder) Build() *domain.Step {
	return s.step
}

// ResultBuilder provides a fluent API for configuring a recommendation.
type ResultBuilder struct {
	result *domain.Result
}

// Crate sets the recommended package name (defaults to the result id).
func (r *ResultBuilder) Crate(name string) *ResultBuilder {
	r.result.Recommendation.Name = name
	return r
}

// Description sets the one-line summary of the recommendation.
func (r *ResultBuilder) Description(text string) *ResultBuilder {
	r.result.Recommendation.Description = text
	return r
}

// Install appends installation commands.
func (r *ResultBuilder) Install(cmds ...string) *ResultBuilder {
	r.result.Recommendation.Install = append(r.result.Recommendation.Install, cmds...)
	return r
}

// Example sets the code sample.
func (r *ResultBuilder) Example(code string) *ResultBuilder {
	r.result.Recommendation.Example = code
	return r
}

// Build returns the underlying result.
func (r *ResultBuilder) Build() *domain.Result {
	return r.result
}
