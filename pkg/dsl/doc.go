/*
Package dsl provides a fluent builder for decision graphs.

It lets a graph be declared in Go instead of YAML or markdown files, which is
how the built-in catalog and most tests define their graphs.

Example usage:

	b := dsl.New()

	b.Add("start").
		Question("What are you building?").
		Next("An agent", "agent-memory").
		Recommend("Just exploring", "core")

	b.Result("core").
		Description("The foundation crate").
		Install("cargo add core")

	loader, err := b.Build()
	// ... pass loader to wayfinder.New(...)
*/
package dsl
