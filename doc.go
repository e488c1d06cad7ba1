/*
Package wayfinder answers "which crate should I use?" by walking a user through
a small decision graph until it reaches a recommendation.

# Concept

A graph is made of Steps (a question plus options) and Results (a recommended
crate with install commands and an example). Every option leads either to the
next step or to a result. The engine is stateless: a session is a
*domain.State whose History starts at the root step, and every operation
returns a new state.

Graphs are validated when the engine is built. A graph with cycles, dangling
references, unreachable nodes or paths deeper than the configured bound is
rejected by New.

# Usage

	loader, _ := catalog.Loader()
	eng, err := wayfinder.New("", wayfinder.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state := eng.Start(ctx, "session-1")
	state, _ = eng.SelectIndex(ctx, state, 0)
	node, _ := eng.Current(state)

Graphs may also live on disk as markdown files with frontmatter (the default
when New is given a directory), or in a single YAML file loaded with
memory.LoadYAML.

The search overlay lives in pkg/search, the HTTP and MCP adapters in
pkg/adapters.
*/
package wayfinder
