package wayfinder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Runner drives an Engine over plain line-based IO. It is the fallback used
// when no terminal is attached, and the harness for scripted sessions.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner over in and out.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{Input: in, Output: out}
}

// Run reads commands until "q" or EOF. Commands are an option number, "b" to
// go back and "r" to start over. It returns the final state.
func (r *Runner) Run(ctx context.Context, engine *Engine, sessionID string) (*domain.State, error) {
	if r.Input == nil {
		return nil, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lines := bufio.NewReader(r.Input)

	state := engine.Start(ctx, sessionID)
	for {
		node, err := engine.Current(state)
		if err != nil {
			return state, err
		}
		r.render(state, node)

		fmt.Fprint(r.Output, "> ")
		text, err := lines.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && text != "") {
			if errors.Is(err, io.EOF) {
				return state, nil
			}
			return state, fmt.Errorf("input error: %w", err)
		}

		switch cmd := strings.TrimSpace(text); cmd {
		case "q", "quit", "exit":
			fmt.Fprintln(r.Output, "Bye!")
			return state, nil
		case "b", "back":
			state = engine.Back(ctx, state)
		case "r", "reset":
			state = engine.Reset(ctx, state)
		default:
			n, convErr := strconv.Atoi(cmd)
			if convErr != nil {
				fmt.Fprintf(r.Output, "Unknown command %q\n", cmd)
				continue
			}
			next, selErr := engine.SelectIndex(ctx, state, n-1)
			if selErr != nil {
				fmt.Fprintf(r.Output, "No option %d\n", n)
				continue
			}
			state = next
		}
	}
}

func (r *Runner) render(state *domain.State, node domain.Node) {
	switch n := node.(type) {
	case *domain.Step:
		fmt.Fprintf(r.Output, "\nStep %d\n%s\n", len(state.History), n.Question)
		if n.Description != "" {
			fmt.Fprintln(r.Output, n.Description)
		}
		for i, opt := range n.Options {
			arrow := ""
			if !opt.Target.Terminal() {
				arrow = " →"
			}
			fmt.Fprintf(r.Output, "  %d. %s%s\n", i+1, opt.Label, arrow)
		}
		if !state.AtRoot() {
			fmt.Fprintln(r.Output, "  b. ← Back")
		}
	case *domain.Result:
		fmt.Fprint(r.Output, r.renderContent(RecommendationMarkdown(n.Recommendation)))
		fmt.Fprintln(r.Output, "  r. Start Over   b. ← Back")
	}
}

func (r *Runner) renderContent(md string) string {
	if r.Renderer == nil {
		return md
	}
	out, err := r.Renderer(md)
	if err != nil {
		return md
	}
	return out
}

// RecommendationMarkdown formats a recommendation as a markdown document.
func RecommendationMarkdown(rec domain.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n## Recommended: %s\n\n", rec.Name)
	if rec.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", rec.Description)
	}
	if len(rec.Install) > 0 {
		b.WriteString("### Install\n\n```sh\n")
		for _, cmd := range rec.Install {
			b.WriteString(cmd + "\n")
		}
		b.WriteString("```\n\n")
	}
	if rec.Example != "" {
		fmt.Fprintf(&b, "### Example\n\n```rust\n%s\n```\n\n", rec.Example)
	}
	return b.String()
}
