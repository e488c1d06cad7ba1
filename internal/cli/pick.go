package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/compare"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/search"
	tea "github.com/charmbracelet/bubbletea"
)

// PickOptions configures an interactive picker session.
type PickOptions struct {
	Config      config.Config
	Engine      *wayfinder.Engine
	Index       ports.SearchIndex
	SearchHooks domain.SearchHooks
	Logger      *slog.Logger
	SessionID   string

	In  io.Reader
	Out io.Writer
	// Interactive selects the full-screen wizard; otherwise commands are read
	// line by line.
	Interactive bool
	// Compare shows the code comparison carousel in the interactive wizard.
	Compare bool
}

// RunPick runs the wizard and returns the final state.
func RunPick(ctx context.Context, opts PickOptions) (*domain.State, error) {
	if !opts.Interactive {
		r := wayfinder.NewRunner(opts.In, opts.Out)
		state, err := r.Run(ctx, opts.Engine, opts.SessionID)
		return state, HandleExecutionError(err)
	}

	tui.PrintBanner(opts.Out, wayfinder.Version)

	modelOpts := []tui.ModelOption{tui.WithRenderer(tui.NewRenderer(80))}
	if opts.Index != nil {
		sm := tui.NewSearchModel(opts.Index,
			search.WithDelay(opts.Config.Search.Delay),
			search.WithLimit(opts.Config.Search.Limit),
			search.WithLogger(opts.Logger),
			search.WithHooks(opts.SearchHooks),
		)
		modelOpts = append(modelOpts, tui.WithSearch(sm))
	}
	if opts.Compare {
		modelOpts = append(modelOpts, tui.WithCompare(tui.NewCompareModel(compare.WithLogger(opts.Logger))))
	}

	m := tui.NewModel(ctx, opts.Engine, opts.SessionID, modelOpts...)
	state, err := tui.Run(ctx, m, tea.WithInput(opts.In), tea.WithOutput(opts.Out))
	return state, HandleExecutionError(err)
}
