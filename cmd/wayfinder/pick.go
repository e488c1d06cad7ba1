package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Answer a few questions and get a crate recommendation",
	Long: `Runs the wizard. On a terminal it opens the interactive view, where
ctrl+k searches the documentation. Otherwise it reads option numbers line by
line ("b" goes back, "r" starts over, "q" quits). With --compare the
interactive view also rotates through code samples; tab moves to the next one
and c copies the Wesichain code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		plain, _ := cmd.Flags().GetBool("plain")
		showCompare, _ := cmd.Flags().GetBool("compare")
		return runPick(cmd.Context(), sessionID, !plain && cli.IsTerminal(os.Stdin) && cli.IsTerminal(os.Stdout), showCompare)
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().String("session", "cli", "Session id")
	pickCmd.Flags().Bool("plain", false, "Read answers line by line even on a terminal")
	pickCmd.Flags().Bool("compare", false, "Show the Python vs Wesichain code comparison")
}

func runPick(ctx context.Context, sessionID string, interactive, showCompare bool) error {
	engine, err := cli.BuildEngine(cfg, logger, lifecycleLogger(logger))
	if err != nil {
		return err
	}

	index, closeIndex, err := cli.BuildIndex(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeIndex()

	_, err = cli.RunPick(ctx, cli.PickOptions{
		Config:      cfg,
		Engine:      engine,
		Index:       index,
		SearchHooks: searchLogger(logger),
		Logger:      logger,
		SessionID:   sessionID,
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: interactive,
		Compare:     showCompare,
	})
	return err
}

func lifecycleLogger(l *slog.Logger) domain.LifecycleHooks {
	log := func(msg string) func(context.Context, *domain.NavigationEvent) {
		return func(ctx context.Context, e *domain.NavigationEvent) {
			l.DebugContext(ctx, msg, "session", e.SessionID, "from", e.FromID, "to", e.ToID, "depth", e.Depth)
		}
	}
	return domain.LifecycleHooks{
		OnSelect: log("option selected"),
		OnBack:   log("went back"),
		OnReset:  log("reset"),
		OnResult: log("result reached"),
	}
}

func searchLogger(l *slog.Logger) domain.SearchHooks {
	return domain.SearchHooks{
		OnResults: func(e *domain.LookupEvent) {
			l.Debug("search results", "query", e.Query, "hits", e.Hits, "took", e.Duration)
		},
		OnFailure: func(e *domain.LookupEvent) {
			l.Warn("search failed", "query", e.Query, "error", e.Err)
		},
		OnStale: func(e *domain.LookupEvent) {
			l.Debug("search result dropped", "query", e.Query, "generation", e.Generation)
		},
	}
}
