package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/presentation/graph"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the decision graph as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart of every step and result. With --session the
path taken by that session is highlighted (sessions are read from redis when
serve.redis_url is set).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		return runGraph(cmd.Context(), cmd.OutOrStdout(), cfg, sessionID)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Highlight the path of this session")
}

func runGraph(ctx context.Context, out io.Writer, c config.Config, sessionID string) error {
	engine, err := cli.BuildEngine(c, logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	var overlay *graph.Overlay
	if sessionID != "" {
		sessions, closeSessions, err := cli.BuildSessions(ctx, c, engine, logger)
		if err != nil {
			return err
		}
		defer closeSessions()

		state, err := sessions.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		overlay = graph.OverlayFor(state)
	}

	_, err = fmt.Fprint(out, graph.GenerateMermaid(engine.Inspect(), engine.RootID(), overlay))
	return err
}
