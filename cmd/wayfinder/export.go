package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/config"
	loamAdapter "github.com/aretw0/wayfinder/pkg/adapters/loam"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the decision graph as markdown files",
	Long: `Writes one markdown file per node into dir, in the layout --dir reads.
Use it to start a custom graph from the built-in catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context, w io.Writer, c config.Config, dir string) error {
	engine, err := cli.BuildEngine(c, logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}
	nodes := engine.Inspect()
	if err := loamAdapter.ExportDir(ctx, dir, nodes); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Exported %d nodes to %s\n", len(nodes), dir)
	return err
}
