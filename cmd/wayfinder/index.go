package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/pkg/adapters/sqlite"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the prebuilt documentation index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Index the documentation collection into a sqlite file",
	Long: `Reads every published page of search.docs (or --docs) and writes a
full-text index to --out. Point search.index at the file to use it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("docs") {
			cfg.Search.Docs, _ = cmd.Flags().GetString("docs")
		}
		out, _ := cmd.Flags().GetString("out")
		return runIndexBuild(cmd.Context(), cmd.OutOrStdout(), cfg, out)
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexBuildCmd)
	indexBuildCmd.Flags().String("docs", "", "Documentation directory (default: search.docs)")
	indexBuildCmd.Flags().String("out", "wayfinder.db", "Index file to write")
}

func runIndexBuild(ctx context.Context, w io.Writer, c config.Config, out string) error {
	if c.Search.Docs == "" {
		return errors.New("no documentation directory: set search.docs or --docs")
	}
	entries, err := cli.LoadEntries(ctx, c, logger)
	if err != nil {
		return err
	}

	idx, err := sqlite.Open(ctx, out, sqlite.WithBaseURL(c.Search.BaseURL))
	if err != nil {
		return err
	}
	defer idx.Close()

	if err := idx.Build(ctx, entries); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Indexed %d pages into %s\n", len(entries), out)
	return err
}
