package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/search"
	"github.com/spf13/cobra"
)

var errSearchDisabled = errors.New("search is not configured: set search.docs, search.index or search.remote")

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the documentation once and print the results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("docs") {
			cfg.Search.Docs, _ = cmd.Flags().GetString("docs")
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.Search.Limit
		}

		index, closeIndex, err := cli.BuildIndex(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeIndex()

		return runSearch(cmd.Context(), cmd.OutOrStdout(), index, strings.Join(args, " "), limit)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("docs", "", "Documentation directory to index in memory")
	searchCmd.Flags().Int("limit", 0, "Maximum number of results (default: search.limit)")
}

func runSearch(ctx context.Context, out io.Writer, index ports.SearchIndex, query string, limit int) error {
	if index == nil {
		return errSearchDisabled
	}
	hits, err := index.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}
	tui.PrintResults(out, query, search.Normalize(hits, limit))
	return nil
}
