package main

import (
	"fmt"
	"io"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/compiler"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the graph for consistency",
	Long: `Crawls the graph from the root step and reports dead links, unreachable
nodes, cycles, options pointing at the wrong kind of node and paths deeper
than max_depth.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runValidate(cfg); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return printValid(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(c config.Config) error {
	loader, err := cli.GraphLoader(c)
	if err != nil {
		return err
	}
	return validator.ValidateGraph(loader, compiler.NewParser(), cli.RootOf(loader),
		validator.WithMaxDepth(c.MaxDepth),
	)
}

func printValid(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Graph is valid! ✅")
	return err
}
