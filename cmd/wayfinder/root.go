package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wayfinder",
	Short: "Wayfinder recommends a crate by walking a decision tree",
	Long: `Wayfinder asks a short series of questions and recommends the crate that
fits, with install commands and a starting example. It also searches the
documentation and serves the same wizard over HTTP and MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx := cli.NewSignalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	ctx.Cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the decision graph (default: built-in catalog)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig resolves the configuration: file, then WAYFINDER_* variables,
// then flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	required := path != ""
	if !required {
		path = config.DefaultFile
	}

	c, err := config.Load(path, required)
	if err != nil {
		return err
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	if cmd.Flags().Changed("dir") {
		c.Dir, _ = cmd.Flags().GetString("dir")
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	l, err := cli.NewLogger(c)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}
