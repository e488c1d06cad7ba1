package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Wayfinder as an MCP server so agents can walk the wizard and search
the documentation as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		return runMCP(cmd.Context(), cfg, transport, addr)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
}

func newMCPServer(ctx context.Context, c config.Config) (*mcp.Server, func() error, error) {
	engine, err := cli.BuildEngine(c, logger, lifecycleLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	index, closeIndex, err := cli.BuildIndex(ctx, c, logger)
	if err != nil {
		return nil, nil, err
	}
	sessions, closeSessions, err := cli.BuildSessions(ctx, c, engine, logger)
	if err != nil {
		closeIndex()
		return nil, nil, err
	}

	opts := []mcp.Option{mcp.WithLogger(logger)}
	if index != nil {
		opts = append(opts, mcp.WithIndex(index))
	}
	cleanup := func() error {
		closeSessions()
		return closeIndex()
	}
	return mcp.NewServer(engine, sessions, opts...), cleanup, nil
}

func runMCP(ctx context.Context, c config.Config, transport, addr string) error {
	srv, cleanup, err := newMCPServer(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	switch transport {
	case "stdio":
		// Stdout carries JSON-RPC.
		log.SetOutput(os.Stderr)
		logger.Info("starting MCP server", "transport", transport)
		return srv.ServeStdio()
	case "sse":
		logger.Info("starting MCP server", "transport", transport, "addr", addr)
		return srv.ServeSSE(ctx, addr)
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	}
}
