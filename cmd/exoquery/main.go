// Package main is the exoquery launcher: an MCP server exposing NASA
// Exoplanet Archive query tools over stdio or streamable HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/astrotools/exoquery/internal/config"
	"github.com/astrotools/exoquery/internal/mcptools"
	"github.com/astrotools/exoquery/internal/tap"
)

// version is set by the linker at build time.
var version = "dev"

type serveFlags struct {
	ConfigDir string
	TAPURL    string
	HTTPAddr  string
	LogLevel  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "exoquery",
		Short:   "MCP server for querying NASA's Exoplanet Archive",
		Version: version,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP tool server (stdio by default)",
		Long: "Start a Model Context Protocol server exposing exoplanet archive tools.\n" +
			"Serves over stdio unless an HTTP address is configured, in which case the\n" +
			"streamable HTTP transport is used.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.ConfigDir, "config-dir", ".", "directory containing exoquery.yml")
	cmd.Flags().StringVar(&flags.TAPURL, "tap-url", "", "override the TAP service base URL")
	cmd.Flags().StringVar(&flags.HTTPAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "zerolog level (trace, debug, info, warn, error)")

	return cmd
}

func runServe(ctx context.Context, flags serveFlags) error {
	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags override the config file.
	if flags.TAPURL != "" {
		cfg.TAPBaseURL = flags.TAPURL
	}
	if flags.HTTPAddr != "" {
		cfg.HTTPAddr = flags.HTTPAddr
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	// Logs go to stderr: stdout belongs to the stdio MCP transport.
	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		level, err = zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	tapOpts := []tap.Option{
		tap.WithTimeout(timeout),
		tap.WithLogger(logger.With().Str("component", "tap").Logger()),
	}
	if cfg.TAPBaseURL != "" {
		tapOpts = append(tapOpts, tap.WithBaseURL(cfg.TAPBaseURL))
	}

	svc := mcptools.NewExoplanetService(tap.NewClient(tapOpts...), logger)
	server := mcptools.NewExoplanetMCPServer(svc)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.HTTPAddr != "" {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("serving MCP over HTTP")
		return mcptools.RunHTTP(ctx, server, cfg.HTTPAddr)
	}
	logger.Info().Msg("serving MCP over stdio")
	return mcptools.RunStdio(ctx, server)
}
