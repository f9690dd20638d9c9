// Copyright 2026 Convertly MCP Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/convertly/convertly-mcp/internal/config"
	"github.com/convertly/convertly-mcp/internal/convertly"
	"github.com/convertly/convertly-mcp/internal/log"
	"github.com/convertly/convertly-mcp/internal/mcp/server"
	"github.com/convertly/convertly-mcp/internal/metrics"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath  string
		apiKey      string
		apiURL      string
		logLevel    string
		logFormat   string
		metricsAddr string
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:   "convertly-mcp",
		Short: "MCP server for the Convertly file conversion API",
		Long: `convertly-mcp exposes the Convertly file conversion service as MCP
(Model Context Protocol) tools over stdio, so AI assistants can convert
files, track jobs, and download results.

Configuration example for an MCP client:
  {
    "mcpServers": {
      "convertly": {
        "command": "convertly-mcp",
        "env": {"CONVERTLY_API_KEY": "cvt_..."}
      }
    }
  }

The API key comes from --api-key, the CONVERTLY_API_KEY environment
variable, or the config file (~/.config/convertly-mcp/config.yaml).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Printf("convertly-mcp %s (commit: %s, built: %s)\n", version, commit, buildDate)
				return nil
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			// Flags override file and environment.
			if apiKey != "" {
				cfg.API.Key = apiKey
			}
			if apiURL != "" {
				cfg.API.URL = apiURL
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if logFormat != "" {
				cfg.Log.Format = logFormat
			}
			if metricsAddr != "" {
				cfg.Metrics.Addr = metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runServer(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/convertly-mcp/config.yaml)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Convertly API key (overrides CONVERTLY_API_KEY)")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Convertly API base URL")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Logging verbosity (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "Log output format (text, json)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for the Prometheus /metrics endpoint (disabled when empty)")
	cmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")

	return cmd
}

func runServer(cfg *config.Config) error {
	logCfg := log.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = log.Format(cfg.Log.Format)
	logger := log.New(logCfg)
	slog.SetDefault(logger)

	client, err := convertly.New(convertly.Config{
		APIKey:     cfg.API.Key,
		BaseURL:    cfg.API.URL,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
	}, logger)
	if err != nil {
		return fmt.Errorf("creating convertly client: %w", err)
	}

	srv, err := server.NewServer(server.Config{
		Name:    "convertly",
		Version: version,
		Client:  client,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logger.Error("metrics endpoint failed", slog.Any("error", err))
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx)
	}()

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", slog.String("signal", sig.String()))
		cancel()
		// Give the metrics endpoint a moment to drain.
		time.Sleep(100 * time.Millisecond)
		return nil
	case err := <-errCh:
		return err
	}
}
