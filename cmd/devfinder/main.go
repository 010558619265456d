// Package main is the entry point for the DevFinder server.
//
// The main package stays minimal. Its job is to:
// 1. Read configuration (flags and environment, via internal/config)
// 2. Create dependencies (logger, GitHub client)
// 3. Start the server
//
// All actual logic lives in internal/.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sakif/devfinder/internal/config"
	"github.com/sakif/devfinder/internal/github"
	"github.com/sakif/devfinder/internal/logger"
	"github.com/sakif/devfinder/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	// GITHUB_API_TOKEN is required; everything else has a default.
	cfg, err := config.Load(os.Args[1:])
	// The logger is not configured yet, so report straight to stderr.
	if err != nil {
		fmt.Fprintf(os.Stderr, "devfinder: %v\n", err)
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	logger := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// === 3. GITHUB CLIENT ===
	client, err := github.New(github.Options{
		Token:   cfg.GitHubToken,
		Host:    cfg.GitHubHost,
		Timeout: cfg.GitHubTimeout,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to create GitHub client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 4. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, logger, client)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
