// Command livesearch serves xAI live search as MCP tools over stdio.
//
// Configuration comes from the environment, optionally seeded from a .env
// file in the working directory. See internal/config for the variables.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/leofalp/livesearch/core/executor"
	"github.com/leofalp/livesearch/core/search"
	"github.com/leofalp/livesearch/internal/config"
	"github.com/leofalp/livesearch/internal/logging"
	"github.com/leofalp/livesearch/internal/mcpserver"
	"github.com/leofalp/livesearch/providers/tool"
	"github.com/leofalp/livesearch/providers/tool/livesearch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "livesearch: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	if cfg.APIKey == "" {
		logger.Warn("XAI_API_KEY is not set; searches will fail until it is configured")
	}

	provider := executor.New(executor.Config{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxRetries,
		RateLimit:   cfg.RateLimit,
	}, executor.WithLogger(logger.With("component", "executor")))

	orchestrator := search.NewOrchestrator(provider,
		search.WithModel(cfg.Model),
		search.WithCache(cfg.CacheSize, cfg.CacheTTL),
		search.WithLogger(logger.With("component", "search")),
	)

	catalog := tool.NewCatalogWithTools(livesearch.NewSearchTools(orchestrator, livesearch.WithLogger(logger))...)
	catalog.AddTools(
		livesearch.NewHealthTool(orchestrator, livesearch.WithLogger(logger)),
		livesearch.NewClearCacheTool(orchestrator, livesearch.WithLogger(logger)),
	)

	server := mcpserver.New(catalog, mcpserver.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving over stdio",
		"model", cfg.Model,
		"tools", catalog.Size(),
		"cache_size", cfg.CacheSize,
		"cache_ttl", cfg.CacheTTL,
	)
	return server.Run(ctx, &mcp.StdioTransport{})
}
