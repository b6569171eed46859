// Alignd is the identity alignment daemon.
//
// It serves the command surface (user, identity, trait, behavior,
// reflection, and analytics tools) over the MCP stdio transport, with an
// HTTP sidecar exposing health and Prometheus metrics.
//
// Configuration is loaded from ~/.config/alignd/config.yaml and
// environment variables. See internal/config for details.
//
// Usage:
//
//	# Start the daemon with defaults
//	alignd
//
//	# Configure via environment
//	SERVER_HTTP_PORT=9180 STORE_PATH=/var/lib/alignd/alignd.db alignd
//
//	# Show version information
//	alignd version
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/alignd/internal/analytics"
	"github.com/fyrsmithlabs/alignd/internal/config"
	"github.com/fyrsmithlabs/alignd/internal/facade"
	"github.com/fyrsmithlabs/alignd/internal/logging"
	"github.com/fyrsmithlabs/alignd/internal/mcp"
	"github.com/fyrsmithlabs/alignd/internal/reflection"
	"github.com/fyrsmithlabs/alignd/internal/store"
	"github.com/fyrsmithlabs/alignd/pkg/server"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/alignd/config.yaml)")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  alignd           Start the alignd daemon\n")
			fmt.Fprintf(os.Stderr, "  alignd version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Shutdown complete")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("alignd by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the alignd daemon and blocks until the context is cancelled.
//
// Initialization order:
//  1. Load and validate configuration
//  2. Build the logger
//  3. Open the persistent store
//  4. Wire the aggregation engine, reflection orchestrator, and façade
//  5. Register the MCP command tools
//  6. Start the HTTP sidecar and the MCP stdio transport
func run(ctx context.Context, configPath string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logging.Sync(logger)
	}()

	logger.Info("starting alignd",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("store_path", cfg.Store.Path),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout))

	db, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("store close failed", zap.Error(err))
		}
	}()

	engine, err := analytics.NewEngine(db, logger)
	if err != nil {
		return fmt.Errorf("failed to create aggregation engine: %w", err)
	}

	orchestrator, err := reflection.NewOrchestrator(db, logger)
	if err != nil {
		return fmt.Errorf("failed to create reflection orchestrator: %w", err)
	}

	genCfg := reflection.GeneratorConfig{
		Model:             cfg.Generation.Model,
		Temperature:       cfg.Generation.Temperature,
		RequestsPerMinute: cfg.Generation.RequestsPerMinute,
	}

	commands, err := facade.NewCommands(facade.Options{
		Store:        db,
		Engine:       engine,
		Orchestrator: orchestrator,
		NewGenerator: func(apiKey string) (reflection.Generator, error) {
			return reflection.NewOpenAIGenerator(apiKey, genCfg)
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create command façade: %w", err)
	}

	mcpCfg := mcp.DefaultConfig()
	mcpCfg.Version = version
	mcpCfg.Logger = logger
	mcpServer, err := mcp.NewServer(mcpCfg, commands)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	httpServer := server.NewServer(cfg, prometheus.DefaultGatherer)

	// Both transports run until the first failure or signal; either one
	// stopping brings the other down.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.Start(gctx); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return mcpServer.Run(gctx)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
