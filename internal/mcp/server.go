package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/alignd/internal/facade"
)

// Server exposes the command façade over the MCP protocol.
type Server struct {
	mcp      *mcp.Server
	commands *facade.Commands
	metrics  *Metrics
	logger   *zap.Logger
}

// Config configures the MCP server.
type Config struct {
	// Name is the server implementation name (default: "alignd").
	Name string

	// Version is the server version (default: "1.0.0").
	Version string

	// Logger for structured logging.
	Logger *zap.Logger

	// Registerer receives tool metrics (default: prometheus.DefaultRegisterer).
	Registerer prometheus.Registerer
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:       "alignd",
		Version:    "1.0.0",
		Logger:     zap.NewNop(),
		Registerer: prometheus.DefaultRegisterer,
	}
}

// NewServer creates an MCP server over the given command façade and
// registers all command tools.
func NewServer(cfg *Config, commands *facade.Commands) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Name == "" {
		cfg.Name = "alignd"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if commands == nil {
		return nil, fmt.Errorf("command façade is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		commands: commands,
		metrics:  NewMetrics(cfg.Registerer),
		logger:   cfg.Logger,
	}

	s.registerUserTools()
	s.registerIdentityTools()
	s.registerTraitTools()
	s.registerBehaviorTools()
	s.registerReflectionTools()
	s.registerAnalyticsTools()

	return s, nil
}

// Run starts the MCP server on the stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio transport")
	transport := &mcp.StdioTransport{}
	if err := s.mcp.Run(ctx, transport); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}

// record counts one tool invocation with its outcome.
func (s *Server) record(tool string, start time.Time, err error) {
	s.metrics.Record(tool, start, err)
	if err != nil {
		s.logger.Debug("tool failed", zap.String("tool", tool), zap.Error(err))
	}
}
