package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ironsheep/pixelcore/internal/logging"
	"github.com/ironsheep/pixelcore/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// CLI is the command line of pixelcore-mcp. Every flag can also be set
// through its environment variable.
type CLI struct {
	LogLevel string           `help:"Log level: debug, info, warn or error." default:"warn" env:"PIXELCORE_LOG_LEVEL"`
	Workers  int              `help:"Row workers per edit; 0 picks one per CPU." default:"0" env:"PIXELCORE_WORKERS"`
	Version  kong.VersionFlag `short:"v" help:"Print version information and exit."`
}

// Validate rejects an unknown log level or a negative worker count before
// the server starts.
func (c *CLI) Validate(kctx *kong.Context) error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Run installs the stderr logger and serves MCP on stdin/stdout until the
// input ends or the process is interrupted.
func (c *CLI) Run() error {
	level, _ := logging.ParseLevel(c.LogLevel)
	// stdout carries the protocol, so logs go to stderr.
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	logging.Logger().Info("starting pixelcore-mcp", "version", Version, "built", BuildTime, "commit", GitCommit, "workers", c.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{Workers: c.Workers, Version: Version})
	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("pixelcore-mcp"),
		kong.Description("MCP server for pixel recoloring, dithering and HunterLab color conversion over stdin/stdout."),
		kong.Vars{"version": fmt.Sprintf("pixelcore-mcp %s (built %s, commit %s)", Version, BuildTime, GitCommit)},
	)
	kctx.FatalIfErrorf(kctx.Run())
}
