package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/richardkiene/triton-cmon-agent/pkg/logging"
	"github.com/richardkiene/triton-cmon-agent/pkg/serializer"
)

const (
	name           = "cmon"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flags shared by commands that write a serialized document.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write output to a file instead of stdout",
	}

	formatFlag = &cli.StringFlag{
		Name: "format",
		Usage: fmt.Sprintf("Output format (supported values: %v)",
			serializer.SupportedFormats()),
		Value: string(serializer.FormatJSON),
	}
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Inspect what the cmon agent collects on this node",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
				Value:   "info",
			},
		},
		Before: initLogger,
		Commands: []*cli.Command{
			snapshotCmd(),
		},
	}
}

// initLogger configures slog after flags parse so --log-level takes effect
// before any command executes. Logs go to stderr; the serialized document
// owns stdout.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date)
	return ctx, nil
}

// Execute runs the root command. This is called by main.main(). SIGINT and
// SIGTERM cancel the command context so a wedged collection pass unwinds.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
