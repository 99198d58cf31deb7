package api

import (
	"context"
	"log/slog"

	"github.com/richardkiene/triton-cmon-agent/pkg/collector"
	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/logging"
	"github.com/richardkiene/triton-cmon-agent/pkg/server"
	"github.com/richardkiene/triton-cmon-agent/pkg/snapshotter"
	"github.com/richardkiene/triton-cmon-agent/pkg/sysinfo"
	"github.com/richardkiene/triton-cmon-agent/pkg/zones"
)

const (
	name           = "cmon-agentd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/richardkiene/triton-cmon-agent/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the agent and blocks until shutdown.
// It configures logging, wires the collection engine, and handles graceful
// shutdown. Returns an error if the agent fails to start or encounters a
// fatal error.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg, err := server.NewConfig()
	if err != nil {
		return err
	}

	// Pollers reach the agent on the admin network. Without an explicit
	// CMON_LISTEN_ADDRESS the bind address comes from sysinfo.
	if cfg.Address == "" {
		ip, err := adminAddress(context.Background())
		if err != nil {
			return err
		}
		cfg.Address = ip
	}

	registry, err := collector.NewDefaultRegistry()
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration,
			"cannot build collector registry", err)
	}

	engine := &snapshotter.Engine{
		Inventory: zones.NewVmadmInventory(),
		Reader:    kstat.NewCLIReader(),
		Registry:  registry,
	}

	if err := server.Run(
		server.WithConfig(cfg),
		server.WithName(name),
		server.WithVersion(version),
		server.WithEngine(engine),
	); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// adminAddress discovers the node's admin IP via sysinfo. The agent refuses
// to guess a bind address: exposing guest metrics on tenant-reachable
// interfaces is worse than not starting.
func adminAddress(ctx context.Context) (string, error) {
	info, err := sysinfo.Read(ctx)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfiguration,
			"cannot discover admin IP, set CMON_LISTEN_ADDRESS to override", err)
	}

	ip := info.AdminIP()
	if ip == "" {
		return "", errors.New(errors.ErrCodeConfiguration,
			"sysinfo reports no admin NIC, set CMON_LISTEN_ADDRESS to override")
	}
	return ip, nil
}
