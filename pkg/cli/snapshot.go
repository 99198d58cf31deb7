package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/richardkiene/triton-cmon-agent/pkg/collector"
	"github.com/richardkiene/triton-cmon-agent/pkg/defaults"
	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/serializer"
	"github.com/richardkiene/triton-cmon-agent/pkg/snapshotter"
	"github.com/richardkiene/triton-cmon-agent/pkg/zones"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture a raw collection snapshot",
		Description: `Run one collection pass and dump what the agent saw, without the
Prometheus rendering in between:
  - raw kstat records for the selected scope
  - per-guest zone identity and ZFS usage
  - host NTP state (global zone scope only)

At least one of --gz, --vm, or --all-vms must be given. The same pass
semantics apply as when a poller hits the agent: one batched kernel
read, per-guest failure isolation.

The snapshot can be output in JSON, YAML, or table format.

# Examples

Everything a poller could see on this node:
  cmon snapshot --gz --all-vms

One misbehaving guest, pretty-printed:
  cmon snapshot --vm 4f9e0d5a-... --format yaml

Global zone only, saved for a support bundle:
  cmon snapshot --gz --output /var/tmp/cmon-snapshot.json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "gz",
				Usage: "Include global zone kstats and host NTP state",
			},
			&cli.StringSliceFlag{
				Name:  "vm",
				Usage: "Guest zone UUID to include (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "all-vms",
				Usage: "Include every running guest zone",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for the collection pass",
				Value: defaults.CLISnapshotTimeout,
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// Parse output format
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			req, err := buildRequestFromCmd(cmd)
			if err != nil {
				return err
			}

			registry, err := collector.NewDefaultRegistry()
			if err != nil {
				return fmt.Errorf("failed to build collector registry: %w", err)
			}

			engine := &snapshotter.Engine{
				Inventory: zones.NewVmadmInventory(),
				Reader:    kstat.NewCLIReader(),
				Registry:  registry,
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			snap, err := engine.Collect(ctx, req)
			if err != nil {
				return fmt.Errorf("collection pass failed: %w", err)
			}
			for _, perr := range snap.Errs {
				slog.Warn("partial collection", "error", perr)
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if closer, ok := ser.(interface{ Close() error }); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			return ser.Serialize(ctx, snap.Document())
		},
	}
}

// buildRequestFromCmd constructs a collection request from CLI flags.
func buildRequestFromCmd(cmd *cli.Command) (snapshotter.Request, error) {
	req := snapshotter.Request{
		GZ:     cmd.Bool("gz"),
		AllVMs: cmd.Bool("all-vms"),
	}

	for _, raw := range cmd.StringSlice("vm") {
		if _, err := uuid.Parse(raw); err != nil {
			return snapshotter.Request{}, fmt.Errorf("invalid --vm value %q: %w", raw, err)
		}
		req.VMs = append(req.VMs, raw)
	}

	if req.Empty() {
		return snapshotter.Request{}, fmt.Errorf("nothing to collect: need at least one of --gz, --vm, or --all-vms")
	}

	return req, nil
}
