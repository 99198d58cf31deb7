// Package cli implements the command-line interface for the cmon tool.
//
// # Overview
//
// The cmon CLI runs the same collection machinery the agent daemon serves
// over HTTP, directly from a shell in the global zone. It is designed for
// operators debugging metric gaps: it shows the raw kstat records and
// ancillary state a pass produced, before any Prometheus rendering.
//
// # Commands
//
// snapshot - Capture a raw collection snapshot:
//
//	cmon snapshot [--gz] [--vm UUID ...] [--all-vms] [--output FILE] [--format json|yaml|table]
//
// Runs one collection pass over the selected scope and dumps the result:
// raw kstat records, per-guest zone identity and ZFS usage, and host NTP
// state. At least one of --gz, --vm, or --all-vms is required. Output
// defaults to stdout in JSON format.
//
// # Global Flags
//
//	--log-level    Logging verbosity: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// JSON (default):
//   - Machine-parseable, compact
//   - Suitable for piping into json(1) or jq
//
// YAML:
//   - Human-readable, preserves structure
//
// Table:
//   - Flattened key/value text representation
//   - Suitable for quick terminal viewing
//
// # Usage Examples
//
// Everything a poller could see on this node:
//
//	cmon snapshot --gz --all-vms
//
// One guest, pretty-printed:
//
//	cmon snapshot --vm 4f9e0d5a-1234-4a6b-8b3e-1c2d3e4f5a6b --format yaml
//
// Global zone state saved for a support bundle:
//
//	cmon snapshot --gz --output /var/tmp/cmon-snapshot.json
//
// # Environment Variables
//
//	LOG_LEVEL  Set logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/snapshotter - Collection pass orchestration
//   - pkg/kstat - Batched kernel statistics reads
//   - pkg/zones - Guest zone inventory via vmadm
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/richardkiene/triton-cmon-agent/pkg/cli.version=1.0.0'"
package cli
