// Package api provides the daemon bootstrap for the cmon agent.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// wiring it to a production collection engine: the vmadm zone inventory, the
// kstat CLI reader, and the default collector registry. Everything the agent
// serves is computed on demand from that engine; there is no cached state to
// warm up.
//
// # Usage
//
// To start the agent:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/richardkiene/triton-cmon-agent/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("agent error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The api layer is responsible for:
//   - Configuring structured logging with agent name and version
//   - Resolving the listen address from sysinfo when none is configured
//   - Wiring the collection engine from its production backends
//   - Delegating server lifecycle management to pkg/server
//
// The pkg/server package handles:
//   - HTTP server setup and graceful shutdown
//   - Middleware (rate limiting, logging, metrics, panic recovery)
//   - Health and readiness endpoints
//   - Prometheus self-telemetry
//
// # Configuration
//
// The agent is configured via environment variables:
//   - PORT: HTTP server port (default: 9163)
//   - CMON_LISTEN_ADDRESS: bind address (default: the admin IP from sysinfo)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown grace period
//   - LOG_LEVEL: logging level (debug, info, warn, error)
//
// A malformed value, or a missing admin IP with no explicit listen address,
// is a configuration error: the process exits before binding.
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/richardkiene/triton-cmon-agent/pkg/api.version=1.0.0'"
package api
