// Copyright (c) 2026, Joyent, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server implements the cmon-agent HTTP API: per-zone Prometheus
// metric endpoints backed by the collection engine, plus operational
// endpoints for the agent itself.
//
// # Architecture
//
// The server is a thin HTTP layer over snapshotter.Engine. Every metric
// request triggers one collection pass scoped to the requested entity; the
// server holds no metric state between requests. Around the handlers sits a
// conventional middleware stack:
//
//   - Request ID tracking (X-Request-Id, generated when absent)
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Panic recovery for resilience
//   - Request logging and RED self-metrics
//   - Graceful shutdown handling
//   - Health and readiness probes for SMF service monitoring
//
// # Usage
//
// Basic agent startup:
//
//	package main
//
//	import (
//	    "github.com/richardkiene/triton-cmon-agent/pkg/server"
//	)
//
//	func main() {
//	    if err := server.Run(); err != nil {
//	        panic(err)
//	    }
//	}
//
// Custom configuration:
//
//	cfg, err := server.NewConfig()
//	if err != nil {
//	    return err
//	}
//	cfg.Address = "10.99.99.7"
//	cfg.Port = 9163
//
//	err = server.Run(
//	    server.WithConfig(cfg),
//	    server.WithEngine(engine),
//	)
//
// # API Endpoints
//
// GET /v1/gz/metrics - Global zone metrics
//
//	Runs a GZ-scoped collection pass and returns the Prometheus text
//	exposition for the host: CPU, memory, ZFS ARC, network, TCP, and
//	time-sync metrics.
//
// GET /v1/{uuid}/metrics - Per-zone metrics
//
//	Runs a single-zone collection pass. The UUID must be a valid zone UUID;
//	malformed UUIDs return 400 and unknown or stopped zones return 404 with
//	the body "container not found" (the exact string the cmon proxy
//	expects). The optional X-Metrics-Options header carries base64-encoded
//	JSON ({"isCoreZone":true,"metricPorts":[8881]}) and switches the zone
//	onto the core-zone collector set.
//
// POST /v1/refresh - Legacy cache refresh
//
//	Compatibility no-op returning 200. Zone state is read fresh on every
//	pass, so there is nothing to refresh.
//
// GET /v1/snapshot - Raw JSON snapshot
//
//	Debug view of a collection pass: raw kstat records, per-zone metadata,
//	filesystem usage, and NTP state. Scope with ?gz=true and
//	?vms=all|uuid,uuid; no parameters means the full host.
//
// GET /metrics - Agent self-telemetry (Prometheus)
//
// GET /health - Health check, always 200 when the process is up
//
// GET /ready - Readiness check, 200 when serving, 503 while starting up
//
// # Observability
//
// Request ID Tracking:
//
//	All requests accept an optional X-Request-Id header (UUID format).
//	If not provided, the server generates one automatically.
//	The request ID is returned in the X-Request-Id response header
//	and included in all error responses for tracing.
//
// Rate Limiting:
//
//	Response headers indicate rate limit status:
//	  X-RateLimit-Limit: Total requests allowed per window
//	  X-RateLimit-Remaining: Requests remaining in current window
//	  X-RateLimit-Reset: Unix timestamp when window resets
//
//	When rate limited, returns 429 with Retry-After header.
//
// # Error Handling
//
// Apart from the fixed 404 body above, errors return a consistent JSON
// structure:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "malformed zone uuid",
//	  "details": {"uuid": "not-a-uuid"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-08-22T12:00:00Z",
//	  "retryable": false
//	}
//
// Error codes:
//   - INVALID_REQUEST: Malformed UUID, options header, or scope (400)
//   - NOT_FOUND: Unknown zone (404, plain body)
//   - RATE_LIMIT_EXCEEDED: Too many requests (429)
//   - SERVICE_UNAVAILABLE: Zone enumeration unavailable (503)
//   - KSTAT_READ: Kernel statistics read failed (500)
//   - INTERNAL: Anything else (500)
//
// # Configuration
//
// Environment variables, parsed at construction:
//
//	PORT                      listen port (default 9163)
//	CMON_LISTEN_ADDRESS       bind address (default all interfaces; the
//	                          daemon normally passes the admin IP)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
//
// Malformed values fail construction with a CONFIGURATION error; the agent
// exits before binding rather than serving with a half-applied config.
package server
