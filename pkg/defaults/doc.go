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

// Package defaults provides centralized configuration constants for the agent.
//
// This package defines timeout values used across the codebase. Centralizing
// these values ensures consistency and makes tuning easier.
//
// # Timeout Categories
//
// Timeouts are organized by component:
//
//   - Exec timeouts: For kstat, vmadm, zfs, ntpq, and sysinfo invocations
//   - Collection timeouts: For full metric collection passes
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For outbound HTTP requests (core zone scrapes)
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/richardkiene/triton-cmon-agent/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.KstatReadTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// When choosing timeout values:
//
//   - Platform commands: 5-15s, respects parent context deadline
//   - Collection passes: 30s, must stay under ServerWriteTimeout
//   - Server shutdown: 30s for graceful shutdown
package defaults
