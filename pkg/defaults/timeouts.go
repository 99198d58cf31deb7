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

package defaults

import "time"

// Exec timeouts for platform command invocations.
const (
	// KstatReadTimeout is the timeout for a single kstat(1M) invocation.
	KstatReadTimeout = 10 * time.Second

	// VmadmTimeout is the timeout for vmadm(1M) inventory lookups.
	VmadmTimeout = 15 * time.Second

	// ZfsListTimeout is the timeout for zfs(1M) dataset usage queries.
	ZfsListTimeout = 10 * time.Second

	// NtpqTimeout is the timeout for ntpq(1M) system variable queries.
	// ntpq blocks on UDP when ntpd is unresponsive, so keep this short.
	NtpqTimeout = 5 * time.Second

	// SysinfoTimeout is the timeout for sysinfo(1M) host identity reads.
	SysinfoTimeout = 10 * time.Second
)

// Collection timeouts for metric pass processing.
const (
	// CollectionPassTimeout bounds a full collection pass, including guest
	// resolution, the kernel read, and metric production.
	CollectionPassTimeout = 30 * time.Second

	// CoreZoneScrapeTimeout bounds a single core zone metrics fetch.
	CoreZoneScrapeTimeout = 10 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Must exceed CollectionPassTimeout so slow passes are not truncated.
	ServerWriteTimeout = 45 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLISnapshotTimeout is the default timeout for snapshot operations.
	CLISnapshotTimeout = 2 * time.Minute
)
