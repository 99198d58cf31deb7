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

// Package collector holds the metric-producing units of the agent and the
// registry that organizes them.
//
// # Overview
//
// A collector is one self-contained producer: it declares which kstat reads
// it needs for a given target (the global zone or one guest zone) and later
// turns the matched records, plus ancillary data such as ZFS dataset usage
// or NTP state, into typed metric samples. Collection for a whole pass is
// orchestrated elsewhere; this package only defines the units and their
// registry.
//
// # Core Interface
//
//	type Collector interface {
//	    Name() string
//	    Scope() Scope
//	    Queries(target Target) []kstat.Query
//	    Produce(ctx context.Context, in Input) ([]metric.Sample, error)
//	}
//
// The query and production phases are split so that reads from every
// collector and every target can be merged, deduplicated, and issued as a
// single batched kernel pass. Two collectors declaring the same query
// signature cost one read; ZoneMiscCollector and CPUUsageCollector share
// the delta-flagged zone_misc read this way.
//
// # Scopes
//
// Collectors are partitioned into ScopeGZ (run once for the global zone)
// and ScopeVM (run once per guest). The registry enforces unique collector
// names within a scope at construction; a duplicate is a configuration
// error and the process must not start serving.
//
// # Registry Semantics
//
// Registry.ProduceFor runs a target's collectors in registration order.
// One collector failing is recorded and skipped; its siblings still
// produce. Samples for guest targets automatically carry the vm_uuid
// label.
//
// # Available Collectors
//
// Global zone: arcstats (ZFS ARC state), cpu_info (processor topology),
// host (uptime and process counts), ntp (time-sync state).
//
// Per guest: zone_misc (CPU counters, load average, boot time), cpu_usage
// (utilization derived from zone_misc rates), memory_cap (usage against
// caps), link (per-VNIC traffic), tcp (per-zone TCP MIB), zone_vfs
// (filesystem operations), cpucap (CPU cap state), zfs_usage (dataset
// space), triton_core (metric relay for Triton core zones).
package collector
