// Package snapshotter runs host metric collection passes.
//
// # Overview
//
// The snapshotter package orchestrates one collection pass over the global
// zone and any number of guest zones: it resolves the requested targets,
// gathers ancillary data (NTP stats, per-guest ZFS usage) concurrently,
// reads every distinct kstat signature from the kernel in a single batch,
// and produces metric samples per entity in collector registration order.
//
// # Core Types
//
// Engine: runs collection passes
//
//	type Engine struct {
//	    Inventory zones.Inventory     // guest resolution (required)
//	    Reader    kstat.Reader        // batched kstat reads (required)
//	    Registry  *collector.Registry // collectors (optional)
//	    NTP       ntp.QueryFunc       // NTP stats (optional)
//	    FS        func(...)           // ZFS usage (optional)
//	    Fetch     *serializer.HttpReader // core zone scraping (optional)
//	}
//
// Request: selects the pass scope
//
//	type Request struct {
//	    GZ      bool               // include the global zone
//	    AllVMs  bool               // include every running guest
//	    VMs     []string           // include specific guest UUIDs
//	    Options map[string]Options // per-guest collection options
//	}
//
// Snapshot: the pass result, one EntityResult for the global zone and one
// VMResult per requested guest, plus partial-failure notes in Errs.
//
// # Usage
//
// Collect the global zone and all running guests:
//
//	engine := &snapshotter.Engine{
//	    Inventory: zones.NewVmadmInventory(),
//	    Reader:    kstat.NewCLIReader(),
//	}
//
//	snap, err := engine.Collect(ctx, snapshotter.Request{GZ: true, AllVMs: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Collect one guest with core zone scraping enabled:
//
//	req := snapshotter.Request{
//	    VMs: []string{uuid},
//	    Options: map[string]snapshotter.Options{
//	        uuid: {IsCoreZone: true, MetricPorts: []int{8881}},
//	    },
//	}
//	snap, err := engine.Collect(ctx, req)
//
// Render the diagnostic document:
//
//	doc := snap.Document()
//
// # Pass Semantics
//
// A pass proceeds in three phases:
//  1. Resolution: guest lookups, NTP, and ZFS usage run concurrently.
//     Failures are recorded per guest and never cancel siblings.
//  2. Kernel read: the union of every target's kstat queries is
//     deduplicated by signature and read in one batch. Collectors that
//     declare the same signature share a single read.
//  3. Production: collectors run in registration order, global zone first
//     and then guests by UUID, so repeated passes emit samples in a
//     stable order.
//
// # Error Handling
//
// Collect returns an error only when:
//   - The request selects no targets
//   - Guest enumeration (AllVMs) fails outright
//   - The batched kernel read fails
//
// Everything else degrades instead: an unresolvable guest carries its
// error on VMResult.Err, and collector or ancillary failures are appended
// to Snapshot.Errs while the rest of the pass completes.
//
// # Observability
//
// The engine exports Prometheus metrics:
//   - cmon_agent_collection_pass_duration_seconds: pass timing
//   - cmon_agent_collection_passes_total{status}: pass outcomes
//   - cmon_agent_collection_kstat_signatures: distinct signatures last pass
//   - cmon_agent_collection_samples: samples produced last pass
//
// # Integration
//
// The engine is invoked by:
//   - pkg/server - the metrics and snapshot endpoints
//   - pkg/cli - the snapshot command
//
// It depends on:
//   - pkg/collector - metric production
//   - pkg/kstat - batched kernel reads
//   - pkg/zones - guest inventory and ZFS usage
//   - pkg/ntp - host time-sync state
package snapshotter
