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

package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/richardkiene/triton-cmon-agent/pkg/collector"
	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/ntp"
	"github.com/richardkiene/triton-cmon-agent/pkg/serializer"
	"github.com/richardkiene/triton-cmon-agent/pkg/zones"

	"golang.org/x/sync/errgroup"
)

// Engine runs collection passes against the host. A pass resolves the
// requested targets, gathers ancillary data concurrently, reads every
// distinct kstat signature from the kernel in one batch, and produces
// samples per entity in collector registration order.
type Engine struct {
	// Inventory resolves and enumerates guest zones.
	Inventory zones.Inventory

	// Reader performs the pass's batched kstat read.
	Reader kstat.Reader

	// Registry supplies the collectors. If nil, the default registry is used.
	Registry *collector.Registry

	// NTP queries the local NTP daemon. If nil, ntp.Query is used.
	NTP ntp.QueryFunc

	// FS reports ZFS usage for a guest dataset. If nil, zones.DatasetUsage is used.
	FS func(ctx context.Context, dataset string) (*zones.FSUsage, error)

	// Fetch retrieves core zone metric endpoints. If nil, a default reader is used.
	Fetch *serializer.HttpReader
}

// Collect runs one collection pass over the requested scope. When AllVMs is
// set the explicit VM list is ignored.
//
// Guest resolution and ancillary fetches run concurrently and settle before
// anything is read from the kernel: a UUID that fails to resolve is recorded
// on its VMResult and its siblings are unaffected, and NTP or ZFS failures
// only cost the samples derived from them. Only an empty request, guest
// enumeration failure, or the kernel read itself abort the pass. Collector
// failures degrade the pass and come back in Snapshot.Errs.
func (e *Engine) Collect(ctx context.Context, req Request) (snap *Snapshot, err error) {
	if req.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "collection request selects no targets")
	}

	start := time.Now()
	defer func() {
		collectionPassDuration.Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "error"
		}
		collectionPassTotal.WithLabelValues(status).Inc()
	}()

	registry := e.Registry
	if registry == nil {
		registry, err = collector.NewDefaultRegistry()
		if err != nil {
			return nil, err
		}
	}
	queryNTP := e.NTP
	if queryNTP == nil {
		queryNTP = ntp.Query
	}
	fsUsage := e.FS
	if fsUsage == nil {
		fsUsage = zones.DatasetUsage
	}
	fetch := e.Fetch
	if fetch == nil {
		fetch = serializer.NewHttpReader()
	}

	snap = &Snapshot{
		Timestamp: start.UTC(),
		VMs:       make(map[string]*VMResult),
	}

	if req.AllVMs {
		running, rerr := e.Inventory.Running(ctx)
		if rerr != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, "cannot enumerate running zones", rerr)
		}
		for i := range running {
			zone := running[i]
			snap.VMs[zone.UUID] = &VMResult{Zone: &zone}
		}
	} else {
		for _, uuid := range req.VMs {
			snap.VMs[uuid] = &VMResult{}
		}
	}

	// Resolve guests and fetch ancillary data in parallel. The goroutines
	// record failures instead of returning them so one bad guest never
	// cancels its siblings; each writes only its own VMResult.
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for uuid, vm := range snap.VMs {
		g.Go(func() error {
			if vm.Zone == nil {
				zone, lerr := e.Inventory.Lookup(gctx, uuid)
				if lerr != nil {
					slog.Warn("zone lookup failed",
						slog.String("vm_uuid", uuid),
						slog.String("error", lerr.Error()))
					vm.Err = lerr
					return nil
				}
				vm.Zone = zone
			}

			if vm.Zone.Dataset == "" {
				return nil
			}
			fs, ferr := fsUsage(gctx, vm.Zone.Dataset)
			if ferr != nil {
				slog.Warn("zfs usage lookup failed",
					slog.String("vm_uuid", uuid),
					slog.String("dataset", vm.Zone.Dataset),
					slog.String("error", ferr.Error()))
				mu.Lock()
				snap.Errs = append(snap.Errs, errors.Wrap(errors.ErrCodePartialCollection,
					fmt.Sprintf("zfs usage for %s", uuid), ferr))
				mu.Unlock()
				return nil
			}
			vm.FS = fs
			return nil
		})
	}

	if req.GZ {
		g.Go(func() error {
			stats, nerr := queryNTP(gctx)
			if nerr != nil {
				slog.Warn("ntp query failed", slog.String("error", nerr.Error()))
				mu.Lock()
				snap.Errs = append(snap.Errs, errors.Wrap(errors.ErrCodePartialCollection,
					"ntp query failed", nerr))
				mu.Unlock()
				return nil
			}
			snap.NTP = stats
			return nil
		})
	}

	// Every resolution settles here, failed or not, before the kernel read.
	if werr := g.Wait(); werr != nil {
		return nil, werr
	}

	// One batched kernel read covers every target in the pass.
	gzTarget := collector.Target{GZ: true}
	vmTargets := make(map[string]collector.Target)

	var queries []kstat.Query
	if req.GZ {
		queries = append(queries, registry.QueriesFor(gzTarget)...)
	}
	for _, uuid := range snap.VMUUIDs() {
		vm := snap.VMs[uuid]
		if vm.Err != nil || vm.Zone == nil {
			continue
		}
		opts := req.Options[uuid]
		target := collector.Target{
			UUID:        uuid,
			ZoneID:      vm.Zone.ID,
			IPs:         vm.Zone.IPs,
			CoreZone:    opts.IsCoreZone,
			MetricPorts: opts.MetricPorts,
		}
		vmTargets[uuid] = target
		queries = append(queries, registry.QueriesFor(target)...)
	}

	distinct := kstat.Dedup(queries)
	collectionSignatureCount.Set(float64(len(distinct)))

	var records []kstat.Record
	if len(distinct) > 0 {
		records, err = e.Reader.Read(ctx, distinct)
		if err != nil {
			return nil, err
		}
	}

	// Produce sequentially, global zone first and then guests in UUID
	// order, so repeated passes emit samples in the same order.
	samples := 0
	if req.GZ {
		in := collector.Input{
			Target:  gzTarget,
			Records: kstat.SelectAny(registry.QueriesFor(gzTarget), records),
			NTP:     snap.NTP,
			Fetch:   fetch,
		}
		produced, perrs := registry.ProduceFor(ctx, in)
		snap.GZ = &EntityResult{Samples: produced, Records: in.Records}
		snap.Errs = append(snap.Errs, perrs...)
		samples += len(produced)
	}

	for _, uuid := range snap.VMUUIDs() {
		target, ok := vmTargets[uuid]
		if !ok {
			continue
		}
		vm := snap.VMs[uuid]
		in := collector.Input{
			Target:  target,
			Records: kstat.SelectAny(registry.QueriesFor(target), records),
			FS:      vm.FS,
			Fetch:   fetch,
		}
		produced, perrs := registry.ProduceFor(ctx, in)
		vm.Samples = produced
		vm.Records = in.Records
		snap.Errs = append(snap.Errs, perrs...)
		samples += len(produced)
	}

	collectionSampleCount.Set(float64(samples))

	slog.Debug("collection pass complete",
		slog.Bool("gz", req.GZ),
		slog.Int("vms", len(snap.VMs)),
		slog.Int("signatures", len(distinct)),
		slog.Int("records", len(records)),
		slog.Int("samples", samples),
		slog.Int("errors", len(snap.Errs)))

	return snap, nil
}
