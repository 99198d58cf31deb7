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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richardkiene/triton-cmon-agent/pkg/collector"
	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
	"github.com/richardkiene/triton-cmon-agent/pkg/ntp"
	"github.com/richardkiene/triton-cmon-agent/pkg/zones"
)

const (
	vmOne = "11111111-2222-3333-4444-555555555555"
	vmTwo = "99999999-8888-7777-6666-555555555555"
)

type fakeInventory struct {
	vms        map[string]zones.Zone
	runningErr error
}

func (f *fakeInventory) Lookup(_ context.Context, uuid string) (*zones.Zone, error) {
	z, ok := f.vms[uuid]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, "zone not found",
			map[string]any{"uuid": uuid})
	}
	return &z, nil
}

func (f *fakeInventory) Running(_ context.Context) ([]zones.Zone, error) {
	if f.runningErr != nil {
		return nil, f.runningErr
	}
	out := make([]zones.Zone, 0, len(f.vms))
	for _, z := range f.vms {
		out = append(out, z)
	}
	return out, nil
}

type fakeReader struct {
	calls   int
	queries [][]kstat.Query
	records []kstat.Record
	err     error
}

func (f *fakeReader) Read(_ context.Context, queries []kstat.Query) ([]kstat.Record, error) {
	f.calls++
	f.queries = append(f.queries, queries)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type passCollector struct {
	name    string
	scope   collector.Scope
	queries func(collector.Target) []kstat.Query
	produce func(context.Context, collector.Input) ([]metric.Sample, error)
}

func (c *passCollector) Name() string           { return c.name }
func (c *passCollector) Scope() collector.Scope { return c.scope }

func (c *passCollector) Queries(target collector.Target) []kstat.Query {
	if c.queries == nil {
		return nil
	}
	return c.queries(target)
}

func (c *passCollector) Produce(ctx context.Context, in collector.Input) ([]metric.Sample, error) {
	if c.produce == nil {
		return nil, nil
	}
	return c.produce(ctx, in)
}

func zoneQuery(target collector.Target) []kstat.Query {
	return []kstat.Query{{
		Module:   "zones",
		Class:    "zone_misc",
		Instance: kstat.InstanceID(target.ZoneID),
		Delta:    true,
	}}
}

func arcQuery(_ collector.Target) []kstat.Query {
	return []kstat.Query{{Module: "zfs", Name: "arcstats", Instance: 0}}
}

func zoneRecord(zoneID int) kstat.Record {
	return kstat.Record{
		Module:   "zones",
		Instance: zoneID,
		Name:     fmt.Sprintf("zone_%d", zoneID),
		Class:    "zone_misc",
		Snaptime: 1000,
		Data:     map[string]kstat.Value{"nsec_user": kstat.Uint64Value(1)},
	}
}

func arcRecord() kstat.Record {
	return kstat.Record{
		Module:   "zfs",
		Instance: 0,
		Name:     "arcstats",
		Class:    "misc",
		Snaptime: 1000,
		Data:     map[string]kstat.Value{"size": kstat.Uint64Value(1)},
	}
}

// recordCounter produces one gauge per matched record so tests can assert
// how many records a collector was handed.
func recordCounter(name string) func(context.Context, collector.Input) ([]metric.Sample, error) {
	return func(_ context.Context, in collector.Input) ([]metric.Sample, error) {
		samples := make([]metric.Sample, 0, len(in.Records))
		for range in.Records {
			samples = append(samples, metric.Sample{Name: name, Kind: metric.KindGauge, Value: 1})
		}
		return samples, nil
	}
}

func guestZone(uuid string, id int) zones.Zone {
	return zones.Zone{
		UUID:    uuid,
		ID:      id,
		Brand:   "joyent",
		State:   "running",
		Dataset: "zones/" + uuid,
	}
}

func testRegistry(t *testing.T, collectors ...collector.Collector) *collector.Registry {
	t.Helper()
	reg, err := collector.NewRegistry(collectors...)
	require.NoError(t, err)
	return reg
}

func testEngine(inv zones.Inventory, reader kstat.Reader, reg *collector.Registry) *Engine {
	return &Engine{
		Inventory: inv,
		Reader:    reader,
		Registry:  reg,
		NTP: func(_ context.Context) (*ntp.Stats, error) {
			return &ntp.Stats{Offset: 0.25, Stratum: 2}, nil
		},
		FS: func(_ context.Context, _ string) (*zones.FSUsage, error) {
			return &zones.FSUsage{Used: 4096, Available: 8192}, nil
		},
	}
}

func TestCollectEmptyRequest(t *testing.T) {
	e := testEngine(&fakeInventory{}, &fakeReader{}, testRegistry(t))

	snap, err := e.Collect(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
	assert.Nil(t, snap)
}

func TestCollectSingleKernelRead(t *testing.T) {
	inv := &fakeInventory{vms: map[string]zones.Zone{
		vmOne: guestZone(vmOne, 7),
		vmTwo: guestZone(vmTwo, 9),
	}}
	reader := &fakeReader{records: []kstat.Record{zoneRecord(7), zoneRecord(9)}}
	reg := testRegistry(t,
		&passCollector{name: "misc", scope: collector.ScopeVM, queries: zoneQuery, produce: recordCounter("zone_records")},
		&passCollector{name: "usage", scope: collector.ScopeVM, queries: zoneQuery, produce: recordCounter("usage_records")},
	)

	e := testEngine(inv, reader, reg)
	snap, err := e.Collect(context.Background(), Request{VMs: []string{vmOne, vmTwo}})
	require.NoError(t, err)

	// Two collectors times two guests declare four queries that collapse
	// to one distinct signature per guest, read in a single batch.
	require.Equal(t, 1, reader.calls)
	assert.Len(t, reader.queries[0], 2)

	for uuid, id := range map[string]int{vmOne: 7, vmTwo: 9} {
		vm := snap.VMs[uuid]
		require.NotNil(t, vm, uuid)
		require.NoError(t, vm.Err)
		require.Len(t, vm.Records, 1)
		assert.Equal(t, id, vm.Records[0].Instance)
		require.Len(t, vm.Samples, 2)
		for _, s := range vm.Samples {
			assert.Equal(t, uuid, s.Labels["vm_uuid"])
		}
	}
	assert.Empty(t, snap.Errs)
}

func TestCollectGZAndGuests(t *testing.T) {
	inv := &fakeInventory{vms: map[string]zones.Zone{vmOne: guestZone(vmOne, 8)}}
	reader := &fakeReader{records: []kstat.Record{arcRecord(), zoneRecord(8)}}
	reg := testRegistry(t,
		&passCollector{name: "arc", scope: collector.ScopeGZ, queries: arcQuery, produce: recordCounter("arc_records")},
		&passCollector{name: "misc", scope: collector.ScopeVM, queries: zoneQuery, produce: recordCounter("zone_records")},
	)

	e := testEngine(inv, reader, reg)
	snap, err := e.Collect(context.Background(), Request{GZ: true, VMs: []string{vmOne}})
	require.NoError(t, err)

	require.Equal(t, 1, reader.calls)
	assert.Len(t, reader.queries[0], 2)

	require.NotNil(t, snap.GZ)
	require.Len(t, snap.GZ.Records, 1)
	assert.Equal(t, "arcstats", snap.GZ.Records[0].Name)
	require.Len(t, snap.GZ.Samples, 1)
	assert.Empty(t, snap.GZ.Samples[0].Labels["vm_uuid"])

	vm := snap.VMs[vmOne]
	require.NotNil(t, vm)
	require.Len(t, vm.Records, 1)
	assert.Equal(t, "zones", vm.Records[0].Module)
	require.Len(t, vm.Samples, 1)
	assert.Equal(t, vmOne, vm.Samples[0].Labels["vm_uuid"])
}

func TestCollectUnknownGuestIsolated(t *testing.T) {
	unknown := "deadbeef-dead-beef-dead-beefdeadbeef"
	inv := &fakeInventory{vms: map[string]zones.Zone{vmOne: guestZone(vmOne, 3)}}
	reader := &fakeReader{records: []kstat.Record{zoneRecord(3)}}
	reg := testRegistry(t,
		&passCollector{name: "misc", scope: collector.ScopeVM, queries: zoneQuery, produce: recordCounter("zone_records")},
	)

	e := testEngine(inv, reader, reg)
	snap, err := e.Collect(context.Background(), Request{VMs: []string{vmOne, unknown}})
	require.NoError(t, err)

	require.Contains(t, snap.VMs, unknown)
	bad := snap.VMs[unknown]
	require.Error(t, bad.Err)
	assert.True(t, errors.IsCode(bad.Err, errors.ErrCodeNotFound))
	assert.Empty(t, bad.Samples)
	assert.Empty(t, bad.Records)

	good := snap.VMs[vmOne]
	require.NoError(t, good.Err)
	assert.Len(t, good.Samples, 1)
	assert.Empty(t, snap.Errs)
}

func TestCollectAllVMs(t *testing.T) {
	inv := &fakeInventory{vms: map[string]zones.Zone{
		vmOne: guestZone(vmOne, 1),
		vmTwo: guestZone(vmTwo, 2),
	}}
	reader := &fakeReader{records: []kstat.Record{zoneRecord(1), zoneRecord(2)}}
	reg := testRegistry(t,
		&passCollector{name: "misc", scope: collector.ScopeVM, queries: zoneQuery, produce: recordCounter("zone_records")},
	)

	e := testEngine(inv, reader, reg)
	snap, err := e.Collect(context.Background(), Request{AllVMs: true, VMs: []string{"ignored"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{vmOne, vmTwo}, snap.VMUUIDs())
	assert.NotContains(t, snap.VMs, "ignored")
}

func TestCollectEnumerationFailure(t *testing.T) {
	inv := &fakeInventory{runningErr: errors.New(errors.ErrCodeInternal, "vmadm lookup failed")}

	e := testEngine(inv, &fakeReader{}, testRegistry(t))
	snap, err := e.Collect(context.Background(), Request{AllVMs: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnavailable))
	assert.Nil(t, snap)
}

func TestCollectKernelReadFailure(t *testing.T) {
	inv := &fakeInventory{vms: map[string]zones.Zone{vmOne: guestZone(vmOne, 4)}}
	reader := &fakeReader{err: errors.New(errors.ErrCodeKstatRead, "all kstat reads failed")}
	reg := testRegistry(t,
		&passCollector{name: "misc", scope: collector.ScopeVM, queries: zoneQuery, produce: recordCounter("zone_records")},
	)

	e := testEngine(inv, reader, reg)
	snap, err := e.Collect(context.Background(), Request{VMs: []string{vmOne}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeKstatRead))
	assert.Nil(t, snap)
}

func TestCollectNoQueriesSkipsRead(t *testing.T) {
	reader := &fakeReader{}
	reg := testRegistry(t, &passCollector{
		name:  "ancillary",
		scope: collector.ScopeGZ,
		produce: func(_ context.Context, _ collector.Input) ([]metric.Sample, error) {
			return []metric.Sample{{Name: "up", Kind: metric.KindGauge, Value: 1}}, nil
		},
	})

	e := testEngine(&fakeInventory{}, reader, reg)
	snap, err := e.Collect(context.Background(), Request{GZ: true})
	require.NoError(t, err)

	assert.Equal(t, 0, reader.calls)
	require.NotNil(t, snap.GZ)
	assert.Len(t, snap.GZ.Samples, 1)
}

func TestCollectFSFailureIsolated(t *testing.T) {
	inv := &fakeInventory{vms: map[string]zones.Zone{
		vmOne: guestZone(vmOne, 5),
		vmTwo: guestZone(vmTwo, 6),
	}}
	reader := &fakeReader{records: []kstat.Record{zoneRecord(5), zoneRecord(6)}}
	reg := testRegistry(t,
		&passCollector{name: "misc", scope: collector.ScopeVM, queries: zoneQuery, produce: recordCounter("zone_records")},
	)

	e := testEngine(inv, reader, reg)
	e.FS = func(_ context.Context, dataset string) (*zones.FSUsage, error) {
		if dataset == "zones/"+vmOne {
			return nil, errors.New(errors.ErrCodeInternal, "zfs list failed")
		}
		return &zones.FSUsage{Used: 100, Available: 200}, nil
	}

	snap, err := e.Collect(context.Background(), Request{VMs: []string{vmOne, vmTwo}})
	require.NoError(t, err)

	assert.Nil(t, snap.VMs[vmOne].FS)
	require.NotNil(t, snap.VMs[vmTwo].FS)
	assert.Equal(t, uint64(100), snap.VMs[vmTwo].FS.Used)

	// The failed guest still produced its kstat-derived samples.
	assert.Len(t, snap.VMs[vmOne].Samples, 1)
	require.Len(t, snap.Errs, 1)
	assert.True(t, errors.IsCode(snap.Errs[0], errors.ErrCodePartialCollection))
}

func TestCollectNTPOnlyWithGZ(t *testing.T) {
	inv := &fakeInventory{vms: map[string]zones.Zone{vmOne: guestZone(vmOne, 2)}}
	reg := testRegistry(t,
		&passCollector{name: "misc", scope: collector.ScopeVM, queries: zoneQuery, produce: recordCounter("zone_records")},
	)

	calls := 0
	e := testEngine(inv, &fakeReader{records: []kstat.Record{zoneRecord(2)}}, reg)
	e.NTP = func(_ context.Context) (*ntp.Stats, error) {
		calls++
		return &ntp.Stats{Stratum: 3}, nil
	}

	_, err := e.Collect(context.Background(), Request{VMs: []string{vmOne}})
	require.NoError(t, err)
	assert.Equal(t, 0, calls)

	snap, err := e.Collect(context.Background(), Request{GZ: true})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.NotNil(t, snap.NTP)
	assert.Equal(t, 3, snap.NTP.Stratum)
}

func TestCollectNTPFailureDegrades(t *testing.T) {
	reg := testRegistry(t, &passCollector{
		name:  "host",
		scope: collector.ScopeGZ,
		produce: func(_ context.Context, _ collector.Input) ([]metric.Sample, error) {
			return []metric.Sample{{Name: "os_uptime_seconds", Kind: metric.KindGauge, Value: 42}}, nil
		},
	})

	e := testEngine(&fakeInventory{}, &fakeReader{}, reg)
	e.NTP = func(_ context.Context) (*ntp.Stats, error) {
		return nil, errors.New(errors.ErrCodeInternal, "ntpq query failed")
	}

	snap, err := e.Collect(context.Background(), Request{GZ: true})
	require.NoError(t, err)

	assert.Nil(t, snap.NTP)
	require.Len(t, snap.Errs, 1)
	assert.True(t, errors.IsCode(snap.Errs[0], errors.ErrCodePartialCollection))
	require.NotNil(t, snap.GZ)
	assert.Len(t, snap.GZ.Samples, 1)
}

func TestCollectZeroSampleGuestKeepsRecords(t *testing.T) {
	inv := &fakeInventory{vms: map[string]zones.Zone{vmOne: guestZone(vmOne, 10)}}
	reader := &fakeReader{records: []kstat.Record{zoneRecord(10)}}
	reg := testRegistry(t,
		&passCollector{name: "quiet", scope: collector.ScopeVM, queries: zoneQuery},
	)

	e := testEngine(inv, reader, reg)
	snap, err := e.Collect(context.Background(), Request{VMs: []string{vmOne}})
	require.NoError(t, err)

	vm := snap.VMs[vmOne]
	require.NotNil(t, vm)
	assert.Empty(t, vm.Samples)
	require.Len(t, vm.Records, 1)
}

func TestCollectCollectorFailureDegrades(t *testing.T) {
	inv := &fakeInventory{vms: map[string]zones.Zone{vmOne: guestZone(vmOne, 12)}}
	reader := &fakeReader{records: []kstat.Record{zoneRecord(12)}}
	reg := testRegistry(t,
		&passCollector{
			name:    "bad",
			scope:   collector.ScopeVM,
			queries: zoneQuery,
			produce: func(_ context.Context, _ collector.Input) ([]metric.Sample, error) {
				return nil, errors.New(errors.ErrCodeInternal, "produce exploded")
			},
		},
		&passCollector{name: "good", scope: collector.ScopeVM, queries: zoneQuery, produce: recordCounter("zone_records")},
	)

	e := testEngine(inv, reader, reg)
	snap, err := e.Collect(context.Background(), Request{VMs: []string{vmOne}})
	require.NoError(t, err)

	vm := snap.VMs[vmOne]
	require.Len(t, vm.Samples, 1)
	assert.Equal(t, "zone_records", vm.Samples[0].Name)
	require.Len(t, snap.Errs, 1)
	assert.True(t, errors.IsCode(snap.Errs[0], errors.ErrCodePartialCollection))
}

func TestCollectCoreZoneOptions(t *testing.T) {
	inv := &fakeInventory{vms: map[string]zones.Zone{vmOne: guestZone(vmOne, 11)}}

	var seen collector.Input
	reg := testRegistry(t, &passCollector{
		name:  "relay",
		scope: collector.ScopeVM,
		produce: func(_ context.Context, in collector.Input) ([]metric.Sample, error) {
			seen = in
			return nil, nil
		},
	})

	e := testEngine(inv, &fakeReader{}, reg)
	req := Request{
		VMs: []string{vmOne},
		Options: map[string]Options{
			vmOne: {IsCoreZone: true, MetricPorts: []int{8881, 8882}},
		},
	}
	_, err := e.Collect(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, seen.Target.CoreZone)
	assert.Equal(t, []int{8881, 8882}, seen.Target.MetricPorts)
	assert.Equal(t, 11, seen.Target.ZoneID)
	require.NotNil(t, seen.FS)
	assert.Equal(t, uint64(4096), seen.FS.Used)
	assert.NotNil(t, seen.Fetch)
}
