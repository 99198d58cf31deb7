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

package collector

import (
	"context"

	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
)

// ZoneVFSCollector reports a guest's filesystem operation counters from the
// zone_vfs:<id> kstat.
type ZoneVFSCollector struct{}

var zoneVFSFields = []fieldMetric{
	{"nread", "vfs_bytes_read_count", "Bytes read via VFS", metric.KindCounter},
	{"nwritten", "vfs_bytes_written_count", "Bytes written via VFS", metric.KindCounter},
	{"reads", "vfs_read_operation_count", "VFS read operations", metric.KindCounter},
	{"writes", "vfs_write_operation_count", "VFS write operations", metric.KindCounter},
	{"rtime", "vfs_run_time_count", "Nanoseconds spent with an active VFS operation", metric.KindCounter},
	{"wtime", "vfs_wait_time_count", "Nanoseconds VFS operations spent waiting", metric.KindCounter},
	{"rlentime", "vfs_run_length_time_count", "Cumulative VFS run queue length time product", metric.KindCounter},
	{"wlentime", "vfs_wait_length_time_count", "Cumulative VFS wait queue length time product", metric.KindCounter},
	{"delay_cnt", "vfs_io_throttle_delay_count", "VFS operations delayed by IO throttling", metric.KindCounter},
	{"delay_time", "vfs_io_throttle_time_count", "Nanoseconds of IO throttle delay", metric.KindCounter},
}

// Name returns the collector key.
func (c *ZoneVFSCollector) Name() string { return "zone_vfs" }

// Scope returns ScopeVM.
func (c *ZoneVFSCollector) Scope() Scope { return ScopeVM }

// Queries declares the guest's zone_vfs read.
func (c *ZoneVFSCollector) Queries(target Target) []kstat.Query {
	return []kstat.Query{{
		Module:   "zone_vfs",
		Instance: kstat.InstanceID(target.ZoneID),
	}}
}

// Produce translates the zone_vfs record into samples.
func (c *ZoneVFSCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	var samples []metric.Sample
	for _, rec := range kstat.Select(c.Queries(in.Target)[0], in.Records) {
		samples = append(samples, samplesFromRecord(rec, zoneVFSFields)...)
	}
	return samples, nil
}
