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

// ArcstatsCollector reports the global zone's ZFS ARC state from the
// zfs:0:arcstats kstat.
type ArcstatsCollector struct{}

var arcstatsFields = []fieldMetric{
	{"size", "arcstats_size_bytes", "ARC total size in bytes", metric.KindGauge},
	{"c", "arcstats_target_cache_size_bytes", "ARC target cache size in bytes", metric.KindGauge},
	{"c_min", "arcstats_min_target_cache_size_bytes", "ARC minimum target cache size in bytes", metric.KindGauge},
	{"c_max", "arcstats_max_target_cache_size_bytes", "ARC maximum target cache size in bytes", metric.KindGauge},
	{"hits", "arcstats_hits_total", "ARC hits", metric.KindCounter},
	{"misses", "arcstats_misses_total", "ARC misses", metric.KindCounter},
	{"demand_data_hits", "arcstats_demand_data_hits_total", "ARC demand data hits", metric.KindCounter},
	{"demand_data_misses", "arcstats_demand_data_misses_total", "ARC demand data misses", metric.KindCounter},
	{"prefetch_data_hits", "arcstats_prefetch_data_hits_total", "ARC prefetch data hits", metric.KindCounter},
	{"prefetch_data_misses", "arcstats_prefetch_data_misses_total", "ARC prefetch data misses", metric.KindCounter},
	{"mru_hits", "arcstats_mru_hits_total", "ARC MRU hits", metric.KindCounter},
	{"mfu_hits", "arcstats_mfu_hits_total", "ARC MFU hits", metric.KindCounter},
	{"deleted", "arcstats_deleted_total", "ARC deleted entries", metric.KindCounter},
	{"evict_skip", "arcstats_evict_skip_total", "ARC evictions skipped", metric.KindCounter},
	{"l2_hits", "arcstats_l2_hits_total", "L2ARC hits", metric.KindCounter},
	{"l2_misses", "arcstats_l2_misses_total", "L2ARC misses", metric.KindCounter},
}

// Name returns the collector key.
func (c *ArcstatsCollector) Name() string { return "arcstats" }

// Scope returns ScopeGZ.
func (c *ArcstatsCollector) Scope() Scope { return ScopeGZ }

// Queries declares the arcstats kstat read.
func (c *ArcstatsCollector) Queries(target Target) []kstat.Query {
	return []kstat.Query{{
		Module:   "zfs",
		Name:     "arcstats",
		Instance: 0,
	}}
}

// Produce translates the arcstats record into samples. With no matched
// record (ZFS absent) it produces nothing.
func (c *ArcstatsCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	var samples []metric.Sample
	for _, rec := range kstat.Select(c.Queries(in.Target)[0], in.Records) {
		samples = append(samples, samplesFromRecord(rec, arcstatsFields)...)
	}
	return samples, nil
}
