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

// loadAvgScale converts the kernel's fixed-point run-queue averages, which
// carry an 8 bit fraction.
const loadAvgScale = 256.0

// ZoneMiscCollector reports a guest's CPU time counters, load average, and
// boot time from the zones:<id> zone_misc kstat.
type ZoneMiscCollector struct{}

// Name returns the collector key.
func (c *ZoneMiscCollector) Name() string { return "zone_misc" }

// Scope returns ScopeVM.
func (c *ZoneMiscCollector) Scope() Scope { return ScopeVM }

// Queries declares the guest's zone_misc read. The query is delta-flagged
// so it shares one kernel read with the CPU usage collector.
func (c *ZoneMiscCollector) Queries(target Target) []kstat.Query {
	return zoneMiscQueries(target)
}

func zoneMiscQueries(target Target) []kstat.Query {
	return []kstat.Query{{
		Module:   "zones",
		Class:    "zone_misc",
		Instance: kstat.InstanceID(target.ZoneID),
		Delta:    true,
	}}
}

var zoneMiscFields = []fieldMetric{
	{"nsec_user", "cpu_user_usage", "User CPU utilization in nanoseconds", metric.KindCounter},
	{"nsec_sys", "cpu_sys_usage", "System CPU usage in nanoseconds", metric.KindCounter},
	{"nsec_waitrq", "cpu_wait_time", "CPU wait time in nanoseconds", metric.KindCounter},
}

// Produce emits the raw CPU counters plus derived load average and boot
// timestamp gauges.
func (c *ZoneMiscCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	records := kstat.Select(zoneMiscQueries(in.Target)[0], in.Records)
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]

	samples := samplesFromRecord(rec, zoneMiscFields)

	if v, ok := rec.Data["avenrun_1min"]; ok {
		if f, ok := v.Float64(); ok {
			samples = append(samples, metric.Gauge("load_average",
				"Load average over the last minute", nil, f/loadAvgScale))
		}
	}
	if v, ok := rec.Data["boot_time"]; ok {
		if f, ok := v.Float64(); ok {
			samples = append(samples, metric.Gauge("boot_timestamp",
				"Boot time of the zone in seconds since epoch", nil, f))
		}
	}

	return samples, nil
}
