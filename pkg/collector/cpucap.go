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
	"fmt"

	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
)

// CPUCapCollector reports a guest's CPU cap state from the
// caps:<id>:cpucaps_zone_<id> kstat. Zones without a cap have no such
// kstat, which is a legitimate empty read, not a failure.
type CPUCapCollector struct{}

var cpuCapFields = []fieldMetric{
	{"value", "cpucap_limit_percentage", "CPU cap as a percentage of one CPU", metric.KindGauge},
	{"usage", "cpucap_cur_usage_percentage", "Current CPU usage against the cap", metric.KindGauge},
	{"maxusage", "cpucap_maxusage_percentage", "Maximum observed CPU usage against the cap", metric.KindGauge},
	{"baseline", "cpucap_baseline_percentage", "Baseline CPU usage for burst accounting", metric.KindGauge},
	{"nwait", "cpucap_waiting_threads_count", "Threads on the cap wait queue", metric.KindGauge},
	{"above_sec", "cpucap_above_seconds_total", "Seconds spent above the cap", metric.KindCounter},
	{"above_base_sec", "cpucap_above_base_seconds_total", "Seconds spent above the baseline", metric.KindCounter},
	{"below_sec", "cpucap_below_seconds_total", "Seconds spent below the cap", metric.KindCounter},
}

// Name returns the collector key.
func (c *CPUCapCollector) Name() string { return "cpucap" }

// Scope returns ScopeVM.
func (c *CPUCapCollector) Scope() Scope { return ScopeVM }

// Queries declares the guest's cpucaps read.
func (c *CPUCapCollector) Queries(target Target) []kstat.Query {
	return []kstat.Query{{
		Module:   "caps",
		Name:     fmt.Sprintf("cpucaps_zone_%d", target.ZoneID),
		Instance: kstat.InstanceID(target.ZoneID),
	}}
}

// Produce translates the cpucaps record into samples, or nothing for an
// uncapped zone.
func (c *CPUCapCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	var samples []metric.Sample
	for _, rec := range kstat.Select(c.Queries(in.Target)[0], in.Records) {
		samples = append(samples, samplesFromRecord(rec, cpuCapFields)...)
	}
	return samples, nil
}
