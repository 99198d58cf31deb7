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

// CPUUsageCollector derives a guest's CPU utilization gauge from the rate
// of change of its zone_misc time counters. It shares the delta-flagged
// zone_misc read with ZoneMiscCollector; on the first pass for a zone the
// rates are not yet known and the gauge is absent rather than zero.
type CPUUsageCollector struct{}

// Name returns the collector key.
func (c *CPUUsageCollector) Name() string { return "cpu_usage" }

// Scope returns ScopeVM.
func (c *CPUUsageCollector) Scope() Scope { return ScopeVM }

// Queries declares the same delta-flagged zone_misc read as ZoneMiscCollector.
func (c *CPUUsageCollector) Queries(target Target) []kstat.Query {
	return zoneMiscQueries(target)
}

// Produce emits cpu_usage_percentage once delta state exists for the zone.
func (c *CPUUsageCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	records := kstat.Select(zoneMiscQueries(in.Target)[0], in.Records)
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]

	if !rec.DeltaReady {
		return nil, nil
	}

	// Rates are nanoseconds of CPU time per second of wall time.
	usage := (rec.Rates["nsec_user"] + rec.Rates["nsec_sys"]) / 1e9 * 100

	return []metric.Sample{
		metric.Gauge("cpu_usage_percentage",
			"CPU utilization since the previous read, as a percentage of one CPU",
			nil, usage),
	}, nil
}
