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

// CPUInfoCollector reports processor topology for the global zone from the
// cpu_info module, one kstat instance per logical CPU.
type CPUInfoCollector struct{}

// Name returns the collector key.
func (c *CPUInfoCollector) Name() string { return "cpu_info" }

// Scope returns ScopeGZ.
func (c *CPUInfoCollector) Scope() Scope { return ScopeGZ }

// Queries declares a read across every cpu_info instance.
func (c *CPUInfoCollector) Queries(target Target) []kstat.Query {
	return []kstat.Query{{
		Module:   "cpu_info",
		Class:    "misc",
		Instance: kstat.InstanceAll,
	}}
}

// Produce emits the logical CPU count plus model and clock details taken
// from the lowest-numbered instance.
func (c *CPUInfoCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	records := kstat.Select(c.Queries(in.Target)[0], in.Records)
	if len(records) == 0 {
		return nil, nil
	}

	first := records[0]
	for _, rec := range records[1:] {
		if rec.Instance < first.Instance {
			first = rec
		}
	}

	samples := []metric.Sample{
		metric.Gauge("cpu_count", "Number of logical CPUs", nil, float64(len(records))),
	}

	if v, ok := first.Data["model"]; ok {
		if f, ok := v.Float64(); ok {
			samples = append(samples,
				metric.Gauge("cpu_info_model", "CPU model number", nil, f))
		}
	}
	if v, ok := first.Data["clock_MHz"]; ok {
		if f, ok := v.Float64(); ok {
			samples = append(samples,
				metric.Gauge("cpu_info_clock_mhz", "CPU clock rate in MHz", nil, f))
		}
	}

	return samples, nil
}
