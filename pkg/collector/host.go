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

	"github.com/shirou/gopsutil/v4/host"

	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
)

// HostCollector reports global zone uptime and process count through the
// OS statistics layer rather than kstats.
type HostCollector struct {
	// Info overrides the host information source, for tests.
	Info func(ctx context.Context) (*host.InfoStat, error)
}

// Name returns the collector key.
func (c *HostCollector) Name() string { return "host" }

// Scope returns ScopeGZ.
func (c *HostCollector) Scope() Scope { return ScopeGZ }

// Queries returns nil; this collector does not consume kstats.
func (c *HostCollector) Queries(target Target) []kstat.Query { return nil }

// Produce emits uptime, boot time, and process count gauges.
func (c *HostCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	info := c.Info
	if info == nil {
		info = host.InfoWithContext
	}

	st, err := info(ctx)
	if err != nil {
		return nil, err
	}

	return []metric.Sample{
		metric.Gauge("os_uptime_seconds", "Host uptime in seconds", nil, float64(st.Uptime)),
		metric.Gauge("os_boot_timestamp_seconds", "Host boot time in seconds since epoch", nil, float64(st.BootTime)),
		metric.Gauge("os_process_count", "Number of processes on the host", nil, float64(st.Procs)),
	}, nil
}
