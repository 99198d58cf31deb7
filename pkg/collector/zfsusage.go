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

// ZFSUsageCollector reports a guest's dataset space usage from the
// ancillary bundle gathered per zone outside the kstat namespace.
type ZFSUsageCollector struct{}

// Name returns the collector key.
func (c *ZFSUsageCollector) Name() string { return "zfs_usage" }

// Scope returns ScopeVM.
func (c *ZFSUsageCollector) Scope() Scope { return ScopeVM }

// Queries returns nil; this collector does not consume kstats.
func (c *ZFSUsageCollector) Queries(target Target) []kstat.Query { return nil }

// Produce emits the zone's dataset usage gauges. A missing bundle means
// the per-zone fetch failed upstream and yields no samples, not an error.
func (c *ZFSUsageCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	fs := in.FS
	if fs == nil {
		return nil, nil
	}

	return []metric.Sample{
		metric.Gauge("zfs_used_bytes", "Bytes used in the zone's dataset", nil, float64(fs.Used)),
		metric.Gauge("zfs_available_bytes", "Bytes available to the zone's dataset", nil, float64(fs.Available)),
	}, nil
}
