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
	"github.com/richardkiene/triton-cmon-agent/pkg/ntp"
	"github.com/richardkiene/triton-cmon-agent/pkg/serializer"
	"github.com/richardkiene/triton-cmon-agent/pkg/zones"
)

// Scope partitions collectors between the global zone and guest zones.
type Scope int

const (
	// ScopeGZ marks a collector that runs for the global zone only.
	ScopeGZ Scope = iota
	// ScopeVM marks a collector that runs once per guest zone.
	ScopeVM
)

// String returns the scope's label used in logs and metrics.
func (s Scope) String() string {
	if s == ScopeGZ {
		return "gz"
	}
	return "vm"
}

// Target identifies the entity a collection pass is producing metrics for:
// either the global zone or one guest zone.
type Target struct {
	// GZ selects the global zone. When true the remaining fields are unset.
	GZ bool

	// UUID is the guest zone's external identifier.
	UUID string

	// ZoneID is the kernel instance id that namespaces the guest's kstats.
	ZoneID int

	// IPs are the guest's configured addresses, used for core zone scraping.
	IPs []string

	// CoreZone marks a privileged Triton core zone whose own metric
	// endpoints are scraped and relayed alongside kstat-derived metrics.
	CoreZone bool

	// MetricPorts lists the ports a core zone exposes metrics on.
	MetricPorts []int
}

// Scope returns the scope this target selects collectors from.
func (t Target) Scope() Scope {
	if t.GZ {
		return ScopeGZ
	}
	return ScopeVM
}

// Input carries everything a collector may consume for one target in one
// collection pass. Records holds only the kstat records matched for this
// target, already read and delta-processed.
type Input struct {
	Target  Target
	Records []kstat.Record

	// FS is the target zone's dataset usage, nil when unavailable.
	FS *zones.FSUsage

	// NTP is the host time-sync state, fetched once per pass and only
	// populated for the global zone target. Nil when unavailable.
	NTP *ntp.Stats

	// Fetch performs HTTP reads for collectors that relay remote metrics.
	Fetch *serializer.HttpReader
}

// Collector is one self-contained metric producer. Implementations declare
// the kstat reads they need up front and later turn the matched records,
// plus any ancillary data, into samples.
//
// Queries may return nil for collectors fed purely by ancillary data.
// Produce must tolerate missing records and report an error rather than
// panic; a failing collector never stops its siblings.
type Collector interface {
	Name() string
	Scope() Scope
	Queries(target Target) []kstat.Query
	Produce(ctx context.Context, in Input) ([]metric.Sample, error)
}

// fieldMetric maps one kstat named value onto an emitted metric. Tables of
// these drive the kstat-backed collectors; slice order fixes sample order.
type fieldMetric struct {
	field string
	name  string
	help  string
	kind  metric.Kind
}

// samplesFromRecord translates a record's named values through a field
// table. Fields absent from the record or non-numeric are skipped.
func samplesFromRecord(rec kstat.Record, fields []fieldMetric) []metric.Sample {
	samples := make([]metric.Sample, 0, len(fields))
	for _, fm := range fields {
		v, ok := rec.Data[fm.field]
		if !ok {
			continue
		}
		f, ok := v.Float64()
		if !ok {
			continue
		}
		samples = append(samples, metric.Sample{
			Name:  fm.name,
			Kind:  fm.kind,
			Help:  fm.help,
			Value: f,
		})
	}
	return samples
}
