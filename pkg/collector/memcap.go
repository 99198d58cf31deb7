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

// MemCapCollector reports a guest's memory usage against its caps from the
// memory_cap:<id> kstat.
type MemCapCollector struct{}

var memCapFields = []fieldMetric{
	{"rss", "mem_agg_usage", "Aggregate memory usage in bytes", metric.KindGauge},
	{"physcap", "mem_limit", "Memory limit in bytes", metric.KindGauge},
	{"swap", "mem_swap", "Swap in bytes", metric.KindGauge},
	{"swapcap", "mem_swap_limit", "Swap limit in bytes", metric.KindGauge},
	{"anon_alloc_fail", "mem_anon_alloc_fail", "Anonymous allocation failure count", metric.KindCounter},
	{"anonpgin", "mem_anon_pagein_total", "Anonymous page-ins from swap", metric.KindCounter},
	{"pagedout", "mem_pageout_bytes_total", "Bytes of memory paged out", metric.KindCounter},
}

// Name returns the collector key.
func (c *MemCapCollector) Name() string { return "memory_cap" }

// Scope returns ScopeVM.
func (c *MemCapCollector) Scope() Scope { return ScopeVM }

// Queries declares the guest's memory_cap read.
func (c *MemCapCollector) Queries(target Target) []kstat.Query {
	return []kstat.Query{{
		Module:   "memory_cap",
		Instance: kstat.InstanceID(target.ZoneID),
	}}
}

// Produce translates the memory_cap record. Zones without a memory cap have
// no record and produce nothing.
func (c *MemCapCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	var samples []metric.Sample
	for _, rec := range kstat.Select(c.Queries(in.Target)[0], in.Records) {
		samples = append(samples, samplesFromRecord(rec, memCapFields)...)
	}
	return samples, nil
}
