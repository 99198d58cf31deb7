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
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/common/expfmt"

	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
)

// TritonCoreCollector relays metrics that Triton core zones expose on their
// own HTTP endpoints. It only applies to targets marked as core zones and
// scrapes each declared metric port on the zone's first address.
type TritonCoreCollector struct{}

// Name returns the collector key.
func (c *TritonCoreCollector) Name() string { return "triton_core" }

// Scope returns ScopeVM.
func (c *TritonCoreCollector) Scope() Scope { return ScopeVM }

// Queries returns nil; this collector does not consume kstats.
func (c *TritonCoreCollector) Queries(target Target) []kstat.Query { return nil }

// Produce scrapes each metric port and re-emits the parsed families. A
// port that fails to scrape or parse is skipped; the collector fails only
// when every port failed.
func (c *TritonCoreCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	t := in.Target
	if !t.CoreZone || len(t.MetricPorts) == 0 || in.Fetch == nil {
		return nil, nil
	}
	if len(t.IPs) == 0 {
		return nil, errors.NewWithContext(errors.ErrCodePartialCollection,
			"core zone has no address to scrape", map[string]any{"vm_uuid": t.UUID})
	}
	addr := t.IPs[0]

	var (
		samples []metric.Sample
		failed  int
	)

	for _, port := range t.MetricPorts {
		url := fmt.Sprintf("http://%s:%d/metrics", addr, port)
		body, err := in.Fetch.ReadWithContext(ctx, url)
		if err != nil {
			coreZoneScrapes.WithLabelValues(outcomeError).Inc()
			slog.Warn("core zone scrape failed",
				slog.String("vm_uuid", t.UUID),
				slog.String("url", url),
				slog.String("error", err.Error()))
			failed++
			continue
		}

		var parser expfmt.TextParser
		families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
		if err != nil {
			coreZoneScrapes.WithLabelValues(outcomeError).Inc()
			slog.Warn("core zone metrics unparsable",
				slog.String("vm_uuid", t.UUID),
				slog.String("url", url),
				slog.String("error", err.Error()))
			failed++
			continue
		}

		coreZoneScrapes.WithLabelValues(outcomeSuccess).Inc()
		samples = append(samples, metric.FromFamilies(families)...)
	}

	if failed == len(t.MetricPorts) {
		return nil, errors.NewWithContext(errors.ErrCodePartialCollection,
			"all core zone metric ports failed", map[string]any{
				"vm_uuid": t.UUID,
				"ports":   t.MetricPorts,
			})
	}

	return samples, nil
}
