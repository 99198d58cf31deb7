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
	"log/slog"
	"time"

	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
)

// vmUUIDLabel is attached to every sample produced for a guest target.
const vmUUIDLabel = "vm_uuid"

// Registry holds the process-wide set of collectors, partitioned by scope.
// It is built once at startup and read-only afterwards.
type Registry struct {
	gz []Collector
	vm []Collector
}

// NewRegistry validates and indexes the given collectors. Collector names
// must be unique within their scope; a duplicate is a configuration error.
func NewRegistry(collectors ...Collector) (*Registry, error) {
	r := &Registry{}
	seen := map[Scope]map[string]bool{
		ScopeGZ: {},
		ScopeVM: {},
	}

	for _, c := range collectors {
		scope := c.Scope()
		name := c.Name()
		if name == "" {
			return nil, errors.New(errors.ErrCodeConfiguration, "collector has no name")
		}
		if seen[scope][name] {
			return nil, errors.NewWithContext(errors.ErrCodeConfiguration,
				"duplicate collector name", map[string]any{
					"collector": name,
					"scope":     scope.String(),
				})
		}
		seen[scope][name] = true

		switch scope {
		case ScopeGZ:
			r.gz = append(r.gz, c)
		case ScopeVM:
			r.vm = append(r.vm, c)
		}
	}

	return r, nil
}

// For returns the collectors active for the given scope, in registration
// order. The returned slice is shared and must not be mutated.
func (r *Registry) For(scope Scope) []Collector {
	if scope == ScopeGZ {
		return r.gz
	}
	return r.vm
}

// QueriesFor returns the union of kstat queries the target's collectors
// declare. The union is not deduplicated; callers batch passes across
// several targets and dedup once.
func (r *Registry) QueriesFor(target Target) []kstat.Query {
	var queries []kstat.Query
	for _, c := range r.For(target.Scope()) {
		queries = append(queries, c.Queries(target)...)
	}
	return queries
}

// ProduceFor runs the target's collectors in registration order and
// concatenates their samples. A collector that fails is logged and counted,
// its samples are omitted, and its siblings still run; the failures come
// back alongside the samples. Guest samples are labeled with the guest UUID.
func (r *Registry) ProduceFor(ctx context.Context, in Input) ([]metric.Sample, []error) {
	var (
		samples []metric.Sample
		errs    []error
	)

	for _, c := range r.For(in.Target.Scope()) {
		start := time.Now()
		produced, err := c.Produce(ctx, in)
		collectorDuration.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
		if err != nil {
			collectorFailures.WithLabelValues(c.Name()).Inc()
			slog.Warn("collector failed",
				slog.String("collector", c.Name()),
				slog.String("scope", in.Target.Scope().String()),
				slog.String("vm_uuid", in.Target.UUID),
				slog.String("error", err.Error()))
			errs = append(errs, errors.Wrap(errors.ErrCodePartialCollection,
				fmt.Sprintf("collector %s failed", c.Name()), err))
			continue
		}

		if !in.Target.GZ {
			for i := range produced {
				produced[i] = produced[i].WithLabel(vmUUIDLabel, in.Target.UUID)
			}
		}
		samples = append(samples, produced...)
	}

	return samples, errs
}
