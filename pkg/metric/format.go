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

package metric

import (
	"io"
	"log/slog"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
)

// Format renders samples as Prometheus text exposition. Each metric name
// is declared exactly once; families are emitted in name order and series
// within a family in label order, so equal sample sets render to equal
// bytes. Non-finite values are dropped rather than emitted.
func Format(w io.Writer, samples []Sample) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(constCollector{samples: samples}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to register sample collector", err)
	}

	fams, err := reg.Gather()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "inconsistent sample set", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, fam := range fams {
		if err := enc.Encode(fam); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "failed to encode metric family", err)
		}
	}
	return nil
}

// constCollector exposes a fixed sample set to a registry. Describe sends
// nothing, making this an unchecked collector; consistency is validated
// at gather time instead.
type constCollector struct {
	samples []Sample
}

func (c constCollector) Describe(chan<- *prometheus.Desc) {}

func (c constCollector) Collect(ch chan<- prometheus.Metric) {
	type nameDesc struct {
		desc *prometheus.Desc
		keys []string
		vt   prometheus.ValueType
	}
	descs := make(map[string]*nameDesc)

	for _, s := range c.samples {
		if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			samplesDropped.WithLabelValues(reasonNonFinite).Inc()
			slog.Debug("dropping non-finite sample", "metric", s.Name)
			continue
		}

		d, ok := descs[s.Name]
		if !ok {
			keys := sortedKeys(s.Labels)
			d = &nameDesc{
				desc: prometheus.NewDesc(s.Name, s.Help, keys, nil),
				keys: keys,
				vt:   valueType(s.Kind),
			}
			descs[s.Name] = d
		}

		if !labelKeysMatch(s.Labels, d.keys) {
			samplesDropped.WithLabelValues(reasonInconsistent).Inc()
			slog.Warn("dropping sample with mismatched label keys",
				"metric", s.Name)
			continue
		}

		vals := make([]string, len(d.keys))
		for i, k := range d.keys {
			vals[i] = s.Labels[k]
		}
		m, err := prometheus.NewConstMetric(d.desc, d.vt, s.Value, vals...)
		if err != nil {
			samplesDropped.WithLabelValues(reasonInvalid).Inc()
			slog.Warn("dropping invalid sample",
				"metric", s.Name,
				"error", err)
			continue
		}
		ch <- m
	}
}

func valueType(k Kind) prometheus.ValueType {
	if k == KindCounter {
		return prometheus.CounterValue
	}
	return prometheus.GaugeValue
}

func labelKeysMatch(labels map[string]string, keys []string) bool {
	if len(labels) != len(keys) {
		return false
	}
	for _, k := range keys {
		if _, ok := labels[k]; !ok {
			return false
		}
	}
	return true
}
