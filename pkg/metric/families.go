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
	dto "github.com/prometheus/client_model/go"
)

// FromFamilies flattens parsed exposition families into samples, for
// relaying metrics scraped from another exporter. Counters and gauges map
// directly; untyped values become gauges. Histograms and summaries are
// skipped, relayed endpoints expose simple values.
func FromFamilies(fams map[string]*dto.MetricFamily) []Sample {
	var out []Sample
	for name, fam := range fams {
		for _, m := range fam.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}

			var s Sample
			switch {
			case m.GetCounter() != nil:
				s = Counter(name, fam.GetHelp(), labels, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				s = Gauge(name, fam.GetHelp(), labels, m.GetGauge().GetValue())
			case m.GetUntyped() != nil:
				s = Gauge(name, fam.GetHelp(), labels, m.GetUntyped().GetValue())
			default:
				continue
			}
			out = append(out, s)
		}
	}
	return out
}
