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

// NTPCollector reports host time-sync state gathered once per pass from the
// local NTP daemon. It consumes the ancillary bundle, not kstats.
type NTPCollector struct{}

// Name returns the collector key.
func (c *NTPCollector) Name() string { return "ntp" }

// Scope returns ScopeGZ.
func (c *NTPCollector) Scope() Scope { return ScopeGZ }

// Queries returns nil; this collector does not consume kstats.
func (c *NTPCollector) Queries(target Target) []kstat.Query { return nil }

// Produce emits gauges from the pass's NTP stats. A missing bundle means
// the ancillary fetch failed upstream and yields no samples, not an error.
func (c *NTPCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	st := in.NTP
	if st == nil {
		return nil, nil
	}

	return []metric.Sample{
		metric.Gauge("ntp_offset_milliseconds", "Clock offset to the sync peer in milliseconds", nil, st.Offset),
		metric.Gauge("ntp_frequency_ppm", "Clock frequency correction in parts per million", nil, st.Frequency),
		metric.Gauge("ntp_system_jitter_milliseconds", "Combined system jitter in milliseconds", nil, st.SysJitter),
		metric.Gauge("ntp_clock_jitter_milliseconds", "Clock jitter in milliseconds", nil, st.ClkJitter),
		metric.Gauge("ntp_root_delay_milliseconds", "Total roundtrip delay to the primary reference in milliseconds", nil, st.RootDelay),
		metric.Gauge("ntp_root_dispersion_milliseconds", "Total dispersion to the primary reference in milliseconds", nil, st.RootDispersion),
		metric.Gauge("ntp_stratum", "Distance from the reference clock", nil, float64(st.Stratum)),
		metric.Gauge("ntp_precision", "Clock precision as a power of two exponent", nil, float64(st.Precision)),
	}, nil
}
