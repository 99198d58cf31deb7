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

// TCPCollector reports a guest's TCP MIB counters from the tcp:<id> kstat.
type TCPCollector struct{}

var tcpFields = []fieldMetric{
	{"activeOpens", "tcp_active_open_count", "TCP active open connections", metric.KindCounter},
	{"passiveOpens", "tcp_passive_open_count", "TCP passive open connections", metric.KindCounter},
	{"attemptFails", "tcp_failed_connection_attempt_count", "Failed TCP connection attempts", metric.KindCounter},
	{"retransSegs", "tcp_retransmitted_segment_count", "Retransmitted TCP segments", metric.KindCounter},
	{"estabResets", "tcp_connection_reset_count", "Established TCP connections reset", metric.KindCounter},
	{"inSegs", "tcp_received_segment_count", "TCP segments received", metric.KindCounter},
	{"outSegs", "tcp_sent_segment_count", "TCP segments sent", metric.KindCounter},
	{"listenDrop", "tcp_listen_drop_count", "TCP connections dropped from a full listen queue", metric.KindCounter},
	{"listenDropQ0", "tcp_listen_drop_Qzero_count", "TCP connections dropped from a full half-open queue", metric.KindCounter},
	{"halfOpenDrop", "tcp_half_open_drop_count", "TCP connections dropped half open", metric.KindCounter},
	{"timRetransDrop", "tcp_retransmit_timeout_drop_count", "TCP connections dropped by retransmit timeout", metric.KindCounter},
	{"currEstab", "tcp_current_established_connections_total", "Currently established TCP connections", metric.KindGauge},
}

// Name returns the collector key.
func (c *TCPCollector) Name() string { return "tcp" }

// Scope returns ScopeVM.
func (c *TCPCollector) Scope() Scope { return ScopeVM }

// Queries declares the guest's TCP MIB read.
func (c *TCPCollector) Queries(target Target) []kstat.Query {
	return []kstat.Query{{
		Module:   "tcp",
		Class:    "mib2",
		Instance: kstat.InstanceID(target.ZoneID),
	}}
}

// Produce translates the TCP MIB record into samples.
func (c *TCPCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	var samples []metric.Sample
	for _, rec := range kstat.Select(c.Queries(in.Target)[0], in.Records) {
		samples = append(samples, samplesFromRecord(rec, tcpFields)...)
	}
	return samples, nil
}
