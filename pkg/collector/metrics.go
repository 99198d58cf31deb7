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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	collectorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmon_agent_collector_failures_total",
			Help: "Total number of collector production failures.",
		},
		[]string{"collector"},
	)

	coreZoneScrapes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmon_agent_core_zone_scrapes_total",
			Help: "Total number of core zone metric endpoint scrapes.",
		},
		[]string{"outcome"},
	)

	collectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cmon_agent_collector_duration_seconds",
			Help:    "Time taken by individual collectors",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"collector"}, // cpu, memory, network, tcp, vfs, ...
	)
)
