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

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Collection pass metrics
	collectionPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cmon_agent_collection_pass_duration_seconds",
			Help:    "Time taken to complete a full collection pass",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	collectionPassTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmon_agent_collection_passes_total",
			Help: "Total number of collection pass attempts",
		},
		[]string{"status"}, // success or error
	)

	collectionSignatureCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cmon_agent_collection_kstat_signatures",
			Help: "Number of distinct kstat signatures read by the last pass",
		},
	)

	collectionSampleCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cmon_agent_collection_samples",
			Help: "Number of samples produced by the last collection pass",
		},
	)
)
