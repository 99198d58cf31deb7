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

package kstat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	readsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmon_agent_kstat_reads_total",
			Help: "Total number of kstat CLI invocations by outcome.",
		},
		[]string{"outcome"},
	)

	readDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cmon_agent_kstat_read_duration_seconds",
			Help:    "Duration of batched kstat read passes in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)
