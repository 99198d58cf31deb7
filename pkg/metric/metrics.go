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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	reasonNonFinite    = "non_finite"
	reasonInconsistent = "inconsistent_labels"
	reasonInvalid      = "invalid"
)

var samplesDropped = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cmon_agent_format_samples_dropped_total",
		Help: "Samples dropped during exposition rendering by reason.",
	},
	[]string{"reason"},
)
