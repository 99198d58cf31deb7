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

import "strconv"

// Record is one kstat read result: the identifying tuple, the kernel
// timestamps, and the named data values. For delta-flagged queries the
// reader also fills the delta fields.
type Record struct {
	Module   string `json:"module"`
	Instance int    `json:"instance"`
	Name     string `json:"name"`
	Class    string `json:"class"`

	// Snaptime and Crtime are seconds since boot, with sub-second
	// precision, as reported by kstat(1M) with -j.
	Snaptime float64 `json:"snaptime"`
	Crtime   float64 `json:"crtime,omitempty"`

	Data map[string]Value `json:"data"`

	// DeltaReady reports whether Deltas and Rates hold usable values.
	// It is false on the first read of a tuple, when there is no
	// previous state to difference against.
	DeltaReady bool `json:"delta_ready,omitempty"`

	// Interval is the snaptime distance to the previous read, in seconds.
	Interval float64 `json:"interval_seconds,omitempty"`

	// Deltas holds per-field differences since the previous read.
	// A field that moved backward reports zero.
	Deltas map[string]float64 `json:"deltas,omitempty"`

	// Rates holds per-field per-second rates over Interval.
	Rates map[string]float64 `json:"rates,omitempty"`
}

// Key identifies the kstat tuple independent of query flags. It is the
// delta table key: one state slot exists per distinct tuple.
func (r Record) Key() string {
	return r.Module + ":" + strconv.Itoa(r.Instance) + ":" + r.Name + ":" + r.Class
}
