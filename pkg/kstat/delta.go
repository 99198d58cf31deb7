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

import "time"

// deltaStateExpiry bounds how long unread tuple state is retained, so
// tuples for deleted zones do not accumulate forever.
const deltaStateExpiry = 10 * time.Minute

// deltaState is the previous-read snapshot of one kstat tuple.
type deltaState struct {
	snaptime float64
	crtime   float64
	values   map[string]Value
	seen     time.Time
}

// applyDeltas fills the delta fields of each record from the previous read
// of the same tuple, then replaces the stored state. Callers hold r.mu.
func (r *CLIReader) applyDeltas(recs []Record) {
	for i := range recs {
		r.applyDelta(&recs[i])
	}
}

func (r *CLIReader) applyDelta(rec *Record) {
	key := rec.Key()
	st, ok := r.prev[key]
	r.prev[key] = deltaState{
		snaptime: rec.Snaptime,
		crtime:   rec.Crtime,
		values:   rec.Data,
		seen:     r.now(),
	}

	if !ok || st.crtime != rec.Crtime {
		// First sight of this tuple, or the kstat was recreated since
		// the previous read (e.g. a zone restart). No usable baseline,
		// so the record stays not-ready rather than reporting zeros.
		return
	}

	rec.DeltaReady = true
	rec.Interval = rec.Snaptime - st.snaptime
	rec.Deltas = make(map[string]float64, len(rec.Data))
	rec.Rates = make(map[string]float64, len(rec.Data))

	for field, cur := range rec.Data {
		prev, found := st.values[field]
		if !found || !cur.IsNumeric() || !prev.IsNumeric() {
			continue
		}
		delta, wrapped := diffValues(cur, prev)
		if wrapped {
			delta = 0
		}
		rec.Deltas[field] = delta
		if rec.Interval > 0 {
			rec.Rates[field] = delta / rec.Interval
		} else {
			rec.Rates[field] = 0
		}
	}
}

// diffValues returns cur-prev and whether the value moved backward.
// Non-negative integers are differenced exactly; everything else goes
// through float64.
func diffValues(cur, prev Value) (delta float64, wrapped bool) {
	if cu, ok := cur.Uint64(); ok {
		if pu, ok := prev.Uint64(); ok {
			if cu < pu {
				return 0, true
			}
			return float64(cu - pu), false
		}
	}
	cf, _ := cur.Float64()
	pf, _ := prev.Float64()
	if cf < pf {
		return 0, true
	}
	return cf - pf, false
}

// pruneStale drops tuple state that has not been refreshed within the
// expiry window. Callers hold r.mu.
func (r *CLIReader) pruneStale() {
	cutoff := r.now().Add(-deltaStateExpiry)
	for key, st := range r.prev {
		if st.seen.Before(cutoff) {
			delete(r.prev, key)
		}
	}
}
