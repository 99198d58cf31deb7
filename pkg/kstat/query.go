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
	"path"
	"strconv"
)

// InstanceID selects which kstat instance a query matches.
type InstanceID int

// InstanceAll matches every instance of a module.
const InstanceAll InstanceID = -1

// Query selects a set of kstats. Empty string fields and InstanceAll act as
// wildcards. Name may be a shell glob (e.g. "z5_*"), matching kstat(1M).
type Query struct {
	// Module is the kstat module, e.g. "zones" or "memory_cap".
	Module string

	// Class restricts matches to a kstat class, e.g. "zone_misc".
	Class string

	// Name restricts matches to a kstat name. Globs are allowed.
	Name string

	// Instance restricts matches to one numeric instance, or InstanceAll.
	Instance InstanceID

	// Delta requests difference and rate computation against the previous
	// read of each matched tuple.
	Delta bool
}

// Signature is the deduplication key for a query. Two queries with equal
// signatures select the same kernel data and need only one read.
func (q Query) Signature() string {
	inst := "*"
	if q.Instance != InstanceAll {
		inst = strconv.Itoa(int(q.Instance))
	}
	sig := q.Module + ":" + inst + ":" + q.Name + ":" + q.Class
	if q.Delta {
		sig += ":delta"
	}
	return sig
}

// Matches reports whether r satisfies the query's selection criteria.
func (q Query) Matches(r Record) bool {
	if q.Module != "" && q.Module != r.Module {
		return false
	}
	if q.Class != "" && q.Class != r.Class {
		return false
	}
	if q.Instance != InstanceAll && int(q.Instance) != r.Instance {
		return false
	}
	if q.Name != "" && !nameMatches(q.Name, r.Name) {
		return false
	}
	return true
}

func nameMatches(pattern, name string) bool {
	ok, err := path.Match(pattern, name)
	if err != nil {
		// Malformed pattern, fall back to a literal comparison.
		return pattern == name
	}
	return ok
}

// Dedup returns queries with duplicate signatures removed, preserving the
// first occurrence order.
func Dedup(queries []Query) []Query {
	seen := make(map[string]bool, len(queries))
	out := make([]Query, 0, len(queries))
	for _, q := range queries {
		sig := q.Signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, q)
	}
	return out
}

// Select returns the records matched by q, preserving input order.
func Select(q Query, records []Record) []Record {
	var out []Record
	for _, r := range records {
		if q.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// SelectAny returns records matched by at least one query, preserving input
// order and without duplicating a record matched by several queries.
func SelectAny(queries []Query, records []Record) []Record {
	var out []Record
	for _, r := range records {
		for _, q := range queries {
			if q.Matches(r) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
