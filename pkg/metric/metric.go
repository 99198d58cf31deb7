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

// Package metric models collected telemetry samples and renders them in
// Prometheus text exposition format.
//
// Samples are plain values; rendering goes through a throwaway
// client_golang registry so the output inherits its sorting and escaping
// rules. Two renderings of the same sample set are byte-identical,
// regardless of the order samples were produced in.
package metric

import "sort"

// Kind is the Prometheus type of a sample.
type Kind int

const (
	// KindGauge is a point-in-time value.
	KindGauge Kind = iota
	// KindCounter is a monotonically increasing value.
	KindCounter
)

// Sample is one collected value with its metadata. All samples sharing a
// Name must agree on Kind, Help, and label key set; the renderer drops
// samples that disagree with the first occurrence of their name.
type Sample struct {
	Name   string
	Kind   Kind
	Help   string
	Labels map[string]string
	Value  float64
}

// Gauge returns a gauge sample.
func Gauge(name, help string, labels map[string]string, value float64) Sample {
	return Sample{Name: name, Kind: KindGauge, Help: help, Labels: labels, Value: value}
}

// Counter returns a counter sample.
func Counter(name, help string, labels map[string]string, value float64) Sample {
	return Sample{Name: name, Kind: KindCounter, Help: help, Labels: labels, Value: value}
}

// WithLabel returns a copy of s with one label added or replaced.
func (s Sample) WithLabel(key, value string) Sample {
	labels := make(map[string]string, len(s.Labels)+1)
	for k, v := range s.Labels {
		labels[k] = v
	}
	labels[key] = value
	s.Labels = labels
	return s
}

func sortedKeys(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
