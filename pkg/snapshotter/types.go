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
	"sort"
	"time"

	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
	"github.com/richardkiene/triton-cmon-agent/pkg/ntp"
	"github.com/richardkiene/triton-cmon-agent/pkg/zones"
)

// Options carries per-zone collection options, decoded from the request's
// metrics options header for core Triton zones.
type Options struct {
	IsCoreZone  bool  `json:"isCoreZone"`
	MetricPorts []int `json:"metricPorts"`
}

// Request selects the scope of one collection pass. At least one of GZ,
// AllVMs, or VMs must be set.
type Request struct {
	// GZ includes the global zone.
	GZ bool

	// AllVMs includes every currently running guest.
	AllVMs bool

	// VMs lists specific guest UUIDs to include.
	VMs []string

	// Options holds per-guest collection options keyed by UUID.
	Options map[string]Options
}

// Empty reports whether the request selects no scope at all.
func (r Request) Empty() bool {
	return !r.GZ && !r.AllVMs && len(r.VMs) == 0
}

// EntityResult holds what one pass produced for the global zone.
type EntityResult struct {
	Samples []metric.Sample
	Records []kstat.Record
}

// VMResult holds what one pass produced for a single guest. A guest that
// failed to resolve carries Err and nothing else; a guest whose collectors
// produced no samples still carries its raw records.
type VMResult struct {
	Zone    *zones.Zone
	Samples []metric.Sample
	Records []kstat.Record
	FS      *zones.FSUsage
	Err     error
}

// Snapshot is the result of one collection pass.
type Snapshot struct {
	Timestamp time.Time
	GZ        *EntityResult
	VMs       map[string]*VMResult
	NTP       *ntp.Stats

	// Errs collects the pass's partial-failure notes: collector failures
	// and ancillary fetch failures that degraded but did not abort.
	Errs []error
}

// VMUUIDs returns the snapshot's guest UUIDs in sorted order.
func (s *Snapshot) VMUUIDs() []string {
	uuids := make([]string, 0, len(s.VMs))
	for uuid := range s.VMs {
		uuids = append(uuids, uuid)
	}
	sort.Strings(uuids)
	return uuids
}

// DocumentVM is one guest's entry in the diagnostic document.
type DocumentVM struct {
	Instance int            `json:"instance"`
	Brand    string         `json:"brand,omitempty"`
	Alias    string         `json:"alias,omitempty"`
	ZFS      *zones.FSUsage `json:"zfs,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Document is the raw snapshot rendering used by the CLI and the debug
// endpoint. Sections are present only when non-empty; every requested
// guest appears in VMs even when it produced no samples, so a collector
// producing nothing stays distinguishable from a guest with no data.
type Document struct {
	Timestamp string                `json:"timestamp"`
	Kstats    []kstat.Record        `json:"kstats,omitempty"`
	VMs       map[string]DocumentVM `json:"vms,omitempty"`
	NTP       *ntp.Stats            `json:"ntp,omitempty"`
}

// Document flattens the snapshot into its diagnostic form. Raw records are
// ordered global zone first, then guests by UUID.
func (s *Snapshot) Document() *Document {
	doc := &Document{
		Timestamp: s.Timestamp.UTC().Format(time.RFC3339),
		NTP:       s.NTP,
	}

	if s.GZ != nil {
		doc.Kstats = append(doc.Kstats, s.GZ.Records...)
	}

	for _, uuid := range s.VMUUIDs() {
		vm := s.VMs[uuid]
		doc.Kstats = append(doc.Kstats, vm.Records...)

		entry := DocumentVM{ZFS: vm.FS}
		if vm.Zone != nil {
			entry.Instance = vm.Zone.ID
			entry.Brand = vm.Zone.Brand
			entry.Alias = vm.Zone.Alias
		}
		if vm.Err != nil {
			entry.Error = vm.Err.Error()
		}
		if doc.VMs == nil {
			doc.VMs = make(map[string]DocumentVM)
		}
		doc.VMs[uuid] = entry
	}

	return doc
}
