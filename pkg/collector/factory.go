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

// DefaultGZCollectors returns the global zone collector set in its
// canonical production order.
func DefaultGZCollectors() []Collector {
	return []Collector{
		&ArcstatsCollector{},
		&CPUInfoCollector{},
		&HostCollector{},
		&NTPCollector{},
	}
}

// DefaultVMCollectors returns the per-guest collector set in its canonical
// production order.
func DefaultVMCollectors() []Collector {
	return []Collector{
		&ZoneMiscCollector{},
		&CPUUsageCollector{},
		&MemCapCollector{},
		&LinkCollector{},
		&TCPCollector{},
		&ZoneVFSCollector{},
		&CPUCapCollector{},
		&ZFSUsageCollector{},
		&TritonCoreCollector{},
	}
}

// NewDefaultRegistry builds the registry every production pass uses, with
// all collector variants registered.
func NewDefaultRegistry() (*Registry, error) {
	var all []Collector
	all = append(all, DefaultGZCollectors()...)
	all = append(all, DefaultVMCollectors()...)
	return NewRegistry(all...)
}
