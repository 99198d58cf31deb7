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

package zones

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/richardkiene/triton-cmon-agent/pkg/defaults"
	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
)

// stateRunning is the vmadm zone_state of a booted zone. Only booted zones
// have a valid numeric zone ID.
const stateRunning = "running"

// Zone is the runtime identity of one SmartOS zone.
type Zone struct {
	// UUID is the zone's VM UUID.
	UUID string `json:"uuid"`

	// ID is the numeric zone ID assigned at boot. It indexes per-zone
	// kernel statistics and changes across reboots.
	ID int `json:"zoneid"`

	// Alias is the operator-assigned name, may be empty.
	Alias string `json:"alias,omitempty"`

	// Brand is the zone brand, e.g. "joyent", "lx", "kvm", "bhyve".
	Brand string `json:"brand"`

	// State is the vmadm zone_state, "running" for collectable zones.
	State string `json:"state"`

	// Dataset is the zone's root ZFS dataset, the zonepath without its
	// leading slash.
	Dataset string `json:"dataset"`

	// IPs are the zone's NIC addresses, without prefix lengths.
	IPs []string `json:"ips,omitempty"`
}

// Inventory resolves and enumerates zones.
type Inventory interface {
	// Lookup resolves uuid to a running zone. Unknown, destroyed, and
	// non-running zones yield an error with code ErrCodeNotFound.
	Lookup(ctx context.Context, uuid string) (*Zone, error)

	// Running returns all running zones on the host.
	Running(ctx context.Context) ([]Zone, error)
}

// RunnerFunc executes a CLI with the given arguments and returns its
// standard output. Tests substitute this to avoid the real binary.
type RunnerFunc func(ctx context.Context, args ...string) ([]byte, error)

// VmadmInventoryOption configures a VmadmInventory.
type VmadmInventoryOption func(*VmadmInventory)

// WithRunner sets the command runner.
func WithRunner(run RunnerFunc) VmadmInventoryOption {
	return func(v *VmadmInventory) {
		if run != nil {
			v.run = run
		}
	}
}

// VmadmInventory implements Inventory via vmadm(1M) lookup.
type VmadmInventory struct {
	run RunnerFunc
}

// NewVmadmInventory returns an Inventory backed by the vmadm binary found
// in PATH.
func NewVmadmInventory(opts ...VmadmInventoryOption) *VmadmInventory {
	v := &VmadmInventory{run: runVmadm}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// lookupFields is the vmadm output field selection. Restricting the output
// keeps lookup cheap on hosts with hundreds of zones.
const lookupFields = "uuid,alias,brand,zone_state,zoneid,zonepath,nics"

// Lookup implements Inventory.
func (v *VmadmInventory) Lookup(ctx context.Context, uuid string) (*Zone, error) {
	vms, err := v.lookup(ctx, "uuid="+uuid)
	if err != nil {
		return nil, err
	}
	if len(vms) == 0 {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			"zone not found",
			map[string]any{"uuid": uuid})
	}

	z := vms[0].toZone()
	if z.State != stateRunning {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			"zone is not running",
			map[string]any{"uuid": uuid, "state": z.State})
	}
	return &z, nil
}

// Running implements Inventory.
func (v *VmadmInventory) Running(ctx context.Context) ([]Zone, error) {
	vms, err := v.lookup(ctx, "zone_state="+stateRunning)
	if err != nil {
		return nil, err
	}

	zones := make([]Zone, 0, len(vms))
	for _, vm := range vms {
		zones = append(zones, vm.toZone())
	}
	return zones, nil
}

func (v *VmadmInventory) lookup(ctx context.Context, filters ...string) ([]vmadmVM, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.VmadmTimeout)
	defer cancel()

	args := append([]string{"lookup", "-j", "-o", lookupFields}, filters...)
	out, err := v.run(ctx, args...)
	if err != nil {
		lookupsTotal.WithLabelValues(outcomeError).Inc()
		return nil, errors.Wrap(errors.ErrCodeInternal, "vmadm lookup failed", err)
	}

	var vms []vmadmVM
	if err := json.Unmarshal(out, &vms); err != nil {
		lookupsTotal.WithLabelValues(outcomeError).Inc()
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to parse vmadm output", err)
	}
	lookupsTotal.WithLabelValues(outcomeSuccess).Inc()
	return vms, nil
}

type vmadmVM struct {
	UUID      string `json:"uuid"`
	Alias     string `json:"alias"`
	Brand     string `json:"brand"`
	ZoneState string `json:"zone_state"`
	ZoneID    int    `json:"zoneid"`
	Zonepath  string `json:"zonepath"`
	NICs      []struct {
		IP  string   `json:"ip"`
		IPs []string `json:"ips"`
	} `json:"nics"`
}

func (vm vmadmVM) toZone() Zone {
	return Zone{
		UUID:    vm.UUID,
		ID:      vm.ZoneID,
		Alias:   vm.Alias,
		Brand:   vm.Brand,
		State:   vm.ZoneState,
		Dataset: strings.TrimPrefix(vm.Zonepath, "/"),
		IPs:     vm.addresses(),
	}
}

// addresses flattens NIC addresses, stripping prefix lengths and skipping
// the dhcp/addrconf placeholders vmadm reports for dynamic interfaces.
func (vm vmadmVM) addresses() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(addr string) {
		addr, _, _ = strings.Cut(addr, "/")
		if addr == "" || addr == "dhcp" || addr == "addrconf" || seen[addr] {
			return
		}
		seen[addr] = true
		out = append(out, addr)
	}
	for _, nic := range vm.NICs {
		add(nic.IP)
		for _, addr := range nic.IPs {
			add(addr)
		}
	}
	return out
}

func runVmadm(ctx context.Context, args ...string) ([]byte, error) {
	path, err := exec.LookPath("vmadm")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "vmadm binary not found in PATH", err)
	}
	return exec.CommandContext(ctx, path, args...).Output()
}
