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

// Package sysinfo reads host identity from the SmartOS sysinfo(1M) tool.
package sysinfo

import (
	"context"
	"encoding/json"
	"os/exec"
	"sort"
	"strconv"

	"github.com/richardkiene/triton-cmon-agent/pkg/defaults"
	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
)

// NIC is one physical or virtual interface as sysinfo reports it.
type NIC struct {
	MAC        string   `json:"MAC Address"`
	IP4        string   `json:"ip4addr"`
	LinkStatus string   `json:"Link Status"`
	Names      []string `json:"NIC Names"`
}

// Info is the subset of sysinfo output the agent needs: the compute node's
// identity and its network interfaces.
type Info struct {
	UUID      string         `json:"UUID"`
	Hostname  string         `json:"Hostname"`
	LiveImage string         `json:"Live Image"`
	BootTime  string         `json:"Boot Time"`
	NICs      map[string]NIC `json:"Network Interfaces"`
}

// AdminIP returns the IPv4 address of the interface tagged "admin", the
// network the agent listens on. Interfaces are scanned in name order so
// the answer is stable. Empty when no admin interface has an address.
func (i *Info) AdminIP() string {
	names := make([]string, 0, len(i.NICs))
	for name := range i.NICs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		nic := i.NICs[name]
		if nic.IP4 == "" {
			continue
		}
		for _, tag := range nic.Names {
			if tag == "admin" {
				return nic.IP4
			}
		}
	}
	return ""
}

// BootTimestamp returns the host boot time as Unix seconds.
func (i *Info) BootTimestamp() (int64, bool) {
	ts, err := strconv.ParseInt(i.BootTime, 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

// RunnerFunc executes sysinfo and returns its standard output.
type RunnerFunc func(ctx context.Context, args ...string) ([]byte, error)

// Read invokes sysinfo and parses its JSON output.
func Read(ctx context.Context) (*Info, error) {
	return read(ctx, runSysinfo)
}

func read(ctx context.Context, run RunnerFunc) (*Info, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.SysinfoTimeout)
	defer cancel()

	out, err := run(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "sysinfo invocation failed", err)
	}
	return Parse(out)
}

// Parse decodes sysinfo JSON output.
func Parse(out []byte) (*Info, error) {
	var info Info
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to parse sysinfo output", err)
	}
	if info.UUID == "" {
		return nil, errors.New(errors.ErrCodeInternal, "sysinfo output has no UUID")
	}
	return &info, nil
}

func runSysinfo(ctx context.Context, args ...string) ([]byte, error) {
	path, err := exec.LookPath("sysinfo")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "sysinfo binary not found in PATH", err)
	}
	return exec.CommandContext(ctx, path, args...).Output()
}
