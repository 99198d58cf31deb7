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

// Package ntp reads local NTP daemon health via ntpq(1M) system variables.
package ntp

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/richardkiene/triton-cmon-agent/pkg/defaults"
	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
)

// Stats holds the system variables reported by "ntpq -c rv 0". Typed
// fields cover the variables that become metrics; Raw retains everything
// for presence checks and debug snapshots.
type Stats struct {
	// Offset is the clock offset to the sync peer in milliseconds.
	Offset float64 `json:"offset"`

	// SysJitter is the combined system jitter in milliseconds.
	SysJitter float64 `json:"sys_jitter"`

	// ClkJitter is the clock jitter in milliseconds.
	ClkJitter float64 `json:"clk_jitter"`

	// Frequency is the clock frequency correction in parts per million.
	Frequency float64 `json:"frequency"`

	// RootDelay is the round-trip delay to the primary reference in
	// milliseconds.
	RootDelay float64 `json:"rootdelay"`

	// RootDispersion is the dispersion to the primary reference in
	// milliseconds.
	RootDispersion float64 `json:"rootdisp"`

	// Stratum is the distance to the reference clock. 16 means
	// unsynchronized.
	Stratum int `json:"stratum"`

	// Precision is the local clock precision as a power of two.
	Precision int `json:"precision"`

	// RefID identifies the current sync source.
	RefID string `json:"refid,omitempty"`

	// Raw holds every key=value variable from the ntpq output.
	Raw map[string]string `json:"raw,omitempty"`
}

// Float returns the named raw variable parsed as a float.
func (s *Stats) Float(key string) (float64, bool) {
	v, ok := s.Raw[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int returns the named raw variable parsed as an integer.
func (s *Stats) Int(key string) (int64, bool) {
	v, ok := s.Raw[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// QueryFunc matches Query; collection wiring takes this shape so tests can
// substitute canned statistics.
type QueryFunc func(ctx context.Context) (*Stats, error)

// RunnerFunc executes ntpq and returns its standard output.
type RunnerFunc func(ctx context.Context, args ...string) ([]byte, error)

// Query reads the daemon's system variables from the local ntpd.
func Query(ctx context.Context) (*Stats, error) {
	return query(ctx, runNtpq)
}

func query(ctx context.Context, run RunnerFunc) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.NtpqTimeout)
	defer cancel()

	out, err := run(ctx, "-c", "rv 0")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "ntpq query failed", err)
	}
	return Parse(out)
}

// varPattern matches one key=value variable. Values are either quoted
// strings (which may contain spaces and commas) or bare tokens; status
// words like "leap_none" carry no '=' and are skipped.
var varPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.]*)=("(?:[^"\\]|\\.)*"|[^,\s]*)`)

// Parse extracts system variables from ntpq -c rv output.
func Parse(out []byte) (*Stats, error) {
	raw := make(map[string]string)
	for _, m := range varPattern.FindAllStringSubmatch(string(out), -1) {
		raw[m[1]] = strings.Trim(m[2], `"`)
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "no variables in ntpq output")
	}

	st := &Stats{Raw: raw, RefID: raw["refid"]}
	st.Offset, _ = st.Float("offset")
	st.SysJitter, _ = st.Float("sys_jitter")
	st.ClkJitter, _ = st.Float("clk_jitter")
	st.Frequency, _ = st.Float("frequency")
	st.RootDelay, _ = st.Float("rootdelay")
	st.RootDispersion, _ = st.Float("rootdisp")
	if v, ok := st.Int("stratum"); ok {
		st.Stratum = int(v)
	}
	if v, ok := st.Int("precision"); ok {
		st.Precision = int(v)
	}
	return st, nil
}

func runNtpq(ctx context.Context, args ...string) ([]byte, error) {
	path, err := exec.LookPath("ntpq")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "ntpq binary not found in PATH", err)
	}
	return exec.CommandContext(ctx, path, args...).Output()
}
