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
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/richardkiene/triton-cmon-agent/pkg/defaults"
	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
)

// RunnerFunc executes the kstat CLI with the given arguments and returns
// its standard output. Tests substitute this to avoid the real binary.
type RunnerFunc func(ctx context.Context, args ...string) ([]byte, error)

// CLIReaderOption configures a CLIReader.
type CLIReaderOption func(*CLIReader)

// WithRunner sets the command runner.
func WithRunner(run RunnerFunc) CLIReaderOption {
	return func(r *CLIReader) {
		if run != nil {
			r.run = run
		}
	}
}

// WithReadTimeout sets the per-invocation timeout.
func WithReadTimeout(d time.Duration) CLIReaderOption {
	return func(r *CLIReader) {
		if d > 0 {
			r.readTimeout = d
		}
	}
}

// CLIReader reads kernel statistics by invoking kstat(1M) with JSON output.
// It performs exactly one invocation per distinct query signature and keeps
// the previous-read state needed for delta-flagged queries. Safe for
// concurrent use.
type CLIReader struct {
	run         RunnerFunc
	readTimeout time.Duration
	now         func() time.Time

	mu   sync.Mutex
	prev map[string]deltaState
}

// NewCLIReader returns a reader that shells out to the kstat binary found
// in PATH.
func NewCLIReader(opts ...CLIReaderOption) *CLIReader {
	r := &CLIReader{
		run:         runKstat,
		readTimeout: defaults.KstatReadTimeout,
		now:         time.Now,
		prev:        make(map[string]deltaState),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read implements Reader. Queries are deduplicated by signature before any
// kernel access; each distinct signature is read once. A failed invocation
// yields zero records for that signature only and is logged. Read returns
// an error only when the context is done or every signature failed.
func (r *CLIReader) Read(ctx context.Context, queries []Query) ([]Record, error) {
	deduped := Dedup(queries)
	if len(deduped) == 0 {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	defer func() {
		readDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		out     []Record
		failed  int
		lastErr error
	)
	for _, q := range deduped {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "kstat read canceled", err)
		}

		recs, err := r.readOne(ctx, q)
		if err != nil {
			readsTotal.WithLabelValues(outcomeError).Inc()
			slog.Warn("kstat read failed",
				"signature", q.Signature(),
				"error", err)
			failed++
			lastErr = err
			continue
		}
		readsTotal.WithLabelValues(outcomeSuccess).Inc()

		if q.Delta {
			r.applyDeltas(recs)
		}
		out = append(out, recs...)
	}

	if failed == len(deduped) {
		return nil, errors.Wrap(errors.ErrCodeKstatRead, "all kstat reads failed", lastErr)
	}

	r.pruneStale()
	return out, nil
}

func (r *CLIReader) readOne(ctx context.Context, q Query) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	out, err := r.run(ctx, buildArgs(q)...)
	if err != nil {
		// kstat exits nonzero when nothing matched the criteria,
		// which is a legitimate empty result (an uncapped zone has
		// no cpucaps kstat).
		if isNoMatch(err, out) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeKstatRead, "kstat invocation failed", err)
	}
	return parseRecords(out)
}

// buildArgs assembles the kstat argument list for one query. Flag order
// follows kstat(1M): class, module, instance, name.
func buildArgs(q Query) []string {
	args := []string{"-j"}
	if q.Class != "" {
		args = append(args, "-c", q.Class)
	}
	if q.Module != "" {
		args = append(args, "-m", q.Module)
	}
	if q.Instance != InstanceAll {
		args = append(args, "-i", strconv.Itoa(int(q.Instance)))
	}
	if q.Name != "" {
		args = append(args, "-n", q.Name)
	}
	return args
}

func isNoMatch(err error, out []byte) bool {
	var exitErr *exec.ExitError
	if !stderrors.As(err, &exitErr) {
		return false
	}
	return exitErr.ExitCode() == 1 && len(bytes.TrimSpace(out)) == 0
}

func parseRecords(out []byte) ([]Record, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, nil
	}
	var recs []Record
	if err := json.Unmarshal(out, &recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeKstatRead, "failed to parse kstat JSON output", err)
	}
	return recs, nil
}

func runKstat(ctx context.Context, args ...string) ([]byte, error) {
	path, err := exec.LookPath("kstat")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeKstatRead, "kstat binary not found in PATH", err)
	}
	return exec.CommandContext(ctx, path, args...).Output()
}
