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
	"os/exec"
	"strconv"
	"strings"

	"github.com/richardkiene/triton-cmon-agent/pkg/defaults"
	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
)

// FSUsage is the space accounting of one ZFS dataset.
type FSUsage struct {
	// Used is the dataset's consumed space in bytes.
	Used uint64 `json:"used_bytes"`

	// Available is the space still available to the dataset in bytes.
	Available uint64 `json:"available_bytes"`
}

// DatasetUsage reports used and available bytes for dataset via
// zfs(1M) list.
func DatasetUsage(ctx context.Context, dataset string) (*FSUsage, error) {
	return datasetUsage(ctx, runZfs, dataset)
}

func datasetUsage(ctx context.Context, run RunnerFunc, dataset string) (*FSUsage, error) {
	if dataset == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "zone has no dataset")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ZfsListTimeout)
	defer cancel()

	out, err := run(ctx, "list", "-Hpo", "used,avail", dataset)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"zfs list failed", err,
			map[string]any{"dataset": dataset})
	}
	return parseZfsList(out, dataset)
}

// parseZfsList parses the single tab-separated line zfs list emits with
// -H (no header) and -p (exact byte values).
func parseZfsList(out []byte, dataset string) (*FSUsage, error) {
	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) != 2 {
		return nil, errors.NewWithContext(errors.ErrCodeInternal,
			"unexpected zfs list output",
			map[string]any{"dataset": dataset, "fields": len(fields)})
	}

	used, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to parse zfs used bytes", err)
	}
	avail, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to parse zfs avail bytes", err)
	}
	return &FSUsage{Used: used, Available: avail}, nil
}

func runZfs(ctx context.Context, args ...string) ([]byte, error) {
	path, err := exec.LookPath("zfs")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "zfs binary not found in PATH", err)
	}
	return exec.CommandContext(ctx, path, args...).Output()
}
