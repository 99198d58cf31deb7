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

import "context"

// Reader performs one batched kernel read for a set of queries.
//
// Implementations deduplicate the queries by signature, read each distinct
// signature once, and return the union of all matched records. Callers own
// partitioning the result back to individual queries via Query.Matches.
type Reader interface {
	Read(ctx context.Context, queries []Query) ([]Record, error)
}
