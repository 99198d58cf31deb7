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
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind discriminates the runtime type of a kstat value.
type Kind int

const (
	// KindInt holds a signed 64-bit integer.
	KindInt Kind = iota
	// KindUint holds an unsigned 64-bit integer. Kernel counters are
	// uint64 and can exceed the int64 range near wraparound.
	KindUint
	// KindFloat holds a 64-bit float.
	KindFloat
	// KindString holds a string (e.g. cpu_info brand fields).
	KindString
)

// Value is a single named kstat value. Integer values are kept in integer
// form rather than float64 because nanosecond counters routinely exceed
// 2^53 and would lose precision.
type Value struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	s    string
}

// Int64Value returns a Value holding v.
func Int64Value(v int64) Value { return Value{kind: KindInt, i: v} }

// Uint64Value returns a Value holding v.
func Uint64Value(v uint64) Value { return Value{kind: KindUint, u: v} }

// Float64Value returns a Value holding v.
func Float64Value(v float64) Value { return Value{kind: KindFloat, f: v} }

// StringValue returns a Value holding v.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// Kind returns the discriminator for v.
func (v Value) Kind() Kind { return v.kind }

// IsNumeric reports whether v holds an integer or float.
func (v Value) IsNumeric() bool { return v.kind != KindString }

// Int64 returns the value as an int64. The second return is false for
// strings, for floats with a fractional part, and for unsigned values
// outside the int64 range.
func (v Value) Int64() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindUint:
		if v.u > math.MaxInt64 {
			return 0, false
		}
		return int64(v.u), true
	case KindFloat:
		if v.f != math.Trunc(v.f) || v.f < math.MinInt64 || v.f >= math.MaxInt64 {
			return 0, false
		}
		return int64(v.f), true
	}
	return 0, false
}

// Uint64 returns the value as a uint64. The second return is false for
// strings, negative values, and floats with a fractional part.
func (v Value) Uint64() (uint64, bool) {
	switch v.kind {
	case KindInt:
		if v.i < 0 {
			return 0, false
		}
		return uint64(v.i), true
	case KindUint:
		return v.u, true
	case KindFloat:
		if v.f != math.Trunc(v.f) || v.f < 0 || v.f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(v.f), true
	}
	return 0, false
}

// Float64 returns the value as a float64. The second return is false for
// strings. Large integers lose precision in the conversion.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindUint:
		return float64(v.u), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// String renders the underlying scalar.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return v.s
}

// MarshalJSON emits the bare scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindUint:
		return []byte(strconv.FormatUint(v.u, 10)), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return json.Marshal(strconv.FormatFloat(v.f, 'g', -1, 64))
		}
		return json.Marshal(v.f)
	}
	return json.Marshal(v.s)
}

// UnmarshalJSON accepts a bare JSON scalar, preserving integer precision.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty kstat value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}
	raw := string(data)
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*v = Int64Value(i)
		return nil
	}
	if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
		*v = Uint64Value(u)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*v = Float64Value(f)
		return nil
	}
	// kstat -j should only emit numbers and strings; anything else
	// (true, null) is carried through as its literal text.
	*v = StringValue(raw)
	return nil
}
