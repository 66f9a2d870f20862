// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
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

package confutil

import (
	"cmp"
	"math"
	"math/big"
	"time"

	"github.com/docker/go-units"
)

// Small helpers for reading pointer-valued config with defaults.
// This package sits below logging, so nothing in here may log.

// Value returns def when v is unset
func Value[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// Min returns def when v is unset, and clamps a configured value to min
func Min[T cmp.Ordered](v *T, min, def T) T {
	if v == nil {
		return def
	}
	return max(*v, min)
}

// parseMin is Min for string config with units. An unparseable value falls back to def.
func parseMin[T cmp.Ordered](sVal *string, min T, def string, parse func(string) (T, error)) T {
	if sVal != nil {
		if v, err := parse(*sVal); err == nil {
			return max(v, min)
		}
	}
	v, _ := parse(def)
	return v
}

func Int(iVal *int, def int) int                    { return Value(iVal, def) }
func IntMin(iVal *int, min int, def int) int        { return Min(iVal, min, def) }
func Float64(fVal *float64, def float64) float64    { return Value(fVal, def) }
func Bool(bVal *bool, def bool) bool                { return Value(bVal, def) }
func StringOrEmpty(sVal *string, def string) string { return Value(sVal, def) }

func Float64Min(fVal *float64, min float64, def float64) float64 {
	return Min(fVal, min, def)
}

func StringNotEmpty(sVal *string, def string) string {
	if sVal == nil || *sVal == "" {
		return def
	}
	return *sVal
}

func StringSlice(sVal []string, def []string) []string {
	if sVal == nil {
		return def
	}
	return sVal
}

func DurationMin(sVal *string, min time.Duration, def string) time.Duration {
	return parseMin(sVal, min, def, time.ParseDuration)
}

// DurationSeconds rounds up, so a sub-second setting never becomes zero
func DurationSeconds(sVal *string, min time.Duration, def string) int64 {
	return int64(math.Ceil(DurationMin(sVal, min, def).Seconds()))
}

// ByteSize accepts docker style sizes such as 4KB or 100Mb
func ByteSize(sVal *string, min int64, def string) int64 {
	return parseMin(sVal, min, def, units.RAMInBytes)
}

// BigInt accepts decimal or 0x prefixed hex, falling back to the default on a parse failure
func BigInt(sVal *string, def string) *big.Int {
	if bi := BigIntOrNil(sVal); bi != nil {
		return bi
	}
	bi, _ := new(big.Int).SetString(def, 0)
	return bi
}

func BigIntOrNil(sVal *string) *big.Int {
	if sVal == nil {
		return nil
	}
	bi, ok := new(big.Int).SetString(*sVal, 0)
	if !ok {
		return nil
	}
	return bi
}

func P[T any](v T) *T {
	return &v
}
