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

package gctypes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testColour string

func (testColour) Options() []string { return []string{"RED", "GREEN"} }
func (testColour) Default() string   { return "RED" }

func TestEnum(t *testing.T) {
	var e Enum[testColour]
	v, err := e.Validate()
	require.NoError(t, err)
	assert.Equal(t, testColour("RED"), v)

	require.NoError(t, e.Scan("green"))
	assert.Equal(t, testColour("GREEN"), e.V())
	require.NoError(t, e.Scan([]byte("Red")))
	assert.Equal(t, testColour("RED"), e.V())

	assert.Regexp(t, "GC010901", e.Scan("blue"))
	assert.Regexp(t, "GC010900", e.Scan(1))

	dv, err := Enum[testColour]("green").Value()
	require.NoError(t, err)
	assert.Equal(t, "GREEN", dv)
}

func TestTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 123, time.UTC)
	ts := TimestampFromTime(now)
	assert.Equal(t, "2024-05-01T10:00:00.000000123Z", ts.String())
	assert.Equal(t, now.UnixNano(), ts.Time().UnixNano())
	assert.Equal(t, ts+Timestamp(time.Second), ts.Add(time.Second))

	b, err := ts.MarshalJSON()
	require.NoError(t, err)
	var back Timestamp
	require.NoError(t, back.UnmarshalJSON(b))
	assert.Equal(t, ts, back)
	require.NoError(t, back.UnmarshalJSON([]byte("null")))
	assert.Equal(t, Timestamp(0), back)
	assert.Regexp(t, "GC010902", back.UnmarshalJSON([]byte(`"yesterday"`)))

	zero, err := Timestamp(0).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(zero))

	var scanned Timestamp
	require.NoError(t, scanned.Scan(int64(12345)))
	assert.Equal(t, Timestamp(12345), scanned)
	require.NoError(t, scanned.Scan("678"))
	assert.Equal(t, Timestamp(678), scanned)
	require.NoError(t, scanned.Scan(now))
	assert.Equal(t, ts, scanned)
	require.NoError(t, scanned.Scan(nil))
	assert.Equal(t, Timestamp(0), scanned)
	assert.Regexp(t, "GC010902", scanned.Scan("abc"))
	assert.Regexp(t, "GC010900", scanned.Scan(1.5))

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(ts), v)
	assert.NotZero(t, TimestampNow())
}
