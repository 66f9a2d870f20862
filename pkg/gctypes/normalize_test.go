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
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	ctx := context.Background()
	want := "0xabcdef0123456789abcdef0123456789abcdef01"
	for _, in := range []string{
		"0xABCDEF0123456789ABCDEF0123456789ABCDEF01",
		"0XabcDEF0123456789abcdef0123456789abcdef01",
		"abcdef0123456789abcdef0123456789abcdef01",
		" 0xabcdef0123456789abcdef0123456789abcdef01 ",
	} {
		out, err := NormalizeAddress(ctx, in)
		require.NoError(t, err, in)
		assert.Equal(t, want, out)

		// idempotent
		again, err := NormalizeAddress(ctx, out)
		require.NoError(t, err)
		assert.Equal(t, out, again)
	}
}

func TestNormalizeAddressRejects(t *testing.T) {
	ctx := context.Background()
	_, err := NormalizeAddress(ctx, "0xabcdef0123456789abcdef0123456789abcdef")
	assert.Regexp(t, "GC010800.*GC010812", err)
	_, err = NormalizeAddress(ctx, "0xabcdef0123456789abcdef0123456789abcdef0102")
	assert.Regexp(t, "GC010800", err)
	_, err = NormalizeAddress(ctx, "0xzzcdef0123456789abcdef0123456789abcdef01")
	assert.Regexp(t, "GC010800.*GC010811", err)
	_, err = NormalizeAddress(ctx, "")
	assert.Regexp(t, "GC010800", err)
}

func TestNormalizeTxHash(t *testing.T) {
	ctx := context.Background()
	upper := "0x" + strings.Repeat("AB", 32)
	out, err := NormalizeTxHash(ctx, upper)
	require.NoError(t, err)
	assert.Equal(t, "0x"+strings.Repeat("ab", 32), out)
	again, err := NormalizeTxHash(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = NormalizeTxHash(ctx, "0x"+strings.Repeat("ab", 31))
	assert.Regexp(t, "GC010801", err)
	_, err = NormalizeTxHash(ctx, "0xabcdef0123456789abcdef0123456789abcdef01")
	assert.Regexp(t, "GC010801", err)
}

func TestEthAddressSQLAndJSON(t *testing.T) {
	a := MustEthAddress("0xABCDEF0123456789ABCDEF0123456789ABCDEF01")
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", v)

	var b EthAddress
	require.NoError(t, b.Scan(v))
	assert.True(t, a.Equals(&b))
	require.NoError(t, b.Scan(a[:]))
	assert.True(t, a.Equals(&b))
	require.NoError(t, b.Scan([]byte("0xabcdef0123456789abcdef0123456789abcdef01")))
	assert.Regexp(t, "GC010900", b.Scan(42))
	assert.Error(t, b.Scan("0x1234"))

	j, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `"0xabcdef0123456789abcdef0123456789abcdef01"`, string(j))
	var c EthAddress
	require.NoError(t, json.Unmarshal(j, &c))
	assert.Equal(t, *a, c)
	assert.Error(t, json.Unmarshal([]byte(`"0x12"`), &c))

	assert.True(t, (*EthAddress)(nil).IsZero())
	assert.True(t, (&EthAddress{}).IsZero())
	assert.False(t, a.IsZero())
	assert.False(t, a.Equals(nil))
	assert.True(t, strings.EqualFold(a.String(), a.Checksummed()))
	assert.Equal(t, a.String(), a.Address0xHex().String())
}

func TestBytes32(t *testing.T) {
	h := Keccak256([]byte("DEFAULT"))
	s := h.String()
	assert.Len(t, s, 66)
	parsed, err := ParseBytes32(strings.ToUpper(s[2:]))
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	var scanned Bytes32
	require.NoError(t, scanned.Scan(s))
	assert.Equal(t, h, scanned)
	require.NoError(t, scanned.Scan(h.Bytes()))
	assert.Equal(t, h, scanned)
	assert.Regexp(t, "GC010900", scanned.Scan(12.5))
	assert.True(t, Bytes32{}.IsZero())

	j, err := json.Marshal(h)
	require.NoError(t, err)
	var back Bytes32
	require.NoError(t, json.Unmarshal(j, &back))
	assert.Equal(t, h, back)

	assert.Panics(t, func() { MustParseBytes32("0x00") })
}
