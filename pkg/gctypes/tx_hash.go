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
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"golang.org/x/crypto/sha3"
)

// Bytes32 is a 32 byte value, used for transaction hashes, role ids and content hashes.
// It persists and serializes as lowercase 0x hex.
type Bytes32 [32]byte

// TxHash is a transaction hash. The pool keys on it.
type TxHash = Bytes32

func ParseBytes32(s string) (Bytes32, error) {
	b, err := parseFixedHex(context.Background(), s, hashHexLen)
	if err != nil {
		return Bytes32{}, i18n.WrapError(context.Background(), err, msgs.MsgOpInvalidTxHash, s)
	}
	var h Bytes32
	copy(h[:], b)
	return h, nil
}

func MustParseBytes32(s string) Bytes32 {
	h, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return h
}

func NewBytes32FromSlice(b []byte) Bytes32 {
	var h Bytes32
	copy(h[:], b)
	return h
}

// Keccak256 hashes the concatenation of the supplied byte slices
func Keccak256(data ...[]byte) Bytes32 {
	hash := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hash.Write(d)
	}
	return NewBytes32FromSlice(hash.Sum(nil))
}

func (h Bytes32) IsZero() bool {
	return h == Bytes32{}
}

func (h Bytes32) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Bytes32) Bytes() []byte {
	return h[:]
}

func (h Bytes32) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Bytes32) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseBytes32(s)
	if err == nil {
		*h = parsed
	}
	return err
}

func (h *Bytes32) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		parsed, err := ParseBytes32(src)
		if err == nil {
			*h = parsed
		}
		return err
	case []byte:
		if len(src) == 32 {
			copy(h[:], src)
			return nil
		}
		return h.Scan(string(src))
	default:
		return i18n.NewError(context.Background(), msgs.MsgTypesScanFail, src, h)
	}
}

func (h Bytes32) Value() (driver.Value, error) {
	return h.String(), nil
}
