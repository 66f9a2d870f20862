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
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
)

// EthAddress persists and serializes as lowercase 0x hex
type EthAddress [20]byte

func ParseEthAddress(s string) (*EthAddress, error) {
	b, err := parseFixedHex(context.Background(), s, addressHexLen)
	if err != nil {
		return nil, i18n.WrapError(context.Background(), err, msgs.MsgOpInvalidAddress, s)
	}
	var a EthAddress
	copy(a[:], b)
	return &a, nil
}

func MustEthAddress(s string) *EthAddress {
	a, err := ParseEthAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func EthAddressBytes(b []byte) *EthAddress {
	var a EthAddress
	copy(a[:], b)
	return &a
}

func (a *EthAddress) Address0xHex() *ethtypes.Address0xHex {
	return (*ethtypes.Address0xHex)(a)
}

func (a *EthAddress) Checksummed() string {
	return (*ethtypes.AddressWithChecksum)(a).String()
}

func (a *EthAddress) Equals(b *EthAddress) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (a *EthAddress) IsZero() bool {
	return a == nil || *a == EthAddress{}
}

func (a EthAddress) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a *EthAddress) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseEthAddress(s)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

func (a EthAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *EthAddress) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		return a.scanString(src)
	case []byte:
		if len(src) == 20 {
			copy(a[:], src)
			return nil
		}
		return a.scanString(string(src))
	default:
		return i18n.NewError(context.Background(), msgs.MsgTypesScanFail, src, a)
	}
}

func (a *EthAddress) scanString(s string) error {
	parsed, err := ParseEthAddress(s)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

func (a EthAddress) Value() (driver.Value, error) {
	return a.String(), nil
}
