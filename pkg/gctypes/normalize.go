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
	"encoding/hex"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
)

const (
	addressHexLen = 40
	hashHexLen    = 64
)

// NormalizeAddress returns the lowercase 0x form of a 20 byte address.
// The input may have an upper or lower case 0x prefix, or none, and any hex case.
func NormalizeAddress(ctx context.Context, s string) (string, error) {
	b, err := parseFixedHex(ctx, s, addressHexLen)
	if err != nil {
		return "", i18n.WrapError(ctx, err, msgs.MsgOpInvalidAddress, s)
	}
	return "0x" + hex.EncodeToString(b), nil
}

// NormalizeTxHash returns the lowercase 0x form of a 32 byte hash
func NormalizeTxHash(ctx context.Context, s string) (string, error) {
	b, err := parseFixedHex(ctx, s, hashHexLen)
	if err != nil {
		return "", i18n.WrapError(ctx, err, msgs.MsgOpInvalidTxHash, s)
	}
	return "0x" + hex.EncodeToString(b), nil
}

func parseFixedHex(ctx context.Context, s string, hexLen int) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s) != hexLen {
		return nil, i18n.NewError(ctx, msgs.MsgOpInvalidLength, "hex", hexLen, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgOpInvalidHex, s)
	}
	return b, nil
}
