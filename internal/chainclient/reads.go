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

package chainclient

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
)

func (c *chainClient) HasRole(ctx context.Context, role gctypes.Bytes32, wallet gctypes.EthAddress) (bool, error) {
	out, err := c.registry.Call(ctx, "hasRole", role.String(), wallet.String())
	if err != nil {
		return false, err
	}
	var has bool
	if err := json.Unmarshal(out[0], &has); err != nil {
		return false, i18n.WrapError(ctx, err, msgs.MsgOpUnexpectedOutput, c.registry.name, "hasRole")
	}
	return has, nil
}

func (c *chainClient) TokenBalance(ctx context.Context, wallet gctypes.EthAddress) (*big.Int, error) {
	out, err := c.token.Call(ctx, "balanceOf", wallet.String())
	if err != nil {
		return nil, err
	}
	return c.decodeUint(ctx, c.token, "balanceOf", out[0])
}

func (c *chainClient) NFTOwner(ctx context.Context, tokenID *big.Int) (*gctypes.EthAddress, error) {
	out, err := c.nft.Call(ctx, "ownerOf", tokenID)
	if err != nil {
		return nil, err
	}
	var s string
	if err := json.Unmarshal(out[0], &s); err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgOpUnexpectedOutput, c.nft.name, "ownerOf")
	}
	return gctypes.ParseEthAddress(s)
}

func (c *chainClient) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	out, err := c.nft.Call(ctx, "tokenURI", tokenID)
	if err != nil {
		return "", err
	}
	var uri string
	if err := json.Unmarshal(out[0], &uri); err != nil {
		return "", i18n.WrapError(ctx, err, msgs.MsgOpUnexpectedOutput, c.nft.name, "tokenURI")
	}
	return uri, nil
}

func (c *chainClient) decodeUint(ctx context.Context, b *binding, fn string, raw json.RawMessage) (*big.Int, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgOpUnexpectedOutput, b.name, fn)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, i18n.NewError(ctx, msgs.MsgOpUnexpectedOutput, b.name, fn)
	}
	return v, nil
}
