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

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

// Binding is one deployed contract: its address plus the ABI from its artifact
type Binding interface {
	Name() string
	Address() gctypes.EthAddress
	ABI() abi.ABI
	Function(name string) (*abi.Entry, error)
	Event(name string) (*abi.Entry, error)
	// EncodeCall ABI-encodes a call. Addresses and bytes32 are passed as 0x hex strings, integers as *big.Int.
	EncodeCall(ctx context.Context, name string, args ...interface{}) ([]byte, error)
	// Call runs a read-only eth_call against latest and returns the outputs as a flat JSON array
	Call(ctx context.Context, name string, args ...interface{}) ([]json.RawMessage, error)
}

type binding struct {
	name    string
	address gctypes.EthAddress
	abi     abi.ABI
	client  *chainClient
}

var outputSerializer = abi.NewSerializer().
	SetFormattingMode(abi.FormatAsFlatArrays).
	SetIntSerializer(abi.Base10StringIntSerializer).
	SetByteSerializer(abi.HexByteSerializer0xPrefix).
	SetAddressSerializer(abi.HexAddrSerializer0xPrefix)

func newBinding(ctx context.Context, c *chainClient, name, dir string, conf *gcconf.ContractConfig, defaultArtifact *string, pattern string) (*binding, error) {
	addr, err := gctypes.ParseEthAddress(conf.Address)
	if err != nil || addr.IsZero() {
		return nil, gcerrors.Configuration(ctx, msgs.MsgConfigContractAddress, name, conf.Address)
	}
	a, path, err := loadArtifact(ctx, name, dir, confutil.StringNotEmpty(conf.Artifact, *defaultArtifact), pattern)
	if err != nil {
		return nil, err
	}
	log.L(ctx).Debugf("Loaded %s ABI (%d entries) from %s", name, len(a), path)
	return &binding{
		name:    name,
		address: *addr,
		abi:     a,
		client:  c,
	}, nil
}

func (b *binding) Name() string {
	return b.name
}

func (b *binding) Address() gctypes.EthAddress {
	return b.address
}

func (b *binding) ABI() abi.ABI {
	return b.abi
}

func (b *binding) Function(name string) (*abi.Entry, error) {
	fn := b.abi.Functions()[name]
	if fn == nil {
		return nil, i18n.NewError(context.Background(), msgs.MsgConfigArtifactNoFunction, b.name, name)
	}
	return fn, nil
}

func (b *binding) Event(name string) (*abi.Entry, error) {
	ev := b.abi.Events()[name]
	if ev == nil {
		return nil, i18n.NewError(context.Background(), msgs.MsgConfigArtifactNoEvent, b.name, name)
	}
	return ev, nil
}

func (b *binding) EncodeCall(ctx context.Context, name string, args ...interface{}) ([]byte, error) {
	fn, err := b.Function(name)
	if err != nil {
		return nil, err
	}
	if args == nil {
		args = []interface{}{}
	}
	return fn.EncodeCallDataValuesCtx(ctx, args)
}

func (b *binding) Call(ctx context.Context, name string, args ...interface{}) ([]json.RawMessage, error) {
	fn, err := b.Function(name)
	if err != nil {
		return nil, err
	}
	callData, err := b.EncodeCall(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	data, err := b.client.CallContract(ctx, &ethsigner.Transaction{
		To:   b.address.Address0xHex(),
		Data: ethtypes.HexBytes0xPrefix(callData),
	}, BlockLatest)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgOpCallFailed, b.name, name)
	}
	cv, err := fn.Outputs.DecodeABIDataCtx(ctx, data, 0)
	var outputs []json.RawMessage
	if err == nil {
		var jsonOut []byte
		jsonOut, err = outputSerializer.SerializeJSONCtx(ctx, cv)
		if err == nil {
			err = json.Unmarshal(jsonOut, &outputs)
		}
	}
	if err != nil || len(outputs) != len(fn.Outputs) {
		return nil, i18n.NewError(ctx, msgs.MsgOpUnexpectedOutput, b.name, name)
	}
	return outputs, nil
}
