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

// Package txbuilder turns a contract function call into an unsigned, priced transaction.
// The nonce is left empty for the signer to assign.
package txbuilder

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

type Builder interface {
	Build(ctx context.Context, binding chainclient.Binding, function string, args ...interface{}) (*ethsigner.Transaction, error)
	// Reprice replaces the fee fields of tx with fresh pricing
	Reprice(ctx context.Context, tx *ethsigner.Transaction, underpriced bool) error
	GasPricer() GasPricer
	From() gctypes.EthAddress
}

type builder struct {
	cc                chainclient.ChainClient
	gasPricer         GasPricer
	from              gctypes.EthAddress
	gasEstimateFactor float64
	fallbackLimits    map[string]uint64
}

func NewBuilder(ctx context.Context, conf *gcconf.TxBuilderConfig, cc chainclient.ChainClient, from gctypes.EthAddress) (Builder, error) {
	gp, err := NewGasPricer(ctx, conf, cc)
	if err != nil {
		return nil, err
	}
	b := &builder{
		cc:                cc,
		gasPricer:         gp,
		from:              from,
		gasEstimateFactor: confutil.Float64Min(conf.GasLimit.GasEstimateFactor, 1.0, *gcconf.TxBuilderDefaults.GasLimit.GasEstimateFactor),
		fallbackLimits:    map[string]uint64{},
	}
	for fn, limit := range gcconf.TxBuilderDefaults.GasLimit.FallbackLimits {
		b.fallbackLimits[fn] = limit
	}
	for fn, limit := range conf.GasLimit.FallbackLimits {
		b.fallbackLimits[fn] = limit
	}
	return b, nil
}

func (b *builder) GasPricer() GasPricer {
	return b.gasPricer
}

func (b *builder) From() gctypes.EthAddress {
	return b.from
}

func (b *builder) Build(ctx context.Context, binding chainclient.Binding, function string, args ...interface{}) (*ethsigner.Transaction, error) {
	data, err := binding.EncodeCall(ctx, function, args...)
	if err != nil {
		return nil, err
	}
	to := binding.Address()
	tx := &ethsigner.Transaction{
		From: json.RawMessage(`"` + b.from.String() + `"`),
		To:   to.Address0xHex(),
		Data: ethtypes.HexBytes0xPrefix(data),
	}
	gasLimit, err := b.estimateGasLimit(ctx, binding.Name(), function, tx)
	if err != nil {
		return nil, err
	}
	tx.GasLimit = ethtypes.NewHexIntegerU64(gasLimit)
	if err := b.Reprice(ctx, tx, false); err != nil {
		return nil, err
	}
	log.L(ctx).Debugf("Built %s.%s to=%s gasLimit=%d", binding.Name(), function, tx.To, gasLimit)
	return tx, nil
}

func (b *builder) Reprice(ctx context.Context, tx *ethsigner.Transaction, underpriced bool) error {
	pricing, err := b.gasPricer.GetGasPricing(ctx, underpriced)
	if err != nil {
		return gcerrors.WrapBroadcast(gcerrors.ReasonUnknown, err)
	}
	pricing.Apply(tx)
	return nil
}

func (b *builder) estimateGasLimit(ctx context.Context, contract, function string, tx *ethsigner.Transaction) (uint64, error) {
	estimate, err := b.cc.EstimateGas(ctx, tx)
	if err == nil {
		factored := new(big.Float).SetUint64(estimate)
		factored = factored.Mul(factored, big.NewFloat(b.gasEstimateFactor))
		gasLimit, _ := factored.Uint64()
		return gasLimit, nil
	}
	reason := gcerrors.MapReason(err)
	// a call that would revert is not worth sending with a guessed limit
	if fallback, ok := b.fallbackLimits[function]; ok && reason != gcerrors.ReasonReverted {
		log.L(ctx).Warnf("Gas estimation failed for %s.%s, using fallback limit %d: %s", contract, function, fallback, err)
		return fallback, nil
	}
	return 0, gcerrors.Broadcast(ctx, reason, msgs.MsgBroadcastGasEstimate, contract, function, err.Error())
}
