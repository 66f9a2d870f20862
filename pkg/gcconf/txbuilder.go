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

package gcconf

import "github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"

type TxBuilderConfig struct {
	// 'legacy' (gasPrice) or 'eip1559' (maxFeePerGas/maxPriorityFeePerGas)
	TxType   *string        `json:"txType"`
	Gas      GasPriceConfig `json:"gas"`
	GasLimit GasLimitConfig `json:"gasLimit"`
}

type GasPriceConfig struct {
	// percentage added to the network price, rounded up
	UpliftPercent *int `json:"upliftPercent"`
	// hard cap in wei, decimal or 0x hex
	Ceiling *string `json:"ceiling"`
	// when set the network is not queried
	FixedGasPrice *string `json:"fixedGasPrice"`
	// for permissioned chains with free gas
	ZeroGasPrice *bool       `json:"zeroGasPrice"`
	Cache        CacheConfig `json:"cache"`
	CacheTTL     *string     `json:"cacheTTL"`
}

type GasLimitConfig struct {
	GasEstimateFactor *float64 `json:"gasEstimateFactor"`
	// per-function limit used when estimation fails; keyed by ABI function name
	FallbackLimits map[string]uint64 `json:"fallbackLimits"`
}

var TxBuilderDefaults = &TxBuilderConfig{
	TxType: confutil.P("legacy"),
	Gas: GasPriceConfig{
		UpliftPercent: confutil.P(10),
		Ceiling:       confutil.P("100000000000"), // 100 gwei
		ZeroGasPrice:  confutil.P(false),
		Cache:         CacheConfig{Capacity: confutil.P(1)},
		CacheTTL:      confutil.P("5s"),
	},
	GasLimit: GasLimitConfig{
		GasEstimateFactor: confutil.P(1.5),
		FallbackLimits: map[string]uint64{
			"mintAnimal":        500000,
			"grantRole":         200000,
			"mint":              200000,
			"updateOperational": 300000,
			"updateBatchStatus": 200000,
			"registerAnimal":    250000,
		},
	},
}
