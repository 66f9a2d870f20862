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

package txbuilder

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/cache"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

const (
	TxTypeLegacy  = "legacy"
	TxTypeEIP1559 = "eip1559"
)

const networkPriceCacheKey = "eth_gasPrice"

// GasPricing holds either GasPrice (legacy) or the two EIP-1559 fee fields
type GasPricing struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// Apply copies the pricing onto tx. The signer picks the envelope from which fields are set.
func (gp *GasPricing) Apply(tx *ethsigner.Transaction) {
	tx.GasPrice, tx.MaxFeePerGas, tx.MaxPriorityFeePerGas = nil, nil, nil
	if gp.MaxFeePerGas != nil {
		tx.MaxFeePerGas = ethtypes.NewHexInteger(gp.MaxFeePerGas)
		tx.MaxPriorityFeePerGas = ethtypes.NewHexInteger(gp.MaxPriorityFeePerGas)
	} else if gp.GasPrice != nil {
		tx.GasPrice = ethtypes.NewHexInteger(gp.GasPrice)
	}
}

type GasPricer interface {
	TxType() string
	HasZeroGasPrice() bool
	Ceiling() *big.Int
	// GetGasPricing returns the uplifted, capped price for a new submission.
	// Underpriced drops the cached network price first.
	GetGasPricing(ctx context.Context, underpriced bool) (*GasPricing, error)
	DeleteCache()
}

type cachedPrice struct {
	price   *big.Int
	expires time.Time
}

type gasPricer struct {
	cc            chainclient.ChainClient
	txType        string
	upliftPercent int
	ceiling       *big.Int
	fixedGasPrice *big.Int
	zeroGasPrice  bool
	cacheTTL      time.Duration
	priceCache    cache.Cache[string, *cachedPrice]
}

func NewGasPricer(ctx context.Context, conf *gcconf.TxBuilderConfig, cc chainclient.ChainClient) (GasPricer, error) {
	defs := gcconf.TxBuilderDefaults
	txType := strings.ToLower(confutil.StringNotEmpty(conf.TxType, *defs.TxType))
	if txType != TxTypeLegacy && txType != TxTypeEIP1559 {
		return nil, i18n.NewError(ctx, msgs.MsgConfigTxTypeInvalid, txType)
	}
	gp := &gasPricer{
		cc:            cc,
		txType:        txType,
		upliftPercent: confutil.IntMin(conf.Gas.UpliftPercent, 0, *defs.Gas.UpliftPercent),
		zeroGasPrice:  confutil.Bool(conf.Gas.ZeroGasPrice, *defs.Gas.ZeroGasPrice),
		cacheTTL:      confutil.DurationMin(conf.Gas.CacheTTL, 0, *defs.Gas.CacheTTL),
		priceCache:    cache.NewCache[string, *cachedPrice](&conf.Gas.Cache, &defs.Gas.Cache),
	}
	if conf.Gas.Ceiling != nil {
		if gp.ceiling = confutil.BigIntOrNil(conf.Gas.Ceiling); gp.ceiling == nil || gp.ceiling.Sign() < 0 {
			return nil, i18n.NewError(ctx, msgs.MsgConfigGasCeilingInvalid, *conf.Gas.Ceiling)
		}
	} else {
		gp.ceiling = confutil.BigInt(nil, *defs.Gas.Ceiling)
	}
	if conf.Gas.FixedGasPrice != nil {
		if gp.fixedGasPrice = confutil.BigIntOrNil(conf.Gas.FixedGasPrice); gp.fixedGasPrice == nil {
			return nil, i18n.NewError(ctx, msgs.MsgConfigGasCeilingInvalid, *conf.Gas.FixedGasPrice)
		}
		if gp.fixedGasPrice.Sign() == 0 {
			gp.zeroGasPrice = true
		}
	}
	log.L(ctx).Infof("Gas pricing: type=%s uplift=%d%% ceiling=%s fixed=%v zero=%t",
		gp.txType, gp.upliftPercent, gp.ceiling, gp.fixedGasPrice, gp.zeroGasPrice)
	return gp, nil
}

func (gp *gasPricer) TxType() string {
	return gp.txType
}

func (gp *gasPricer) HasZeroGasPrice() bool {
	return gp.zeroGasPrice
}

func (gp *gasPricer) Ceiling() *big.Int {
	return new(big.Int).Set(gp.ceiling)
}

func (gp *gasPricer) DeleteCache() {
	gp.priceCache.Delete(networkPriceCacheKey)
}

func (gp *gasPricer) networkPrice(ctx context.Context) (*big.Int, error) {
	if cached, ok := gp.priceCache.Get(networkPriceCacheKey); ok && time.Now().Before(cached.expires) {
		return cached.price, nil
	}
	price, err := gp.cc.GasPrice(ctx)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgBroadcastGasPriceQuery)
	}
	gp.priceCache.Set(networkPriceCacheKey, &cachedPrice{price: price, expires: time.Now().Add(gp.cacheTTL)})
	return price, nil
}

// upliftByPercentage rounds up: (x*(100+p) + 99) / 100
func upliftByPercentage(x *big.Int, percentage int) *big.Int {
	v := new(big.Int).Mul(x, big.NewInt(int64(100+percentage)))
	v.Add(v, big.NewInt(99))
	return v.Div(v, big.NewInt(100))
}

func (gp *gasPricer) capPrice(ctx context.Context, price *big.Int) *big.Int {
	if price.Cmp(gp.ceiling) > 0 {
		log.L(ctx).Warnf("Capping gas price %s to ceiling %s", price, gp.ceiling)
		return new(big.Int).Set(gp.ceiling)
	}
	return price
}

func (gp *gasPricer) pricing(price *big.Int) *GasPricing {
	if gp.txType == TxTypeEIP1559 {
		return &GasPricing{
			MaxFeePerGas:         price,
			MaxPriorityFeePerGas: new(big.Int).Set(price),
		}
	}
	return &GasPricing{GasPrice: price}
}

func (gp *gasPricer) GetGasPricing(ctx context.Context, underpriced bool) (*GasPricing, error) {
	// priority order: zero gas chain, fixed price, network price with uplift
	if gp.zeroGasPrice {
		return gp.pricing(big.NewInt(0)), nil
	}
	if gp.fixedGasPrice != nil {
		// a fixed price is never uplifted, but the ceiling still applies
		return gp.pricing(gp.capPrice(ctx, new(big.Int).Set(gp.fixedGasPrice))), nil
	}
	if underpriced {
		gp.DeleteCache()
	}
	price, err := gp.networkPrice(ctx)
	if err != nil {
		return nil, err
	}
	return gp.pricing(gp.capPrice(ctx, upliftByPercentage(price, gp.upliftPercent))), nil
}
