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

// Package gasoracle samples the network gas price and suggests a discounted price.
// The suggestion is advisory: nothing in the submission path reads it.
package gasoracle

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/flushwriter"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
)

var (
	discountNumerator   = big.NewInt(9)
	discountDenominator = big.NewInt(10)
	weiPerGwei          = big.NewFloat(1e9)
)

type Suggestion struct {
	Current     *big.Int          `json:"current"`
	Suggested   *big.Int          `json:"suggested"`
	Savings     *big.Int          `json:"savings"`
	BlockNumber uint64            `json:"blockNumber"`
	Timestamp   gctypes.Timestamp `json:"timestamp"`
}

type Oracle interface {
	Start(ctx context.Context)
	Stop()
	Sample(ctx context.Context) (*Suggestion, error)
	// History returns the newest samples first
	History(ctx context.Context, limit int) ([]*model.GasPriceSample, error)
	Last() *Suggestion
}

type oracle struct {
	p        persistence.Persistence
	cc       chainclient.ChainClient
	metrics  metrics.Metrics
	writer   flushwriter.Writer[*model.GasPriceSample]
	enabled  bool
	interval time.Duration

	lastLock  sync.Mutex
	last      *Suggestion
	cancelCtx context.CancelFunc
	done      chan struct{}
}

func NewOracle(ctx context.Context, conf *gcconf.GasOracleConfig, p persistence.Persistence, cc chainclient.ChainClient, m metrics.Metrics) Oracle {
	o := &oracle{
		p:        p,
		cc:       cc,
		metrics:  m,
		enabled:  confutil.Bool(conf.Enabled, *gcconf.GasOracleDefaults.Enabled),
		interval: confutil.DurationMin(conf.SampleInterval, 100*time.Millisecond, *gcconf.GasOracleDefaults.SampleInterval),
	}
	o.writer = flushwriter.NewWriter(ctx, "gas-samples", flushwriter.InsertHandler[*model.GasPriceSample](), p,
		&conf.Writer, &gcconf.GasOracleDefaults.Writer)
	return o
}

// Suggest is floor(price*9/10), with savings the remainder
func Suggest(price *big.Int) (suggested, savings *big.Int) {
	suggested = new(big.Int).Mul(price, discountNumerator)
	suggested.Quo(suggested, discountDenominator)
	savings = new(big.Int).Sub(price, suggested)
	return suggested, savings
}

func (o *oracle) Start(ctx context.Context) {
	o.writer.Start()
	if !o.enabled {
		log.L(ctx).Infof("Gas price sampling disabled")
		return
	}
	ctx, o.cancelCtx = context.WithCancel(log.WithLogField(ctx, "role", "gas-oracle"))
	o.done = make(chan struct{})
	go o.loop(ctx)
}

func (o *oracle) Stop() {
	if o.cancelCtx != nil {
		o.cancelCtx()
		<-o.done
	}
	o.writer.Shutdown()
}

func (o *oracle) loop(ctx context.Context) {
	defer close(o.done)
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := o.Sample(ctx); err != nil {
				log.L(ctx).Warnf("Gas price sample failed: %s", err)
			}
		case <-ctx.Done():
			log.L(ctx).Debugf("Gas oracle stopped")
			return
		}
	}
}

func (o *oracle) Sample(ctx context.Context) (*Suggestion, error) {
	price, err := o.cc.GasPrice(ctx)
	if err != nil {
		return nil, err
	}
	blockNumber, err := o.cc.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	suggested, savings := Suggest(price)
	s := &Suggestion{
		Current:     price,
		Suggested:   suggested,
		Savings:     savings,
		BlockNumber: blockNumber,
		Timestamp:   gctypes.TimestampNow(),
	}

	o.writer.Queue(ctx, &model.GasPriceSample{
		ID:          uuid.New().String(),
		Price:       price.String(),
		BlockNumber: blockNumber,
		Created:     s.Timestamp,
	})
	gwei, _ := new(big.Float).Quo(new(big.Float).SetInt(price), weiPerGwei).Float64()
	o.metrics.SetGasPriceGwei(gwei)

	o.lastLock.Lock()
	o.last = s
	o.lastLock.Unlock()
	log.L(ctx).Debugf("Gas price %s at block %d, suggested %s", price, blockNumber, suggested)
	return s, nil
}

func (o *oracle) Last() *Suggestion {
	o.lastLock.Lock()
	defer o.lastLock.Unlock()
	return o.last
}

func (o *oracle) History(ctx context.Context, limit int) ([]*model.GasPriceSample, error) {
	var samples []*model.GasPriceSample
	err := o.p.DB().WithContext(ctx).
		Order("created DESC").
		Limit(limit).
		Find(&samples).
		Error
	return samples, err
}
