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

package submitter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/serialx/hashring"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

type Confirmation struct {
	Hash         gctypes.TxHash       `json:"hash"`
	Success      bool                 `json:"success"`
	TimedOut     bool                 `json:"timedOut,omitempty"`
	BlockNumber  uint64               `json:"blockNumber,omitempty"`
	GasUsed      uint64               `json:"gasUsed,omitempty"`
	RevertReason string               `json:"revertReason,omitempty"`
	Receipt      *chainclient.Receipt `json:"-"`
}

// Err is nil for a successful receipt. A mined failure is a *gcerrors.ReceiptFailure
// and a timeout a *gcerrors.ConfirmationTimeout.
func (c *Confirmation) Err(ctx context.Context) error {
	switch {
	case c.TimedOut:
		return gcerrors.Timeout(ctx, c.Hash.String(), msgs.MsgConfirmationTimeout, c.Hash, "deadline")
	case !c.Success:
		return gcerrors.Receipt(ctx, c.Hash.String(), c.BlockNumber, c.RevertReason, msgs.MsgReceiptFailure, c.Hash, c.BlockNumber, c.RevertReason)
	}
	return nil
}

// ConfirmationListener is called from a confirmer worker goroutine
type ConfirmationListener func(ctx context.Context, c *Confirmation)

type Confirmer interface {
	Start(ctx context.Context)
	Stop()
	// Track polls for a receipt until the deadline. Tracking a hash again extends its deadline.
	Track(ctx context.Context, hash gctypes.TxHash, deadline time.Time) error
	AddListener(l ConfirmationListener)
	// Confirm blocks until a receipt or the timeout. A timeout returns *gcerrors.ConfirmationTimeout.
	Confirm(ctx context.Context, hash gctypes.TxHash, timeout time.Duration) (*Confirmation, error)
	ConfirmTimeout() time.Duration
	Tracked() int
}

type trackRequest struct {
	hash     gctypes.TxHash
	deadline time.Time
}

type tracked struct {
	deadline time.Time
	since    time.Time
}

type confirmWorker struct {
	name    string
	c       *confirmer
	inbox   chan *trackRequest
	tracked map[gctypes.TxHash]*tracked
	done    chan struct{}
}

type confirmer struct {
	cc             chainclient.ChainClient
	metrics        metrics.Metrics
	pollInterval   time.Duration
	confirmTimeout time.Duration
	queue          chan *trackRequest
	ring           *hashring.HashRing
	workers        map[string]*confirmWorker

	mux        sync.Mutex
	listeners  []ConfirmationListener
	waiters    map[gctypes.TxHash][]chan *Confirmation
	trackCount int

	bgCtx     context.Context
	cancelCtx context.CancelFunc
	done      chan struct{}
}

func NewConfirmer(conf *gcconf.ConfirmerConfig, cc chainclient.ChainClient, m metrics.Metrics) Confirmer {
	c := &confirmer{
		cc:             cc,
		metrics:        m,
		pollInterval:   confutil.DurationMin(conf.PollInterval, 10*time.Millisecond, *gcconf.ConfirmerDefaults.PollInterval),
		confirmTimeout: confutil.DurationMin(conf.ConfirmTimeout, 0, *gcconf.ConfirmerDefaults.ConfirmTimeout),
		queue:          make(chan *trackRequest, confutil.IntMin(conf.QueueLength, 1, *gcconf.ConfirmerDefaults.QueueLength)),
		workers:        make(map[string]*confirmWorker),
		waiters:        make(map[gctypes.TxHash][]chan *Confirmation),
	}
	workerCount := confutil.IntMin(conf.WorkerCount, 1, *gcconf.ConfirmerDefaults.WorkerCount)
	names := make([]string, workerCount)
	for i := 0; i < workerCount; i++ {
		names[i] = fmt.Sprintf("confirmer-%d", i)
		c.workers[names[i]] = &confirmWorker{
			name:    names[i],
			c:       c,
			inbox:   make(chan *trackRequest, 16),
			tracked: make(map[gctypes.TxHash]*tracked),
		}
	}
	c.ring = hashring.New(names)
	return c
}

func (c *confirmer) ConfirmTimeout() time.Duration {
	return c.confirmTimeout
}

func (c *confirmer) Start(ctx context.Context) {
	c.bgCtx, c.cancelCtx = context.WithCancel(log.WithLogField(ctx, "role", "confirmer"))
	c.done = make(chan struct{})
	for _, w := range c.workers {
		w.done = make(chan struct{})
		go w.run(log.WithLogField(c.bgCtx, "worker", w.name))
	}
	go c.dispatchLoop()
}

func (c *confirmer) Stop() {
	if c.cancelCtx != nil {
		c.cancelCtx()
		<-c.done
		for _, w := range c.workers {
			<-w.done
		}
	}
}

func (c *confirmer) AddListener(l ConfirmationListener) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *confirmer) Tracked() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.trackCount
}

func (c *confirmer) Track(ctx context.Context, hash gctypes.TxHash, deadline time.Time) error {
	if c.bgCtx != nil && c.bgCtx.Err() != nil {
		return i18n.NewError(ctx, msgs.MsgConfirmerStopped)
	}
	select {
	case c.queue <- &trackRequest{hash: hash, deadline: deadline}:
		return nil
	default:
		return i18n.NewError(ctx, msgs.MsgConfirmerQueueFull, hash)
	}
}

func (c *confirmer) Confirm(ctx context.Context, hash gctypes.TxHash, timeout time.Duration) (*Confirmation, error) {
	if timeout <= 0 {
		timeout = c.confirmTimeout
	}
	waiter := make(chan *Confirmation, 1)
	c.mux.Lock()
	c.waiters[hash] = append(c.waiters[hash], waiter)
	c.mux.Unlock()
	defer c.removeWaiter(hash, waiter)

	if err := c.Track(ctx, hash, time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case conf := <-waiter:
		if conf.TimedOut {
			return nil, gcerrors.Timeout(ctx, hash.String(), msgs.MsgConfirmationTimeout, hash, timeout)
		}
		return conf, nil
	case <-timer.C:
		return nil, gcerrors.Timeout(ctx, hash.String(), msgs.MsgConfirmationTimeout, hash, timeout)
	case <-ctx.Done():
		return nil, i18n.NewError(ctx, msgs.MsgContextCanceled)
	}
}

func (c *confirmer) removeWaiter(hash gctypes.TxHash, waiter chan *Confirmation) {
	c.mux.Lock()
	defer c.mux.Unlock()
	waiters := c.waiters[hash]
	for i, w := range waiters {
		if w == waiter {
			waiters = append(waiters[:i], waiters[i+1:]...)
			break
		}
	}
	if len(waiters) == 0 {
		delete(c.waiters, hash)
	} else {
		c.waiters[hash] = waiters
	}
}

func (c *confirmer) workerFor(hash gctypes.TxHash) *confirmWorker {
	name, _ := c.ring.GetNode(hash.String())
	return c.workers[name]
}

func (c *confirmer) dispatchLoop() {
	defer close(c.done)
	for {
		select {
		case req := <-c.queue:
			w := c.workerFor(req.hash)
			select {
			case w.inbox <- req:
			case <-c.bgCtx.Done():
				return
			}
		case <-c.bgCtx.Done():
			log.L(c.bgCtx).Debugf("Confirmer dispatcher stopped")
			return
		}
	}
}

func (c *confirmer) adjustTracked(delta int) {
	c.mux.Lock()
	c.trackCount += delta
	n := c.trackCount
	c.mux.Unlock()
	c.metrics.SetTrackedReceipts(n)
}

// notify wakes the waiters first, so a caller blocked in Confirm sees the result
// before the listeners run their (possibly slow) processing
func (c *confirmer) notify(ctx context.Context, conf *Confirmation) {
	c.mux.Lock()
	waiters := c.waiters[conf.Hash]
	delete(c.waiters, conf.Hash)
	listeners := make([]ConfirmationListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mux.Unlock()

	for _, w := range waiters {
		w <- conf
	}
	for _, l := range listeners {
		l(ctx, conf)
	}
}

func (w *confirmWorker) run(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.c.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case req := <-w.inbox:
			if existing, ok := w.tracked[req.hash]; ok {
				if req.deadline.After(existing.deadline) {
					existing.deadline = req.deadline
				}
				continue
			}
			w.tracked[req.hash] = &tracked{deadline: req.deadline, since: time.Now()}
			w.c.adjustTracked(1)
			log.L(ctx).Debugf("Tracking %s until %s", req.hash, req.deadline.Format(time.RFC3339))
		case <-ticker.C:
			w.poll(ctx)
		case <-ctx.Done():
			log.L(ctx).Debugf("Confirmer worker stopped with %d tracked", len(w.tracked))
			return
		}
	}
}

func (w *confirmWorker) poll(ctx context.Context) {
	now := time.Now()
	for hash, t := range w.tracked {
		receipt, err := w.c.cc.GetTransactionReceipt(ctx, hash)
		if err != nil {
			log.L(ctx).Warnf("%s: %s", i18n.NewError(ctx, msgs.MsgConfirmerReceiptLookup, hash), err)
		}
		var conf *Confirmation
		switch {
		case receipt != nil:
			conf = w.c.confirmationFromReceipt(ctx, hash, receipt)
			w.c.metrics.ObserveConfirmSeconds(now.Sub(t.since).Seconds())
		case now.After(t.deadline):
			log.L(ctx).Warnf("No receipt for %s before deadline, leaving it to the pool sweep", hash)
			conf = &Confirmation{Hash: hash, TimedOut: true}
			w.c.metrics.IncTimedOut()
		default:
			continue
		}
		delete(w.tracked, hash)
		w.c.adjustTracked(-1)
		w.c.notify(ctx, conf)
	}
}

func (c *confirmer) confirmationFromReceipt(ctx context.Context, hash gctypes.TxHash, receipt *chainclient.Receipt) *Confirmation {
	conf := &Confirmation{
		Hash:        hash,
		Success:     receipt.Success(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed.Uint64(),
		Receipt:     receipt,
	}
	if !conf.Success {
		conf.RevertReason = c.cc.RevertReason(ctx, receipt.RevertReason)
		log.L(ctx).Warnf("Transaction %s failed in block %d: %s", hash, conf.BlockNumber, conf.RevertReason)
	} else {
		log.L(ctx).Infof("Transaction %s confirmed in block %d gasUsed=%d", hash, conf.BlockNumber, conf.GasUsed)
	}
	return conf
}
