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

// Package flushwriter batches small inserts into shared DB transactions.
// Rows with the same write key always land on the same worker, so their relative order is kept.
package flushwriter

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
	"gorm.io/gorm/clause"
)

type Writeable interface {
	WriteKey() string
}

// BatchHandler writes a whole batch inside dbTX. An error rolls back and fails every op in the batch.
type BatchHandler[T Writeable] func(ctx context.Context, dbTX persistence.DBTX, values []T) error

type Operation interface {
	// WaitFlushed blocks until the batch holding this op committed or failed
	WaitFlushed(ctx context.Context) error
	Flushed() <-chan error
}

type Writer[T Writeable] interface {
	Start()
	Queue(ctx context.Context, value T) Operation
	// QueueWithFlush closes the batch as soon as a worker picks the op up
	QueueWithFlush(ctx context.Context, value T) Operation
	// Shutdown drains queued work, then stops
	Shutdown()
	// ShutdownNow abandons queued work
	ShutdownNow()
}

// InsertHandler is the common handler: a plain insert, ignoring rows that already exist
func InsertHandler[T Writeable]() BatchHandler[T] {
	return func(ctx context.Context, dbTX persistence.DBTX, values []T) error {
		return dbTX.DB().
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(values).
			Error
	}
}

type op[T Writeable] struct {
	id       string
	writeKey string
	flush    bool
	stop     bool
	done     chan error
	value    T
}

type writer[T Writeable] struct {
	name         string
	bgCtx        context.Context
	cancelCtx    context.CancelFunc
	p            persistence.Persistence
	handler      BatchHandler[T]
	batchTimeout time.Duration
	batchMaxSize int
	queues       []chan *op[T]
	workersDone  []chan struct{}
}

func NewWriter[T Writeable](
	bgCtx context.Context,
	name string,
	handler BatchHandler[T],
	p persistence.Persistence,
	conf *gcconf.FlushWriterConfig,
	defaults *gcconf.FlushWriterConfig,
) Writer[T] {
	w := &writer[T]{
		name:         name,
		p:            p,
		handler:      handler,
		batchTimeout: confutil.DurationMin(conf.BatchTimeout, 0, *defaults.BatchTimeout),
		batchMaxSize: confutil.IntMin(conf.BatchMaxSize, 1, *defaults.BatchMaxSize),
	}
	workers := confutil.IntMin(conf.WorkerCount, 1, *defaults.WorkerCount)
	w.queues = make([]chan *op[T], workers)
	w.workersDone = make([]chan struct{}, workers)
	for i := range w.queues {
		w.queues[i] = make(chan *op[T], w.batchMaxSize)
		w.workersDone[i] = make(chan struct{})
	}
	w.bgCtx, w.cancelCtx = context.WithCancel(log.WithLogField(bgCtx, "writer", name))
	return w
}

func (w *writer[T]) Start() {
	log.L(w.bgCtx).Debugf("Starting %d workers", len(w.queues))
	for i := range w.queues {
		go w.worker(i)
	}
}

func (w *writer[T]) Queue(ctx context.Context, value T) Operation {
	return w.queue(ctx, value, false)
}

func (w *writer[T]) QueueWithFlush(ctx context.Context, value T) Operation {
	return w.queue(ctx, value, true)
}

func (o *op[T]) WaitFlushed(ctx context.Context) error {
	select {
	case err := <-o.done:
		return err
	case <-ctx.Done():
		return i18n.NewError(ctx, msgs.MsgContextCanceled)
	}
}

func (o *op[T]) Flushed() <-chan error {
	return o.done
}

func (w *writer[T]) route(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(w.queues)))
}

func (w *writer[T]) queue(ctx context.Context, value T, flush bool) *op[T] {
	o := &op[T]{
		id:       uuid.New().String()[0:8],
		writeKey: value.WriteKey(),
		value:    value,
		flush:    flush,
		done:     make(chan error, 1), // never blocks the worker
	}
	if w.bgCtx.Err() != nil {
		o.done <- i18n.NewError(ctx, msgs.MsgFlushWriterQuiescing)
		return o
	}
	select {
	case w.queues[w.route(o.writeKey)] <- o:
	case <-ctx.Done():
		o.done <- i18n.NewError(ctx, msgs.MsgContextCanceled)
	case <-w.bgCtx.Done():
		o.done <- i18n.NewError(ctx, msgs.MsgFlushWriterQuiescing)
	}
	return o
}

func (w *writer[T]) worker(i int) {
	defer close(w.workersDone[i])
	ctx := log.WithLogField(w.bgCtx, "job", fmt.Sprintf("%s_%.4d", w.name, i))
	queue := w.queues[i]

	var pending []*op[T]
	timer := time.NewTimer(w.batchTimeout)
	timer.Stop()
	for {
		runNow := false
		var stopReq *op[T]
		select {
		case o := <-queue:
			if o.stop {
				stopReq = o
				runNow = true
				break
			}
			if len(pending) == 0 {
				timer.Reset(w.batchTimeout)
			}
			pending = append(pending, o)
			runNow = o.flush || len(pending) >= w.batchMaxSize
		case <-timer.C:
			runNow = true
		case <-ctx.Done():
			for _, o := range pending {
				o.done <- i18n.NewError(ctx, msgs.MsgFlushWriterQuiescing)
			}
			log.L(ctx).Debugf("Writer ending")
			return
		}
		if runNow && len(pending) > 0 {
			timer.Stop()
			w.runBatch(ctx, pending)
			pending = nil
		}
		if stopReq != nil {
			close(stopReq.done)
			return
		}
	}
}

func (w *writer[T]) runBatch(ctx context.Context, ops []*op[T]) {
	values := make([]T, len(ops))
	for i, o := range ops {
		values[i] = o.value
	}
	start := time.Now()
	err := w.p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		return w.handler(ctx, dbTX, values)
	})
	if err != nil {
		log.L(ctx).Errorf("Write batch of %d failed: %s", len(values), err)
		err = i18n.WrapError(ctx, err, msgs.MsgFlushWriterOpFailed)
	} else {
		log.L(ctx).Debugf("Wrote batch of %d in %dms", len(values), time.Since(start).Milliseconds())
	}
	for _, o := range ops {
		o.done <- err
	}
}

func (w *writer[T]) Shutdown() {
	stops := make([]*op[T], len(w.queues))
	for i := range w.queues {
		stops[i] = &op[T]{stop: true, done: make(chan error)}
		select {
		case w.queues[i] <- stops[i]:
		case <-w.bgCtx.Done():
		}
	}
	for i := range w.workersDone {
		select {
		case <-stops[i].done:
		case <-w.bgCtx.Done():
		}
		<-w.workersDone[i]
	}
	w.cancelCtx()
}

func (w *writer[T]) ShutdownNow() {
	w.cancelCtx()
	for i, done := range w.workersDone {
		<-done
		// fail anything that arrived after the worker exited
		for {
			select {
			case o := <-w.queues[i]:
				if !o.stop {
					o.done <- i18n.NewError(w.bgCtx, msgs.MsgFlushWriterQuiescing)
				}
				continue
			default:
			}
			break
		}
	}
}
