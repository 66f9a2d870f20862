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

package txpool

import (
	"context"
	"errors"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/signer"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/submitter"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/retry"
)

// FailureHandler runs in the same DB transaction that marks a record FAILED,
// so dependent rows (audit, outbox) fail atomically with it
type FailureHandler func(ctx context.Context, dbTX persistence.DBTX, record *model.TransactionRecord, reason string) error

// NonceConflictHandler moves a stale record whose nonce the node reports as used to a fresh nonce.
// It owns the record from then on: failing it, replacing it, or tracking it.
type NonceConflictHandler func(ctx context.Context, record *model.TransactionRecord) error

type Sweeper interface {
	Start(ctx context.Context)
	Stop()
	// SweepOnce processes one batch of due records and returns how many it handled
	SweepOnce(ctx context.Context) (int, error)
	SetFailureHandler(fh FailureHandler)
	SetNonceConflictHandler(nh NonceConflictHandler)
}

type sweeper struct {
	p          persistence.Persistence
	pool       Pool
	cc         chainclient.ChainClient
	submitter  submitter.Submitter
	confirmer  submitter.Confirmer
	metrics    metrics.Metrics
	backoff    *retry.Retry
	interval   time.Duration
	staleAfter time.Duration
	maxRetries int
	batchSize  int
	onFailed   FailureHandler
	onConflict NonceConflictHandler

	cancelCtx context.CancelFunc
	done      chan struct{}
}

func NewSweeper(conf *gcconf.TxPoolConfig, p persistence.Persistence, pool Pool, cc chainclient.ChainClient, sub submitter.Submitter, confirmer submitter.Confirmer, m metrics.Metrics) Sweeper {
	return &sweeper{
		p:          p,
		pool:       pool,
		cc:         cc,
		submitter:  sub,
		confirmer:  confirmer,
		metrics:    m,
		backoff:    retry.NewRetryIndefinite(&conf.Retry, &gcconf.TxPoolDefaults.Retry),
		interval:   confutil.DurationMin(conf.SweepInterval, 10*time.Millisecond, *gcconf.TxPoolDefaults.SweepInterval),
		staleAfter: confutil.DurationMin(conf.StaleAfter, 0, *gcconf.TxPoolDefaults.StaleAfter),
		maxRetries: confutil.IntMin(conf.MaxRetries, 0, *gcconf.TxPoolDefaults.MaxRetries),
		batchSize:  confutil.IntMin(conf.BatchSize, 1, *gcconf.TxPoolDefaults.BatchSize),
	}
}

func (s *sweeper) SetFailureHandler(fh FailureHandler) {
	s.onFailed = fh
}

func (s *sweeper) SetNonceConflictHandler(nh NonceConflictHandler) {
	s.onConflict = nh
}

func (s *sweeper) Start(ctx context.Context) {
	ctx, s.cancelCtx = context.WithCancel(log.WithLogField(ctx, "role", "sweeper"))
	s.done = make(chan struct{})
	go s.loop(ctx)
}

func (s *sweeper) Stop() {
	if s.cancelCtx != nil {
		s.cancelCtx()
		<-s.done
	}
}

func (s *sweeper) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				log.L(ctx).Errorf("Sweep failed: %s", err)
			}
		case <-ctx.Done():
			log.L(ctx).Debugf("Sweeper stopped")
			return
		}
	}
}

func (s *sweeper) SweepOnce(ctx context.Context) (int, error) {
	cutoff := gctypes.TimestampNow().Add(-s.staleAfter)
	records, err := s.pool.ListDue(ctx, cutoff, s.batchSize)
	if err != nil {
		return 0, err
	}
	if len(records) > 0 {
		log.L(ctx).Infof("Sweeping %d stale pending transactions", len(records))
	}
	for _, r := range records {
		if ctx.Err() != nil {
			return 0, i18n.NewError(ctx, msgs.MsgContextCanceled)
		}
		if err := s.sweepRecord(ctx, r); err != nil {
			// one bad record must not hold up the rest of the batch
			log.L(ctx).Errorf("Sweep of %s failed: %s", r.Hash, err)
		}
	}
	return len(records), nil
}

func (s *sweeper) sweepRecord(ctx context.Context, r *model.TransactionRecord) error {
	deadline := time.Now().Add(s.confirmer.ConfirmTimeout())

	receipt, err := s.cc.GetTransactionReceipt(ctx, r.Hash)
	if err != nil {
		return err
	}
	if receipt != nil {
		log.L(ctx).Infof("Receipt found for stale %s, passing to confirmer", r.Hash)
		return s.confirmer.Track(ctx, r.Hash, deadline)
	}

	if r.RetryCount >= s.maxRetries {
		return s.fail(ctx, r, i18n.NewError(ctx, msgs.MsgPoolRetriesExhausted, r.RetryCount).Error())
	}

	_, err = s.submitter.Submit(ctx, &signer.SignedTransaction{
		Hash:       r.Hash,
		RawPayload: r.RawPayload,
		From:       r.Signer,
		To:         r.To,
		Nonce:      r.Nonce,
	})
	var be *gcerrors.BroadcastError
	if errors.As(err, &be) && be.Reason == gcerrors.ReasonNonceTooLow {
		// no receipt for our hash, so another payload took the nonce
		if s.onConflict != nil {
			if err := s.onConflict(ctx, r); err != nil {
				log.L(ctx).Warnf("Nonce conflict on %s unresolved (retry %d): %s", r.Hash, r.RetryCount+1, err)
				return s.pool.MarkRetried(ctx, r.Hash, gctypes.TimestampNow().Add(s.backoff.Delay(r.RetryCount+1)))
			}
			s.metrics.IncRetried()
			return nil
		}
		return s.fail(ctx, r, i18n.NewError(ctx, msgs.MsgPoolNonceConsumed, r.Nonce).Error())
	}
	if errors.As(err, &be) && !be.Retryable() {
		return s.fail(ctx, r, err.Error())
	}
	if err != nil {
		log.L(ctx).Warnf("Rebroadcast of %s failed (retry %d): %s", r.Hash, r.RetryCount+1, err)
	}

	nextRetry := gctypes.TimestampNow().Add(s.backoff.Delay(r.RetryCount + 1))
	if err := s.pool.MarkRetried(ctx, r.Hash, nextRetry); err != nil {
		return err
	}
	s.metrics.IncRetried()
	return s.confirmer.Track(ctx, r.Hash, deadline)
}

func (s *sweeper) fail(ctx context.Context, r *model.TransactionRecord, reason string) error {
	err := s.p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		if err := s.pool.MarkFailed(ctx, dbTX, r.Hash, reason); err != nil {
			return err
		}
		if s.onFailed != nil {
			return s.onFailed(ctx, dbTX, r, reason)
		}
		return nil
	})
	if err == nil {
		s.metrics.IncFailed(string(r.Operation.V()))
		log.L(ctx).Warnf("Transaction %s marked FAILED: %s", r.Hash, reason)
	}
	return err
}
