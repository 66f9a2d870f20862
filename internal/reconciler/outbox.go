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

package reconciler

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
	"gorm.io/gorm"
)

// DispatchFn turns an outbox entry into a signed, broadcast transaction.
// It must mark the entry DISPATCHED inside the signer's DB transaction.
type DispatchFn func(ctx context.Context, entry *model.OutboxEntry) error

type Outbox interface {
	Insert(ctx context.Context, dbTX persistence.DBTX, operation model.Operation, subjectID string, payload interface{}) (*model.OutboxEntry, error)
	// MarkDispatched fails unless the entry is still PENDING with no hash, so a second dispatch
	// rolls back the transaction that would have consumed a nonce
	MarkDispatched(ctx context.Context, dbTX persistence.DBTX, id string, hash gctypes.TxHash) error
	MarkFailed(ctx context.Context, dbTX persistence.DBTX, id string, reason string) error
	// FailUndispatched fails the entry only while it is still PENDING with no hash.
	// It returns false when a dispatch has already claimed it.
	FailUndispatched(ctx context.Context, dbTX persistence.DBTX, id string, reason string) (bool, error)
	// Redispatch moves a DISPATCHED entry from one hash to its replacement
	Redispatch(ctx context.Context, dbTX persistence.DBTX, id string, oldHash, newHash gctypes.TxHash) error
	RecordAttempt(ctx context.Context, id string, reason string) (int, error)
	Get(ctx context.Context, id string) (*model.OutboxEntry, error)
	ListPending(ctx context.Context, olderThan gctypes.Timestamp, limit int) ([]*model.OutboxEntry, error)
}

type outbox struct {
	p persistence.Persistence
}

func NewOutbox(p persistence.Persistence) Outbox {
	return &outbox{p: p}
}

func (o *outbox) Insert(ctx context.Context, dbTX persistence.DBTX, operation model.Operation, subjectID string, payload interface{}) (*model.OutboxEntry, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	now := gctypes.TimestampNow()
	entry := &model.OutboxEntry{
		ID:        uuid.New().String(),
		Operation: gctypes.Enum[model.Operation](operation),
		Payload:   string(b),
		Status:    gctypes.Enum[model.OutboxStatus](model.OutboxPending),
		Created:   now,
		Updated:   now,
	}
	if subjectID != "" {
		entry.SubjectID = &subjectID
	}
	if err := dbTX.DB().WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	log.L(ctx).Debugf("Outbox entry %s created for %s %s", entry.ID, operation, subjectID)
	return entry, nil
}

func (o *outbox) MarkDispatched(ctx context.Context, dbTX persistence.DBTX, id string, hash gctypes.TxHash) error {
	result := dbTX.DB().WithContext(ctx).
		Model(&model.OutboxEntry{}).
		Where("id = ?", id).
		Where("status = ?", string(model.OutboxPending)).
		Where("tx_hash IS NULL").
		Updates(map[string]interface{}{
			"status":  string(model.OutboxDispatched),
			"tx_hash": hash,
			"updated": gctypes.TimestampNow(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return i18n.NewError(ctx, msgs.MsgOutboxAlreadyDispatched, id)
	}
	return nil
}

func (o *outbox) MarkFailed(ctx context.Context, dbTX persistence.DBTX, id string, reason string) error {
	result := dbTX.DB().WithContext(ctx).
		Model(&model.OutboxEntry{}).
		Where("id = ?", id).
		Where("status IN (?)", []string{string(model.OutboxPending), string(model.OutboxDispatched)}).
		Updates(map[string]interface{}{
			"status":        string(model.OutboxFailed),
			"error_message": reason,
			"updated":       gctypes.TimestampNow(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		log.L(ctx).Warnf("Outbox entry %s not failed (missing or already FAILED)", id)
	}
	return nil
}

func (o *outbox) FailUndispatched(ctx context.Context, dbTX persistence.DBTX, id string, reason string) (bool, error) {
	result := dbTX.DB().WithContext(ctx).
		Model(&model.OutboxEntry{}).
		Where("id = ?", id).
		Where("status = ?", string(model.OutboxPending)).
		Where("tx_hash IS NULL").
		Updates(map[string]interface{}{
			"status":        string(model.OutboxFailed),
			"error_message": reason,
			"updated":       gctypes.TimestampNow(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (o *outbox) Redispatch(ctx context.Context, dbTX persistence.DBTX, id string, oldHash, newHash gctypes.TxHash) error {
	result := dbTX.DB().WithContext(ctx).
		Model(&model.OutboxEntry{}).
		Where("id = ?", id).
		Where("status = ?", string(model.OutboxDispatched)).
		Where("tx_hash = ?", oldHash).
		Updates(map[string]interface{}{
			"tx_hash": newHash,
			"updated": gctypes.TimestampNow(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return i18n.NewError(ctx, msgs.MsgOutboxNotDispatchedAs, id, oldHash)
	}
	return nil
}

func (o *outbox) RecordAttempt(ctx context.Context, id string, reason string) (int, error) {
	var attempts int
	err := o.p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		result := dbTX.DB().WithContext(ctx).
			Model(&model.OutboxEntry{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"attempts":      gorm.Expr("attempts + 1"),
				"error_message": reason,
				"updated":       gctypes.TimestampNow(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return i18n.NewError(ctx, msgs.MsgOutboxEntryNotFound, id)
		}
		return dbTX.DB().WithContext(ctx).
			Model(&model.OutboxEntry{}).
			Select("attempts").
			Where("id = ?", id).
			Scan(&attempts).
			Error
	})
	return attempts, err
}

func (o *outbox) Get(ctx context.Context, id string) (*model.OutboxEntry, error) {
	var entries []*model.OutboxEntry
	err := o.p.DB().WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&entries).
		Error
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return entries[0], nil
}

func (o *outbox) ListPending(ctx context.Context, olderThan gctypes.Timestamp, limit int) ([]*model.OutboxEntry, error) {
	var entries []*model.OutboxEntry
	err := o.p.DB().WithContext(ctx).
		Where("status = ?", string(model.OutboxPending)).
		Where("tx_hash IS NULL").
		Where("created < ?", olderThan).
		Order("created").
		Limit(limit).
		Find(&entries).
		Error
	return entries, err
}

type Dispatcher interface {
	Start(ctx context.Context)
	Stop()
	RegisterHandler(op model.Operation, fn DispatchFn)
	// Dispatch skips entries that already carry a tx hash
	Dispatch(ctx context.Context, entry *model.OutboxEntry) error
	DispatchOnce(ctx context.Context) (int, error)
}

type dispatcher struct {
	p           persistence.Persistence
	outbox      Outbox
	interval    time.Duration
	delay       time.Duration
	batchSize   int
	maxAttempts int

	handlerLock sync.RWMutex
	handlers    map[model.Operation]DispatchFn

	cancelCtx context.CancelFunc
	done      chan struct{}
}

func NewDispatcher(conf *gcconf.OutboxConfig, p persistence.Persistence, outbox Outbox) Dispatcher {
	return &dispatcher{
		p:           p,
		outbox:      outbox,
		interval:    confutil.DurationMin(conf.DispatchInterval, 10*time.Millisecond, *gcconf.OutboxDefaults.DispatchInterval),
		delay:       confutil.DurationMin(conf.DispatchDelay, 0, *gcconf.OutboxDefaults.DispatchDelay),
		batchSize:   confutil.IntMin(conf.BatchSize, 1, *gcconf.OutboxDefaults.BatchSize),
		maxAttempts: confutil.IntMin(conf.MaxAttempts, 1, *gcconf.OutboxDefaults.MaxAttempts),
		handlers:    make(map[model.Operation]DispatchFn),
	}
}

func (d *dispatcher) RegisterHandler(op model.Operation, fn DispatchFn) {
	d.handlerLock.Lock()
	defer d.handlerLock.Unlock()
	d.handlers[op] = fn
}

func (d *dispatcher) Start(ctx context.Context) {
	ctx, d.cancelCtx = context.WithCancel(log.WithLogField(ctx, "role", "outbox-dispatcher"))
	d.done = make(chan struct{})
	go d.loop(ctx)
}

func (d *dispatcher) Stop() {
	if d.cancelCtx != nil {
		d.cancelCtx()
		<-d.done
	}
}

func (d *dispatcher) loop(ctx context.Context) {
	defer close(d.done)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := d.DispatchOnce(ctx); err != nil {
				log.L(ctx).Errorf("Outbox dispatch failed: %s", err)
			}
		case <-ctx.Done():
			log.L(ctx).Debugf("Outbox dispatcher stopped")
			return
		}
	}
}

func (d *dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	entries, err := d.outbox.ListPending(ctx, gctypes.TimestampNow().Add(-d.delay), d.batchSize)
	if err != nil {
		return 0, err
	}
	if len(entries) > 0 {
		log.L(ctx).Infof("Recovering %d undispatched outbox entries", len(entries))
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return 0, i18n.NewError(ctx, msgs.MsgContextCanceled)
		}
		if err := d.Dispatch(ctx, entry); err != nil {
			log.L(ctx).Errorf("Dispatch of outbox entry %s failed: %s", entry.ID, err)
		}
	}
	return len(entries), nil
}

func (d *dispatcher) Dispatch(ctx context.Context, entry *model.OutboxEntry) error {
	if entry.TxHash != nil || entry.Status.V() != model.OutboxPending {
		log.L(ctx).Debugf("Outbox entry %s already %s (%v)", entry.ID, entry.Status, entry.TxHash)
		return nil
	}
	d.handlerLock.RLock()
	fn := d.handlers[entry.Operation.V()]
	d.handlerLock.RUnlock()
	if fn == nil {
		return i18n.NewError(ctx, msgs.MsgOutboxUnknownOperation, entry.Operation)
	}

	dispatchErr := fn(ctx, entry)
	if dispatchErr == nil {
		return nil
	}
	if current, err := d.outbox.Get(ctx, entry.ID); err == nil && current != nil && current.TxHash != nil {
		log.L(ctx).Infof("Outbox entry %s was dispatched concurrently as %s", entry.ID, current.TxHash)
		return nil
	}
	attempts, err := d.outbox.RecordAttempt(ctx, entry.ID, dispatchErr.Error())
	if err != nil {
		log.L(ctx).Errorf("Failed to record dispatch attempt for %s: %s", entry.ID, err)
		return dispatchErr
	}
	if attempts >= d.maxAttempts {
		reason := i18n.NewError(ctx, msgs.MsgOutboxAttemptsExhausted, entry.ID, attempts, dispatchErr).Error()
		if _, err := d.outbox.FailUndispatched(ctx, d.p.NOTX(), entry.ID, reason); err != nil {
			log.L(ctx).Errorf("Failed to fail outbox entry %s: %s", entry.ID, err)
		}
	}
	return dispatchErr
}
