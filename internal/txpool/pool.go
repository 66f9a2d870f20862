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

// Package txpool is the durable record of every signed transaction.
// Status only moves forward: PENDING -> PROCESSING -> CONFIRMED|FAILED, or PENDING -> FAILED.
package txpool

import (
	"context"
	"errors"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
	"gorm.io/gorm"
)

type Pool interface {
	Enqueue(ctx context.Context, dbTX persistence.DBTX, record *model.TransactionRecord) error
	MarkProcessing(ctx context.Context, dbTX persistence.DBTX, hash gctypes.TxHash) error
	MarkRetried(ctx context.Context, hash gctypes.TxHash, nextRetryAt gctypes.Timestamp) error
	MarkConfirmed(ctx context.Context, dbTX persistence.DBTX, hash gctypes.TxHash, blockNumber, gasUsed uint64) error
	MarkFailed(ctx context.Context, dbTX persistence.DBTX, hash gctypes.TxHash, reason string) error
	// Get returns nil for an unknown hash
	Get(ctx context.Context, hash gctypes.TxHash) (*model.TransactionRecord, error)
	// ListDue returns PENDING records created before olderThan whose retry time has come, oldest first
	ListDue(ctx context.Context, olderThan gctypes.Timestamp, limit int) ([]*model.TransactionRecord, error)
	CountByStatus(ctx context.Context) (map[model.TxStatus]int64, error)
}

// ErrInvalidStatusTransition is matched with errors.Is
var ErrInvalidStatusTransition = errors.New("invalid status transition")

type InvalidStatusTransition struct {
	Err  error
	Hash gctypes.TxHash
	From model.TxStatus
	To   model.TxStatus
}

func (e *InvalidStatusTransition) Error() string { return e.Err.Error() }
func (e *InvalidStatusTransition) Unwrap() error { return e.Err }
func (e *InvalidStatusTransition) Is(target error) bool {
	return target == ErrInvalidStatusTransition
}

var allowedFrom = map[model.TxStatus][]string{
	model.TxStatusProcessing: {string(model.TxStatusPending)},
	model.TxStatusConfirmed:  {string(model.TxStatusProcessing)},
	model.TxStatusFailed:     {string(model.TxStatusPending), string(model.TxStatusProcessing)},
}

type pool struct {
	p persistence.Persistence
}

func NewPool(p persistence.Persistence) Pool {
	return &pool{p: p}
}

func (tp *pool) Enqueue(ctx context.Context, dbTX persistence.DBTX, record *model.TransactionRecord) error {
	now := gctypes.TimestampNow()
	record.Status = gctypes.Enum[model.TxStatus](model.TxStatusPending)
	record.Created = now
	record.Updated = now
	record.NextRetryAt = now
	if err := dbTX.DB().WithContext(ctx).Create(record).Error; err != nil {
		return err
	}
	log.L(ctx).Debugf("Enqueued %s %s nonce=%d", record.Operation, record.Hash, record.Nonce)
	return nil
}

// transition applies updates only if the current status allows the target status.
// Zero rows affected means unknown hash or a forbidden move, and nothing is written.
func (tp *pool) transition(ctx context.Context, dbTX persistence.DBTX, hash gctypes.TxHash, to model.TxStatus, updates map[string]interface{}) error {
	updates["status"] = string(to)
	updates["updated"] = gctypes.TimestampNow()
	result := dbTX.DB().WithContext(ctx).
		Model(&model.TransactionRecord{}).
		Where("hash = ?", hash).
		Where("status IN (?)", allowedFrom[to]).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		log.L(ctx).Debugf("Transaction %s -> %s", hash, to)
		return nil
	}
	return tp.rejectTransition(ctx, dbTX, hash, to)
}

func (tp *pool) rejectTransition(ctx context.Context, dbTX persistence.DBTX, hash gctypes.TxHash, to model.TxStatus) error {
	var records []*model.TransactionRecord
	if err := dbTX.DB().WithContext(ctx).Where("hash = ?", hash).Limit(1).Find(&records).Error; err != nil {
		return err
	}
	if len(records) == 0 {
		return i18n.NewError(ctx, msgs.MsgPoolRecordNotFound, hash)
	}
	from := records[0].Status.V()
	return &InvalidStatusTransition{
		Hash: hash,
		From: from,
		To:   to,
		Err:  i18n.NewError(ctx, msgs.MsgPoolInvalidStatusTransition, hash, from, to),
	}
}

func (tp *pool) MarkProcessing(ctx context.Context, dbTX persistence.DBTX, hash gctypes.TxHash) error {
	return tp.transition(ctx, dbTX, hash, model.TxStatusProcessing, map[string]interface{}{})
}

func (tp *pool) MarkConfirmed(ctx context.Context, dbTX persistence.DBTX, hash gctypes.TxHash, blockNumber, gasUsed uint64) error {
	return tp.transition(ctx, dbTX, hash, model.TxStatusConfirmed, map[string]interface{}{
		"block_number":  blockNumber,
		"gas_used":      gasUsed,
		"error_message": nil,
	})
}

func (tp *pool) MarkFailed(ctx context.Context, dbTX persistence.DBTX, hash gctypes.TxHash, reason string) error {
	return tp.transition(ctx, dbTX, hash, model.TxStatusFailed, map[string]interface{}{
		"error_message": reason,
	})
}

func (tp *pool) MarkRetried(ctx context.Context, hash gctypes.TxHash, nextRetryAt gctypes.Timestamp) error {
	now := gctypes.TimestampNow()
	result := tp.p.DB().WithContext(ctx).
		Model(&model.TransactionRecord{}).
		Where("hash = ?", hash).
		Where("status = ?", string(model.TxStatusPending)).
		Updates(map[string]interface{}{
			"retry_count":   gorm.Expr("retry_count + 1"),
			"last_retry_at": now,
			"next_retry_at": nextRetryAt,
			"updated":       now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return tp.rejectTransition(ctx, tp.p.NOTX(), hash, model.TxStatusPending)
	}
	return nil
}

func (tp *pool) Get(ctx context.Context, hash gctypes.TxHash) (*model.TransactionRecord, error) {
	var records []*model.TransactionRecord
	err := tp.p.DB().WithContext(ctx).
		Where("hash = ?", hash).
		Limit(1).
		Find(&records).
		Error
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

func (tp *pool) ListDue(ctx context.Context, olderThan gctypes.Timestamp, limit int) ([]*model.TransactionRecord, error) {
	var records []*model.TransactionRecord
	err := tp.p.DB().WithContext(ctx).
		Where("status = ?", string(model.TxStatusPending)).
		Where("created < ?", olderThan).
		Where("next_retry_at <= ?", gctypes.TimestampNow()).
		Order("created").
		Limit(limit).
		Find(&records).
		Error
	return records, err
}

func (tp *pool) CountByStatus(ctx context.Context) (map[model.TxStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := tp.p.DB().WithContext(ctx).
		Model(&model.TransactionRecord{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.TxStatus]int64, len(model.TxStatus("").Options()))
	for _, s := range model.TxStatus("").Options() {
		counts[model.TxStatus(s)] = 0
	}
	for _, r := range rows {
		counts[model.TxStatus(r.Status)] = r.Count
	}
	return counts, nil
}
