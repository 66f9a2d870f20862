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

// Package reconciler keeps off-chain rows in step with on-chain outcomes.
// Entities change only after a successful receipt, and every change is recorded as an immutable ChainEvent.
package reconciler

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/eventdecoder"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/submitter"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
	"gorm.io/gorm/clause"
)

type Outcome string

const (
	OutcomeApplied       Outcome = "applied"
	OutcomeConflict      Outcome = "conflict"
	OutcomeMismatch      Outcome = "mismatch"
	OutcomeReceiptFailed Outcome = "receipt_failed"
)

// BatchChange is what an UpdateBatchStatus call asked for
type BatchChange struct {
	OldStatus model.BatchStatus `json:"old_status"`
	NewStatus model.BatchStatus `json:"new_status"`
	BatchHash gctypes.Bytes32   `json:"batch_hash"`
	Notes     string            `json:"notes,omitempty"`
}

type Reconciler interface {
	// Reconcile settles an animal mint. It assigns on_chain_id at most once.
	Reconcile(ctx context.Context, dbTX persistence.DBTX, animal *model.Animal, c *submitter.Confirmation, minted *eventdecoder.MintedAnimal) (Outcome, error)
	ReconcileHealth(ctx context.Context, dbTX persistence.DBTX, record *model.HealthRecord, c *submitter.Confirmation) (Outcome, error)
	ReconcileBatch(ctx context.Context, dbTX persistence.DBTX, batch *model.Batch, change *BatchChange, c *submitter.Confirmation) (Outcome, error)
	// ReconcileEvent covers operations whose only off-chain effect is the event itself
	ReconcileEvent(ctx context.Context, dbTX persistence.DBTX, event *model.ChainEvent, c *submitter.Confirmation) (Outcome, error)
	// FailRecord matches txpool.FailureHandler
	FailRecord(ctx context.Context, dbTX persistence.DBTX, record *model.TransactionRecord, reason string) error
	// Reassign points the rows written at dispatch (outbox, audit, health record) at a replacement transaction
	Reassign(ctx context.Context, dbTX persistence.DBTX, record *model.TransactionRecord, newHash gctypes.TxHash) error
	Events(ctx context.Context, dbTX persistence.DBTX, txHash gctypes.TxHash) ([]*model.ChainEvent, error)
}

type reconciler struct {
	outbox  Outbox
	metrics metrics.Metrics
}

func NewReconciler(outbox Outbox, m metrics.Metrics) Reconciler {
	return &reconciler{outbox: outbox, metrics: m}
}

func (r *reconciler) done(ctx context.Context, hash gctypes.TxHash, outcome Outcome) (Outcome, error) {
	r.metrics.IncReconcile(string(outcome))
	log.L(ctx).Infof("Reconciled %s: %s", hash, outcome)
	return outcome, nil
}

func (r *reconciler) receiptFailed(ctx context.Context, dbTX persistence.DBTX, c *submitter.Confirmation) (Outcome, error) {
	reason := c.RevertReason
	if reason == "" {
		reason = i18n.NewError(ctx, msgs.MsgReceiptNoRevertReason).Error()
	}
	msg := i18n.NewError(ctx, msgs.MsgReconcileReceiptFailed, reason).Error()
	if err := r.completeInteraction(ctx, dbTX, c, model.InteractionFailed, msg); err != nil {
		return "", err
	}
	return r.done(ctx, c.Hash, OutcomeReceiptFailed)
}

func (r *reconciler) Reconcile(ctx context.Context, dbTX persistence.DBTX, animal *model.Animal, c *submitter.Confirmation, minted *eventdecoder.MintedAnimal) (Outcome, error) {
	if animal.OnChainID != nil {
		log.L(ctx).Warnf("Animal %s already has on-chain id %s, ignoring mint %s", animal.ID, *animal.OnChainID, c.Hash)
		msg := i18n.NewError(ctx, msgs.MsgReconcileConflict, animal.ID, *animal.OnChainID).Error()
		if err := r.completeInteraction(ctx, dbTX, c, model.InteractionFailed, msg); err != nil {
			return "", err
		}
		return r.done(ctx, c.Hash, OutcomeConflict)
	}
	if !c.Success {
		return r.receiptFailed(ctx, dbTX, c)
	}

	var mismatch error
	switch {
	case minted == nil:
		mismatch = i18n.NewError(ctx, msgs.MsgOpNoDecodedEventOwner, animal.ID)
	case !minted.Owner.Equals(&animal.OwnerWallet):
		mismatch = i18n.NewError(ctx, msgs.MsgReconcileOwnerMismatch, minted.Owner, animal.OwnerWallet)
	case minted.MetadataURI != animal.MetadataURI:
		mismatch = i18n.NewError(ctx, msgs.MsgReconcileMetadataMismatch, minted.MetadataURI, animal.MetadataURI)
	}
	if mismatch != nil {
		log.L(ctx).Errorf("Mint %s for animal %s not applied: %s", c.Hash, animal.ID, mismatch)
		if err := r.completeInteraction(ctx, dbTX, c, model.InteractionFailed, mismatch.Error()); err != nil {
			return "", err
		}
		return r.done(ctx, c.Hash, OutcomeMismatch)
	}

	tokenID := minted.TokenID.String()
	result := dbTX.DB().WithContext(ctx).
		Model(&model.Animal{}).
		Where("id = ?", animal.ID).
		Where("on_chain_id IS NULL").
		Updates(map[string]interface{}{
			"on_chain_id":  tokenID,
			"mint_tx_hash": c.Hash,
			"updated":      gctypes.TimestampNow(),
		})
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected != 1 {
		var current []*model.Animal
		if err := dbTX.DB().WithContext(ctx).Where("id = ?", animal.ID).Limit(1).Find(&current).Error; err != nil {
			return "", err
		}
		if len(current) == 0 {
			return "", i18n.NewError(ctx, msgs.MsgReconcileEntityNotFound, animal.ID)
		}
		log.L(ctx).Warnf("Animal %s was reconciled concurrently, mint %s token %s is a conflict", animal.ID, c.Hash, tokenID)
		existing := ""
		if current[0].OnChainID != nil {
			existing = *current[0].OnChainID
		}
		msg := i18n.NewError(ctx, msgs.MsgReconcileConflict, animal.ID, existing).Error()
		if err := r.completeInteraction(ctx, dbTX, c, model.InteractionFailed, msg); err != nil {
			return "", err
		}
		return r.done(ctx, c.Hash, OutcomeConflict)
	}
	animal.OnChainID = &tokenID
	animal.MintTxHash = &c.Hash

	to := minted.Owner
	if err := r.appendEvent(ctx, dbTX, c, &model.ChainEvent{
		EventType: gctypes.Enum[model.EventType](model.EventMint),
		AnimalID:  &animal.ID,
		To:        &to,
	}, map[string]interface{}{
		"token_id":     tokenID,
		"metadata_uri": minted.MetadataURI,
		"log_index":    minted.LogIndex,
	}); err != nil {
		return "", err
	}
	if err := r.completeInteraction(ctx, dbTX, c, model.InteractionSuccess, ""); err != nil {
		return "", err
	}
	return r.done(ctx, c.Hash, OutcomeApplied)
}

func (r *reconciler) ReconcileHealth(ctx context.Context, dbTX persistence.DBTX, record *model.HealthRecord, c *submitter.Confirmation) (Outcome, error) {
	if !c.Success {
		return r.receiptFailed(ctx, dbTX, c)
	}
	result := dbTX.DB().WithContext(ctx).
		Model(&model.Animal{}).
		Where("id = ?", record.AnimalID).
		Updates(map[string]interface{}{
			"health_status": record.HealthStatus,
			"updated":       gctypes.TimestampNow(),
		})
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected != 1 {
		return "", i18n.NewError(ctx, msgs.MsgReconcileEntityNotFound, record.AnimalID)
	}
	meta := map[string]interface{}{
		"health_record_id": record.ID,
		"health_status":    record.HealthStatus,
		"source":           record.Source,
	}
	if record.MetadataHash != nil {
		meta["metadata_hash"] = record.MetadataHash
	}
	if err := r.appendEvent(ctx, dbTX, c, &model.ChainEvent{
		EventType: gctypes.Enum[model.EventType](model.EventHealthUpdate),
		AnimalID:  &record.AnimalID,
	}, meta); err != nil {
		return "", err
	}
	if err := r.completeInteraction(ctx, dbTX, c, model.InteractionSuccess, ""); err != nil {
		return "", err
	}
	return r.done(ctx, c.Hash, OutcomeApplied)
}

func (r *reconciler) ReconcileBatch(ctx context.Context, dbTX persistence.DBTX, batch *model.Batch, change *BatchChange, c *submitter.Confirmation) (Outcome, error) {
	if !c.Success {
		return r.receiptFailed(ctx, dbTX, c)
	}
	result := dbTX.DB().WithContext(ctx).
		Model(&model.Batch{}).
		Where("id = ?", batch.ID).
		Updates(map[string]interface{}{
			"status":       string(change.NewStatus),
			"last_tx_hash": c.Hash,
			"updated":      gctypes.TimestampNow(),
		})
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected != 1 {
		return "", i18n.NewError(ctx, msgs.MsgReconcileEntityNotFound, batch.ID)
	}
	batch.Status = gctypes.Enum[model.BatchStatus](change.NewStatus)
	batch.LastTxHash = &c.Hash

	if err := r.appendEvent(ctx, dbTX, c, &model.ChainEvent{
		EventType: gctypes.Enum[model.EventType](model.EventBatchStatusUpdate),
		BatchID:   &batch.ID,
	}, change); err != nil {
		return "", err
	}
	if err := r.completeInteraction(ctx, dbTX, c, model.InteractionSuccess, ""); err != nil {
		return "", err
	}
	return r.done(ctx, c.Hash, OutcomeApplied)
}

func (r *reconciler) ReconcileEvent(ctx context.Context, dbTX persistence.DBTX, event *model.ChainEvent, c *submitter.Confirmation) (Outcome, error) {
	if !c.Success {
		return r.receiptFailed(ctx, dbTX, c)
	}
	if err := r.appendEvent(ctx, dbTX, c, event, nil); err != nil {
		return "", err
	}
	if err := r.completeInteraction(ctx, dbTX, c, model.InteractionSuccess, ""); err != nil {
		return "", err
	}
	return r.done(ctx, c.Hash, OutcomeApplied)
}

// appendEvent inserts only. The (tx_hash, event_type) index makes a replayed confirmation a no-op.
func (r *reconciler) appendEvent(ctx context.Context, dbTX persistence.DBTX, c *submitter.Confirmation, event *model.ChainEvent, metadata interface{}) error {
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		event.Metadata = string(b)
	} else if event.Metadata == "" {
		event.Metadata = "{}"
	}
	event.ID = uuid.New().String()
	event.TxHash = c.Hash
	event.BlockNumber = c.BlockNumber
	event.Created = gctypes.TimestampNow()
	return dbTX.DB().WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event).
		Error
}

// completeInteraction sets the audit outcome once. A row that is no longer PENDING is left alone.
func (r *reconciler) completeInteraction(ctx context.Context, dbTX persistence.DBTX, c *submitter.Confirmation, status model.InteractionStatus, errMsg string) error {
	updates := map[string]interface{}{
		"status":  string(status),
		"updated": gctypes.TimestampNow(),
	}
	if c.BlockNumber > 0 {
		updates["block_number"] = c.BlockNumber
		updates["gas_used"] = c.GasUsed
	}
	if c.Receipt != nil && c.Receipt.EffectiveGasPrice != nil {
		price := c.Receipt.EffectiveGasPrice.BigInt()
		updates["gas_price"] = price.String()
		if c.GasUsed > 0 {
			updates["gas_cost_wei"] = new(big.Int).Mul(price, new(big.Int).SetUint64(c.GasUsed)).String()
		}
	}
	if errMsg != "" {
		updates["error_message"] = errMsg
	}
	return r.setInteraction(ctx, dbTX, c.Hash, updates)
}

func (r *reconciler) setInteraction(ctx context.Context, dbTX persistence.DBTX, hash gctypes.TxHash, updates map[string]interface{}) error {
	result := dbTX.DB().WithContext(ctx).
		Model(&model.ContractInteraction{}).
		Where("tx_hash = ?", hash).
		Where("status = ?", string(model.InteractionPending)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		log.L(ctx).Warnf("No pending contract interaction for %s", hash)
	}
	return nil
}

func (r *reconciler) Reassign(ctx context.Context, dbTX persistence.DBTX, record *model.TransactionRecord, newHash gctypes.TxHash) error {
	if record.OutboxID != nil {
		if err := r.outbox.Redispatch(ctx, dbTX, *record.OutboxID, record.Hash, newHash); err != nil {
			return err
		}
	}
	now := gctypes.TimestampNow()
	err := dbTX.DB().WithContext(ctx).
		Model(&model.ContractInteraction{}).
		Where("tx_hash = ?", record.Hash).
		Where("status = ?", string(model.InteractionPending)).
		Updates(map[string]interface{}{"tx_hash": newHash, "updated": now}).
		Error
	if err != nil {
		return err
	}
	return dbTX.DB().WithContext(ctx).
		Model(&model.HealthRecord{}).
		Where("tx_hash = ?", record.Hash).
		Update("tx_hash", newHash).
		Error
}

func (r *reconciler) FailRecord(ctx context.Context, dbTX persistence.DBTX, record *model.TransactionRecord, reason string) error {
	if err := r.setInteraction(ctx, dbTX, record.Hash, map[string]interface{}{
		"status":        string(model.InteractionFailed),
		"error_message": reason,
		"updated":       gctypes.TimestampNow(),
	}); err != nil {
		return err
	}
	if record.OutboxID != nil {
		if err := r.outbox.MarkFailed(ctx, dbTX, *record.OutboxID, reason); err != nil {
			return err
		}
	}
	return nil
}

func (r *reconciler) Events(ctx context.Context, dbTX persistence.DBTX, txHash gctypes.TxHash) ([]*model.ChainEvent, error) {
	var events []*model.ChainEvent
	err := dbTX.DB().WithContext(ctx).
		Where("tx_hash = ?", txHash).
		Order("created").
		Find(&events).
		Error
	return events, err
}
