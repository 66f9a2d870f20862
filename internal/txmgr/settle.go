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

package txmgr

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/eventdecoder"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/reconciler"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/submitter"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/txpool"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
)

// handleConfirmation runs on a confirmer worker. A timeout leaves the record PENDING for the sweep.
func (tm *txManager) handleConfirmation(ctx context.Context, c *submitter.Confirmation) {
	if c.TimedOut {
		log.L(ctx).Warnf("No receipt for %s before the deadline, leaving it PENDING", c.Hash)
		return
	}
	if _, err := tm.settle(ctx, c); err != nil {
		log.L(ctx).Errorf("Settlement of %s failed: %s", c.Hash, err)
	}
}

type reconcileFn func(ctx context.Context, dbTX persistence.DBTX) (reconciler.Outcome, error)

// settle applies a receipt exactly once. The PENDING->PROCESSING transition is the guard:
// whichever of the listener and a synchronous caller gets there second does nothing.
func (tm *txManager) settle(ctx context.Context, c *submitter.Confirmation) (reconciler.Outcome, error) {
	ctx = log.WithLogField(ctx, "tx", c.Hash.String())
	record, err := tm.pool.Get(ctx, c.Hash)
	if err != nil {
		return "", err
	}
	if record == nil {
		log.L(ctx).Debugf("Confirmation for unknown transaction %s", c.Hash)
		return "", nil
	}
	if record.Status.V() != model.TxStatusPending {
		log.L(ctx).Debugf("Transaction %s already %s", c.Hash, record.Status)
		return "", nil
	}

	// reads happen before the DB transaction, which must only use its own connection
	fn, err := tm.prepareReconcile(ctx, record, c)
	if err != nil {
		return "", err
	}

	var outcome reconciler.Outcome
	var failure string
	err = tm.p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) (err error) {
		if err := tm.pool.MarkProcessing(ctx, dbTX, c.Hash); err != nil {
			return err
		}
		if outcome, err = fn(ctx, dbTX); err != nil {
			return err
		}
		switch outcome {
		case reconciler.OutcomeReceiptFailed:
			failure = c.Err(ctx).Error()
		case reconciler.OutcomeConflict:
			var existing []*model.Animal
			if err := dbTX.DB().WithContext(ctx).Where("id = ?", subjectOf(record)).Limit(1).Find(&existing).Error; err != nil {
				return err
			}
			onChainID := ""
			if len(existing) > 0 && existing[0].OnChainID != nil {
				onChainID = *existing[0].OnChainID
			}
			failure = i18n.NewError(ctx, msgs.MsgReconcileConflict, subjectOf(record), onChainID).Error()
		}
		if failure != "" {
			return tm.pool.MarkFailed(ctx, dbTX, c.Hash, failure)
		}
		return tm.pool.MarkConfirmed(ctx, dbTX, c.Hash, c.BlockNumber, c.GasUsed)
	})
	if errors.Is(err, txpool.ErrInvalidStatusTransition) {
		log.L(ctx).Debugf("Transaction %s settled concurrently", c.Hash)
		return "", nil
	}
	if err != nil {
		return "", err
	}

	operation := record.Operation.V()
	status := model.TxStatusConfirmed
	if failure != "" {
		status = model.TxStatusFailed
		tm.metrics.IncFailed(string(operation))
	} else {
		tm.metrics.IncConfirmed(string(operation))
	}
	tm.notify(ctx, &TxNotification{
		Hash:        c.Hash,
		Operation:   operation,
		SubjectID:   record.SubjectID,
		Status:      status,
		Outcome:     outcome,
		BlockNumber: c.BlockNumber,
		Error:       failure,
	})
	return outcome, nil
}

func subjectOf(record *model.TransactionRecord) string {
	if record.SubjectID == nil {
		return ""
	}
	return *record.SubjectID
}

func (tm *txManager) prepareReconcile(ctx context.Context, record *model.TransactionRecord, c *submitter.Confirmation) (reconcileFn, error) {
	var entry *model.OutboxEntry
	if record.OutboxID != nil {
		var err error
		if entry, err = tm.outbox.Get(ctx, *record.OutboxID); err != nil {
			return nil, err
		}
	}
	subjectID := subjectOf(record)

	switch record.Operation.V() {
	case model.OpMintAnimal:
		var animal *model.Animal
		var err error
		if subjectID != "" {
			if animal, err = tm.getAnimal(ctx, tm.p.NOTX(), subjectID); err != nil {
				return nil, err
			}
		}
		if animal == nil {
			log.L(ctx).Warnf("Animal %q for mint %s not found, recording the event only", subjectID, c.Hash)
			return tm.eventOnly(model.EventMint, record, entry, c), nil
		}
		var minted *eventdecoder.MintedAnimal
		if c.Success && c.Receipt != nil {
			if minted, err = eventdecoder.AnimalMinted(ctx, tm.cc.NFT(), c.Receipt); err != nil {
				log.L(ctx).Errorf("Mint event for %s not decoded: %s", animal.ID, err)
				minted = nil
			}
		}
		return func(ctx context.Context, dbTX persistence.DBTX) (reconciler.Outcome, error) {
			return tm.reconciler.Reconcile(ctx, dbTX, animal, c, minted)
		}, nil

	case model.OpUpdateHealth:
		var records []*model.HealthRecord
		if err := tm.p.DB().WithContext(ctx).Where("tx_hash = ?", c.Hash).Limit(1).Find(&records).Error; err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return tm.eventOnly(model.EventHealthUpdate, record, entry, c), nil
		}
		return func(ctx context.Context, dbTX persistence.DBTX) (reconciler.Outcome, error) {
			return tm.reconciler.ReconcileHealth(ctx, dbTX, records[0], c)
		}, nil

	case model.OpUpdateBatchStatus:
		batch, err := tm.getBatch(ctx, subjectID)
		if err != nil {
			return nil, err
		}
		if batch == nil || entry == nil {
			return tm.eventOnly(model.EventBatchStatusUpdate, record, entry, c), nil
		}
		var p batchPayload
		if err := decodePayload(ctx, entry, &p); err != nil {
			return nil, err
		}
		return func(ctx context.Context, dbTX persistence.DBTX) (reconciler.Outcome, error) {
			return tm.reconciler.ReconcileBatch(ctx, dbTX, batch, &p.Change, c)
		}, nil

	case model.OpAssignRole:
		return tm.eventOnly(model.EventRoleAdd, record, entry, c), nil

	default:
		return tm.eventOnly(model.EventTokenMinted, record, entry, c), nil
	}
}

// eventOnly records the confirmation as a ChainEvent carrying the request payload
func (tm *txManager) eventOnly(eventType model.EventType, record *model.TransactionRecord, entry *model.OutboxEntry, c *submitter.Confirmation) reconcileFn {
	event := &model.ChainEvent{
		EventType: gctypes.Enum[model.EventType](eventType),
		Metadata:  "{}",
	}
	if entry != nil && json.Valid([]byte(entry.Payload)) {
		event.Metadata = entry.Payload
		var target struct {
			Wallet *gctypes.EthAddress `json:"wallet"`
		}
		if json.Unmarshal([]byte(entry.Payload), &target) == nil {
			event.To = target.Wallet
		}
	}
	switch eventType {
	case model.EventMint, model.EventHealthUpdate:
		event.AnimalID = record.SubjectID
	case model.EventBatchStatusUpdate:
		event.BatchID = record.SubjectID
	}
	return func(ctx context.Context, dbTX persistence.DBTX) (reconciler.Outcome, error) {
		return tm.reconciler.ReconcileEvent(ctx, dbTX, event, c)
	}
}
