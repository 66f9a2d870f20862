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

// Package txmgr is the caller-facing transaction lifecycle.
//
// Every write operation records its intent in the outbox, in the same DB transaction as the
// off-chain change it implies, and then dispatches inline. Dispatch builds the call, signs it
// and writes the TransactionRecord before anything reaches the node. Confirmations come back
// through the confirmer and are settled against the off-chain rows by the reconciler.
package txmgr

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/cache"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/flushwriter"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/reconciler"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/signer"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/submitter"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/txbuilder"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/txpool"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
)

type TxManager interface {
	Start()
	Stop()

	MintAnimalNFT(ctx context.Context, req *MintAnimalRequest) (gctypes.TxHash, error)
	AssignRole(ctx context.Context, wallet, roleName string) (gctypes.TxHash, error)
	MintTokens(ctx context.Context, wallet string, amount *big.Int) (gctypes.TxHash, error)
	UpdateHealth(ctx context.Context, update *HealthUpdate) (gctypes.TxHash, error)
	// UpdateBatchStatus waits for the receipt. Chain outcomes, including a timeout, are reported in the result.
	UpdateBatchStatus(ctx context.Context, batchID string, newStatus model.BatchStatus, notes string) (*BatchStatusResult, error)
	CurrentHealth(ctx context.Context, animalID string) (model.HealthStatus, error)

	GetTransactionStatus(ctx context.Context, hash string) (*TransactionStatus, error)
	AddListener(l Listener)

	HasRole(ctx context.Context, wallet, roleName string) (bool, error)
	TokenBalance(ctx context.Context, wallet string) (*big.Int, error)
	NFTOwner(ctx context.Context, tokenID string) (*gctypes.EthAddress, error)
	TokenURI(ctx context.Context, tokenID string) (string, error)
	VerifyAnimalNFT(ctx context.Context, animalID string) (*NFTVerification, error)
	AnimalTransferHistory(ctx context.Context, animalID string) ([]*TransferEvent, error)
	NetworkStatus(ctx context.Context) (*NetworkStatus, error)
}

// Components are the lifecycle pieces the manager drives. Their own Start/Stop is the caller's job.
type Components struct {
	Persistence persistence.Persistence
	ChainClient chainclient.ChainClient
	Builder     txbuilder.Builder
	Signer      signer.Signer
	Submitter   submitter.Submitter
	Confirmer   submitter.Confirmer
	Pool        txpool.Pool
	Sweeper     txpool.Sweeper
	Outbox      reconciler.Outbox
	Dispatcher  reconciler.Dispatcher
	Reconciler  reconciler.Reconciler
	Metrics     metrics.Metrics
}

type txManager struct {
	p            persistence.Persistence
	cc           chainclient.ChainClient
	builder      txbuilder.Builder
	signer       signer.Signer
	submitter    submitter.Submitter
	confirmer    submitter.Confirmer
	pool         txpool.Pool
	outbox       reconciler.Outbox
	reconciler   reconciler.Reconciler
	metrics      metrics.Metrics
	interactions flushwriter.Writer[*model.ContractInteraction]
	statusCache  cache.Cache[gctypes.TxHash, *TransactionStatus]
	explorerURL  string
	// per first broadcast
	maxReallocations int

	listenerLock sync.RWMutex
	listeners    []Listener
}

func NewTxManager(ctx context.Context, conf *gcconf.GanadoConfig, c *Components) TxManager {
	tm := &txManager{
		p:           c.Persistence,
		cc:          c.ChainClient,
		builder:     c.Builder,
		signer:      c.Signer,
		submitter:   c.Submitter,
		confirmer:   c.Confirmer,
		pool:        c.Pool,
		outbox:      c.Outbox,
		reconciler:  c.Reconciler,
		metrics:     c.Metrics,
		statusCache: cache.NewCache[gctypes.TxHash, *TransactionStatus](&conf.StatusCache, gcconf.StatusCacheDefaults),
		explorerURL: confutil.StringOrEmpty(conf.Blockchain.ExplorerURL, *gcconf.BlockchainDefaults.ExplorerURL),

		maxReallocations: confutil.IntMin(conf.Submitter.NonceReallocations, 0, *gcconf.SubmitterDefaults.NonceReallocations),
	}
	tm.interactions = flushwriter.NewWriter(ctx, "interactions", flushwriter.InsertHandler[*model.ContractInteraction](),
		c.Persistence, &conf.InteractionWriter, gcconf.InteractionWriterDefaults)

	for op, fn := range map[model.Operation]func(ctx context.Context, entry *model.OutboxEntry) (*gctypes.TxHash, error){
		model.OpMintAnimal:        tm.dispatchMint,
		model.OpAssignRole:        tm.dispatchRole,
		model.OpMintTokens:        tm.dispatchTokens,
		model.OpUpdateHealth:      tm.dispatchHealth,
		model.OpUpdateBatchStatus: tm.dispatchBatch,
	} {
		c.Dispatcher.RegisterHandler(op, tm.recoveryDispatch(fn))
	}
	c.Confirmer.AddListener(tm.handleConfirmation)
	if c.Sweeper != nil {
		c.Sweeper.SetFailureHandler(tm.recordFailed)
		c.Sweeper.SetNonceConflictHandler(tm.reallocateStale)
	}
	return tm
}

func (tm *txManager) Start() {
	tm.interactions.Start()
}

func (tm *txManager) Stop() {
	tm.interactions.Shutdown()
}

func (tm *txManager) AddListener(l Listener) {
	tm.listenerLock.Lock()
	defer tm.listenerLock.Unlock()
	tm.listeners = append(tm.listeners, l)
}

func (tm *txManager) notify(ctx context.Context, n *TxNotification) {
	tm.listenerLock.RLock()
	listeners := make([]Listener, len(tm.listeners))
	copy(listeners, tm.listeners)
	tm.listenerLock.RUnlock()
	for _, l := range listeners {
		l(ctx, n)
	}
}

// recoveryDispatch adapts a dispatch function for the background dispatcher.
// Once the record exists the sweep owns the transaction, so a later broadcast failure is not a dispatch failure.
func (tm *txManager) recoveryDispatch(fn func(ctx context.Context, entry *model.OutboxEntry) (*gctypes.TxHash, error)) reconciler.DispatchFn {
	return func(ctx context.Context, entry *model.OutboxEntry) error {
		hash, err := fn(ctx, entry)
		if hash != nil {
			if err != nil {
				log.L(ctx).Warnf("Recovered outbox entry %s as %s, broadcast failed: %s", entry.ID, hash, err)
			}
			return nil
		}
		return err
	}
}

// dispatchInline runs a freshly inserted entry on the caller's goroutine.
// A failure before signing fails the entry, so the dispatcher does not replay a request the caller saw fail.
// If the entry was claimed anyway, by the dispatcher or by a signer commit that outlived the caller's
// context, the caller gets the hash that claimed it.
func (tm *txManager) dispatchInline(ctx context.Context, entry *model.OutboxEntry, fn func(ctx context.Context, entry *model.OutboxEntry) (*gctypes.TxHash, error)) (gctypes.TxHash, error) {
	hash, err := fn(ctx, entry)
	if err == nil {
		return *hash, nil
	}
	if hash != nil {
		return gctypes.TxHash{}, err
	}
	bgCtx := context.WithoutCancel(ctx)
	failed, ferr := tm.outbox.FailUndispatched(bgCtx, tm.p.NOTX(), entry.ID, err.Error())
	if ferr != nil {
		log.L(ctx).Errorf("Failed to fail outbox entry %s: %s", entry.ID, ferr)
		return gctypes.TxHash{}, err
	}
	if failed {
		return gctypes.TxHash{}, err
	}
	current, gerr := tm.outbox.Get(bgCtx, entry.ID)
	if gerr != nil || current == nil || current.TxHash == nil {
		return gctypes.TxHash{}, err
	}
	log.L(ctx).Infof("Outbox entry %s already dispatched as %s (%s)", entry.ID, current.TxHash, err)
	return *current.TxHash, nil
}

func decodePayload(ctx context.Context, entry *model.OutboxEntry, v interface{}) error {
	if err := json.Unmarshal([]byte(entry.Payload), v); err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgOpPayloadInvalid, entry.Operation, entry.ID)
	}
	return nil
}

type contractCall struct {
	binding      chainclient.Binding
	function     string
	args         []interface{}
	contractType model.ContractType
	action       model.ActionType
	target       *gctypes.EthAddress
	params       interface{}
	// persist adds rows to the signer's DB transaction
	persist signer.PersistFn
}

// send returns a non-nil hash once the record is durable, even if the broadcast then fails
func (tm *txManager) send(ctx context.Context, entry *model.OutboxEntry, call *contractCall) (*gctypes.TxHash, error) {
	tx, err := tm.builder.Build(ctx, call.binding, call.function, call.args...)
	if err != nil {
		return nil, err
	}

	signed, err := tm.signer.SignAndPersist(ctx, tx, func(ctx context.Context, dbTX persistence.DBTX, signed *signer.SignedTransaction) error {
		if err := tm.pool.Enqueue(ctx, dbTX, &model.TransactionRecord{
			Hash:       signed.Hash,
			RawPayload: signed.RawPayload,
			Signer:     signed.From,
			Nonce:      signed.Nonce,
			To:         signed.To,
			Operation:  entry.Operation,
			SubjectID:  entry.SubjectID,
			OutboxID:   &entry.ID,
		}); err != nil {
			return err
		}
		if err := tm.outbox.MarkDispatched(ctx, dbTX, entry.ID, signed.Hash); err != nil {
			return err
		}
		if call.persist != nil {
			return call.persist(ctx, dbTX, signed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	hash := signed.Hash
	ctx = log.WithLogField(ctx, "tx", hash.String())

	params, _ := json.Marshal(call.params)
	now := gctypes.TimestampNow()
	interaction := &model.ContractInteraction{
		ID:            uuid.New().String(),
		ContractType:  gctypes.Enum[model.ContractType](call.contractType),
		ActionType:    gctypes.Enum[model.ActionType](call.action),
		TxHash:        &hash,
		CallerAddress: signed.From,
		TargetAddress: call.target,
		Parameters:    string(params),
		Status:        gctypes.Enum[model.InteractionStatus](model.InteractionPending),
		Created:       now,
		Updated:       now,
	}
	// the audit row must exist before a receipt can be settled against it
	if err := tm.interactions.QueueWithFlush(ctx, interaction).WaitFlushed(ctx); err != nil {
		log.L(ctx).Errorf("Contract interaction for %s not recorded: %s", hash, err)
	}

	final, err := tm.broadcast(ctx, &model.TransactionRecord{
		Hash:       signed.Hash,
		RawPayload: signed.RawPayload,
		Signer:     signed.From,
		Nonce:      signed.Nonce,
		To:         signed.To,
		Operation:  entry.Operation,
		SubjectID:  entry.SubjectID,
		OutboxID:   &entry.ID,
	})
	return &final, err
}

// broadcast returns the hash now carrying the payload. It differs from record.Hash when the node
// reported the nonce as used and the payload was moved to a fresh one.
func (tm *txManager) broadcast(ctx context.Context, record *model.TransactionRecord) (gctypes.TxHash, error) {
	operation := record.Operation.V()
	for reallocations := 0; ; reallocations++ {
		_, err := tm.submitter.Submit(ctx, &signer.SignedTransaction{
			Hash:       record.Hash,
			RawPayload: record.RawPayload,
			From:       record.Signer,
			To:         record.To,
			Nonce:      record.Nonce,
		})
		var be *gcerrors.BroadcastError
		switch {
		case errors.As(err, &be) && be.Reason == gcerrors.ReasonNonceTooLow:
			if reallocations >= tm.maxReallocations {
				reason := i18n.NewError(ctx, msgs.MsgPoolReallocationsExhausted, reallocations).Error()
				return record.Hash, tm.failBroadcast(ctx, record, reason, err)
			}
			replacement, rerr := tm.reallocate(ctx, record)
			if rerr != nil {
				log.L(ctx).Warnf("Nonce reallocation for %s failed, leaving it to the pool sweep: %s", record.Hash, rerr)
			} else if replacement != nil {
				record = replacement
				continue
			}
		case errors.As(err, &be) && !be.Retryable():
			return record.Hash, tm.failBroadcast(ctx, record, err.Error(), err)
		case err != nil:
			log.L(ctx).Warnf("Broadcast of %s failed, leaving it to the pool sweep: %s", record.Hash, err)
		default:
			tm.metrics.IncSubmitted(string(operation))
			if tm.explorerURL != "" {
				log.L(ctx).Infof("%s submitted: %s%s", operation, tm.explorerURL, record.Hash)
			}
		}
		tm.track(ctx, record.Hash)
		return record.Hash, nil
	}
}

func (tm *txManager) track(ctx context.Context, hash gctypes.TxHash) {
	if err := tm.confirmer.Track(ctx, hash, time.Now().Add(tm.confirmer.ConfirmTimeout())); err != nil {
		log.L(ctx).Warnf("Not tracking %s: %s", hash, err)
	}
}

// failBroadcast fails a record the node never accepted, then hands its nonce back
func (tm *txManager) failBroadcast(ctx context.Context, record *model.TransactionRecord, reason string, cause error) error {
	if err := tm.failRecord(ctx, record, reason); err != nil {
		log.L(ctx).Errorf("Failed to mark %s failed: %s", record.Hash, err)
	}
	if next, err := tm.signer.Resync(ctx); err != nil {
		log.L(ctx).Warnf("Nonce resync after rejected %s failed: %s", record.Hash, err)
	} else {
		log.L(ctx).Infof("Next nonce after rejected %s is %d", record.Hash, next)
	}
	return cause
}

// reallocate signs the record's payload again under a fresh nonce. The old record fails, and the rows
// written at dispatch follow the new hash, in the same DB transaction as the new nonce.
// It returns nil when the old hash turns out to be mined.
func (tm *txManager) reallocate(ctx context.Context, record *model.TransactionRecord) (*model.TransactionRecord, error) {
	receipt, err := tm.cc.GetTransactionReceipt(ctx, record.Hash)
	if err != nil {
		return nil, err
	}
	if receipt != nil {
		log.L(ctx).Infof("Nonce %d reported used, but %s is mined", record.Nonce, record.Hash)
		return nil, nil
	}
	var replacement *model.TransactionRecord
	_, err = tm.signer.Reallocate(ctx, record.RawPayload, func(ctx context.Context, dbTX persistence.DBTX, signed *signer.SignedTransaction) error {
		reason := i18n.NewError(ctx, msgs.MsgPoolNonceReallocated, record.Nonce, signed.Nonce, signed.Hash).Error()
		if err := tm.pool.MarkFailed(ctx, dbTX, record.Hash, reason); err != nil {
			return err
		}
		replacement = &model.TransactionRecord{
			Hash:       signed.Hash,
			RawPayload: signed.RawPayload,
			Signer:     signed.From,
			Nonce:      signed.Nonce,
			To:         signed.To,
			Operation:  record.Operation,
			SubjectID:  record.SubjectID,
			OutboxID:   record.OutboxID,
			RetryCount: record.RetryCount + 1,
		}
		if err := tm.pool.Enqueue(ctx, dbTX, replacement); err != nil {
			return err
		}
		return tm.reconciler.Reassign(ctx, dbTX, record, signed.Hash)
	})
	if err != nil {
		return nil, err
	}
	tm.metrics.IncReallocated()
	log.L(ctx).Warnf("Nonce %d of %s was used by another transaction, moved to nonce %d as %s", record.Nonce, record.Hash, replacement.Nonce, replacement.Hash)
	return replacement, nil
}

// reallocateStale is the sweep's nonce conflict handler
func (tm *txManager) reallocateStale(ctx context.Context, record *model.TransactionRecord) error {
	replacement, err := tm.reallocate(ctx, record)
	if err != nil {
		return err
	}
	if replacement == nil {
		tm.track(ctx, record.Hash)
		return nil
	}
	_, err = tm.broadcast(ctx, replacement)
	return err
}

func (tm *txManager) failRecord(ctx context.Context, record *model.TransactionRecord, reason string) error {
	err := tm.p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		if err := tm.pool.MarkFailed(ctx, dbTX, record.Hash, reason); err != nil {
			return err
		}
		return tm.recordFailed(ctx, dbTX, record, reason)
	})
	if err == nil {
		tm.metrics.IncFailed(string(record.Operation.V()))
	}
	return err
}

// recordFailed is also the sweep's failure handler
func (tm *txManager) recordFailed(ctx context.Context, dbTX persistence.DBTX, record *model.TransactionRecord, reason string) error {
	if err := tm.reconciler.FailRecord(ctx, dbTX, record, reason); err != nil {
		return err
	}
	dbTX.AddPostCommit(func(ctx context.Context) {
		tm.notify(ctx, &TxNotification{
			Hash:      record.Hash,
			Operation: record.Operation.V(),
			SubjectID: record.SubjectID,
			Status:    model.TxStatusFailed,
			Error:     reason,
		})
	})
	return nil
}
