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

// Package signer owns the operator key and the nonce sequence.
// A single actor goroutine assigns nonces. Each assignment commits in the same DB transaction
// as the caller's record of the signed payload, so a nonce never belongs to two live payloads.
// A nonce is only handed out again once the node has rejected the payload holding it.
package signer

import (
	"context"
	"sync/atomic"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/retry"
	"gorm.io/gorm/clause"
)

type SignedTransaction struct {
	Hash        gctypes.TxHash
	RawPayload  []byte
	From        gctypes.EthAddress
	To          *gctypes.EthAddress
	Nonce       uint64
	Transaction *ethsigner.Transaction
}

// PersistFn records the signed payload inside the signer's DB transaction.
// An error rolls back the nonce assignment.
type PersistFn func(ctx context.Context, dbTX persistence.DBTX, signed *SignedTransaction) error

type Signer interface {
	Address() gctypes.EthAddress
	// Start reconciles the nonce with the node, then starts the actor
	Start(ctx context.Context) error
	Stop()
	SignAndPersist(ctx context.Context, tx *ethsigner.Transaction, persist PersistFn) (*SignedTransaction, error)
	// Reallocate signs a previously signed payload again under a fresh nonce, after moving the
	// counter up to the node's pending count
	Reallocate(ctx context.Context, rawPayload []byte, persist PersistFn) (*SignedTransaction, error)
	// Resync sets the counter to the node's pending count, in either direction.
	// Moving back releases nonces of payloads the node rejected, which would otherwise stall the sequence.
	Resync(ctx context.Context) (uint64, error)
	NextNonce() uint64
}

type requestType int

const (
	requestSign requestType = iota
	requestReallocate
	requestResync
)

type signRequest struct {
	ctx     context.Context
	rType   requestType
	tx      *ethsigner.Transaction
	persist PersistFn
	done    chan *signResult
}

type signResult struct {
	signed *SignedTransaction
	err    error
}

type signer struct {
	conf      *gcconf.SignerConfig
	p         persistence.Persistence
	cc        chainclient.ChainClient
	keyPair   *secp256k1.KeyPair
	address   gctypes.EthAddress
	chainID   int64
	lockName  string
	nextNonce atomic.Uint64
	requests  chan *signRequest

	bgCtx     context.Context
	cancelCtx context.CancelFunc
	done      chan struct{}
}

func NewSigner(ctx context.Context, conf *gcconf.SignerConfig, p persistence.Persistence, cc chainclient.ChainClient, keyPair *secp256k1.KeyPair) Signer {
	s := &signer{
		conf:     conf,
		p:        p,
		cc:       cc,
		keyPair:  keyPair,
		address:  gctypes.EthAddress(keyPair.Address),
		chainID:  cc.ChainID(),
		requests: make(chan *signRequest, confutil.IntMin(conf.Queue, 1, *gcconf.SignerDefaults.Queue)),
	}
	s.lockName = "nonce:" + s.address.String()
	return s
}

func (s *signer) Address() gctypes.EthAddress {
	return s.address
}

func (s *signer) NextNonce() uint64 {
	return s.nextNonce.Load()
}

func (s *signer) Start(ctx context.Context) error {
	if err := s.reconcileNonce(ctx); err != nil {
		return err
	}
	s.bgCtx, s.cancelCtx = context.WithCancel(log.WithLogField(ctx, "role", "signer"))
	s.done = make(chan struct{})
	go s.actorLoop()
	return nil
}

func (s *signer) Stop() {
	if s.cancelCtx != nil {
		s.cancelCtx()
		<-s.done
	}
}

func (s *signer) readPersistedNonce(ctx context.Context, dbTX persistence.DBTX) (*uint64, error) {
	var counters []*model.NonceCounter
	err := dbTX.DB().
		Where("signer = ?", s.address).
		Limit(1).
		Find(&counters).
		Error
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgSignerNonceReadFailed, s.address)
	}
	if len(counters) == 0 {
		return nil, nil
	}
	return &counters[0].NextNonce, nil
}

// reconcileNonce starts from whichever is further ahead: our persisted counter or the node
func (s *signer) reconcileNonce(ctx context.Context) error {
	var nodeNonce uint64
	r := retry.NewRetryLimited(&s.conf.Reconcile.Retry, &gcconf.SignerDefaults.Reconcile.Retry)
	err := r.Do(ctx, func(attempt int) (bool, error) {
		var err error
		nodeNonce, err = s.cc.GetTransactionCount(ctx, s.address, chainclient.BlockPending)
		return true, err
	})
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgSignerNonceReconcile, s.address)
	}
	persisted, err := s.readPersistedNonce(ctx, s.p.NOTX())
	if err != nil {
		return err
	}
	next := nodeNonce
	switch {
	case persisted == nil:
		log.L(ctx).Infof("No persisted nonce for %s, starting from node pending count %d", s.address, nodeNonce)
	case *persisted >= nodeNonce:
		next = *persisted
		log.L(ctx).Infof("Nonce for %s resumed at %d (node pending=%d)", s.address, next, nodeNonce)
	default:
		log.L(ctx).Warnf("Node pending nonce %d for %s is ahead of persisted %d: transactions were submitted outside this service", nodeNonce, s.address, *persisted)
	}
	s.nextNonce.Store(next)
	return nil
}

func (s *signer) SignAndPersist(ctx context.Context, tx *ethsigner.Transaction, persist PersistFn) (*SignedTransaction, error) {
	return s.request(ctx, &signRequest{rType: requestSign, tx: tx, persist: persist})
}

func (s *signer) Reallocate(ctx context.Context, rawPayload []byte, persist PersistFn) (*SignedTransaction, error) {
	from, decoded, err := ethsigner.RecoverRawTransaction(ctx, rawPayload, s.chainID)
	if err != nil {
		return nil, gcerrors.WrapSigning(ctx, err, msgs.MsgSignerRawPayloadInvalid)
	}
	fromAddr := gctypes.EthAddress(*from)
	if !fromAddr.Equals(&s.address) {
		return nil, gcerrors.Signing(ctx, msgs.MsgSignerNotOurPayload, fromAddr, s.address)
	}
	return s.request(ctx, &signRequest{rType: requestReallocate, tx: decoded.Transaction, persist: persist})
}

func (s *signer) Resync(ctx context.Context) (uint64, error) {
	if _, err := s.request(ctx, &signRequest{rType: requestResync}); err != nil {
		return 0, err
	}
	return s.nextNonce.Load(), nil
}

func (s *signer) request(ctx context.Context, req *signRequest) (*SignedTransaction, error) {
	if s.bgCtx == nil || s.bgCtx.Err() != nil {
		return nil, i18n.NewError(ctx, msgs.MsgSignerStopped)
	}
	req.ctx = ctx
	req.done = make(chan *signResult, 1)
	select {
	case s.requests <- req:
	case <-ctx.Done():
		return nil, i18n.NewError(ctx, msgs.MsgContextCanceled)
	case <-s.bgCtx.Done():
		return nil, i18n.NewError(ctx, msgs.MsgSignerStopped)
	}
	select {
	case res := <-req.done:
		return res.signed, res.err
	case <-ctx.Done():
		return nil, i18n.NewError(ctx, msgs.MsgContextCanceled)
	case <-s.bgCtx.Done():
		return nil, i18n.NewError(ctx, msgs.MsgSignerStopped)
	}
}

func (s *signer) actorLoop() {
	defer close(s.done)
	for {
		select {
		case req := <-s.requests:
			if req.ctx.Err() != nil {
				// caller gave up before we reached it, so no nonce is consumed
				req.done <- &signResult{err: i18n.NewError(req.ctx, msgs.MsgContextCanceled)}
				continue
			}
			req.done <- s.process(req)
		case <-s.bgCtx.Done():
			log.L(s.bgCtx).Debugf("Signer actor stopped")
			return
		}
	}
}

func (s *signer) process(req *signRequest) *signResult {
	var err error
	switch req.rType {
	case requestResync:
		return &signResult{err: s.resync(req.ctx, true)}
	case requestReallocate:
		if err = s.resync(req.ctx, false); err != nil {
			return &signResult{err: err}
		}
	}
	signed, err := s.assignSignPersist(req)
	return &signResult{signed: signed, err: err}
}

// resync only runs on the actor. A backward move is only made when allowBackward is set,
// and never below a nonce still held by a live record.
func (s *signer) resync(ctx context.Context, allowBackward bool) error {
	nodeNonce, err := s.cc.GetTransactionCount(ctx, s.address, chainclient.BlockPending)
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgSignerNonceReconcile, s.address)
	}
	current := s.nextNonce.Load()
	if nodeNonce == current || (nodeNonce < current && !allowBackward) {
		return nil
	}
	target := nodeNonce
	err = s.p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		if err := s.p.TakeNamedLock(ctx, dbTX, s.lockName); err != nil {
			return err
		}
		if target < current {
			var live []*model.TransactionRecord
			err := dbTX.DB().
				Select("nonce").
				Where("signer = ? AND nonce >= ? AND status <> ?", s.address, target, string(model.TxStatusFailed)).
				Order("nonce DESC").
				Limit(1).
				Find(&live).
				Error
			if err != nil {
				return i18n.WrapError(ctx, err, msgs.MsgSignerNonceReadFailed, s.address)
			}
			if len(live) > 0 {
				target = live[0].Nonce + 1
			}
		}
		if target == current {
			return nil
		}
		return s.writeCounter(ctx, dbTX, target)
	})
	if err != nil {
		return err
	}
	if target != current {
		log.L(ctx).Warnf("Nonce for %s moved from %d to %d (node pending=%d)", s.address, current, target, nodeNonce)
		s.nextNonce.Store(target)
	}
	return nil
}

func (s *signer) writeCounter(ctx context.Context, dbTX persistence.DBTX, next uint64) error {
	return dbTX.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "signer"}},
			DoUpdates: clause.AssignmentColumns([]string{"next_nonce", "updated"}),
		}).
		Create(&model.NonceCounter{
			Signer:    s.address,
			NextNonce: next,
			Updated:   gctypes.TimestampNow(),
		}).
		Error
}

func (s *signer) assignSignPersist(req *signRequest) (signed *SignedTransaction, err error) {
	err = s.p.Transaction(req.ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		if err := s.p.TakeNamedLock(ctx, dbTX, s.lockName); err != nil {
			return err
		}
		persisted, err := s.readPersistedNonce(ctx, dbTX)
		if err != nil {
			return err
		}
		nonce := s.nextNonce.Load()
		if persisted != nil && *persisted > nonce {
			log.L(ctx).Warnf("Persisted nonce %d ahead of memory %d (another instance signed for %s)", *persisted, nonce, s.address)
			nonce = *persisted
		}
		if signed, err = s.sign(ctx, req.tx, nonce); err != nil {
			return err
		}
		if err := req.persist(ctx, dbTX, signed); err != nil {
			return i18n.WrapError(ctx, err, msgs.MsgSignerPersistFailed, nonce)
		}
		return s.writeCounter(ctx, dbTX, nonce+1)
	})
	if err != nil {
		log.L(req.ctx).Errorf("Nonce assignment rolled back, %d will be reused: %s", s.nextNonce.Load(), err)
		return nil, err
	}
	s.nextNonce.Store(signed.Nonce + 1)
	log.L(req.ctx).Infof("Signed tx %s nonce=%d", signed.Hash, signed.Nonce)
	return signed, nil
}

// sign works on a copy, so a rolled back attempt leaves the caller's transaction untouched
func (s *signer) sign(ctx context.Context, unsigned *ethsigner.Transaction, nonce uint64) (*SignedTransaction, error) {
	tx := *unsigned
	tx.Nonce = ethtypes.NewHexIntegerU64(nonce)

	eip1559 := tx.MaxFeePerGas != nil
	var sigPayload *ethsigner.TransactionSignaturePayload
	if eip1559 {
		sigPayload = tx.SignaturePayloadEIP1559(s.chainID)
	} else {
		sigPayload = tx.SignaturePayloadLegacyEIP155(s.chainID)
	}
	hash := gctypes.Keccak256(sigPayload.Bytes())
	sig, err := s.keyPair.SignDirect(hash.Bytes())
	var rawTX []byte
	if err == nil {
		if eip1559 {
			rawTX, err = tx.FinalizeEIP1559WithSignature(sigPayload, sig)
		} else {
			rawTX, err = tx.FinalizeLegacyEIP155WithSignature(sigPayload, sig, s.chainID)
		}
	}
	if err != nil {
		return nil, gcerrors.WrapSigning(ctx, err, msgs.MsgSigningFailed, nonce)
	}
	signed := &SignedTransaction{
		Hash:        gctypes.Keccak256(rawTX),
		RawPayload:  rawTX,
		From:        s.address,
		Nonce:       nonce,
		Transaction: &tx,
	}
	if tx.To != nil {
		signed.To = (*gctypes.EthAddress)(tx.To)
	}
	return signed, nil
}
