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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/signer"
	"github.com/vices1967-beep/GanadoChain-sub000/mocks/chainclientmocks"
	"github.com/vices1967-beep/GanadoChain-sub000/mocks/submittermocks"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence/mockpersistence"
)

type sweeperTest struct {
	ctx       context.Context
	s         *sweeper
	pool      Pool
	p         persistence.Persistence
	cc        *chainclientmocks.ChainClient
	submitter *submittermocks.Submitter
	confirmer *submittermocks.Confirmer
}

func newTestSweeper(t *testing.T) *sweeperTest {
	ctx, pool, p := newTestPool(t)
	st := &sweeperTest{
		ctx:       ctx,
		pool:      pool,
		p:         p,
		cc:        chainclientmocks.NewChainClient(t),
		submitter: submittermocks.NewSubmitter(t),
		confirmer: submittermocks.NewConfirmer(t),
	}
	st.confirmer.On("ConfirmTimeout").Return(time.Minute).Maybe()
	st.s = NewSweeper(&gcconf.TxPoolConfig{
		SweepInterval: confutil.P("10ms"),
		StaleAfter:    confutil.P("0s"),
		MaxRetries:    confutil.P(1),
		BatchSize:     confutil.P(10),
		Retry: gcconf.RetryConfig{
			InitialDelay: confutil.P("1h"),
			MaxDelay:     confutil.P("2h"),
			Factor:       confutil.P(2.0),
		},
	}, p, pool, st.cc, st.submitter, st.confirmer, metrics.NewUnitTestMetrics()).(*sweeper)
	return st
}

func (st *sweeperTest) statusOf(t *testing.T, hash gctypes.TxHash) *model.TransactionRecord {
	r, err := st.pool.Get(st.ctx, hash)
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func TestSweepReceiptFoundHandsToConfirmer(t *testing.T) {
	st := newTestSweeper(t)
	r := newRecord(0)
	enqueue(t, st.ctx, st.pool, st.p, r)

	st.cc.On("GetTransactionReceipt", mock.Anything, r.Hash).Return(&chainclient.Receipt{}, nil).Once()
	st.confirmer.On("Track", mock.Anything, r.Hash, mock.Anything).Return(nil).Once()

	n, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, st.statusOf(t, r.Hash).RetryCount)
}

func TestSweepRebroadcastsSamePayload(t *testing.T) {
	st := newTestSweeper(t)
	r := newRecord(0)
	enqueue(t, st.ctx, st.pool, st.p, r)

	st.cc.On("GetTransactionReceipt", mock.Anything, r.Hash).Return(nil, nil).Once()
	st.submitter.On("Submit", mock.Anything, mock.MatchedBy(func(signed *signer.SignedTransaction) bool {
		return signed.Hash == r.Hash && string(signed.RawPayload) == string(r.RawPayload) && signed.Nonce == 0
	})).Return(r.Hash, nil).Once()
	st.confirmer.On("Track", mock.Anything, r.Hash, mock.Anything).Return(nil).Once()

	before := gctypes.TimestampNow()
	_, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)

	got := st.statusOf(t, r.Hash)
	assert.Equal(t, model.TxStatusPending, got.Status.V())
	assert.Equal(t, 1, got.RetryCount)
	assert.GreaterOrEqual(t, int64(got.NextRetryAt), int64(before.Add(time.Hour)))

	// backed off, so a second sweep does nothing
	n, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSweepBroadcastErrorStillBacksOff(t *testing.T) {
	st := newTestSweeper(t)
	r := newRecord(0)
	enqueue(t, st.ctx, st.pool, st.p, r)

	st.cc.On("GetTransactionReceipt", mock.Anything, r.Hash).Return(nil, nil).Once()
	st.submitter.On("Submit", mock.Anything, mock.Anything).
		Return(r.Hash, gcerrors.WrapBroadcast(gcerrors.ReasonUnderpriced, fmt.Errorf("transaction underpriced"))).Once()
	st.confirmer.On("Track", mock.Anything, r.Hash, mock.Anything).Return(nil).Once()

	_, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.statusOf(t, r.Hash).RetryCount)
}

func TestSweepRetriesExhausted(t *testing.T) {
	st := newTestSweeper(t)
	r := newRecord(0)
	enqueue(t, st.ctx, st.pool, st.p, r)
	require.NoError(t, st.pool.MarkRetried(st.ctx, r.Hash, gctypes.TimestampNow().Add(-time.Second)))

	var failedReason string
	st.s.SetFailureHandler(func(ctx context.Context, dbTX persistence.DBTX, record *model.TransactionRecord, reason string) error {
		assert.True(t, dbTX.FullTransaction())
		assert.Equal(t, r.Hash, record.Hash)
		failedReason = reason
		return nil
	})
	st.cc.On("GetTransactionReceipt", mock.Anything, r.Hash).Return(nil, nil).Once()

	_, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)

	got := st.statusOf(t, r.Hash)
	assert.Equal(t, model.TxStatusFailed, got.Status.V())
	assert.Regexp(t, "retries exhausted", *got.ErrorMessage)
	assert.Regexp(t, "retries exhausted", failedReason)
}

func TestSweepNonceConsumed(t *testing.T) {
	st := newTestSweeper(t)
	r := newRecord(4)
	enqueue(t, st.ctx, st.pool, st.p, r)

	st.cc.On("GetTransactionReceipt", mock.Anything, r.Hash).Return(nil, nil).Once()
	st.submitter.On("Submit", mock.Anything, mock.Anything).
		Return(r.Hash, gcerrors.WrapBroadcast(gcerrors.ReasonNonceTooLow, fmt.Errorf("nonce too low"))).Once()

	_, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)

	got := st.statusOf(t, r.Hash)
	assert.Equal(t, model.TxStatusFailed, got.Status.V())
	assert.Regexp(t, "nonce 4 consumed", *got.ErrorMessage)
}

func TestSweepNonceConflictHandedOver(t *testing.T) {
	st := newTestSweeper(t)
	r := newRecord(4)
	enqueue(t, st.ctx, st.pool, st.p, r)

	var handed *model.TransactionRecord
	st.s.SetNonceConflictHandler(func(ctx context.Context, record *model.TransactionRecord) error {
		handed = record
		return nil
	})
	st.cc.On("GetTransactionReceipt", mock.Anything, r.Hash).Return(nil, nil).Once()
	st.submitter.On("Submit", mock.Anything, mock.Anything).
		Return(r.Hash, gcerrors.WrapBroadcast(gcerrors.ReasonNonceTooLow, fmt.Errorf("nonce too low"))).Once()

	_, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)

	require.NotNil(t, handed)
	assert.Equal(t, r.Hash, handed.Hash)
	assert.Equal(t, uint64(4), handed.Nonce)
	got := st.statusOf(t, r.Hash)
	assert.Equal(t, model.TxStatusPending, got.Status.V())
	assert.Equal(t, 0, got.RetryCount)
}

func TestSweepNonceConflictUnresolvedBacksOff(t *testing.T) {
	st := newTestSweeper(t)
	r := newRecord(4)
	enqueue(t, st.ctx, st.pool, st.p, r)

	st.s.SetNonceConflictHandler(func(ctx context.Context, record *model.TransactionRecord) error {
		return fmt.Errorf("node unreachable")
	})
	st.cc.On("GetTransactionReceipt", mock.Anything, r.Hash).Return(nil, nil).Once()
	st.submitter.On("Submit", mock.Anything, mock.Anything).
		Return(r.Hash, gcerrors.WrapBroadcast(gcerrors.ReasonNonceTooLow, fmt.Errorf("nonce too low"))).Once()

	before := gctypes.TimestampNow()
	_, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)

	got := st.statusOf(t, r.Hash)
	assert.Equal(t, model.TxStatusPending, got.Status.V())
	assert.Equal(t, 1, got.RetryCount)
	assert.GreaterOrEqual(t, int64(got.NextRetryAt), int64(before.Add(time.Hour)))
}

func TestSweepRevertedIsTerminal(t *testing.T) {
	st := newTestSweeper(t)
	r := newRecord(0)
	enqueue(t, st.ctx, st.pool, st.p, r)

	st.cc.On("GetTransactionReceipt", mock.Anything, r.Hash).Return(nil, nil).Once()
	st.submitter.On("Submit", mock.Anything, mock.Anything).
		Return(r.Hash, gcerrors.WrapBroadcast(gcerrors.ReasonReverted, fmt.Errorf("execution reverted"))).Once()

	_, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)
	assert.Equal(t, model.TxStatusFailed, st.statusOf(t, r.Hash).Status.V())
}

func TestSweepFailureHandlerRollsBack(t *testing.T) {
	st := newTestSweeper(t)
	r := newRecord(0)
	enqueue(t, st.ctx, st.pool, st.p, r)
	require.NoError(t, st.pool.MarkRetried(st.ctx, r.Hash, gctypes.TimestampNow().Add(-time.Second)))
	st.s.SetFailureHandler(func(ctx context.Context, dbTX persistence.DBTX, record *model.TransactionRecord, reason string) error {
		return fmt.Errorf("pop")
	})
	st.cc.On("GetTransactionReceipt", mock.Anything, r.Hash).Return(nil, nil).Once()

	_, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)
	assert.Equal(t, model.TxStatusPending, st.statusOf(t, r.Hash).Status.V())
}

func TestSweepReceiptLookupErrorSkipsRecord(t *testing.T) {
	st := newTestSweeper(t)
	r1, r2 := newRecord(0), newRecord(1)
	enqueue(t, st.ctx, st.pool, st.p, r1)
	enqueue(t, st.ctx, st.pool, st.p, r2)

	st.cc.On("GetTransactionReceipt", mock.Anything, r1.Hash).Return(nil, fmt.Errorf("pop")).Once()
	st.cc.On("GetTransactionReceipt", mock.Anything, r2.Hash).Return(&chainclient.Receipt{}, nil).Once()
	st.confirmer.On("Track", mock.Anything, r2.Hash, mock.Anything).Return(nil).Once()

	n, err := st.s.SweepOnce(st.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSweeperLoop(t *testing.T) {
	st := newTestSweeper(t)
	r := newRecord(0)
	enqueue(t, st.ctx, st.pool, st.p, r)

	tracked := make(chan struct{})
	st.cc.On("GetTransactionReceipt", mock.Anything, r.Hash).Return(&chainclient.Receipt{}, nil)
	st.confirmer.On("Track", mock.Anything, r.Hash, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		select {
		case tracked <- struct{}{}:
		default:
		}
	})

	st.s.Start(st.ctx)
	select {
	case <-tracked:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep never ran")
	}
	st.s.Stop()
}

func TestSweepListError(t *testing.T) {
	mp, err := mockpersistence.NewSQLMockProvider()
	require.NoError(t, err)
	mp.Mock.ExpectQuery("SELECT.*transaction_records").WillReturnError(fmt.Errorf("pop"))
	s := NewSweeper(&gcconf.TxPoolConfig{}, mp.P, NewPool(mp.P), chainclientmocks.NewChainClient(t),
		submittermocks.NewSubmitter(t), submittermocks.NewConfirmer(t), metrics.NewUnitTestMetrics())

	_, err = s.SweepOnce(context.Background())
	assert.Regexp(t, "pop", err)
}
