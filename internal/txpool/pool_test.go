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
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence/mockpersistence"
)

const testSigner = "0x6331ccb948aaf903a69d6054fd718062bd0d535c"

func newTestPool(t *testing.T) (context.Context, Pool, persistence.Persistence) {
	ctx := context.Background()
	p, done, err := persistence.NewUnitTestPersistence(ctx)
	require.NoError(t, err)
	t.Cleanup(done)
	return ctx, NewPool(p), p
}

func newRecord(nonce uint64) *model.TransactionRecord {
	raw := []byte(fmt.Sprintf("raw-%d", nonce))
	return &model.TransactionRecord{
		Hash:       gctypes.Keccak256(raw),
		RawPayload: raw,
		Signer:     *gctypes.MustEthAddress(testSigner),
		Nonce:      nonce,
		Operation:  gctypes.Enum[model.Operation](model.OpMintAnimal),
	}
}

func enqueue(t *testing.T, ctx context.Context, pool Pool, p persistence.Persistence, r *model.TransactionRecord) {
	err := p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		return pool.Enqueue(ctx, dbTX, r)
	})
	require.NoError(t, err)
}

func TestEnqueueAndGet(t *testing.T) {
	ctx, pool, p := newTestPool(t)
	r := newRecord(0)
	enqueue(t, ctx, pool, p, r)

	got, err := pool.Get(ctx, r.Hash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.TxStatusPending, got.Status.V())
	assert.Equal(t, r.RawPayload, got.RawPayload)
	assert.Equal(t, testSigner, got.Signer.String())

	missing, err := pool.Get(ctx, gctypes.Keccak256([]byte("missing")))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestForwardOnlyTransitions(t *testing.T) {
	ctx, pool, p := newTestPool(t)
	r := newRecord(0)
	enqueue(t, ctx, pool, p, r)

	// cannot skip PROCESSING
	err := pool.MarkConfirmed(ctx, p.NOTX(), r.Hash, 10, 21000)
	assert.True(t, errors.Is(err, ErrInvalidStatusTransition))
	assert.Regexp(t, "GC010608", err)

	require.NoError(t, pool.MarkProcessing(ctx, p.NOTX(), r.Hash))
	require.NoError(t, pool.MarkConfirmed(ctx, p.NOTX(), r.Hash, 10, 21000))

	for _, fn := range []func() error{
		func() error { return pool.MarkProcessing(ctx, p.NOTX(), r.Hash) },
		func() error { return pool.MarkFailed(ctx, p.NOTX(), r.Hash, "late") },
		func() error { return pool.MarkConfirmed(ctx, p.NOTX(), r.Hash, 11, 1) },
		func() error { return pool.MarkRetried(ctx, r.Hash, gctypes.TimestampNow()) },
	} {
		err := fn()
		var ist *InvalidStatusTransition
		require.ErrorAs(t, err, &ist)
		assert.Equal(t, model.TxStatusConfirmed, ist.From)
	}

	got, err := pool.Get(ctx, r.Hash)
	require.NoError(t, err)
	assert.Equal(t, model.TxStatusConfirmed, got.Status.V())
	assert.Equal(t, uint64(10), *got.BlockNumber)
	assert.Equal(t, uint64(21000), *got.GasUsed)
	assert.Nil(t, got.ErrorMessage)
}

func TestFailFromPendingAndProcessing(t *testing.T) {
	ctx, pool, p := newTestPool(t)
	r1, r2 := newRecord(0), newRecord(1)
	enqueue(t, ctx, pool, p, r1)
	enqueue(t, ctx, pool, p, r2)

	require.NoError(t, pool.MarkFailed(ctx, p.NOTX(), r1.Hash, "retries exhausted"))
	require.NoError(t, pool.MarkProcessing(ctx, p.NOTX(), r2.Hash))
	require.NoError(t, pool.MarkFailed(ctx, p.NOTX(), r2.Hash, "reverted"))

	got, err := pool.Get(ctx, r1.Hash)
	require.NoError(t, err)
	assert.Equal(t, model.TxStatusFailed, got.Status.V())
	assert.Equal(t, "retries exhausted", *got.ErrorMessage)
}

func TestTransitionUnknownHash(t *testing.T) {
	ctx, pool, p := newTestPool(t)
	err := pool.MarkProcessing(ctx, p.NOTX(), gctypes.Keccak256([]byte("nope")))
	assert.Regexp(t, "GC010609", err)
	assert.False(t, errors.Is(err, ErrInvalidStatusTransition))
}

func TestTransitionRolledBackWithTransaction(t *testing.T) {
	ctx, pool, p := newTestPool(t)
	r := newRecord(0)
	enqueue(t, ctx, pool, p, r)

	err := p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		if err := pool.MarkProcessing(ctx, dbTX, r.Hash); err != nil {
			return err
		}
		return fmt.Errorf("pop")
	})
	assert.Regexp(t, "pop", err)

	got, err := pool.Get(ctx, r.Hash)
	require.NoError(t, err)
	assert.Equal(t, model.TxStatusPending, got.Status.V())
}

func TestMarkRetriedAndListDue(t *testing.T) {
	ctx, pool, p := newTestPool(t)
	r1, r2, r3 := newRecord(0), newRecord(1), newRecord(2)
	enqueue(t, ctx, pool, p, r1)
	enqueue(t, ctx, pool, p, r2)
	enqueue(t, ctx, pool, p, r3)
	require.NoError(t, pool.MarkProcessing(ctx, p.NOTX(), r3.Hash))

	future := gctypes.TimestampNow().Add(time.Hour)
	require.NoError(t, pool.MarkRetried(ctx, r2.Hash, future))

	due, err := pool.ListDue(ctx, gctypes.TimestampNow().Add(time.Second), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, r1.Hash, due[0].Hash)

	got, err := pool.Get(ctx, r2.Hash)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RetryCount)
	assert.Equal(t, future, got.NextRetryAt)
	assert.NotNil(t, got.LastRetryAt)

	// nothing is stale yet
	due, err = pool.ListDue(ctx, gctypes.TimestampNow().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestCountByStatus(t *testing.T) {
	ctx, pool, p := newTestPool(t)
	for i := uint64(0); i < 3; i++ {
		enqueue(t, ctx, pool, p, newRecord(i))
	}
	r := newRecord(3)
	enqueue(t, ctx, pool, p, r)
	require.NoError(t, pool.MarkFailed(ctx, p.NOTX(), r.Hash, "x"))

	counts, err := pool.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[model.TxStatusPending])
	assert.Equal(t, int64(1), counts[model.TxStatusFailed])
	assert.Equal(t, int64(0), counts[model.TxStatusConfirmed])
	assert.Len(t, counts, 4)
}

func TestDuplicateNonceRejected(t *testing.T) {
	ctx, pool, p := newTestPool(t)
	enqueue(t, ctx, pool, p, newRecord(0))
	dup := newRecord(0)
	dup.Hash = gctypes.Keccak256([]byte("other payload"))
	err := p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		return pool.Enqueue(ctx, dbTX, dup)
	})
	assert.Error(t, err)
}

func TestPoolDBErrors(t *testing.T) {
	ctx := context.Background()
	mp, err := mockpersistence.NewSQLMockProvider()
	require.NoError(t, err)
	pool := NewPool(mp.P)
	hash := gctypes.Keccak256([]byte("x"))

	mp.Mock.ExpectExec("UPDATE.*transaction_records").WillReturnError(fmt.Errorf("pop"))
	assert.Regexp(t, "pop", pool.MarkProcessing(ctx, mp.P.NOTX(), hash))

	mp.Mock.ExpectExec("UPDATE.*transaction_records").WillReturnResult(sqlmock.NewResult(0, 0))
	mp.Mock.ExpectQuery("SELECT.*transaction_records").WillReturnError(fmt.Errorf("pop"))
	assert.Regexp(t, "pop", pool.MarkProcessing(ctx, mp.P.NOTX(), hash))

	mp.Mock.ExpectExec("UPDATE.*transaction_records").WillReturnError(fmt.Errorf("pop"))
	assert.Regexp(t, "pop", pool.MarkRetried(ctx, hash, gctypes.TimestampNow()))

	mp.Mock.ExpectQuery("SELECT.*transaction_records").WillReturnError(fmt.Errorf("pop"))
	_, err = pool.Get(ctx, hash)
	assert.Regexp(t, "pop", err)

	mp.Mock.ExpectQuery("SELECT.*transaction_records").WillReturnError(fmt.Errorf("pop"))
	_, err = pool.ListDue(ctx, gctypes.TimestampNow(), 10)
	assert.Regexp(t, "pop", err)

	mp.Mock.ExpectQuery("SELECT.*transaction_records").WillReturnError(fmt.Errorf("pop"))
	_, err = pool.CountByStatus(ctx)
	assert.Regexp(t, "pop", err)

	assert.NoError(t, mp.Mock.ExpectationsWereMet())
}
