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

package submitter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/mocks/chainclientmocks"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
)

func newTestConfirmer(t *testing.T, queueLength int) (context.Context, *confirmer, *chainclientmocks.ChainClient) {
	ctx := context.Background()
	mcc := chainclientmocks.NewChainClient(t)
	c := NewConfirmer(&gcconf.ConfirmerConfig{
		WorkerCount:    confutil.P(3),
		QueueLength:    confutil.P(queueLength),
		PollInterval:   confutil.P("10ms"),
		ConfirmTimeout: confutil.P("5s"),
	}, mcc, metrics.NewUnitTestMetrics()).(*confirmer)
	return ctx, c, mcc
}

func testReceipt(hash gctypes.TxHash, status int64) *chainclient.Receipt {
	return &chainclient.Receipt{
		TransactionHash: hash.Bytes(),
		BlockNumber:     ethtypes.HexUint64(1234),
		GasUsed:         ethtypes.HexUint64(21000),
		Status:          ethtypes.NewHexInteger64(status),
	}
}

func TestConfirmSuccessAfterPolling(t *testing.T) {
	ctx, c, mcc := newTestConfirmer(t, 10)
	hash := gctypes.Keccak256([]byte("tx1"))
	mcc.On("GetTransactionReceipt", mock.Anything, hash).Return(nil, nil).Twice()
	mcc.On("GetTransactionReceipt", mock.Anything, hash).Return(testReceipt(hash, 1), nil)

	var heard []*Confirmation
	var mux sync.Mutex
	c.AddListener(func(ctx context.Context, conf *Confirmation) {
		mux.Lock()
		defer mux.Unlock()
		heard = append(heard, conf)
	})
	c.Start(ctx)
	defer c.Stop()

	conf, err := c.Confirm(ctx, hash, 0)
	require.NoError(t, err)
	assert.True(t, conf.Success)
	assert.Equal(t, uint64(1234), conf.BlockNumber)
	assert.Equal(t, uint64(21000), conf.GasUsed)
	assert.NoError(t, conf.Err(ctx))

	assert.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		return len(heard) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, c.Tracked())
}

func TestConfirmFailedReceipt(t *testing.T) {
	ctx, c, mcc := newTestConfirmer(t, 10)
	hash := gctypes.Keccak256([]byte("tx2"))
	receipt := testReceipt(hash, 0)
	receipt.RevertReason = ethtypes.MustNewHexBytes0xPrefix("0x08c379a0")
	mcc.On("GetTransactionReceipt", mock.Anything, hash).Return(receipt, nil)
	mcc.On("RevertReason", mock.Anything, []byte(receipt.RevertReason)).Return("Error(\"not owner\")")
	c.Start(ctx)
	defer c.Stop()

	conf, err := c.Confirm(ctx, hash, time.Second)
	require.NoError(t, err)
	assert.False(t, conf.Success)
	assert.Equal(t, "Error(\"not owner\")", conf.RevertReason)

	err = conf.Err(ctx)
	var rf *gcerrors.ReceiptFailure
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, uint64(1234), rf.BlockNumber)
	assert.Regexp(t, "GC010400", err)
}

func TestConfirmTimeout(t *testing.T) {
	ctx, c, mcc := newTestConfirmer(t, 10)
	hash := gctypes.Keccak256([]byte("tx3"))
	mcc.On("GetTransactionReceipt", mock.Anything, hash).Return(nil, fmt.Errorf("pop")).Maybe()
	var timedOut []*Confirmation
	var mux sync.Mutex
	c.AddListener(func(ctx context.Context, conf *Confirmation) {
		mux.Lock()
		defer mux.Unlock()
		timedOut = append(timedOut, conf)
	})
	c.Start(ctx)
	defer c.Stop()

	_, err := c.Confirm(ctx, hash, 50*time.Millisecond)
	var ct *gcerrors.ConfirmationTimeout
	require.ErrorAs(t, err, &ct)
	assert.Equal(t, hash.String(), ct.TxHash)
	assert.Regexp(t, "GC010300", err)

	assert.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		return len(timedOut) == 1 && timedOut[0].TimedOut
	}, time.Second, 5*time.Millisecond)
}

func TestConfirmContextCancelled(t *testing.T) {
	_, c, mcc := newTestConfirmer(t, 10)
	mcc.On("GetTransactionReceipt", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	c.Start(context.Background())
	defer c.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Confirm(ctx, gctypes.Keccak256([]byte("tx4")), time.Second)
	assert.Regexp(t, "GC010020", err)
}

func TestTrackExtendsDeadline(t *testing.T) {
	ctx, c, mcc := newTestConfirmer(t, 10)
	hash := gctypes.Keccak256([]byte("tx5"))
	mcc.On("GetTransactionReceipt", mock.Anything, hash).Return(nil, nil).Maybe()
	c.Start(ctx)
	defer c.Stop()

	require.NoError(t, c.Track(ctx, hash, time.Now().Add(time.Hour)))
	require.NoError(t, c.Track(ctx, hash, time.Now().Add(time.Minute)))
	assert.Eventually(t, func() bool { return c.Tracked() == 1 }, time.Second, 5*time.Millisecond)
}

func TestTrackQueueFullAndStopped(t *testing.T) {
	ctx, c, mcc := newTestConfirmer(t, 1)
	mcc.On("GetTransactionReceipt", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	require.NoError(t, c.Track(ctx, gctypes.Keccak256([]byte("a")), time.Now()))
	err := c.Track(ctx, gctypes.Keccak256([]byte("b")), time.Now())
	assert.Regexp(t, "GC010302", err)

	c.Start(ctx)
	c.Stop()
	err = c.Track(ctx, gctypes.Keccak256([]byte("c")), time.Now())
	assert.Regexp(t, "GC010301", err)
}

func TestWorkerAssignmentIsStable(t *testing.T) {
	_, c, _ := newTestConfirmer(t, 10)
	used := map[string]bool{}
	for i := 0; i < 100; i++ {
		hash := gctypes.Keccak256([]byte(fmt.Sprintf("tx%d", i)))
		w := c.workerFor(hash)
		require.NotNil(t, w)
		assert.Same(t, w, c.workerFor(hash))
		used[w.name] = true
	}
	assert.Len(t, used, 3)
}

func TestConfirmationErrTimedOut(t *testing.T) {
	conf := &Confirmation{Hash: gctypes.Keccak256([]byte("x")), TimedOut: true}
	err := conf.Err(context.Background())
	var ct *gcerrors.ConfirmationTimeout
	assert.True(t, errors.As(err, &ct))
}
