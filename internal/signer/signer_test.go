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

package signer

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/keystorev3"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/mocks/chainclientmocks"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
)

const testChainID = 80002

const testMnemonic = "extra monster happy tone improve slight duck equal sponsor fruit sister rate very bulb reopen mammal venture pull just motion faculty grab tenant kind"

func testSignerConf() *gcconf.SignerConfig {
	return &gcconf.SignerConfig{
		Reconcile: gcconf.NonceReconcileConfig{
			Retry: gcconf.RetryConfigWithMax{MaxAttempts: confutil.P(1)},
		},
	}
}

func newTestSigner(t *testing.T, nodeNonce uint64) (context.Context, *signer, persistence.Persistence, *chainclientmocks.ChainClient) {
	ctx := context.Background()
	p, done, err := persistence.NewUnitTestPersistence(ctx)
	require.NoError(t, err)
	t.Cleanup(done)

	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)

	mcc := chainclientmocks.NewChainClient(t)
	mcc.On("ChainID").Return(int64(testChainID))
	mcc.On("GetTransactionCount", mock.Anything, gctypes.EthAddress(kp.Address), "pending").Return(nodeNonce, nil).Maybe()

	s := NewSigner(ctx, testSignerConf(), p, mcc, kp).(*signer)
	return ctx, s, p, mcc
}

func startTestSigner(t *testing.T, nodeNonce uint64) (context.Context, *signer, persistence.Persistence) {
	ctx, s, p, _ := newTestSigner(t, nodeNonce)
	require.NoError(t, s.Start(ctx))
	t.Cleanup(s.Stop)
	return ctx, s, p
}

func unsignedTX() *ethsigner.Transaction {
	return &ethsigner.Transaction{
		To:       ethtypes.MustNewAddress("0x2222222222222222222222222222222222222222"),
		GasPrice: ethtypes.NewHexInteger64(1000),
		GasLimit: ethtypes.NewHexInteger64(500000),
		Data:     ethtypes.MustNewHexBytes0xPrefix("0xfeedbeef"),
	}
}

func insertRecord(ctx context.Context, dbTX persistence.DBTX, signed *SignedTransaction) error {
	return dbTX.DB().Create(&model.TransactionRecord{
		Hash:       signed.Hash,
		RawPayload: signed.RawPayload,
		Signer:     signed.From,
		Nonce:      signed.Nonce,
		To:         signed.To,
		Operation:  gctypes.Enum[model.Operation](model.OpMintAnimal),
		Status:     gctypes.Enum[model.TxStatus](model.TxStatusPending),
		Created:    gctypes.TimestampNow(),
		Updated:    gctypes.TimestampNow(),
	}).Error
}

func persistedCounter(t *testing.T, p persistence.Persistence, addr gctypes.EthAddress) uint64 {
	var counter model.NonceCounter
	require.NoError(t, p.DB().Where("signer = ?", addr).First(&counter).Error)
	return counter.NextNonce
}

func TestLoadKeyHexFile(t *testing.T) {
	ctx := context.Background()
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	keyFile := filepath.Join(t.TempDir(), "operator.key")
	require.NoError(t, os.WriteFile(keyFile, []byte("0x"+hex.EncodeToString(kp.PrivateKeyBytes())+"\n"), 0600))

	loaded, err := LoadKey(ctx, &gcconf.SignerConfig{KeyFile: &keyFile})
	require.NoError(t, err)
	assert.Equal(t, kp.Address, loaded.Address)
}

func TestLoadKeyKeystore(t *testing.T) {
	ctx := context.Background()
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	dir := t.TempDir()
	wf := keystorev3.NewWalletFileCustomBytesStandard("s3cret", kp.PrivateKeyBytes())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.json"), wf.JSON(), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.pwd"), []byte("s3cret\n"), 0600))

	loaded, err := LoadKey(ctx, &gcconf.SignerConfig{Keystore: &gcconf.KeystoreConfig{
		File:         filepath.Join(dir, "key.json"),
		PasswordFile: filepath.Join(dir, "key.pwd"),
	}})
	require.NoError(t, err)
	assert.Equal(t, kp.Address, loaded.Address)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.pwd"), []byte("wrong"), 0600))
	_, err = LoadKey(ctx, &gcconf.SignerConfig{Keystore: &gcconf.KeystoreConfig{
		File:         filepath.Join(dir, "key.json"),
		PasswordFile: filepath.Join(dir, "bad.pwd"),
	}})
	assert.Regexp(t, "GC010010", err)
}

func TestLoadKeyMnemonic(t *testing.T) {
	ctx := context.Background()
	kp, err := LoadKey(ctx, &gcconf.SignerConfig{Mnemonic: &gcconf.MnemonicConfig{Phrase: testMnemonic}})
	require.NoError(t, err)
	assert.Equal(t, "0x6331ccb948aaf903a69d6054fd718062bd0d535c", kp.Address.String())

	mnemonicFile := filepath.Join(t.TempDir(), "mnemonic.txt")
	require.NoError(t, os.WriteFile(mnemonicFile, []byte("  "+testMnemonic+"\n"), 0600))
	kp2, err := LoadKey(ctx, &gcconf.SignerConfig{Mnemonic: &gcconf.MnemonicConfig{
		File: mnemonicFile,
		Path: confutil.P("m / 44' / 60' / 0' / 0 / 0"),
	}})
	require.NoError(t, err)
	assert.Equal(t, kp.Address, kp2.Address)

	kp3, err := LoadKey(ctx, &gcconf.SignerConfig{Mnemonic: &gcconf.MnemonicConfig{
		Phrase: testMnemonic,
		Path:   confutil.P("m/44'/60'/0'/0/1"),
	}})
	require.NoError(t, err)
	assert.NotEqual(t, kp.Address, kp3.Address)
}

func TestLoadKeyErrors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadKey(ctx, &gcconf.SignerConfig{})
	assert.Regexp(t, "GC010009", err)
	assert.Equal(t, "ConfigurationError", gcerrors.Kind(err))

	_, err = LoadKey(ctx, &gcconf.SignerConfig{KeyFile: confutil.P(filepath.Join(t.TempDir(), "missing"))})
	assert.Regexp(t, "GC010010", err)
	assert.Equal(t, "ConfigurationError", gcerrors.Kind(err))

	badHex := filepath.Join(t.TempDir(), "bad.key")
	require.NoError(t, os.WriteFile(badHex, []byte("not hex"), 0600))
	_, err = LoadKey(ctx, &gcconf.SignerConfig{KeyFile: &badHex})
	assert.Regexp(t, "GC010010", err)

	shortKey := filepath.Join(t.TempDir(), "short.key")
	require.NoError(t, os.WriteFile(shortKey, []byte("0x0102"), 0600))
	_, err = LoadKey(ctx, &gcconf.SignerConfig{KeyFile: &shortKey})
	assert.Regexp(t, "GC010106", err)

	_, err = LoadKey(ctx, &gcconf.SignerConfig{Mnemonic: &gcconf.MnemonicConfig{Phrase: "not a valid mnemonic"}})
	assert.Regexp(t, "GC010010", err)

	_, err = LoadKey(ctx, &gcconf.SignerConfig{Mnemonic: &gcconf.MnemonicConfig{Phrase: testMnemonic, Path: confutil.P("44'/60'")}})
	assert.Regexp(t, "GC010011", err)

	_, err = LoadKey(ctx, &gcconf.SignerConfig{Mnemonic: &gcconf.MnemonicConfig{Phrase: testMnemonic, Path: confutil.P("m/44'/x")}})
	assert.Regexp(t, "GC010011", err)

	_, err = LoadKey(ctx, &gcconf.SignerConfig{Mnemonic: &gcconf.MnemonicConfig{Phrase: testMnemonic, Path: confutil.P("m/2147483648")}})
	assert.Regexp(t, "GC010011", err)
}

func TestConcurrentSignAndPersistDistinctNonces(t *testing.T) {
	ctx, s, p := startTestSigner(t, 0)

	const count = 25
	nonces := make([]uint64, count)
	hashes := make(map[gctypes.TxHash]bool)
	var mux sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			signed, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
			require.NoError(t, err)
			nonces[i] = signed.Nonce
			mux.Lock()
			hashes[signed.Hash] = true
			mux.Unlock()
		}(i)
	}
	wg.Wait()

	sort.Slice(nonces, func(i, j int) bool { return nonces[i] < nonces[j] })
	for i := 0; i < count; i++ {
		assert.Equal(t, uint64(i), nonces[i])
	}
	assert.Len(t, hashes, count)
	assert.Equal(t, uint64(count), s.NextNonce())
	assert.Equal(t, uint64(count), persistedCounter(t, p, s.Address()))

	var rows int64
	require.NoError(t, p.DB().Model(&model.TransactionRecord{}).Count(&rows).Error)
	assert.Equal(t, int64(count), rows)
}

func TestSignedPayloadRecovers(t *testing.T) {
	ctx, s, _ := startTestSigner(t, 7)

	signed, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), signed.Nonce)
	assert.Equal(t, gctypes.Keccak256(signed.RawPayload), signed.Hash)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", signed.To.String())

	from, decoded, err := ethsigner.RecoverRawTransaction(ctx, signed.RawPayload, testChainID)
	require.NoError(t, err)
	assert.Equal(t, s.Address().String(), from.String())
	assert.Equal(t, int64(7), decoded.Nonce.Int64())
	assert.Equal(t, int64(1000), decoded.GasPrice.Int64())
}

func TestEIP1559Envelope(t *testing.T) {
	ctx, s, _ := startTestSigner(t, 0)

	tx := unsignedTX()
	tx.GasPrice = nil
	tx.MaxFeePerGas = ethtypes.NewHexInteger(big.NewInt(2000))
	tx.MaxPriorityFeePerGas = ethtypes.NewHexInteger(big.NewInt(2000))
	signed, err := s.SignAndPersist(ctx, tx, insertRecord)
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), signed.RawPayload[0])
	assert.Nil(t, tx.Nonce, "caller's transaction is not modified")

	from, _, err := ethsigner.RecoverRawTransaction(ctx, signed.RawPayload, testChainID)
	require.NoError(t, err)
	assert.Equal(t, s.Address().String(), from.String())
}

func TestPersistFailureReusesNonce(t *testing.T) {
	ctx, s, p := startTestSigner(t, 3)

	_, err := s.SignAndPersist(ctx, unsignedTX(), func(ctx context.Context, dbTX persistence.DBTX, signed *SignedTransaction) error {
		return fmt.Errorf("pop")
	})
	assert.Regexp(t, "GC010103.*pop", err)
	assert.Equal(t, uint64(3), s.NextNonce())

	var counters []*model.NonceCounter
	require.NoError(t, p.DB().Find(&counters).Error)
	assert.Empty(t, counters)

	signed, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), signed.Nonce)
	assert.Equal(t, uint64(4), persistedCounter(t, p, s.Address()))
}

func TestDuplicateNonceRowRollsBack(t *testing.T) {
	ctx, s, p := startTestSigner(t, 0)

	signed, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	require.NoError(t, err)

	// a second payload claiming the same (signer, nonce) must not commit
	s.nextNonce.Store(signed.Nonce)
	require.NoError(t, p.DB().Where("signer = ?", s.Address()).Delete(&model.NonceCounter{}).Error)
	_, err = s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	assert.Regexp(t, "GC010103", err)
	assert.Equal(t, signed.Nonce, s.NextNonce())
}

func TestReconcilePersistedAhead(t *testing.T) {
	ctx, s, p, _ := newTestSigner(t, 2)
	require.NoError(t, p.DB().Create(&model.NonceCounter{
		Signer:    s.Address(),
		NextNonce: 10,
		Updated:   gctypes.TimestampNow(),
	}).Error)

	require.NoError(t, s.Start(ctx))
	defer s.Stop()
	assert.Equal(t, uint64(10), s.NextNonce())
}

func TestReconcileNodeAhead(t *testing.T) {
	ctx, s, p, _ := newTestSigner(t, 42)
	require.NoError(t, p.DB().Create(&model.NonceCounter{
		Signer:    s.Address(),
		NextNonce: 10,
		Updated:   gctypes.TimestampNow(),
	}).Error)

	require.NoError(t, s.Start(ctx))
	defer s.Stop()
	assert.Equal(t, uint64(42), s.NextNonce())

	signed, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), signed.Nonce)
}

func TestReconcileNodeQueryFails(t *testing.T) {
	ctx := context.Background()
	p, done, err := persistence.NewUnitTestPersistence(ctx)
	require.NoError(t, err)
	defer done()
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	mcc := chainclientmocks.NewChainClient(t)
	mcc.On("ChainID").Return(int64(testChainID))
	mcc.On("GetTransactionCount", mock.Anything, mock.Anything, "pending").Return(uint64(0), fmt.Errorf("pop"))

	s := NewSigner(ctx, testSignerConf(), p, mcc, kp)
	err = s.Start(ctx)
	assert.Regexp(t, "GC010102.*pop", err)
}

func TestSignBeforeStartOrAfterStop(t *testing.T) {
	ctx, s, _, _ := newTestSigner(t, 0)
	_, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	assert.Regexp(t, "GC010101", err)

	require.NoError(t, s.Start(ctx))
	s.Stop()
	_, err = s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	assert.Regexp(t, "GC010101", err)
}

func TestCancelledRequestConsumesNoNonce(t *testing.T) {
	ctx, s, _ := startTestSigner(t, 5)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := s.SignAndPersist(cancelled, unsignedTX(), insertRecord)
	assert.Regexp(t, "GC010020", err)

	signed, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), signed.Nonce)
}

func startTestSignerWithNode(t *testing.T, node *atomic.Uint64) (context.Context, *signer, persistence.Persistence) {
	ctx := context.Background()
	p, done, err := persistence.NewUnitTestPersistence(ctx)
	require.NoError(t, err)
	t.Cleanup(done)
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)

	mcc := chainclientmocks.NewChainClient(t)
	mcc.On("ChainID").Return(int64(testChainID))
	mcc.On("GetTransactionCount", mock.Anything, gctypes.EthAddress(kp.Address), "pending").
		Return(func(ctx context.Context, addr gctypes.EthAddress, block string) (uint64, error) {
			return node.Load(), nil
		})

	s := NewSigner(ctx, testSignerConf(), p, mcc, kp).(*signer)
	require.NoError(t, s.Start(ctx))
	t.Cleanup(s.Stop)
	return ctx, s, p
}

func failRecord(t *testing.T, p persistence.Persistence, hash gctypes.TxHash) {
	require.NoError(t, p.DB().Model(&model.TransactionRecord{}).
		Where("hash = ?", hash).
		Update("status", string(model.TxStatusFailed)).Error)
}

func TestResyncReleasesRejectedNonce(t *testing.T) {
	var node atomic.Uint64
	ctx, s, p := startTestSignerWithNode(t, &node)

	rejected, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rejected.Nonce)
	assert.Equal(t, uint64(1), persistedCounter(t, p, s.Address()))

	// the node never took nonce 0, so handing out 1 next would leave a gap
	failRecord(t, p, rejected.Hash)
	next, err := s.Resync(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), next)
	assert.Equal(t, uint64(0), persistedCounter(t, p, s.Address()))

	signed, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), signed.Nonce)
	assert.NotEqual(t, rejected.Hash, signed.Hash)
}

func TestResyncLiveNonceNotReissued(t *testing.T) {
	var node atomic.Uint64
	ctx, s, p := startTestSignerWithNode(t, &node)

	for i := 0; i < 3; i++ {
		signed, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
		require.NoError(t, err)
		if i == 2 {
			failRecord(t, p, signed.Hash)
		}
	}

	// nonce 1 still belongs to a live record, only 2 is released
	next, err := s.Resync(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next)
	signed, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), signed.Nonce)
}

func TestResyncMovesForward(t *testing.T) {
	var node atomic.Uint64
	ctx, s, p := startTestSignerWithNode(t, &node)

	node.Store(12)
	next, err := s.Resync(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), next)
	assert.Equal(t, uint64(12), s.NextNonce())
	assert.Equal(t, uint64(12), persistedCounter(t, p, s.Address()))
}

func TestReallocateTakesNodeNonce(t *testing.T) {
	var node atomic.Uint64
	ctx, s, p := startTestSignerWithNode(t, &node)

	original, err := s.SignAndPersist(ctx, unsignedTX(), insertRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), original.Nonce)

	// nonces 0-2 were used by another sender with this key
	node.Store(3)
	replacement, err := s.Reallocate(ctx, original.RawPayload, insertRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), replacement.Nonce)
	assert.NotEqual(t, original.Hash, replacement.Hash)
	assert.Equal(t, uint64(4), s.NextNonce())
	assert.Equal(t, uint64(4), persistedCounter(t, p, s.Address()))

	from, decoded, err := ethsigner.RecoverRawTransaction(ctx, replacement.RawPayload, testChainID)
	require.NoError(t, err)
	assert.Equal(t, s.Address().String(), from.String())
	assert.Equal(t, int64(3), decoded.Nonce.Int64())
	assert.Equal(t, "0xfeedbeef", decoded.Data.String())
	assert.Equal(t, int64(1000), decoded.GasPrice.Int64())
	assert.Equal(t, int64(500000), decoded.GasLimit.Int64())
}

func TestReallocateNeverMovesBack(t *testing.T) {
	var node atomic.Uint64
	ctx, s, _ := startTestSignerWithNode(t, &node)

	var last *SignedTransaction
	for i := 0; i < 3; i++ {
		var err error
		last, err = s.SignAndPersist(ctx, unsignedTX(), insertRecord)
		require.NoError(t, err)
	}
	node.Store(1)
	replacement, err := s.Reallocate(ctx, last.RawPayload, insertRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), replacement.Nonce)
}

func TestReallocateEIP1559(t *testing.T) {
	var node atomic.Uint64
	ctx, s, _ := startTestSignerWithNode(t, &node)

	tx := unsignedTX()
	tx.GasPrice = nil
	tx.MaxFeePerGas = ethtypes.NewHexInteger(big.NewInt(2000))
	tx.MaxPriorityFeePerGas = ethtypes.NewHexInteger(big.NewInt(2000))
	original, err := s.SignAndPersist(ctx, tx, insertRecord)
	require.NoError(t, err)

	node.Store(9)
	replacement, err := s.Reallocate(ctx, original.RawPayload, insertRecord)
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), replacement.RawPayload[0])
	assert.Equal(t, uint64(9), replacement.Nonce)
}

func TestReallocateRejectsBadPayloads(t *testing.T) {
	var node atomic.Uint64
	ctx, s, _ := startTestSignerWithNode(t, &node)

	_, err := s.Reallocate(ctx, []byte{0x01, 0x02}, insertRecord)
	assert.Regexp(t, "GC010107", err)
	var se *gcerrors.SigningError
	assert.ErrorAs(t, err, &se)

	otherKey, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	foreign, err := unsignedTX().SignLegacyEIP155(otherKey, testChainID)
	require.NoError(t, err)
	_, err = s.Reallocate(ctx, foreign, insertRecord)
	assert.Regexp(t, "GC010108", err)
	assert.Equal(t, uint64(0), s.NextNonce())
}
