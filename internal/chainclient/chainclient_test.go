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

package chainclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/rpcbackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/mocks/rpcbackendmocks"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
)

const (
	testTokenAddr    = "0x1111111111111111111111111111111111111111"
	testNFTAddr      = "0x2222222222222222222222222222222222222222"
	testRegistryAddr = "0x3333333333333333333333333333333333333333"
)

func testContractsConf() *gcconf.ContractsConfig {
	return &gcconf.ContractsConfig{
		ArtifactsDir: confutil.P("testdata/artifacts"),
		Token:        gcconf.ContractConfig{Address: testTokenAddr},
		NFT:          gcconf.ContractConfig{Address: testNFTAddr},
		Registry:     gcconf.ContractConfig{Address: testRegistryAddr},
	}
}

func newTestClient(t *testing.T) (context.Context, *chainClient, *rpcbackendmocks.RPC) {
	ctx := context.Background()
	mRPC := rpcbackendmocks.NewRPC(t)
	c, err := NewChainClientWithRPC(ctx, mRPC, &gcconf.BlockchainConfig{ChainID: confutil.P(int64(80002))}, testContractsConf())
	require.NoError(t, err)
	return ctx, c.(*chainClient), mRPC
}

func rpcFail(msg string) *rpcbackend.RPCError {
	return &rpcbackend.RPCError{Code: -32000, Message: msg}
}

func TestNewChainClientQueriesChainID(t *testing.T) {
	ctx := context.Background()
	mRPC := rpcbackendmocks.NewRPC(t)
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_chainId").Run(func(args mock.Arguments) {
		*(args[1].(*ethtypes.HexUint64)) = 1337
	}).Return(nil)

	c, err := NewChainClientWithRPC(ctx, mRPC, &gcconf.BlockchainConfig{}, testContractsConf())
	require.NoError(t, err)
	assert.Equal(t, int64(1337), c.ChainID())
	assert.Equal(t, testNFTAddr, c.NFT().Address().String())
	assert.Equal(t, "registry", c.Registry().Name())
	assert.NotEmpty(t, c.Token().ABI())
}

func TestNewChainClientChainIDFail(t *testing.T) {
	mRPC := rpcbackendmocks.NewRPC(t)
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_chainId").Return(rpcFail("pop"))

	_, err := NewChainClientWithRPC(context.Background(), mRPC, &gcconf.BlockchainConfig{}, testContractsConf())
	assert.Regexp(t, "GC010012", err)
	assert.Equal(t, "ConfigurationError", gcerrors.Kind(err))
}

func TestNewChainClientMissingURL(t *testing.T) {
	_, err := NewChainClient(context.Background(), &gcconf.BlockchainConfig{}, testContractsConf())
	assert.Regexp(t, "GC010003", err)
}

func TestNewChainClientBadAddress(t *testing.T) {
	conf := testContractsConf()
	conf.NFT.Address = "0xnothex"
	_, err := NewChainClientWithRPC(context.Background(), rpcbackendmocks.NewRPC(t), &gcconf.BlockchainConfig{ChainID: confutil.P(int64(1))}, conf)
	assert.Regexp(t, "GC010004.*nft", err)
	assert.Equal(t, "ConfigurationError", gcerrors.Kind(err))
}

func TestArtifactGlobFallback(t *testing.T) {
	conf := testContractsConf()
	conf.Token.Artifact = confutil.P("contracts/Renamed.sol/Renamed.json")
	cc, err := NewChainClientWithRPC(context.Background(), rpcbackendmocks.NewRPC(t), &gcconf.BlockchainConfig{ChainID: confutil.P(int64(1))}, conf)
	require.NoError(t, err)
	_, err = cc.Token().Function("mint")
	assert.NoError(t, err)
}

func TestArtifactMissing(t *testing.T) {
	conf := testContractsConf()
	conf.ArtifactsDir = confutil.P(t.TempDir())
	_, err := NewChainClientWithRPC(context.Background(), rpcbackendmocks.NewRPC(t), &gcconf.BlockchainConfig{ChainID: confutil.P(int64(1))}, conf)
	assert.Regexp(t, "GC010005.*token", err)
}

func TestArtifactBareArrayAndInvalid(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	bare := filepath.Join(dir, "bare.json")
	require.NoError(t, os.WriteFile(bare, []byte(`[{"type":"function","name":"ping","inputs":[],"outputs":[]}]`), 0644))
	a, path, err := loadArtifact(ctx, "test", dir, "bare.json", "*nothing*.json")
	require.NoError(t, err)
	assert.Equal(t, bare, path)
	assert.NotNil(t, a.Functions()["ping"])

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"abi": "wrong"}`), 0644))
	_, _, err = loadArtifact(ctx, "test", dir, "bad.json", "*nothing*.json")
	assert.Regexp(t, "GC010006", err)

	badArray := filepath.Join(dir, "badarray.json")
	require.NoError(t, os.WriteFile(badArray, []byte(`[{`), 0644))
	_, _, err = loadArtifact(ctx, "test", dir, "badarray.json", "*nothing*.json")
	assert.Regexp(t, "GC010006", err)
}

func TestBindingLookups(t *testing.T) {
	ctx, c, _ := newTestClient(t)

	_, err := c.NFT().Function("nope")
	assert.Regexp(t, "GC010007", err)
	_, err = c.NFT().Event("nope")
	assert.Regexp(t, "GC010008", err)

	ev, err := c.NFT().Event("AnimalMinted")
	require.NoError(t, err)
	sig, err := ev.Signature()
	require.NoError(t, err)
	assert.Equal(t, "AnimalMinted(uint256,address,string)", sig)

	data, err := c.Token().EncodeCall(ctx, "mint", testNFTAddr, big.NewInt(1000))
	require.NoError(t, err)
	fn, _ := c.Token().Function("mint")
	assert.Equal(t, fn.FunctionSelectorBytes(), ethtypes.HexBytes0xPrefix(data[0:4]))

	_, err = c.Token().EncodeCall(ctx, "mint", "not an address", big.NewInt(1))
	assert.Error(t, err)
}

func TestRawCalls(t *testing.T) {
	ctx, c, mRPC := newTestClient(t)
	addr := *gctypes.MustEthAddress(testTokenAddr)

	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_gasPrice").Run(func(args mock.Arguments) {
		*(args[1].(*ethtypes.HexInteger)) = *ethtypes.NewHexInteger64(30000000000)
	}).Return(nil)
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_getTransactionCount", mock.Anything, "pending").Run(func(args mock.Arguments) {
		*(args[1].(*ethtypes.HexUint64)) = 12
	}).Return(nil)
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_estimateGas", mock.Anything).Run(func(args mock.Arguments) {
		*(args[1].(*ethtypes.HexUint64)) = 21000
	}).Return(nil)
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_blockNumber").Run(func(args mock.Arguments) {
		*(args[1].(*ethtypes.HexUint64)) = 99
	}).Return(nil)
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_getBalance", mock.Anything, "latest").Run(func(args mock.Arguments) {
		*(args[1].(*ethtypes.HexInteger)) = *ethtypes.NewHexInteger64(5)
	}).Return(nil)
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_getBlockByNumber", ethtypes.HexUint64(99), false).Run(func(args mock.Arguments) {
		*(args[1].(**BlockInfo)) = &BlockInfo{Number: 99, Timestamp: 1700000000}
	}).Return(nil)
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_getLogs", mock.Anything).Run(func(args mock.Arguments) {
		*(args[1].(*[]*Log)) = []*Log{{LogIndex: 3}}
	}).Return(nil)

	gp, err := c.GasPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(30000000000), gp.Int64())

	n, err := c.GetTransactionCount(ctx, addr, BlockPending)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), n)

	gas, err := c.EstimateGas(ctx, &ethsigner.Transaction{})
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), gas)

	bn, err := c.BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), bn)

	bal, err := c.GetBalance(ctx, addr, BlockLatest)
	require.NoError(t, err)
	assert.Equal(t, int64(5), bal.Int64())

	block, err := c.GetBlockByNumber(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000), block.Timestamp.Uint64())

	logs, err := c.GetLogs(ctx, &LogFilter{FromBlock: "0x0"})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestRawCallErrors(t *testing.T) {
	ctx, c, mRPC := newTestClient(t)
	addr := *gctypes.MustEthAddress(testTokenAddr)
	mRPC.On("CallRPC", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(rpcFail("pop")).Maybe()
	mRPC.On("CallRPC", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(rpcFail("pop")).Maybe()
	mRPC.On("CallRPC", mock.Anything, mock.Anything, mock.Anything).Return(rpcFail("pop")).Maybe()

	_, err := c.GasPrice(ctx)
	assert.Regexp(t, "GC010203.*eth_gasPrice.*pop", err)
	_, err = c.GetTransactionCount(ctx, addr, BlockLatest)
	assert.Regexp(t, "GC010203", err)
	_, err = c.EstimateGas(ctx, &ethsigner.Transaction{})
	assert.Regexp(t, "GC010203", err)
	_, err = c.BlockNumber(ctx)
	assert.Regexp(t, "GC010203", err)
	_, err = c.GetBalance(ctx, addr, BlockLatest)
	assert.Regexp(t, "GC010203", err)
	_, err = c.GetBlockByNumber(ctx, 1)
	assert.Regexp(t, "GC010203", err)
	_, err = c.GetLogs(ctx, &LogFilter{})
	assert.Regexp(t, "GC010203", err)
	_, err = c.GetTransactionReceipt(ctx, gctypes.Keccak256([]byte("tx")))
	assert.Regexp(t, "GC010203", err)
	_, err = c.SendRawTransaction(ctx, []byte{0x01})
	assert.Regexp(t, "pop", err)
}

func TestGetTransactionReceipt(t *testing.T) {
	ctx, c, mRPC := newTestClient(t)
	hash := gctypes.Keccak256([]byte("tx1"))
	pending := gctypes.Keccak256([]byte("tx2"))

	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_getTransactionReceipt", hash.String()).Run(func(args mock.Arguments) {
		err := json.Unmarshal([]byte(fmt.Sprintf(`{
			"transactionHash": "%s",
			"blockNumber": "0x10",
			"gasUsed": "0x5208",
			"status": "0x1",
			"logs": []
		}`, hash)), args[1])
		require.NoError(t, err)
	}).Return(nil)
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_getTransactionReceipt", pending.String()).Return(nil)

	r, err := c.GetTransactionReceipt(ctx, hash)
	require.NoError(t, err)
	assert.True(t, r.Success())
	assert.Equal(t, uint64(16), r.BlockNumber.Uint64())
	assert.Equal(t, uint64(21000), r.GasUsed.Uint64())
	assert.Equal(t, hash, r.Hash())

	r, err = c.GetTransactionReceipt(ctx, pending)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestReceiptSuccessOnlyForStatusOne(t *testing.T) {
	assert.False(t, (&Receipt{}).Success())
	assert.False(t, (&Receipt{Status: ethtypes.NewHexInteger64(0)}).Success())
	assert.False(t, (&Receipt{Status: ethtypes.NewHexInteger64(2)}).Success())
	assert.True(t, (&Receipt{Status: ethtypes.NewHexInteger64(1)}).Success())
}

func TestSendRawTransaction(t *testing.T) {
	ctx, c, mRPC := newTestClient(t)
	hash := gctypes.Keccak256([]byte("raw"))
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_sendRawTransaction", mock.Anything).Run(func(args mock.Arguments) {
		*(args[1].(*ethtypes.HexBytes0xPrefix)) = hash.Bytes()
	}).Return(nil)

	h, err := c.SendRawTransaction(ctx, []byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, hash, *h)
}

func mockCallReturn(mRPC *rpcbackendmocks.RPC, to string, fn *abi.Entry, values []interface{}) {
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_call", mock.MatchedBy(func(tx *ethsigner.Transaction) bool {
		return tx.To.String() == to && bytes.HasPrefix(tx.Data, fn.FunctionSelectorBytes())
	}), "latest").Run(func(args mock.Arguments) {
		cv, err := fn.Outputs.ParseExternalData(values)
		if err != nil {
			panic(err)
		}
		data, err := cv.EncodeABIData()
		if err != nil {
			panic(err)
		}
		*(args[1].(*ethtypes.HexBytes0xPrefix)) = data
	}).Return(nil)
}

func TestTypedReads(t *testing.T) {
	ctx, c, mRPC := newTestClient(t)
	wallet := *gctypes.MustEthAddress("0x742d35cc6634c0532925a3b844bc454e4438f44e")

	hasRole, _ := c.Registry().Function("hasRole")
	balanceOf, _ := c.Token().Function("balanceOf")
	ownerOf, _ := c.NFT().Function("ownerOf")
	tokenURI, _ := c.NFT().Function("tokenURI")
	mockCallReturn(mRPC, testRegistryAddr, hasRole, []interface{}{true})
	mockCallReturn(mRPC, testTokenAddr, balanceOf, []interface{}{big.NewInt(1500)})
	mockCallReturn(mRPC, testNFTAddr, ownerOf, []interface{}{wallet.String()})
	mockCallReturn(mRPC, testNFTAddr, tokenURI, []interface{}{"ipfs://Qm123"})

	has, err := c.HasRole(ctx, gctypes.Keccak256([]byte("PRODUCER_ROLE")), wallet)
	require.NoError(t, err)
	assert.True(t, has)

	bal, err := c.TokenBalance(ctx, wallet)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), bal.Int64())

	owner, err := c.NFTOwner(ctx, big.NewInt(7))
	require.NoError(t, err)
	assert.True(t, owner.Equals(&wallet))

	uri, err := c.TokenURI(ctx, big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, "ipfs://Qm123", uri)
}

func TestCallRevertDecoded(t *testing.T) {
	ctx, c, mRPC := newTestClient(t)
	errData, encErr := (&abi.Entry{Type: abi.Error, Name: "Error", Inputs: abi.ParameterArray{{Type: "string"}}}).EncodeCallDataValuesCtx(ctx, []interface{}{"not owner"})
	require.NoError(t, encErr)
	dataJSON, _ := json.Marshal(ethtypes.HexBytes0xPrefix(errData))
	mRPC.On("CallRPC", mock.Anything, mock.Anything, "eth_call", mock.Anything, "latest").Return(&rpcbackend.RPCError{
		Code:    3,
		Message: "execution reverted",
		Data:    *fftypes.JSONAnyPtrBytes(dataJSON),
	})

	_, callErr := c.TokenURI(ctx, big.NewInt(1))
	assert.Regexp(t, "GC010808.*not owner", callErr)
}

func TestRevertReason(t *testing.T) {
	ctx, c, _ := newTestClient(t)
	assert.Regexp(t, "GC010401", c.RevertReason(ctx, nil))
	assert.Regexp(t, "GC010402.*0xdeadbeef", c.RevertReason(ctx, []byte{0xde, 0xad, 0xbe, 0xef}))

	notAuth := c.NFT().ABI().Errors()["NotAuthorized"]
	data, err := notAuth.EncodeCallDataValuesCtx(ctx, []interface{}{testNFTAddr})
	require.NoError(t, err)
	assert.Regexp(t, "NotAuthorized", c.RevertReason(ctx, data))
}
