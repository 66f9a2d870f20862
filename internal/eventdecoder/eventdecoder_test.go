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

package eventdecoder

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"testing"

	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/mocks/chainclientmocks"
	"github.com/vices1967-beep/GanadoChain-sub000/mocks/rpcbackendmocks"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
)

const (
	testNFTAddr   = "0x2222222222222222222222222222222222222222"
	testOwnerAddr = "0x6331ccb948aaf903a69d6054fd718062bd0d535c"
)

var testTxHash = gctypes.Keccak256([]byte("mint"))

func newTestNFT(t *testing.T) (context.Context, chainclient.Binding) {
	ctx := context.Background()
	cc, err := chainclient.NewChainClientWithRPC(ctx, rpcbackendmocks.NewRPC(t),
		&gcconf.BlockchainConfig{ChainID: confutil.P(int64(80002))},
		&gcconf.ContractsConfig{
			ArtifactsDir: confutil.P("../chainclient/testdata/artifacts"),
			Token:        gcconf.ContractConfig{Address: "0x1111111111111111111111111111111111111111"},
			NFT:          gcconf.ContractConfig{Address: testNFTAddr},
			Registry:     gcconf.ContractConfig{Address: "0x3333333333333333333333333333333333333333"},
		})
	require.NoError(t, err)
	return ctx, cc.NFT()
}

func mintLog(t *testing.T, ctx context.Context, nft chainclient.Binding, source string, logIndex uint64, tokenID int64) *chainclient.Log {
	ev, err := nft.Event(EventAnimalMinted)
	require.NoError(t, err)
	l, err := UTEncodeLog(ctx, *gctypes.MustEthAddress(source), ev, logIndex, map[string]interface{}{
		"tokenId":     big.NewInt(tokenID),
		"owner":       testOwnerAddr,
		"metadataURI": "ipfs://Qm123",
	})
	require.NoError(t, err)
	l.TransactionHash = testTxHash.Bytes()
	return l
}

func transferLog(t *testing.T, ctx context.Context, nft chainclient.Binding, logIndex uint64) *chainclient.Log {
	ev, err := nft.Event(EventTransfer)
	require.NoError(t, err)
	l, err := UTEncodeLog(ctx, nft.Address(), ev, logIndex, map[string]interface{}{
		"from":    "0x0000000000000000000000000000000000000000",
		"to":      testOwnerAddr,
		"tokenId": big.NewInt(7),
	})
	require.NoError(t, err)
	return l
}

func testReceipt(logs ...*chainclient.Log) *chainclient.Receipt {
	return &chainclient.Receipt{
		TransactionHash: testTxHash.Bytes(),
		Status:          ethtypes.NewHexInteger64(1),
		Logs:            logs,
	}
}

func TestAnimalMinted(t *testing.T) {
	ctx, nft := newTestNFT(t)
	receipt := testReceipt(transferLog(t, ctx, nft, 0), mintLog(t, ctx, nft, testNFTAddr, 1, 7))

	minted, err := AnimalMinted(ctx, nft, receipt)
	require.NoError(t, err)
	assert.Equal(t, int64(7), minted.TokenID.Int64())
	assert.Equal(t, testOwnerAddr, minted.Owner.String())
	assert.Equal(t, "ipfs://Qm123", minted.MetadataURI)
	assert.Equal(t, uint64(1), minted.LogIndex)
}

func TestAnimalMintedIgnoresOtherEmitters(t *testing.T) {
	ctx, nft := newTestNFT(t)
	receipt := testReceipt(mintLog(t, ctx, nft, "0x9999999999999999999999999999999999999999", 0, 99))

	_, err := AnimalMinted(ctx, nft, receipt)
	var enf *gcerrors.EventNotFound
	require.ErrorAs(t, err, &enf)
	assert.Equal(t, testTxHash.String(), enf.TxHash)
	assert.Regexp(t, "GC010500", err)
}

func TestAnimalMintedNoEventNoFallback(t *testing.T) {
	ctx, nft := newTestNFT(t)
	// only a Transfer log: the token id must not be guessed
	_, err := AnimalMinted(ctx, nft, testReceipt(transferLog(t, ctx, nft, 0)))
	var enf *gcerrors.EventNotFound
	require.ErrorAs(t, err, &enf)
	assert.Equal(t, EventAnimalMinted, enf.Event)
}

func TestAnimalMintedRemovedLogSkipped(t *testing.T) {
	ctx, nft := newTestNFT(t)
	l := mintLog(t, ctx, nft, testNFTAddr, 0, 7)
	l.Removed = true
	_, err := AnimalMinted(ctx, nft, testReceipt(l))
	assert.Regexp(t, "GC010500", err)
}

func TestMintedEventNameAccepted(t *testing.T) {
	ctx := context.Background()
	var mintedABI abi.ABI
	mintedABI = append(mintedABI, &abi.Entry{
		Type: abi.Event,
		Name: EventMinted,
		Inputs: abi.ParameterArray{
			{Name: "id", Type: "uint256", Indexed: true},
			{Name: "to", Type: "address", Indexed: true},
			{Name: "uri", Type: "string"},
		},
	})
	nftAddr := *gctypes.MustEthAddress(testNFTAddr)
	mb := chainclientmocks.NewBinding(t)
	mb.On("Event", EventAnimalMinted).Return(nil, fmt.Errorf("no such event"))
	mb.On("Event", EventMinted).Return(mintedABI[0], nil)
	mb.On("Address").Return(nftAddr)

	l, err := UTEncodeLog(ctx, nftAddr, mintedABI[0], 3, map[string]interface{}{
		"id":  big.NewInt(42),
		"to":  testOwnerAddr,
		"uri": "ipfs://QmLegacy",
	})
	require.NoError(t, err)

	minted, err := AnimalMinted(ctx, mb, testReceipt(l))
	require.NoError(t, err)
	assert.Equal(t, int64(42), minted.TokenID.Int64())
	assert.Equal(t, testOwnerAddr, minted.Owner.String())
	assert.Equal(t, "ipfs://QmLegacy", minted.MetadataURI)
}

func TestNoMintEventInABI(t *testing.T) {
	ctx := context.Background()
	mb := chainclientmocks.NewBinding(t)
	mb.On("Event", EventAnimalMinted).Return(nil, fmt.Errorf("no such event"))
	mb.On("Event", EventMinted).Return(nil, fmt.Errorf("no such event"))

	_, err := AnimalMinted(ctx, mb, testReceipt())
	assert.Regexp(t, "GC010500", err)
}

func TestDecodeGeneric(t *testing.T) {
	ctx, nft := newTestNFT(t)
	receipt := testReceipt(mintLog(t, ctx, nft, testNFTAddr, 0, 7), transferLog(t, ctx, nft, 1))

	decoded, err := Decode(ctx, nft, EventTransfer, receipt)
	require.NoError(t, err)
	assert.Equal(t, EventTransfer, decoded.Name)
	assert.Equal(t, uint64(1), decoded.LogIndex)
	assert.JSONEq(t, `"7"`, string(decoded.Fields["tokenId"]))
	assert.JSONEq(t, `"`+testOwnerAddr+`"`, string(decoded.Fields["to"]))

	_, err = Decode(ctx, nft, "NoSuchEvent", receipt)
	assert.Error(t, err)
}

func TestMintedFieldErrors(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		fields map[string]string
		regexp string
	}{
		{map[string]string{}, "GC010502.*tokenId"},
		{map[string]string{"tokenId": `"abc"`}, "GC010503.*tokenId"},
		{map[string]string{"tokenId": `7`}, "GC010503.*tokenId"},
		{map[string]string{"tokenId": `"7"`}, "GC010502.*owner"},
		{map[string]string{"tokenId": `"7"`, "owner": `"0xnope"`}, "GC010503.*owner"},
		{map[string]string{"tokenId": `"7"`, "owner": `"` + testOwnerAddr + `"`}, "GC010502.*metadataURI"},
	} {
		decoded := &DecodedEvent{Name: EventAnimalMinted, Fields: map[string]json.RawMessage{}}
		for k, v := range tc.fields {
			decoded.Fields[k] = json.RawMessage(v)
		}
		_, err := mintedAnimalFromEvent(ctx, decoded)
		assert.Regexp(t, tc.regexp, err)
	}
}
