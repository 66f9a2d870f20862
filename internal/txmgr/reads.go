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
	"math/big"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/eventdecoder"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

func (tm *txManager) GetTransactionStatus(ctx context.Context, hashStr string) (*TransactionStatus, error) {
	hash, err := gctypes.ParseBytes32(hashStr)
	if err != nil {
		return nil, err
	}
	if status, ok := tm.statusCache.Get(hash); ok {
		return status, nil
	}
	record, err := tm.pool.Get(ctx, hash)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, i18n.NewError(ctx, msgs.MsgPoolRecordNotFound, hash)
	}
	status := &TransactionStatus{
		Hash:         record.Hash,
		Operation:    record.Operation.V(),
		SubjectID:    record.SubjectID,
		Status:       record.Status.V(),
		Nonce:        record.Nonce,
		BlockNumber:  record.BlockNumber,
		GasUsed:      record.GasUsed,
		RetryCount:   record.RetryCount,
		ErrorMessage: record.ErrorMessage,
		Created:      record.Created,
		Updated:      record.Updated,
	}
	if tm.explorerURL != "" {
		status.ExplorerURL = tm.explorerURL + hash.String()
	}
	// only terminal states are stable enough to cache
	if status.Status.Terminal() {
		tm.statusCache.Set(hash, status)
	}
	return status, nil
}

func (tm *txManager) HasRole(ctx context.Context, wallet, roleName string) (bool, error) {
	addr, err := gctypes.ParseEthAddress(wallet)
	if err != nil {
		return false, err
	}
	if roleName == "" {
		return false, i18n.NewError(ctx, msgs.MsgOpMissingField, "role")
	}
	return tm.cc.HasRole(ctx, RoleHash(roleName), *addr)
}

func (tm *txManager) TokenBalance(ctx context.Context, wallet string) (*big.Int, error) {
	addr, err := gctypes.ParseEthAddress(wallet)
	if err != nil {
		return nil, err
	}
	return tm.cc.TokenBalance(ctx, *addr)
}

func (tm *txManager) NFTOwner(ctx context.Context, tokenIDStr string) (*gctypes.EthAddress, error) {
	tokenID, err := parseTokenID(ctx, tokenIDStr)
	if err != nil {
		return nil, err
	}
	return tm.cc.NFTOwner(ctx, tokenID)
}

func (tm *txManager) TokenURI(ctx context.Context, tokenIDStr string) (string, error) {
	tokenID, err := parseTokenID(ctx, tokenIDStr)
	if err != nil {
		return "", err
	}
	return tm.cc.TokenURI(ctx, tokenID)
}

// VerifyAnimalNFT compares the chain's view of the token with the animal row
func (tm *txManager) VerifyAnimalNFT(ctx context.Context, animalID string) (*NFTVerification, error) {
	animal, err := tm.requireAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	if !animal.Confirmed() {
		return nil, i18n.NewError(ctx, msgs.MsgOpAnimalNotMinted, animal.ID)
	}
	tokenID, err := parseTokenID(ctx, *animal.OnChainID)
	if err != nil {
		return nil, err
	}
	owner, err := tm.cc.NFTOwner(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	uri, err := tm.cc.TokenURI(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	v := &NFTVerification{
		AnimalID:      animal.ID,
		TokenID:       *animal.OnChainID,
		Owner:         owner,
		ExpectedOwner: animal.OwnerWallet,
		TokenURI:      uri,
		OwnerMatches:  owner != nil && owner.Equals(&animal.OwnerWallet),
		URIMatches:    uri == animal.MetadataURI,
	}
	v.Verified = v.OwnerMatches && v.URIMatches
	if !v.Verified {
		log.L(ctx).Warnf("Animal %s token %s does not match chain: owner=%t uri=%t", animal.ID, v.TokenID, v.OwnerMatches, v.URIMatches)
	}
	return v, nil
}

// AnimalTransferHistory lists the ERC-721 Transfer events of the animal's token, oldest first
func (tm *txManager) AnimalTransferHistory(ctx context.Context, animalID string) ([]*TransferEvent, error) {
	animal, err := tm.requireAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	if !animal.Confirmed() {
		return nil, i18n.NewError(ctx, msgs.MsgOpAnimalNotMinted, animal.ID)
	}
	tokenID, err := parseTokenID(ctx, *animal.OnChainID)
	if err != nil {
		return nil, err
	}

	nft := tm.cc.NFT()
	ev, err := nft.Event(eventdecoder.EventTransfer)
	if err != nil {
		return nil, err
	}
	nftAddr := nft.Address()
	tokenTopic := make([]byte, 32)
	tokenID.FillBytes(tokenTopic)
	logs, err := tm.cc.GetLogs(ctx, &chainclient.LogFilter{
		FromBlock: "0x0",
		ToBlock:   chainclient.BlockLatest,
		Address:   (*ethtypes.Address0xHex)(&nftAddr),
		Topics: [][]ethtypes.HexBytes0xPrefix{
			{ev.SignatureHashBytes()},
			nil,
			nil,
			{tokenTopic},
		},
	})
	if err != nil {
		return nil, err
	}

	blockTimes := map[uint64]gctypes.Timestamp{}
	transfers := make([]*TransferEvent, 0, len(logs))
	for _, l := range logs {
		decoded := eventdecoder.DecodeLog(ctx, nftAddr, ev, l)
		if decoded == nil {
			continue
		}
		t := &TransferEvent{TxHash: decoded.TxHash, BlockNumber: decoded.BlockNumber}
		if err := json.Unmarshal(decoded.Fields["from"], &t.From); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(decoded.Fields["to"], &t.To); err != nil {
			return nil, err
		}
		ts, ok := blockTimes[t.BlockNumber]
		if !ok {
			block, err := tm.cc.GetBlockByNumber(ctx, t.BlockNumber)
			if err != nil {
				return nil, err
			}
			if block != nil {
				ts = gctypes.TimestampFromTime(time.Unix(int64(block.Timestamp.Uint64()), 0))
			}
			blockTimes[t.BlockNumber] = ts
		}
		t.Timestamp = ts
		transfers = append(transfers, t)
	}
	return transfers, nil
}

func (tm *txManager) NetworkStatus(ctx context.Context) (*NetworkStatus, error) {
	blockNumber, err := tm.cc.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	gasPrice, err := tm.cc.GasPrice(ctx)
	if err != nil {
		return nil, err
	}
	signerAddr := tm.signer.Address()
	balance, err := tm.cc.GetBalance(ctx, signerAddr, chainclient.BlockLatest)
	if err != nil {
		return nil, err
	}
	counts, err := tm.pool.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &NetworkStatus{
		ChainID:      tm.cc.ChainID(),
		BlockNumber:  blockNumber,
		GasPrice:     gasPrice,
		Signer:       signerAddr,
		Balance:      balance,
		NextNonce:    tm.signer.NextNonce(),
		PoolCounts:   counts,
		TrackedCount: tm.confirmer.Tracked(),
	}, nil
}
