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

// Package eventdecoder extracts typed events from transaction receipts.
// A log only matches when both its topic0 and its emitting address match the binding.
package eventdecoder

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

const (
	EventAnimalMinted = "AnimalMinted"
	EventMinted       = "Minted"
	EventTransfer     = "Transfer"
)

// mintEventNames are tried in order. Older NFT deployments emit Minted.
var mintEventNames = []string{EventAnimalMinted, EventMinted}

var fieldSerializer = abi.NewSerializer().
	SetFormattingMode(abi.FormatAsObjects).
	SetIntSerializer(abi.Base10StringIntSerializer).
	SetByteSerializer(abi.HexByteSerializer0xPrefix).
	SetAddressSerializer(abi.HexAddrSerializer0xPrefix)

type DecodedEvent struct {
	Name        string                     `json:"name"`
	Address     gctypes.EthAddress         `json:"address"`
	LogIndex    uint64                     `json:"logIndex"`
	BlockNumber uint64                     `json:"blockNumber"`
	TxHash      gctypes.TxHash             `json:"transactionHash"`
	Fields      map[string]json.RawMessage `json:"fields"`
}

type MintedAnimal struct {
	TokenID     *big.Int           `json:"tokenId"`
	Owner       gctypes.EthAddress `json:"owner"`
	MetadataURI string             `json:"metadataURI"`
	LogIndex    uint64             `json:"logIndex"`
}

// Decode returns the first log of the receipt that matches eventName on the binding.
// No match is a *gcerrors.EventNotFound carrying the transaction hash.
func Decode(ctx context.Context, binding chainclient.Binding, eventName string, receipt *chainclient.Receipt) (*DecodedEvent, error) {
	ev, err := binding.Event(eventName)
	if err != nil {
		return nil, err
	}
	for _, l := range receipt.Logs {
		if decoded := DecodeLog(ctx, binding.Address(), ev, l); decoded != nil {
			return decoded, nil
		}
	}
	return nil, gcerrors.NotFound(ctx, receipt.Hash().String(), eventName, msgs.MsgEventNotFound, eventName, receipt.Hash())
}

// DecodeLog returns nil if the log was not emitted by source as event ev
func DecodeLog(ctx context.Context, source gctypes.EthAddress, ev *abi.Entry, l *chainclient.Log) *DecodedEvent {
	if l == nil || l.Removed || len(l.Topics) == 0 {
		return nil
	}
	topic0 := gctypes.NewBytes32FromSlice(ev.SignatureHashBytes())
	if gctypes.NewBytes32FromSlice(l.Topics[0]) != topic0 {
		return nil
	}
	if l.Address == nil || !source.Equals((*gctypes.EthAddress)(l.Address)) {
		log.L(ctx).Debugf("Skipping %s log %d from %s (expected %s)", ev.Name, l.LogIndex, l.Address, source)
		return nil
	}
	cv, err := ev.DecodeEventDataCtx(ctx, l.Topics, l.Data)
	var fields map[string]json.RawMessage
	if err == nil {
		var jsonData []byte
		if jsonData, err = fieldSerializer.SerializeJSONCtx(ctx, cv); err == nil {
			err = json.Unmarshal(jsonData, &fields)
		}
	}
	if err != nil {
		// the signature does not capture which params are indexed, so a topic match can still fail to decode
		log.L(ctx).Debugf("%s: %s", i18n.NewError(ctx, msgs.MsgEventDecodeFailed, ev.Name, l.LogIndex.Uint64(), l.TransactionHash), err)
		return nil
	}
	return &DecodedEvent{
		Name:        ev.Name,
		Address:     source,
		LogIndex:    l.LogIndex.Uint64(),
		BlockNumber: l.BlockNumber.Uint64(),
		TxHash:      gctypes.NewBytes32FromSlice(l.TransactionHash),
		Fields:      fields,
	}
}

// AnimalMinted extracts the minted token from an NFT mint receipt.
// There is deliberately no totalSupply fallback: a missing event needs manual review.
func AnimalMinted(ctx context.Context, nft chainclient.Binding, receipt *chainclient.Receipt) (*MintedAnimal, error) {
	var lastErr error
	for _, name := range mintEventNames {
		if _, err := nft.Event(name); err != nil {
			continue
		}
		decoded, err := Decode(ctx, nft, name, receipt)
		if err != nil {
			lastErr = err
			continue
		}
		return mintedAnimalFromEvent(ctx, decoded)
	}
	if lastErr == nil {
		lastErr = gcerrors.NotFound(ctx, receipt.Hash().String(), EventAnimalMinted, msgs.MsgEventNotFound, EventAnimalMinted, receipt.Hash())
	}
	log.L(ctx).Errorf("Mint receipt %s has no mint event: %s", receipt.Hash(), lastErr)
	return nil, lastErr
}

func mintedAnimalFromEvent(ctx context.Context, decoded *DecodedEvent) (*MintedAnimal, error) {
	minted := &MintedAnimal{LogIndex: decoded.LogIndex}

	var tokenIDStr string
	if err := decoded.stringField(ctx, &tokenIDStr, "tokenId", "id"); err != nil {
		return nil, err
	}
	var ok bool
	if minted.TokenID, ok = new(big.Int).SetString(tokenIDStr, 10); !ok {
		return nil, i18n.NewError(ctx, msgs.MsgEventFieldBadValue, decoded.Name, "tokenId", tokenIDStr)
	}

	var ownerStr string
	if err := decoded.stringField(ctx, &ownerStr, "owner", "to"); err != nil {
		return nil, err
	}
	owner, err := gctypes.ParseEthAddress(ownerStr)
	if err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgEventFieldBadValue, decoded.Name, "owner", ownerStr)
	}
	minted.Owner = *owner

	if err := decoded.stringField(ctx, &minted.MetadataURI, "metadataURI", "tokenURI", "uri"); err != nil {
		return nil, err
	}
	return minted, nil
}

// stringField reads the first present field among names
func (de *DecodedEvent) stringField(ctx context.Context, target *string, names ...string) error {
	for _, name := range names {
		raw, ok := de.Fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return i18n.NewError(ctx, msgs.MsgEventFieldBadValue, de.Name, name, string(raw))
		}
		return nil
	}
	return i18n.NewError(ctx, msgs.MsgEventFieldMissing, de.Name, names[0])
}

// UTEncodeLog builds a log as the node would return it, for tests that mock receipts
func UTEncodeLog(ctx context.Context, source gctypes.EthAddress, ev *abi.Entry, logIndex uint64, values map[string]interface{}) (*chainclient.Log, error) {
	topics := []ethtypes.HexBytes0xPrefix{ev.SignatureHashBytes()}
	var dataParams abi.ParameterArray
	var dataValues []interface{}
	for _, p := range ev.Inputs {
		if p.Indexed {
			topic, err := abi.ParameterArray{p}.EncodeABIDataValuesCtx(ctx, []interface{}{values[p.Name]})
			if err != nil {
				return nil, err
			}
			topics = append(topics, topic)
		} else {
			dataParams = append(dataParams, p)
			dataValues = append(dataValues, values[p.Name])
		}
	}
	data, err := dataParams.EncodeABIDataValuesCtx(ctx, dataValues)
	if err != nil {
		return nil, err
	}
	return &chainclient.Log{
		Address:  source.Address0xHex(),
		LogIndex: ethtypes.HexUint64(logIndex),
		Topics:   topics,
		Data:     data,
	}, nil
}
