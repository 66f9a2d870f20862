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
	"math/big"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
)

// Receipt is the eth_getTransactionReceipt result, restricted to the fields the lifecycle uses
type Receipt struct {
	TransactionHash   ethtypes.HexBytes0xPrefix `json:"transactionHash"`
	BlockHash         ethtypes.HexBytes0xPrefix `json:"blockHash"`
	BlockNumber       ethtypes.HexUint64        `json:"blockNumber"`
	TransactionIndex  ethtypes.HexUint64        `json:"transactionIndex"`
	From              *ethtypes.Address0xHex    `json:"from"`
	To                *ethtypes.Address0xHex    `json:"to"`
	ContractAddress   *ethtypes.Address0xHex    `json:"contractAddress"`
	GasUsed           ethtypes.HexUint64        `json:"gasUsed"`
	CumulativeGasUsed ethtypes.HexUint64        `json:"cumulativeGasUsed"`
	EffectiveGasPrice *ethtypes.HexInteger      `json:"effectiveGasPrice,omitempty"`
	Status            *ethtypes.HexInteger      `json:"status"`
	Logs              []*Log                    `json:"logs"`
	// not all nodes return this. Besu and Hardhat do.
	RevertReason ethtypes.HexBytes0xPrefix `json:"revertReason,omitempty"`
}

// Success is true only for status 1
func (r *Receipt) Success() bool {
	return r.Status != nil && r.Status.BigInt().Cmp(big.NewInt(1)) == 0
}

func (r *Receipt) Hash() gctypes.TxHash {
	return gctypes.NewBytes32FromSlice(r.TransactionHash)
}

type Log struct {
	Removed          bool                        `json:"removed"`
	LogIndex         ethtypes.HexUint64          `json:"logIndex"`
	TransactionIndex ethtypes.HexUint64          `json:"transactionIndex"`
	BlockNumber      ethtypes.HexUint64          `json:"blockNumber"`
	TransactionHash  ethtypes.HexBytes0xPrefix   `json:"transactionHash"`
	BlockHash        ethtypes.HexBytes0xPrefix   `json:"blockHash"`
	Address          *ethtypes.Address0xHex      `json:"address"`
	Data             ethtypes.HexBytes0xPrefix   `json:"data"`
	Topics           []ethtypes.HexBytes0xPrefix `json:"topics"`
}

type BlockInfo struct {
	Number     ethtypes.HexUint64        `json:"number"`
	Hash       ethtypes.HexBytes0xPrefix `json:"hash"`
	ParentHash ethtypes.HexBytes0xPrefix `json:"parentHash"`
	Timestamp  ethtypes.HexUint64        `json:"timestamp"`
}

// LogFilter is the eth_getLogs parameter. A nil entry in Topics matches anything in that position.
type LogFilter struct {
	FromBlock string                        `json:"fromBlock,omitempty"`
	ToBlock   string                        `json:"toBlock,omitempty"`
	Address   *ethtypes.Address0xHex        `json:"address,omitempty"`
	Topics    [][]ethtypes.HexBytes0xPrefix `json:"topics,omitempty"`
}

const (
	BlockLatest  = "latest"
	BlockPending = "pending"
)
