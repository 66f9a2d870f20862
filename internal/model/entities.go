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

package model

import (
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
)

// TransactionRecord is the durable anchor for every signed transaction.
// It is written in the same DB transaction that consumes the nonce, before broadcast.
type TransactionRecord struct {
	Hash         gctypes.TxHash          `gorm:"column:hash;primaryKey"`
	RawPayload   []byte                  `gorm:"column:raw_payload"`
	Signer       gctypes.EthAddress      `gorm:"column:signer"`
	Nonce        uint64                  `gorm:"column:nonce"`
	To           *gctypes.EthAddress     `gorm:"column:to_address"`
	Operation    gctypes.Enum[Operation] `gorm:"column:operation"`
	SubjectID    *string                 `gorm:"column:subject_id"`
	OutboxID     *string                 `gorm:"column:outbox_id"`
	Status       gctypes.Enum[TxStatus]  `gorm:"column:status"`
	RetryCount   int                     `gorm:"column:retry_count"`
	LastRetryAt  *gctypes.Timestamp      `gorm:"column:last_retry_at"`
	NextRetryAt  gctypes.Timestamp       `gorm:"column:next_retry_at"`
	BlockNumber  *uint64                 `gorm:"column:block_number"`
	GasUsed      *uint64                 `gorm:"column:gas_used"`
	GasPrice     *string                 `gorm:"column:gas_price"`
	ErrorMessage *string                 `gorm:"column:error_message"`
	Created      gctypes.Timestamp       `gorm:"column:created"`
	Updated      gctypes.Timestamp       `gorm:"column:updated"`
}

func (TransactionRecord) TableName() string {
	return "transaction_records"
}

type NonceCounter struct {
	Signer    gctypes.EthAddress `gorm:"column:signer;primaryKey"`
	NextNonce uint64             `gorm:"column:next_nonce"`
	Updated   gctypes.Timestamp  `gorm:"column:updated"`
}

func (NonceCounter) TableName() string {
	return "nonce_counters"
}

// ContractInteraction is the audit row for one attempted contract call.
// Its status is set exactly once, when the receipt outcome is known.
type ContractInteraction struct {
	ID            string                          `gorm:"column:id;primaryKey"`
	ContractType  gctypes.Enum[ContractType]      `gorm:"column:contract_type"`
	ActionType    gctypes.Enum[ActionType]        `gorm:"column:action_type"`
	TxHash        *gctypes.TxHash                 `gorm:"column:tx_hash"`
	CallerAddress gctypes.EthAddress              `gorm:"column:caller_address"`
	TargetAddress *gctypes.EthAddress             `gorm:"column:target_address"`
	Parameters    string                          `gorm:"column:parameters"`
	GasUsed       *uint64                         `gorm:"column:gas_used"`
	GasPrice      *string                         `gorm:"column:gas_price"`
	GasCostWei    *string                         `gorm:"column:gas_cost_wei"`
	BlockNumber   *uint64                         `gorm:"column:block_number"`
	Status        gctypes.Enum[InteractionStatus] `gorm:"column:status"`
	ErrorMessage  *string                         `gorm:"column:error_message"`
	Created       gctypes.Timestamp               `gorm:"column:created"`
	Updated       gctypes.Timestamp               `gorm:"column:updated"`
}

func (ContractInteraction) TableName() string {
	return "contract_interactions"
}

func (ci *ContractInteraction) WriteKey() string {
	return ci.ID
}

// ChainEvent is append-only
type ChainEvent struct {
	ID          string                  `gorm:"column:id;primaryKey"`
	EventType   gctypes.Enum[EventType] `gorm:"column:event_type"`
	TxHash      gctypes.TxHash          `gorm:"column:tx_hash"`
	BlockNumber uint64                  `gorm:"column:block_number"`
	AnimalID    *string                 `gorm:"column:animal_id"`
	BatchID     *string                 `gorm:"column:batch_id"`
	From        *gctypes.EthAddress     `gorm:"column:from_address"`
	To          *gctypes.EthAddress     `gorm:"column:to_address"`
	Metadata    string                  `gorm:"column:metadata"`
	Created     gctypes.Timestamp       `gorm:"column:created"`
}

func (ChainEvent) TableName() string {
	return "chain_events"
}

// Animal is the off-chain entity that becomes chain-identified once its mint is reconciled
type Animal struct {
	ID             string                     `gorm:"column:id;primaryKey"`
	EarTag         *string                    `gorm:"column:ear_tag"`
	OwnerWallet    gctypes.EthAddress         `gorm:"column:owner_wallet"`
	MetadataURI    string                     `gorm:"column:metadata_uri"`
	OperationalURI *string                    `gorm:"column:operational_uri"`
	OnChainID      *string                    `gorm:"column:on_chain_id"`
	MintTxHash     *gctypes.TxHash            `gorm:"column:mint_tx_hash"`
	HealthStatus   gctypes.Enum[HealthStatus] `gorm:"column:health_status"`
	Created        gctypes.Timestamp          `gorm:"column:created"`
	Updated        gctypes.Timestamp          `gorm:"column:updated"`
}

func (Animal) TableName() string {
	return "animals"
}

func (a *Animal) Confirmed() bool {
	return a.OnChainID != nil
}

type Batch struct {
	ID         string                    `gorm:"column:id;primaryKey"`
	Name       string                    `gorm:"column:name"`
	OnChainID  *string                   `gorm:"column:on_chain_id"`
	Status     gctypes.Enum[BatchStatus] `gorm:"column:status"`
	LastTxHash *gctypes.TxHash           `gorm:"column:last_tx_hash"`
	Created    gctypes.Timestamp         `gorm:"column:created"`
	Updated    gctypes.Timestamp         `gorm:"column:updated"`
}

func (Batch) TableName() string {
	return "batches"
}

type HealthRecord struct {
	ID                 string                     `gorm:"column:id;primaryKey"`
	AnimalID           string                     `gorm:"column:animal_id"`
	HealthStatus       gctypes.Enum[HealthStatus] `gorm:"column:health_status"`
	Source             gctypes.Enum[RecordSource] `gorm:"column:source"`
	DeviceID           *string                    `gorm:"column:device_id"`
	VeterinarianWallet *gctypes.EthAddress        `gorm:"column:veterinarian_wallet"`
	Temperature        *float64                   `gorm:"column:temperature"`
	HeartRate          *float64                   `gorm:"column:heart_rate"`
	MovementActivity   *float64                   `gorm:"column:movement_activity"`
	Latitude           *float64                   `gorm:"column:latitude"`
	Longitude          *float64                   `gorm:"column:longitude"`
	GPSAccuracy        *float64                   `gorm:"column:gps_accuracy"`
	Notes              string                     `gorm:"column:notes"`
	Anomalies          string                     `gorm:"column:anomalies"`
	MetadataHash       *gctypes.Bytes32           `gorm:"column:metadata_hash"`
	TxHash             *gctypes.TxHash            `gorm:"column:tx_hash"`
	Created            gctypes.Timestamp          `gorm:"column:created"`
}

func (HealthRecord) TableName() string {
	return "health_records"
}

type GasPriceSample struct {
	ID          string            `gorm:"column:id;primaryKey"`
	Price       string            `gorm:"column:price"`
	BlockNumber uint64            `gorm:"column:block_number"`
	Created     gctypes.Timestamp `gorm:"column:created"`
}

func (GasPriceSample) TableName() string {
	return "gas_price_samples"
}

func (s *GasPriceSample) WriteKey() string {
	return s.ID
}

type OutboxEntry struct {
	ID           string                     `gorm:"column:id;primaryKey"`
	Operation    gctypes.Enum[Operation]    `gorm:"column:operation"`
	SubjectID    *string                    `gorm:"column:subject_id"`
	Payload      string                     `gorm:"column:payload"`
	Status       gctypes.Enum[OutboxStatus] `gorm:"column:status"`
	TxHash       *gctypes.TxHash            `gorm:"column:tx_hash"`
	Attempts     int                        `gorm:"column:attempts"`
	ErrorMessage *string                    `gorm:"column:error_message"`
	Created      gctypes.Timestamp          `gorm:"column:created"`
	Updated      gctypes.Timestamp          `gorm:"column:updated"`
}

func (OutboxEntry) TableName() string {
	return "outbox_entries"
}
