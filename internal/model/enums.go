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

type TxStatus string

const (
	TxStatusPending    TxStatus = "PENDING"
	TxStatusProcessing TxStatus = "PROCESSING"
	TxStatusConfirmed  TxStatus = "CONFIRMED"
	TxStatusFailed     TxStatus = "FAILED"
)

func (TxStatus) Options() []string {
	return []string{
		string(TxStatusPending),
		string(TxStatusProcessing),
		string(TxStatusConfirmed),
		string(TxStatusFailed),
	}
}

func (s TxStatus) Terminal() bool {
	return s == TxStatusConfirmed || s == TxStatusFailed
}

type Operation string

const (
	OpMintAnimal        Operation = "MINT_ANIMAL"
	OpAssignRole        Operation = "ASSIGN_ROLE"
	OpMintTokens        Operation = "MINT_TOKENS"
	OpUpdateHealth      Operation = "UPDATE_HEALTH"
	OpUpdateBatchStatus Operation = "UPDATE_BATCH_STATUS"
)

func (Operation) Options() []string {
	return []string{
		string(OpMintAnimal),
		string(OpAssignRole),
		string(OpMintTokens),
		string(OpUpdateHealth),
		string(OpUpdateBatchStatus),
	}
}

type HealthStatus string

const (
	HealthHealthy          HealthStatus = "HEALTHY"
	HealthSick             HealthStatus = "SICK"
	HealthRecovering       HealthStatus = "RECOVERING"
	HealthUnderObservation HealthStatus = "UNDER_OBSERVATION"
	HealthQuarantined      HealthStatus = "QUARANTINED"
)

func (HealthStatus) Options() []string {
	return []string{
		string(HealthHealthy),
		string(HealthSick),
		string(HealthRecovering),
		string(HealthUnderObservation),
		string(HealthQuarantined),
	}
}

func (HealthStatus) Default() string {
	return string(HealthHealthy)
}

type RecordSource string

const (
	SourceVeterinarian RecordSource = "VETERINARIAN"
	SourceIoTSensor    RecordSource = "IOT_SENSOR"
	SourceFarmer       RecordSource = "FARMER"
	SourceSystem       RecordSource = "SYSTEM"
)

func (RecordSource) Options() []string {
	return []string{
		string(SourceVeterinarian),
		string(SourceIoTSensor),
		string(SourceFarmer),
		string(SourceSystem),
	}
}

type ContractType string

const (
	ContractNFT      ContractType = "NFT"
	ContractToken    ContractType = "TOKEN"
	ContractRegistry ContractType = "REGISTRY"
)

func (ContractType) Options() []string {
	return []string{string(ContractNFT), string(ContractToken), string(ContractRegistry)}
}

type ActionType string

const (
	ActionMint        ActionType = "MINT"
	ActionUpdate      ActionType = "UPDATE"
	ActionRoleGrant   ActionType = "ROLE_GRANT"
	ActionBatchStatus ActionType = "BATCH_STATUS"
)

func (ActionType) Options() []string {
	return []string{string(ActionMint), string(ActionUpdate), string(ActionRoleGrant), string(ActionBatchStatus)}
}

type InteractionStatus string

const (
	InteractionPending InteractionStatus = "PENDING"
	InteractionSuccess InteractionStatus = "SUCCESS"
	InteractionFailed  InteractionStatus = "FAILED"
)

func (InteractionStatus) Options() []string {
	return []string{string(InteractionPending), string(InteractionSuccess), string(InteractionFailed)}
}

type EventType string

const (
	EventMint              EventType = "MINT"
	EventRoleAdd           EventType = "ROLE_ADD"
	EventTokenMinted       EventType = "TOKEN_MINTED"
	EventHealthUpdate      EventType = "HEALTH_UPDATE"
	EventBatchStatusUpdate EventType = "BATCH_STATUS_UPDATE"
)

func (EventType) Options() []string {
	return []string{
		string(EventMint),
		string(EventRoleAdd),
		string(EventTokenMinted),
		string(EventHealthUpdate),
		string(EventBatchStatusUpdate),
	}
}

type BatchStatus string

const (
	BatchCreated      BatchStatus = "CREATED"
	BatchInTransit    BatchStatus = "IN_TRANSIT"
	BatchDelivered    BatchStatus = "DELIVERED"
	BatchCancelled    BatchStatus = "CANCELLED"
	BatchProcessing   BatchStatus = "PROCESSING"
	BatchQualityCheck BatchStatus = "QUALITY_CHECK"
)

func (BatchStatus) Options() []string {
	return []string{
		string(BatchCreated),
		string(BatchInTransit),
		string(BatchDelivered),
		string(BatchCancelled),
		string(BatchProcessing),
		string(BatchQualityCheck),
	}
}

type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "PENDING"
	OutboxDispatched OutboxStatus = "DISPATCHED"
	OutboxFailed     OutboxStatus = "FAILED"
)

func (OutboxStatus) Options() []string {
	return []string{string(OutboxPending), string(OutboxDispatched), string(OutboxFailed)}
}
