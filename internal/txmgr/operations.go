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

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/reconciler"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/signer"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
)

const (
	DefaultAdminRole = "DEFAULT_ADMIN_ROLE"

	healthURIPrefix = "urn:ganadochain:health:"
)

type mintPayload struct {
	AnimalID       string             `json:"animalId"`
	Owner          gctypes.EthAddress `json:"owner"`
	MetadataURI    string             `json:"metadataUri"`
	OperationalURI string             `json:"operationalUri"`
}

type rolePayload struct {
	Wallet   gctypes.EthAddress `json:"wallet"`
	Role     string             `json:"role"`
	RoleHash gctypes.Bytes32    `json:"roleHash"`
}

type tokensPayload struct {
	Wallet gctypes.EthAddress `json:"wallet"`
	Amount string             `json:"amount"`
}

type healthPayload struct {
	Update         *HealthUpdate     `json:"update"`
	RecordID       string            `json:"recordId"`
	TokenID        string            `json:"tokenId"`
	OperationalURI string            `json:"operationalUri"`
	MetadataHash   gctypes.Bytes32   `json:"metadataHash"`
	Created        gctypes.Timestamp `json:"created"`
}

type batchPayload struct {
	BatchID   string                 `json:"batchId"`
	OnChainID string                 `json:"onChainId"`
	Change    reconciler.BatchChange `json:"change"`
}

// RoleHash is keccak256 of the role name, except the admin role which is all zeros
func RoleHash(roleName string) gctypes.Bytes32 {
	if roleName == DefaultAdminRole {
		return gctypes.Bytes32{}
	}
	return gctypes.Keccak256([]byte(roleName))
}

func parseTokenID(ctx context.Context, s string) (*big.Int, error) {
	tokenID, ok := new(big.Int).SetString(s, 10)
	if !ok || tokenID.Sign() < 0 {
		return nil, i18n.NewError(ctx, msgs.MsgOpInvalidTokenID, s)
	}
	return tokenID, nil
}

func (tm *txManager) getAnimal(ctx context.Context, dbTX persistence.DBTX, animalID string) (*model.Animal, error) {
	var animals []*model.Animal
	if err := dbTX.DB().WithContext(ctx).Where("id = ?", animalID).Limit(1).Find(&animals).Error; err != nil {
		return nil, err
	}
	if len(animals) == 0 {
		return nil, nil
	}
	return animals[0], nil
}

func (tm *txManager) requireAnimal(ctx context.Context, animalID string) (*model.Animal, error) {
	animal, err := tm.getAnimal(ctx, tm.p.NOTX(), animalID)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, i18n.NewError(ctx, msgs.MsgOpAnimalNotFound, animalID)
	}
	return animal, nil
}

func (tm *txManager) getBatch(ctx context.Context, batchID string) (*model.Batch, error) {
	var batches []*model.Batch
	if err := tm.p.DB().WithContext(ctx).Where("id = ?", batchID).Limit(1).Find(&batches).Error; err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, nil
	}
	return batches[0], nil
}

// MintAnimalNFT creates the animal row if needed. An unminted row takes the requested owner and metadata,
// which are what the mint is reconciled against.
func (tm *txManager) MintAnimalNFT(ctx context.Context, req *MintAnimalRequest) (gctypes.TxHash, error) {
	if req.AnimalID == "" {
		return gctypes.TxHash{}, i18n.NewError(ctx, msgs.MsgOpMissingField, "animalId")
	}
	if req.MetadataURI == "" {
		return gctypes.TxHash{}, i18n.NewError(ctx, msgs.MsgOpMissingField, "metadataUri")
	}
	owner, err := gctypes.ParseEthAddress(req.OwnerWallet)
	if err != nil {
		return gctypes.TxHash{}, err
	}

	var entry *model.OutboxEntry
	err = tm.p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		animal, err := tm.getAnimal(ctx, dbTX, req.AnimalID)
		if err != nil {
			return err
		}
		now := gctypes.TimestampNow()
		var opURI *string
		if req.OperationalURI != "" {
			opURI = &req.OperationalURI
		}
		switch {
		case animal == nil:
			err = dbTX.DB().WithContext(ctx).Create(&model.Animal{
				ID:             req.AnimalID,
				EarTag:         req.EarTag,
				OwnerWallet:    *owner,
				MetadataURI:    req.MetadataURI,
				OperationalURI: opURI,
				HealthStatus:   gctypes.Enum[model.HealthStatus](model.HealthHealthy),
				Created:        now,
				Updated:        now,
			}).Error
		case animal.Confirmed():
			err = i18n.NewError(ctx, msgs.MsgOpAnimalAlreadyMinted, animal.ID, *animal.OnChainID)
		default:
			err = dbTX.DB().WithContext(ctx).
				Model(&model.Animal{}).
				Where("id = ?", animal.ID).
				Updates(map[string]interface{}{
					"owner_wallet":    *owner,
					"metadata_uri":    req.MetadataURI,
					"operational_uri": opURI,
					"updated":         now,
				}).Error
		}
		if err != nil {
			return err
		}
		entry, err = tm.outbox.Insert(ctx, dbTX, model.OpMintAnimal, req.AnimalID, &mintPayload{
			AnimalID:       req.AnimalID,
			Owner:          *owner,
			MetadataURI:    req.MetadataURI,
			OperationalURI: req.OperationalURI,
		})
		return err
	})
	if err != nil {
		return gctypes.TxHash{}, err
	}
	return tm.dispatchInline(ctx, entry, tm.dispatchMint)
}

func (tm *txManager) dispatchMint(ctx context.Context, entry *model.OutboxEntry) (*gctypes.TxHash, error) {
	var p mintPayload
	if err := decodePayload(ctx, entry, &p); err != nil {
		return nil, err
	}
	return tm.send(ctx, entry, &contractCall{
		binding:      tm.cc.NFT(),
		function:     "mintAnimal",
		args:         []interface{}{p.Owner.String(), p.MetadataURI, p.OperationalURI},
		contractType: model.ContractNFT,
		action:       model.ActionMint,
		target:       &p.Owner,
		params:       &p,
	})
}

func (tm *txManager) AssignRole(ctx context.Context, wallet, roleName string) (gctypes.TxHash, error) {
	if roleName == "" {
		return gctypes.TxHash{}, i18n.NewError(ctx, msgs.MsgOpMissingField, "role")
	}
	addr, err := gctypes.ParseEthAddress(wallet)
	if err != nil {
		return gctypes.TxHash{}, err
	}
	entry, err := tm.outbox.Insert(ctx, tm.p.NOTX(), model.OpAssignRole, addr.String(), &rolePayload{
		Wallet:   *addr,
		Role:     roleName,
		RoleHash: RoleHash(roleName),
	})
	if err != nil {
		return gctypes.TxHash{}, err
	}
	return tm.dispatchInline(ctx, entry, tm.dispatchRole)
}

func (tm *txManager) dispatchRole(ctx context.Context, entry *model.OutboxEntry) (*gctypes.TxHash, error) {
	var p rolePayload
	if err := decodePayload(ctx, entry, &p); err != nil {
		return nil, err
	}
	return tm.send(ctx, entry, &contractCall{
		binding:      tm.cc.Registry(),
		function:     "grantRole",
		args:         []interface{}{p.RoleHash.String(), p.Wallet.String()},
		contractType: model.ContractRegistry,
		action:       model.ActionRoleGrant,
		target:       &p.Wallet,
		params:       &p,
	})
}

func (tm *txManager) MintTokens(ctx context.Context, wallet string, amount *big.Int) (gctypes.TxHash, error) {
	if amount == nil || amount.Sign() <= 0 {
		return gctypes.TxHash{}, i18n.NewError(ctx, msgs.MsgOpInvalidAmount, amount)
	}
	addr, err := gctypes.ParseEthAddress(wallet)
	if err != nil {
		return gctypes.TxHash{}, err
	}
	entry, err := tm.outbox.Insert(ctx, tm.p.NOTX(), model.OpMintTokens, addr.String(), &tokensPayload{
		Wallet: *addr,
		Amount: amount.String(),
	})
	if err != nil {
		return gctypes.TxHash{}, err
	}
	return tm.dispatchInline(ctx, entry, tm.dispatchTokens)
}

func (tm *txManager) dispatchTokens(ctx context.Context, entry *model.OutboxEntry) (*gctypes.TxHash, error) {
	var p tokensPayload
	if err := decodePayload(ctx, entry, &p); err != nil {
		return nil, err
	}
	amount, ok := new(big.Int).SetString(p.Amount, 10)
	if !ok {
		return nil, i18n.NewError(ctx, msgs.MsgOpInvalidAmount, p.Amount)
	}
	return tm.send(ctx, entry, &contractCall{
		binding:      tm.cc.Token(),
		function:     "mint",
		args:         []interface{}{p.Wallet.String(), amount},
		contractType: model.ContractToken,
		action:       model.ActionMint,
		target:       &p.Wallet,
		params:       &p,
	})
}

func (tm *txManager) CurrentHealth(ctx context.Context, animalID string) (model.HealthStatus, error) {
	animal, err := tm.requireAnimal(ctx, animalID)
	if err != nil {
		return "", err
	}
	return animal.HealthStatus.V(), nil
}

// healthMetadataHash hashes the canonical metadata document. encoding/json sorts map keys,
// so the same update always hashes the same.
func healthMetadataHash(animal *model.Animal, u *HealthUpdate, created gctypes.Timestamp) (gctypes.Bytes32, error) {
	meta := map[string]interface{}{
		"animal_id":     u.AnimalID,
		"health_status": u.Status,
		"source":        u.Source,
		"notes":         u.Notes,
		"timestamp":     created.Time().UTC().Format(time.RFC3339Nano),
	}
	if animal.EarTag != nil {
		meta["ear_tag"] = *animal.EarTag
	}
	if u.DeviceID != nil {
		meta["device_id"] = *u.DeviceID
	}
	if u.VeterinarianWallet != nil {
		meta["veterinarian_wallet"] = u.VeterinarianWallet
	}
	if u.Biometrics.Temperature != nil {
		meta["temperature"] = *u.Biometrics.Temperature
	}
	if u.Biometrics.HeartRate != nil {
		meta["heart_rate"] = *u.Biometrics.HeartRate
	}
	if len(u.Anomalies) > 0 {
		meta["anomalies"] = u.Anomalies
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return gctypes.Bytes32{}, err
	}
	return gctypes.Keccak256(b), nil
}

func (tm *txManager) UpdateHealth(ctx context.Context, update *HealthUpdate) (gctypes.TxHash, error) {
	if update.AnimalID == "" {
		return gctypes.TxHash{}, i18n.NewError(ctx, msgs.MsgOpMissingField, "animalId")
	}
	if update.Status == "" {
		return gctypes.TxHash{}, i18n.NewError(ctx, msgs.MsgOpMissingField, "status")
	}
	status, err := gctypes.Enum[model.HealthStatus](update.Status).Validate()
	if err != nil {
		return gctypes.TxHash{}, err
	}
	source := model.SourceSystem
	if update.Source != "" {
		if source, err = gctypes.Enum[model.RecordSource](update.Source).Validate(); err != nil {
			return gctypes.TxHash{}, err
		}
	}
	u := *update
	u.Status = status
	u.Source = source

	animal, err := tm.requireAnimal(ctx, u.AnimalID)
	if err != nil {
		return gctypes.TxHash{}, err
	}
	if !animal.Confirmed() {
		return gctypes.TxHash{}, i18n.NewError(ctx, msgs.MsgOpAnimalNotMinted, animal.ID)
	}

	created := gctypes.TimestampNow()
	metadataHash, err := healthMetadataHash(animal, &u, created)
	if err != nil {
		return gctypes.TxHash{}, err
	}
	entry, err := tm.outbox.Insert(ctx, tm.p.NOTX(), model.OpUpdateHealth, animal.ID, &healthPayload{
		Update:         &u,
		RecordID:       uuid.New().String(),
		TokenID:        *animal.OnChainID,
		OperationalURI: healthURIPrefix + metadataHash.String(),
		MetadataHash:   metadataHash,
		Created:        created,
	})
	if err != nil {
		return gctypes.TxHash{}, err
	}
	return tm.dispatchInline(ctx, entry, tm.dispatchHealth)
}

func (tm *txManager) dispatchHealth(ctx context.Context, entry *model.OutboxEntry) (*gctypes.TxHash, error) {
	var p healthPayload
	if err := decodePayload(ctx, entry, &p); err != nil {
		return nil, err
	}
	tokenID, err := parseTokenID(ctx, p.TokenID)
	if err != nil {
		return nil, err
	}
	u := p.Update
	anomalies, _ := json.Marshal(u.Anomalies)
	return tm.send(ctx, entry, &contractCall{
		binding:      tm.cc.NFT(),
		function:     "updateOperational",
		args:         []interface{}{tokenID, p.OperationalURI},
		contractType: model.ContractNFT,
		action:       model.ActionUpdate,
		params:       &p,
		persist: func(ctx context.Context, dbTX persistence.DBTX, signed *signer.SignedTransaction) error {
			return dbTX.DB().WithContext(ctx).Create(&model.HealthRecord{
				ID:                 p.RecordID,
				AnimalID:           u.AnimalID,
				HealthStatus:       gctypes.Enum[model.HealthStatus](u.Status),
				Source:             gctypes.Enum[model.RecordSource](u.Source),
				DeviceID:           u.DeviceID,
				VeterinarianWallet: u.VeterinarianWallet,
				Temperature:        u.Biometrics.Temperature,
				HeartRate:          u.Biometrics.HeartRate,
				MovementActivity:   u.Biometrics.Movement,
				Latitude:           u.Biometrics.Latitude,
				Longitude:          u.Biometrics.Longitude,
				GPSAccuracy:        u.Biometrics.GPSAccuracy,
				Notes:              u.Notes,
				Anomalies:          string(anomalies),
				MetadataHash:       &p.MetadataHash,
				TxHash:             &signed.Hash,
				Created:            p.Created,
			}).Error
		},
	})
}

// BatchHash is keccak256 of the sort-keyed JSON of the change
func BatchHash(batchID string, newStatus model.BatchStatus, notes string, ts gctypes.Timestamp) (gctypes.Bytes32, error) {
	b, err := json.Marshal(map[string]interface{}{
		"batch_id":   batchID,
		"new_status": newStatus,
		"notes":      notes,
		"timestamp":  ts.Time().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return gctypes.Bytes32{}, err
	}
	return gctypes.Keccak256(b), nil
}

func (tm *txManager) UpdateBatchStatus(ctx context.Context, batchID string, newStatus model.BatchStatus, notes string) (*BatchStatusResult, error) {
	if newStatus == "" {
		return nil, i18n.NewError(ctx, msgs.MsgOpMissingField, "status")
	}
	status, err := gctypes.Enum[model.BatchStatus](newStatus).Validate()
	if err != nil {
		return nil, err
	}
	batch, err := tm.getBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, i18n.NewError(ctx, msgs.MsgOpBatchNotFound, batchID)
	}
	if batch.OnChainID == nil {
		return nil, i18n.NewError(ctx, msgs.MsgOpBatchNotOnChain, batchID)
	}
	batchHash, err := BatchHash(batchID, status, notes, gctypes.TimestampNow())
	if err != nil {
		return nil, err
	}
	entry, err := tm.outbox.Insert(ctx, tm.p.NOTX(), model.OpUpdateBatchStatus, batchID, &batchPayload{
		BatchID:   batchID,
		OnChainID: *batch.OnChainID,
		Change: reconciler.BatchChange{
			OldStatus: batch.Status.V(),
			NewStatus: status,
			BatchHash: batchHash,
			Notes:     notes,
		},
	})
	if err != nil {
		return nil, err
	}
	hash, err := tm.dispatchInline(ctx, entry, tm.dispatchBatch)
	if err != nil {
		return nil, err
	}

	result := &BatchStatusResult{TxHash: &hash, BatchHash: batchHash}
	c, err := tm.confirmer.Confirm(ctx, hash, tm.confirmer.ConfirmTimeout())
	if err != nil {
		// a timeout is not a failure, the record stays PENDING
		log.L(ctx).Warnf("Batch %s status update %s unconfirmed (%s): %s", batchID, hash, gcerrors.Kind(err), err)
		result.Error = err.Error()
		return result, nil
	}
	// the confirmer listener may get there first, in which case this is a no-op
	if _, err := tm.settle(ctx, c); err != nil {
		log.L(ctx).Errorf("Settlement of %s failed: %s", hash, err)
	}
	result.Success = c.Success
	result.BlockNumber = c.BlockNumber
	if cerr := c.Err(ctx); cerr != nil {
		result.Error = cerr.Error()
	}
	return result, nil
}

func (tm *txManager) dispatchBatch(ctx context.Context, entry *model.OutboxEntry) (*gctypes.TxHash, error) {
	var p batchPayload
	if err := decodePayload(ctx, entry, &p); err != nil {
		return nil, err
	}
	onChainID, err := parseTokenID(ctx, p.OnChainID)
	if err != nil {
		return nil, err
	}
	return tm.send(ctx, entry, &contractCall{
		binding:      tm.cc.Registry(),
		function:     "updateBatchStatus",
		args:         []interface{}{onChainID, string(p.Change.NewStatus), p.Change.BatchHash.String()},
		contractType: model.ContractRegistry,
		action:       model.ActionBatchStatus,
		params:       &p,
	})
}
