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
	"errors"
	"math/big"
	"regexp"

	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/reconciler"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
)

type MintAnimalRequest struct {
	AnimalID       string  `json:"animalId"`
	EarTag         *string `json:"earTag,omitempty"`
	OwnerWallet    string  `json:"ownerWallet"`
	MetadataURI    string  `json:"metadataUri"`
	OperationalURI string  `json:"operationalUri,omitempty"`
}

type Biometrics struct {
	Temperature *float64 `json:"temperature,omitempty"`
	HeartRate   *float64 `json:"heart_rate,omitempty"`
	Movement    *float64 `json:"movement_activity,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	GPSAccuracy *float64 `json:"gps_accuracy,omitempty"`
}

// HealthUpdate is the one parameter contract for every health update, whether
// it comes from a veterinarian, a farmer or a sensor.
type HealthUpdate struct {
	AnimalID           string              `json:"animalId"`
	Status             model.HealthStatus  `json:"status"`
	Source             model.RecordSource  `json:"source"`
	DeviceID           *string             `json:"deviceId,omitempty"`
	VeterinarianWallet *gctypes.EthAddress `json:"veterinarianWallet,omitempty"`
	Biometrics         Biometrics          `json:"biometrics"`
	Notes              string              `json:"notes,omitempty"`
	Anomalies          []string            `json:"anomalies,omitempty"`
}

type BatchStatusResult struct {
	Success     bool            `json:"success"`
	TxHash      *gctypes.TxHash `json:"txHash,omitempty"`
	BlockNumber uint64          `json:"blockNumber,omitempty"`
	BatchHash   gctypes.Bytes32 `json:"batchHash"`
	Error       string          `json:"error,omitempty"`
}

// TransactionStatus is the caller view of a pool record
type TransactionStatus struct {
	Hash         gctypes.TxHash    `json:"hash"`
	Operation    model.Operation   `json:"operation"`
	SubjectID    *string           `json:"subjectId,omitempty"`
	Status       model.TxStatus    `json:"status"`
	Nonce        uint64            `json:"nonce"`
	BlockNumber  *uint64           `json:"blockNumber,omitempty"`
	GasUsed      *uint64           `json:"gasUsed,omitempty"`
	RetryCount   int               `json:"retryCount"`
	ErrorMessage *string           `json:"error,omitempty"`
	ExplorerURL  string            `json:"explorerUrl,omitempty"`
	Created      gctypes.Timestamp `json:"created"`
	Updated      gctypes.Timestamp `json:"updated"`
}

// TxNotification is delivered to listeners once a confirmation has been settled off-chain
type TxNotification struct {
	Hash        gctypes.TxHash     `json:"hash"`
	Operation   model.Operation    `json:"operation"`
	SubjectID   *string            `json:"subjectId,omitempty"`
	Status      model.TxStatus     `json:"status"`
	Outcome     reconciler.Outcome `json:"outcome,omitempty"`
	BlockNumber uint64             `json:"blockNumber,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// Listener is called from a confirmer worker goroutine, so must not block for long
type Listener func(ctx context.Context, n *TxNotification)

type NFTVerification struct {
	AnimalID      string              `json:"animalId"`
	TokenID       string              `json:"tokenId"`
	Owner         *gctypes.EthAddress `json:"owner,omitempty"`
	ExpectedOwner gctypes.EthAddress  `json:"expectedOwner"`
	TokenURI      string              `json:"tokenUri"`
	OwnerMatches  bool                `json:"ownerMatches"`
	URIMatches    bool                `json:"uriMatches"`
	Verified      bool                `json:"verified"`
}

type TransferEvent struct {
	From        gctypes.EthAddress `json:"from"`
	To          gctypes.EthAddress `json:"to"`
	TxHash      gctypes.TxHash     `json:"txHash"`
	BlockNumber uint64             `json:"blockNumber"`
	Timestamp   gctypes.Timestamp  `json:"timestamp"`
}

type NetworkStatus struct {
	ChainID      int64                    `json:"chainId"`
	BlockNumber  uint64                   `json:"blockNumber"`
	GasPrice     *big.Int                 `json:"gasPrice"`
	Signer       gctypes.EthAddress       `json:"signer"`
	Balance      *big.Int                 `json:"balance"`
	NextNonce    uint64                   `json:"nextNonce"`
	PoolCounts   map[model.TxStatus]int64 `json:"poolCounts"`
	TrackedCount int                      `json:"tracked"`
}

// Result is the structured form handed to callers outside the trust boundary
type Result struct {
	Success bool                   `json:"success"`
	TxHash  string                 `json:"txHash,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Kind    string                 `json:"kind,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

const ContextAuthenticated = "authenticated"

// addresses and hashes
var chainHexRegex = regexp.MustCompile(`0x[0-9a-fA-F]{40,64}`)

// Redact replaces hashes and addresses, for text shown to unauthenticated callers
func Redact(s string) string {
	return chainHexRegex.ReplaceAllString(s, "[redacted]")
}

func authenticated(rctx map[string]interface{}) bool {
	v, ok := rctx[ContextAuthenticated].(bool)
	return ok && v
}

func ResultFromHash(hash gctypes.TxHash, rctx map[string]interface{}) *Result {
	r := &Result{Success: true, Context: rctx}
	if authenticated(rctx) {
		r.TxHash = hash.String()
	}
	return r
}

// ResultFromError redacts hashes and addresses from the message unless the caller is authenticated
func ResultFromError(err error, rctx map[string]interface{}) *Result {
	r := &Result{
		Success: false,
		Error:   err.Error(),
		Kind:    gcerrors.Kind(err),
		Context: rctx,
	}
	if !authenticated(rctx) {
		r.Error = Redact(r.Error)
		return r
	}
	var rf *gcerrors.ReceiptFailure
	var ct *gcerrors.ConfirmationTimeout
	var nf *gcerrors.EventNotFound
	switch {
	case errors.As(err, &rf):
		r.TxHash = rf.TxHash
	case errors.As(err, &ct):
		r.TxHash = ct.TxHash
	case errors.As(err, &nf):
		r.TxHash = nf.TxHash
	}
	return r
}
