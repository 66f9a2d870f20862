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

// Package gcerrors holds the typed error taxonomy of the transaction lifecycle.
// Every type wraps an i18n coded error, so the message key survives errors.As
// and callers can switch on the type to decide what is retryable.
package gcerrors

import (
	"context"
	"errors"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// ConfigurationError is fatal at startup
type ConfigurationError struct{ Err error }

func (e *ConfigurationError) Error() string { return e.Err.Error() }
func (e *ConfigurationError) Unwrap() error { return e.Err }

func Configuration(ctx context.Context, key i18n.ErrorMessageKey, inserts ...interface{}) error {
	return &ConfigurationError{Err: i18n.NewError(ctx, key, inserts...)}
}

func WrapConfiguration(ctx context.Context, err error, key i18n.ErrorMessageKey, inserts ...interface{}) error {
	return &ConfigurationError{Err: i18n.WrapError(ctx, err, key, inserts...)}
}

// SigningError is scoped to a single transaction and is not retried
type SigningError struct{ Err error }

func (e *SigningError) Error() string { return e.Err.Error() }
func (e *SigningError) Unwrap() error { return e.Err }

func Signing(ctx context.Context, key i18n.ErrorMessageKey, inserts ...interface{}) error {
	return &SigningError{Err: i18n.NewError(ctx, key, inserts...)}
}

func WrapSigning(ctx context.Context, err error, key i18n.ErrorMessageKey, inserts ...interface{}) error {
	return &SigningError{Err: i18n.WrapError(ctx, err, key, inserts...)}
}

// BroadcastReason classifies a JSON-RPC submission rejection
type BroadcastReason string

const (
	ReasonNonceTooLow       BroadcastReason = "nonce_too_low"
	ReasonInsufficientFunds BroadcastReason = "insufficient_funds"
	ReasonUnderpriced       BroadcastReason = "transaction_underpriced"
	ReasonReverted          BroadcastReason = "execution_reverted"
	ReasonKnownTransaction  BroadcastReason = "known_transaction"
	ReasonUnknown           BroadcastReason = "unknown"
)

// MapReason classifies a node error message. Unrecognized messages map to ReasonUnknown.
func MapReason(err error) BroadcastReason {
	if err == nil {
		return ReasonUnknown
	}
	errString := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errString, "nonce too low"):
		return ReasonNonceTooLow
	case strings.Contains(errString, "insufficient funds"):
		return ReasonInsufficientFunds
	case strings.Contains(errString, "underpriced"):
		return ReasonUnderpriced
	case strings.Contains(errString, "known transaction"),
		strings.Contains(errString, "already known"):
		return ReasonKnownTransaction
	case strings.Contains(errString, "execution reverted"),
		strings.Contains(errString, "revert"):
		return ReasonReverted
	default:
		return ReasonUnknown
	}
}

// BroadcastError is retryable unless the node reports the call reverted
type BroadcastError struct {
	Err    error
	Reason BroadcastReason
}

func (e *BroadcastError) Error() string { return e.Err.Error() }
func (e *BroadcastError) Unwrap() error { return e.Err }
func (e *BroadcastError) Retryable() bool {
	return e.Reason != ReasonReverted
}

func Broadcast(ctx context.Context, reason BroadcastReason, key i18n.ErrorMessageKey, inserts ...interface{}) error {
	return &BroadcastError{Reason: reason, Err: i18n.NewError(ctx, key, inserts...)}
}

// WrapBroadcast keeps err (and its message) as the cause
func WrapBroadcast(reason BroadcastReason, err error) error {
	return &BroadcastError{Reason: reason, Err: err}
}

// ConfirmationTimeout means the outcome is unknown. It is never a failure.
type ConfirmationTimeout struct {
	Err    error
	TxHash string
}

func (e *ConfirmationTimeout) Error() string { return e.Err.Error() }
func (e *ConfirmationTimeout) Unwrap() error { return e.Err }

func Timeout(ctx context.Context, txHash string, key i18n.ErrorMessageKey, inserts ...interface{}) error {
	return &ConfirmationTimeout{TxHash: txHash, Err: i18n.NewError(ctx, key, inserts...)}
}

// ReceiptFailure is terminal: the transaction was mined with a failed status
type ReceiptFailure struct {
	Err          error
	TxHash       string
	BlockNumber  uint64
	RevertReason string
}

func (e *ReceiptFailure) Error() string { return e.Err.Error() }
func (e *ReceiptFailure) Unwrap() error { return e.Err }

func Receipt(ctx context.Context, txHash string, blockNumber uint64, revertReason string, key i18n.ErrorMessageKey, inserts ...interface{}) error {
	return &ReceiptFailure{
		TxHash:       txHash,
		BlockNumber:  blockNumber,
		RevertReason: revertReason,
		Err:          i18n.NewError(ctx, key, inserts...),
	}
}

// EventNotFound flags a successful receipt without the expected event
type EventNotFound struct {
	Err    error
	TxHash string
	Event  string
}

func (e *EventNotFound) Error() string { return e.Err.Error() }
func (e *EventNotFound) Unwrap() error { return e.Err }

func NotFound(ctx context.Context, txHash, event string, key i18n.ErrorMessageKey, inserts ...interface{}) error {
	return &EventNotFound{TxHash: txHash, Event: event, Err: i18n.NewError(ctx, key, inserts...)}
}

// Kind returns the taxonomy name of err, or "" for an unclassified error
func Kind(err error) string {
	var (
		ce *ConfigurationError
		se *SigningError
		be *BroadcastError
		ct *ConfirmationTimeout
		rf *ReceiptFailure
		en *EventNotFound
	)
	switch {
	case errors.As(err, &ce):
		return "ConfigurationError"
	case errors.As(err, &se):
		return "SigningError"
	case errors.As(err, &be):
		return "BroadcastError"
	case errors.As(err, &ct):
		return "ConfirmationTimeout"
	case errors.As(err, &rf):
		return "ReceiptFailure"
	case errors.As(err, &en):
		return "EventNotFound"
	}
	return ""
}

// IsRetryable reports whether the same operation may be attempted again
func IsRetryable(err error) bool {
	var be *BroadcastError
	if errors.As(err, &be) {
		return be.Retryable()
	}
	var ct *ConfirmationTimeout
	return errors.As(err, &ct)
}
