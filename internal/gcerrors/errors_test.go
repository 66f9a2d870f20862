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

package gcerrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
)

func TestKinds(t *testing.T) {
	ctx := context.Background()
	cause := fmt.Errorf("pop")

	err := Configuration(ctx, msgs.MsgConfigRPCURLMissing)
	assert.Regexp(t, "GC010003", err)
	assert.Equal(t, "ConfigurationError", Kind(err))
	assert.False(t, IsRetryable(err))

	err = WrapConfiguration(ctx, cause, msgs.MsgConfigSignerKeyInvalid, "keyFile")
	assert.Regexp(t, "GC010010.*pop", err)
	assert.ErrorIs(t, err, cause)

	err = WrapSigning(ctx, cause, msgs.MsgSigningFailed, 12)
	assert.Regexp(t, "GC010100", err)
	assert.Equal(t, "SigningError", Kind(err))
	assert.False(t, IsRetryable(err))

	err = Broadcast(ctx, ReasonNonceTooLow, msgs.MsgBroadcastFailed, "0x01", ReasonNonceTooLow, "nonce too low")
	assert.Equal(t, "BroadcastError", Kind(err))
	assert.True(t, IsRetryable(err))
	var be *BroadcastError
	assert.True(t, errors.As(err, &be))
	assert.Equal(t, ReasonNonceTooLow, be.Reason)

	err = Broadcast(ctx, ReasonReverted, msgs.MsgBroadcastFailed, "0x01", ReasonReverted, "execution reverted")
	assert.False(t, IsRetryable(err))

	err = Timeout(ctx, "0x01", msgs.MsgConfirmationTimeout, "0x01", "1s")
	assert.Equal(t, "ConfirmationTimeout", Kind(err))
	assert.True(t, IsRetryable(err))

	err = Receipt(ctx, "0x01", 10, "boom", msgs.MsgReceiptFailure, "0x01", "10", "boom")
	assert.Equal(t, "ReceiptFailure", Kind(err))
	assert.False(t, IsRetryable(err))

	err = NotFound(ctx, "0x01", "AnimalMinted", msgs.MsgEventNotFound, "AnimalMinted", "0x01")
	assert.Equal(t, "EventNotFound", Kind(fmt.Errorf("wrapped: %w", err)))

	assert.Equal(t, "", Kind(cause))
}

func TestMapReason(t *testing.T) {
	for msg, reason := range map[string]BroadcastReason{
		"nonce too low":                                     ReasonNonceTooLow,
		"Nonce too low: next nonce 5":                       ReasonNonceTooLow,
		"insufficient funds for gas * price + value":        ReasonInsufficientFunds,
		"transaction underpriced":                           ReasonUnderpriced,
		"replacement transaction underpriced":               ReasonUnderpriced,
		"already known":                                     ReasonKnownTransaction,
		"known transaction: 0xabc":                          ReasonKnownTransaction,
		"execution reverted: AccessControl: account":        ReasonReverted,
		"VM Exception while processing transaction: revert": ReasonReverted,
		"connection refused":                                ReasonUnknown,
	} {
		assert.Equal(t, reason, MapReason(fmt.Errorf("%s", msg)), msg)
	}
	assert.Equal(t, ReasonUnknown, MapReason(nil))
}
