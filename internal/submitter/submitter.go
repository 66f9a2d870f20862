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

// Package submitter broadcasts signed transactions and follows them to a receipt.
package submitter

import (
	"context"

	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/signer"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/txbuilder"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/retry"
)

type Submitter interface {
	// Submit returns the locally calculated hash, or a *gcerrors.BroadcastError
	Submit(ctx context.Context, signed *signer.SignedTransaction) (gctypes.TxHash, error)
}

type submitter struct {
	cc        chainclient.ChainClient
	gasPricer txbuilder.GasPricer
	metrics   metrics.Metrics
	retry     *retry.Retry
}

func NewSubmitter(conf *gcconf.SubmitterConfig, cc chainclient.ChainClient, gasPricer txbuilder.GasPricer, m metrics.Metrics) Submitter {
	return &submitter{
		cc:        cc,
		gasPricer: gasPricer,
		metrics:   m,
		retry:     retry.NewRetryLimited(&conf.Retry, &gcconf.SubmitterDefaults.Retry),
	}
}

func (s *submitter) Submit(ctx context.Context, signed *signer.SignedTransaction) (gctypes.TxHash, error) {
	calculatedHash := signed.Hash
	if len(signed.RawPayload) == 0 {
		return calculatedHash, gcerrors.Broadcast(ctx, gcerrors.ReasonUnknown, msgs.MsgBroadcastNoRawPayload, calculatedHash)
	}
	log.L(ctx).Debugf("Sending raw transaction %s nonce=%d", calculatedHash, signed.Nonce)

	var submitErr error
	retryErr := s.retry.Do(ctx, func(attempt int) (bool, error) {
		txHash, err := s.cc.SendRawTransaction(ctx, signed.RawPayload)
		if err == nil {
			if txHash != nil && *txHash != calculatedHash {
				// we cannot be sure which transaction the node accepted
				submitErr = gcerrors.Broadcast(ctx, gcerrors.ReasonUnknown, msgs.MsgBroadcastHashMismatch, txHash, calculatedHash)
				return false, nil
			}
			log.L(ctx).Infof("Transaction %s submitted nonce=%d", calculatedHash, signed.Nonce)
			return false, nil
		}
		reason := gcerrors.MapReason(err)
		switch reason {
		case gcerrors.ReasonKnownTransaction:
			log.L(ctx).Debugf("Transaction %s already known to the node: %s", calculatedHash, err)
			return false, nil
		case gcerrors.ReasonUnderpriced:
			s.gasPricer.DeleteCache()
			log.L(ctx).Debug("Underpriced, removed gas price cache")
		case gcerrors.ReasonUnknown:
			s.metrics.IncBroadcastError(string(reason))
			return true, gcerrors.Broadcast(ctx, reason, msgs.MsgBroadcastFailed, calculatedHash, reason, err.Error())
		}
		// the node has judged the payload itself, so sending it again is pointless
		s.metrics.IncBroadcastError(string(reason))
		submitErr = gcerrors.Broadcast(ctx, reason, msgs.MsgBroadcastFailed, calculatedHash, reason, err.Error())
		return false, nil
	})
	if retryErr != nil {
		return calculatedHash, retryErr
	}
	return calculatedHash, submitErr
}
