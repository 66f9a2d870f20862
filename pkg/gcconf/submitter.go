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

package gcconf

import "github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"

type SubmitterConfig struct {
	Retry RetryConfigWithMax `json:"retry"`
	// how many times a first broadcast moves to a fresh nonce after the node reports its nonce used
	NonceReallocations *int `json:"nonceReallocations"`
}

var SubmitterDefaults = &SubmitterConfig{
	NonceReallocations: confutil.P(3),
	Retry: RetryConfigWithMax{
		RetryConfig: RetryConfig{
			InitialDelay: confutil.P("250ms"),
			MaxDelay:     confutil.P("10s"),
			Factor:       confutil.P(4.0),
		},
		MaxAttempts: confutil.P(3),
	},
}

type ConfirmerConfig struct {
	WorkerCount    *int    `json:"workerCount"`
	QueueLength    *int    `json:"queueLength"`
	PollInterval   *string `json:"pollInterval"`
	ConfirmTimeout *string `json:"confirmTimeout"`
}

var ConfirmerDefaults = &ConfirmerConfig{
	WorkerCount:    confutil.P(4),
	QueueLength:    confutil.P(1000),
	PollInterval:   confutil.P("2s"),
	ConfirmTimeout: confutil.P("120s"),
}

type TxPoolConfig struct {
	SweepInterval *string     `json:"sweepInterval"`
	StaleAfter    *string     `json:"staleAfter"`
	MaxRetries    *int        `json:"maxRetries"`
	BatchSize     *int        `json:"batchSize"`
	Retry         RetryConfig `json:"retry"`
}

var TxPoolDefaults = &TxPoolConfig{
	SweepInterval: confutil.P("30s"),
	StaleAfter:    confutil.P("2m"),
	MaxRetries:    confutil.P(5),
	BatchSize:     confutil.P(50),
	Retry: RetryConfig{
		InitialDelay: confutil.P("30s"),
		MaxDelay:     confutil.P("30m"),
		Factor:       confutil.P(2.0),
	},
}

type OutboxConfig struct {
	DispatchInterval *string `json:"dispatchInterval"`
	// entries younger than this are still owned by the inline caller
	DispatchDelay *string `json:"dispatchDelay"`
	BatchSize     *int    `json:"batchSize"`
	MaxAttempts   *int    `json:"maxAttempts"`
}

var OutboxDefaults = &OutboxConfig{
	DispatchInterval: confutil.P("15s"),
	DispatchDelay:    confutil.P("30s"),
	BatchSize:        confutil.P(25),
	MaxAttempts:      confutil.P(5),
}
