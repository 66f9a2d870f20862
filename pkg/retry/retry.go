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

package retry

import (
	"context"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

// Retry is an exponential backoff policy. It is used both for blocking retry
// loops (Do) and for computing the next scheduled attempt of persisted work (Delay).
type Retry struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	factor       float64
	maxAttempts  int
}

func NewRetryIndefinite(conf *gcconf.RetryConfig, defaults ...*gcconf.RetryConfig) *Retry {
	def := &gcconf.GenericRetryDefaults.RetryConfig
	if len(defaults) > 0 {
		def = defaults[0]
	}
	return &Retry{
		initialDelay: confutil.DurationMin(conf.InitialDelay, 0, *def.InitialDelay),
		maxDelay:     confutil.DurationMin(conf.MaxDelay, 0, *def.MaxDelay),
		factor:       confutil.Float64Min(conf.Factor, 1.0, *def.Factor),
	}
}

func NewRetryLimited(conf *gcconf.RetryConfigWithMax, defaults ...*gcconf.RetryConfigWithMax) *Retry {
	def := gcconf.GenericRetryDefaults
	if len(defaults) > 0 {
		def = defaults[0]
	}
	r := NewRetryIndefinite(&conf.RetryConfig, &def.RetryConfig)
	r.maxAttempts = confutil.IntMin(conf.MaxAttempts, 0, *def.MaxAttempts)
	return r
}

// Do calls fn until it succeeds, reports the error as not retryable, or the attempts run out.
// Results travel through the closure.
func (r *Retry) Do(ctx context.Context, fn func(attempt int) (retryable bool, err error)) error {
	for attempt := 1; ; attempt++ {
		retryable, err := fn(attempt)
		if err == nil {
			return nil
		}
		log.L(ctx).Errorf("%s (attempt=%d)", err, attempt)
		if !retryable || (r.maxAttempts > 0 && attempt >= r.maxAttempts) {
			return err
		}
		if err := r.WaitDelay(ctx, attempt); err != nil {
			return err
		}
	}
}

// Delay is the backoff after failureCount consecutive failures (zero for none)
func (r *Retry) Delay(failureCount int) time.Duration {
	if failureCount <= 0 {
		return 0
	}
	d := r.initialDelay
	for i := 1; i < failureCount; i++ {
		d = time.Duration(float64(d) * r.factor)
		if d > r.maxDelay {
			return r.maxDelay
		}
	}
	if d > r.maxDelay {
		return r.maxDelay
	}
	return d
}

func (r *Retry) WaitDelay(ctx context.Context, failureCount int) error {
	d := r.Delay(failureCount)
	if d == 0 {
		return nil
	}
	log.L(ctx).Debugf("Retrying after %.2fs (failures=%d)", d.Seconds(), failureCount)
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return i18n.NewError(ctx, msgs.MsgContextCanceled)
	}
}

func (r *Retry) MaxAttempts() int {
	return r.maxAttempts
}

// UTSetMaxAttempts is for unit tests that need an indefinite retry to give up
func (r *Retry) UTSetMaxAttempts(maxAttempts int) {
	r.maxAttempts = maxAttempts
}
