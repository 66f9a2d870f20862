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

// SignerConfig selects exactly one key source, checked in the order keyFile, keystore, mnemonic
type SignerConfig struct {
	KeyFile   *string              `json:"keyFile"`
	Keystore  *KeystoreConfig      `json:"keystore"`
	Mnemonic  *MnemonicConfig      `json:"mnemonic"`
	Queue     *int                 `json:"queueLength"`
	Reconcile NonceReconcileConfig `json:"reconcile"`
}

type KeystoreConfig struct {
	File         string `json:"file"`
	PasswordFile string `json:"passwordFile"`
}

type MnemonicConfig struct {
	// the mnemonic phrase itself, or empty when File is set
	Phrase string  `json:"phrase"`
	File   string  `json:"file"`
	Path   *string `json:"path"`
}

type NonceReconcileConfig struct {
	Retry RetryConfigWithMax `json:"retry"`
}

var SignerDefaults = &SignerConfig{
	Queue: confutil.P(100),
	Reconcile: NonceReconcileConfig{
		Retry: RetryConfigWithMax{
			RetryConfig: GenericRetryDefaults.RetryConfig,
			MaxAttempts: confutil.P(5),
		},
	},
}

const DefaultHDPath = "m/44'/60'/0'/0/0"
