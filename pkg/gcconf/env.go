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

import "os"

const EnvPrefix = "GANADO_"

// Only secret file locations are taken from the environment, so they can come from a mounted volume
const (
	EnvSignerKeyFile              = EnvPrefix + "SIGNER_KEYFILE"
	EnvSignerKeystoreFile         = EnvPrefix + "SIGNER_KEYSTORE_FILE"
	EnvSignerKeystorePasswordFile = EnvPrefix + "SIGNER_KEYSTORE_PASSWORDFILE"
	EnvSignerMnemonicFile         = EnvPrefix + "SIGNER_MNEMONIC_FILE"
	EnvDBPasswordFile             = EnvPrefix + "DB_PASSWORD_FILE"
	EnvStatusAPIAuthTokenFile     = EnvPrefix + "STATUSAPI_AUTHTOKEN_FILE"
)

// ApplyEnvOverrides uses os.LookupEnv when lookup is nil
func ApplyEnvOverrides(conf *GanadoConfig, lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvSignerKeyFile); ok {
		conf.Signer.KeyFile = &v
	}
	if v, ok := lookup(EnvSignerKeystoreFile); ok {
		if conf.Signer.Keystore == nil {
			conf.Signer.Keystore = &KeystoreConfig{}
		}
		conf.Signer.Keystore.File = v
	}
	if v, ok := lookup(EnvSignerKeystorePasswordFile); ok {
		if conf.Signer.Keystore == nil {
			conf.Signer.Keystore = &KeystoreConfig{}
		}
		conf.Signer.Keystore.PasswordFile = v
	}
	if v, ok := lookup(EnvSignerMnemonicFile); ok {
		if conf.Signer.Mnemonic == nil {
			conf.Signer.Mnemonic = &MnemonicConfig{}
		}
		conf.Signer.Mnemonic.File = v
	}
	if v, ok := lookup(EnvDBPasswordFile); ok {
		if conf.DB.DSNParams == nil {
			conf.DB.DSNParams = map[string]DSNParamLocation{}
		}
		conf.DB.DSNParams["password"] = DSNParamLocation{File: v}
	}
	if v, ok := lookup(EnvStatusAPIAuthTokenFile); ok {
		conf.StatusAPI.AuthTokenFile = &v
	}
}
