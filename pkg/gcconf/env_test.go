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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvSignerKeyFile:              "/secrets/key.hex",
		EnvSignerKeystoreFile:         "/secrets/keystore.json",
		EnvSignerKeystorePasswordFile: "/secrets/keystore.pass",
		EnvSignerMnemonicFile:         "/secrets/mnemonic",
		EnvDBPasswordFile:             "/secrets/db.pass",
		EnvStatusAPIAuthTokenFile:     "/secrets/api.token",
	}
	conf := &GanadoConfig{}
	conf.Signer.Mnemonic = &MnemonicConfig{Phrase: "kept"}
	ApplyEnvOverrides(conf, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "/secrets/key.hex", *conf.Signer.KeyFile)
	assert.Equal(t, "/secrets/keystore.json", conf.Signer.Keystore.File)
	assert.Equal(t, "/secrets/keystore.pass", conf.Signer.Keystore.PasswordFile)
	assert.Equal(t, "/secrets/mnemonic", conf.Signer.Mnemonic.File)
	assert.Equal(t, "kept", conf.Signer.Mnemonic.Phrase)
	assert.Equal(t, "/secrets/db.pass", conf.DB.DSNParams["password"].File)
	assert.Equal(t, "/secrets/api.token", *conf.StatusAPI.AuthTokenFile)
}

func TestApplyEnvOverridesNone(t *testing.T) {
	conf := &GanadoConfig{}
	ApplyEnvOverrides(conf, func(k string) (string, bool) { return "", false })
	assert.Nil(t, conf.Signer.KeyFile)
	assert.Nil(t, conf.Signer.Keystore)
	assert.Nil(t, conf.DB.DSNParams)
	assert.Nil(t, conf.StatusAPI.AuthTokenFile)
}
