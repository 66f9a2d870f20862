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

package signer

import (
	"context"
	"encoding/hex"
	"os"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/hyperledger/firefly-signer/pkg/keystorev3"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/tyler-smith/go-bip39"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

const hardenedKeyStart = 0x80000000

// LoadKey resolves the operator key from the first configured source: keyFile, keystore, mnemonic
func LoadKey(ctx context.Context, conf *gcconf.SignerConfig) (*secp256k1.KeyPair, error) {
	var privateKey []byte
	var source string
	var err error
	switch {
	case conf.KeyFile != nil && *conf.KeyFile != "":
		source = *conf.KeyFile
		privateKey, err = loadHexKeyFile(source)
	case conf.Keystore != nil && conf.Keystore.File != "":
		source = conf.Keystore.File
		privateKey, err = loadKeystore(conf.Keystore)
	case conf.Mnemonic != nil && (conf.Mnemonic.Phrase != "" || conf.Mnemonic.File != ""):
		source = "mnemonic"
		if conf.Mnemonic.File != "" {
			source = conf.Mnemonic.File
		}
		privateKey, err = loadMnemonic(ctx, conf.Mnemonic)
	default:
		return nil, gcerrors.Configuration(ctx, msgs.MsgConfigSignerKeyMissing)
	}
	if err != nil {
		return nil, gcerrors.WrapConfiguration(ctx, err, msgs.MsgConfigSignerKeyInvalid, source)
	}
	if len(privateKey) != 32 {
		return nil, gcerrors.Configuration(ctx, msgs.MsgSignerUnsupportedCurve, source)
	}
	kp := secp256k1.KeyPairFromBytes(privateKey)
	log.L(ctx).Infof("Operator key loaded from %s: %s", source, kp.Address)
	return kp, nil
}

func loadHexKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	keyHex := strings.TrimSpace(string(data))
	keyHex = strings.TrimPrefix(strings.TrimPrefix(keyHex, "0x"), "0X")
	return hex.DecodeString(keyHex)
}

func loadKeystore(conf *gcconf.KeystoreConfig) ([]byte, error) {
	keyData, err := os.ReadFile(conf.File)
	if err != nil {
		return nil, err
	}
	var passData []byte
	if conf.PasswordFile != "" {
		if passData, err = os.ReadFile(conf.PasswordFile); err != nil {
			return nil, err
		}
	}
	wf, err := keystorev3.ReadWalletFile(keyData, []byte(strings.TrimRight(string(passData), "\r\n")))
	if err != nil {
		return nil, err
	}
	return wf.PrivateKey(), nil
}

func loadMnemonic(ctx context.Context, conf *gcconf.MnemonicConfig) ([]byte, error) {
	phrase := conf.Phrase
	if conf.File != "" {
		data, err := os.ReadFile(conf.File)
		if err != nil {
			return nil, err
		}
		phrase = string(data)
	}
	phrase = strings.Join(strings.Fields(phrase), " ")
	seed, err := bip39.NewSeedWithErrorChecking(phrase, "")
	if err != nil {
		return nil, err
	}
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	path := gcconf.DefaultHDPath
	if conf.Path != nil && *conf.Path != "" {
		path = *conf.Path
	}
	return deriveHDPrivateKey(ctx, master, path)
}

func deriveHDPrivateKey(ctx context.Context, master *hdkeychain.ExtendedKey, path string) ([]byte, error) {
	path = strings.ReplaceAll(path, " ", "")
	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[0] != "m" {
		return nil, gcerrors.Configuration(ctx, msgs.MsgConfigHDPathInvalid, path)
	}
	pos := master
	for _, s := range segments[1:] {
		number, isHardened := strings.CutSuffix(s, "'")
		derivation, err := strconv.ParseUint(number, 10, 64)
		if err != nil || derivation >= hardenedKeyStart {
			return nil, gcerrors.Configuration(ctx, msgs.MsgConfigHDPathInvalid, path)
		}
		if isHardened {
			derivation += hardenedKeyStart
		}
		if pos, err = pos.Derive(uint32(derivation)); err != nil {
			return nil, err
		}
	}
	ecPrivKey, err := pos.ECPrivKey()
	if err != nil {
		return nil, err
	}
	pkBytes := ecPrivKey.Key.Bytes()
	return pkBytes[:], nil
}
