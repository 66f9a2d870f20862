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

type BlockchainConfig struct {
	RPC HTTPClientConfig `json:"rpc"`
	// if unset the chain ID is queried from the node at startup
	ChainID *int64 `json:"chainId"`
	// block explorer prefix used when logging transaction links
	ExplorerURL *string `json:"explorerUrl"`
}

type HTTPClientConfig struct {
	URL               string            `json:"url"`
	HTTPHeaders       map[string]string `json:"httpHeaders"`
	RequestTimeout    *string           `json:"requestTimeout,omitempty"`
	ConnectionTimeout *string           `json:"connectionTimeout,omitempty"`
}

var BlockchainDefaults = &BlockchainConfig{
	RPC: HTTPClientConfig{
		RequestTimeout:    confutil.P("30s"),
		ConnectionTimeout: confutil.P("30s"),
	},
	ExplorerURL: confutil.P("https://amoy.polygonscan.com/tx/"),
}

type ContractsConfig struct {
	// directory holding the compiled Hardhat artifacts (artifacts/contracts/<Name>.sol/<Name>.json)
	ArtifactsDir *string        `json:"artifactsDir"`
	Token        ContractConfig `json:"token"`
	NFT          ContractConfig `json:"nft"`
	Registry     ContractConfig `json:"registry"`
}

type ContractConfig struct {
	Address string `json:"address"`
	// explicit artifact path, relative to ArtifactsDir unless absolute
	Artifact *string `json:"artifact"`
}

var ContractsDefaults = &ContractsConfig{
	ArtifactsDir: confutil.P("artifacts"),
	Token:        ContractConfig{Artifact: confutil.P("contracts/GanadoTokenUpgradeable.sol/GanadoTokenUpgradeable.json")},
	NFT:          ContractConfig{Artifact: confutil.P("contracts/AnimalNFTUpgradeable.sol/AnimalNFTUpgradeable.json")},
	Registry:     ContractConfig{Artifact: confutil.P("contracts/GanadoRegistryUpgradeable.sol/GanadoRegistryUpgradeable.json")},
}
