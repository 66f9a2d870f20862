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

// Package chainclient is the JSON-RPC gateway to the node, plus typed bindings for the three
// GanadoChain contracts loaded from their Hardhat artifacts.
package chainclient

import (
	"context"
	"encoding/json"
	"math/big"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/rpcbackend"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

type ChainClient interface {
	ChainID() int64
	Token() Binding
	NFT() Binding
	Registry() Binding

	GasPrice(ctx context.Context) (*big.Int, error)
	GetTransactionCount(ctx context.Context, addr gctypes.EthAddress, block string) (uint64, error)
	EstimateGas(ctx context.Context, tx *ethsigner.Transaction) (uint64, error)
	CallContract(ctx context.Context, tx *ethsigner.Transaction, block string) (ethtypes.HexBytes0xPrefix, error)
	SendRawTransaction(ctx context.Context, rawTX []byte) (*gctypes.TxHash, error)
	// GetTransactionReceipt returns nil, nil while the transaction is not yet mined
	GetTransactionReceipt(ctx context.Context, txHash gctypes.TxHash) (*Receipt, error)
	GetBlockByNumber(ctx context.Context, number uint64) (*BlockInfo, error)
	GetLogs(ctx context.Context, filter *LogFilter) ([]*Log, error)
	BlockNumber(ctx context.Context) (uint64, error)
	GetBalance(ctx context.Context, addr gctypes.EthAddress, block string) (*big.Int, error)

	HasRole(ctx context.Context, role gctypes.Bytes32, wallet gctypes.EthAddress) (bool, error)
	TokenBalance(ctx context.Context, wallet gctypes.EthAddress) (*big.Int, error)
	NFTOwner(ctx context.Context, tokenID *big.Int) (*gctypes.EthAddress, error)
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)

	// RevertReason decodes Error(string) or any custom error declared in the three contract ABIs
	RevertReason(ctx context.Context, revertData []byte) string
}

type chainClient struct {
	rpc      rpcbackend.RPC
	chainID  int64
	token    *binding
	nft      *binding
	registry *binding
	errABI   abi.ABI
}

// NewChainClient builds an HTTP JSON-RPC client and loads the contract bindings.
// Every failure here is a ConfigurationError.
func NewChainClient(ctx context.Context, bcConf *gcconf.BlockchainConfig, contractsConf *gcconf.ContractsConfig) (ChainClient, error) {
	if bcConf.RPC.URL == "" {
		return nil, gcerrors.Configuration(ctx, msgs.MsgConfigRPCURLMissing)
	}
	return NewChainClientWithRPC(ctx, rpcbackend.NewRPCClient(newRestyClient(&bcConf.RPC)), bcConf, contractsConf)
}

func newRestyClient(conf *gcconf.HTTPClientConfig) *resty.Client {
	connTimeout := confutil.DurationMin(conf.ConnectionTimeout, 0, *gcconf.BlockchainDefaults.RPC.ConnectionTimeout)
	return resty.New().
		SetBaseURL(conf.URL).
		SetHeaders(conf.HTTPHeaders).
		SetTimeout(confutil.DurationMin(conf.RequestTimeout, 0, *gcconf.BlockchainDefaults.RPC.RequestTimeout)).
		SetTransport(&http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         (&net.Dialer{Timeout: connTimeout, KeepAlive: 30 * time.Second}).DialContext,
			TLSHandshakeTimeout: connTimeout,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		})
}

// NewChainClientWithRPC is used directly by tests with a mock RPC
func NewChainClientWithRPC(ctx context.Context, rpc rpcbackend.RPC, bcConf *gcconf.BlockchainConfig, contractsConf *gcconf.ContractsConfig) (ChainClient, error) {
	c := &chainClient{rpc: rpc}
	if bcConf.ChainID != nil {
		c.chainID = *bcConf.ChainID
	} else {
		var chainID ethtypes.HexUint64
		if rpcErr := c.rpc.CallRPC(ctx, &chainID, "eth_chainId"); rpcErr != nil {
			log.L(ctx).Errorf("eth_chainId failed: %+v", rpcErr)
			return nil, gcerrors.WrapConfiguration(ctx, rpcErr.Error(), msgs.MsgConfigChainIDQueryFailed)
		}
		c.chainID = int64(chainID.Uint64())
	}

	dir := confutil.StringNotEmpty(contractsConf.ArtifactsDir, *gcconf.ContractsDefaults.ArtifactsDir)
	var err error
	if c.token, err = newBinding(ctx, c, "token", dir, &contractsConf.Token, gcconf.ContractsDefaults.Token.Artifact, "*GanadoToken*.json"); err != nil {
		return nil, err
	}
	if c.nft, err = newBinding(ctx, c, "nft", dir, &contractsConf.NFT, gcconf.ContractsDefaults.NFT.Artifact, "*AnimalNFT*.json"); err != nil {
		return nil, err
	}
	if c.registry, err = newBinding(ctx, c, "registry", dir, &contractsConf.Registry, gcconf.ContractsDefaults.Registry.Artifact, "*Registry*.json"); err != nil {
		return nil, err
	}
	for _, b := range []*binding{c.token, c.nft, c.registry} {
		for _, e := range b.abi {
			if e.Type == abi.Error {
				c.errABI = append(c.errABI, e)
			}
		}
	}
	log.L(ctx).Infof("Chain client ready chainId=%d token=%s nft=%s registry=%s", c.chainID, c.token.address, c.nft.address, c.registry.address)
	return c, nil
}

func (c *chainClient) ChainID() int64 {
	return c.chainID
}

func (c *chainClient) Token() Binding {
	return c.token
}

func (c *chainClient) NFT() Binding {
	return c.nft
}

func (c *chainClient) Registry() Binding {
	return c.registry
}

func (c *chainClient) rpcError(ctx context.Context, method string, rpcErr *rpcbackend.RPCError) error {
	log.L(ctx).Errorf("%s failed: %+v", method, rpcErr)
	return i18n.WrapError(ctx, rpcErr.Error(), msgs.MsgBroadcastRPCError, method, rpcErr.Message)
}

func (c *chainClient) GasPrice(ctx context.Context) (*big.Int, error) {
	var gasPrice ethtypes.HexInteger
	if rpcErr := c.rpc.CallRPC(ctx, &gasPrice, "eth_gasPrice"); rpcErr != nil {
		return nil, c.rpcError(ctx, "eth_gasPrice", rpcErr)
	}
	return gasPrice.BigInt(), nil
}

func (c *chainClient) GetTransactionCount(ctx context.Context, addr gctypes.EthAddress, block string) (uint64, error) {
	var count ethtypes.HexUint64
	if rpcErr := c.rpc.CallRPC(ctx, &count, "eth_getTransactionCount", addr.Address0xHex(), block); rpcErr != nil {
		return 0, c.rpcError(ctx, "eth_getTransactionCount", rpcErr)
	}
	return count.Uint64(), nil
}

func (c *chainClient) EstimateGas(ctx context.Context, tx *ethsigner.Transaction) (uint64, error) {
	var gas ethtypes.HexUint64
	if rpcErr := c.rpc.CallRPC(ctx, &gas, "eth_estimateGas", tx); rpcErr != nil {
		return 0, c.rpcError(ctx, "eth_estimateGas", rpcErr)
	}
	return gas.Uint64(), nil
}

func (c *chainClient) CallContract(ctx context.Context, tx *ethsigner.Transaction, block string) (ethtypes.HexBytes0xPrefix, error) {
	var data ethtypes.HexBytes0xPrefix
	if rpcErr := c.rpc.CallRPC(ctx, &data, "eth_call", tx, block); rpcErr != nil {
		if len(rpcErr.Data) > 0 {
			var revertData ethtypes.HexBytes0xPrefix
			if json.Unmarshal(rpcErr.Data.Bytes(), &revertData) == nil && len(revertData) > 0 {
				log.L(ctx).Debugf("eth_call reverted: %s", revertData)
				return nil, i18n.NewError(ctx, msgs.MsgBroadcastRPCError, "eth_call", c.RevertReason(ctx, revertData))
			}
		}
		return nil, c.rpcError(ctx, "eth_call", rpcErr)
	}
	return data, nil
}

func (c *chainClient) SendRawTransaction(ctx context.Context, rawTX []byte) (*gctypes.TxHash, error) {
	var txHash ethtypes.HexBytes0xPrefix
	if rpcErr := c.rpc.CallRPC(ctx, &txHash, "eth_sendRawTransaction", ethtypes.HexBytes0xPrefix(rawTX)); rpcErr != nil {
		addr, decodedTX, err := ethsigner.RecoverRawTransaction(ctx, ethtypes.HexBytes0xPrefix(rawTX), c.chainID)
		if err == nil {
			log.L(ctx).Errorf("Rejected TX (from=%s, nonce=%s): %s", addr, decodedTX.Nonce, rpcErr.Message)
		}
		// the message is kept verbatim so the submitter can map the reason
		return nil, rpcErr.Error()
	}
	hash := gctypes.NewBytes32FromSlice(txHash)
	return &hash, nil
}

func (c *chainClient) GetTransactionReceipt(ctx context.Context, txHash gctypes.TxHash) (*Receipt, error) {
	var receipt *Receipt
	if rpcErr := c.rpc.CallRPC(ctx, &receipt, "eth_getTransactionReceipt", txHash.String()); rpcErr != nil {
		return nil, c.rpcError(ctx, "eth_getTransactionReceipt", rpcErr)
	}
	return receipt, nil
}

func (c *chainClient) GetBlockByNumber(ctx context.Context, number uint64) (*BlockInfo, error) {
	var block *BlockInfo
	if rpcErr := c.rpc.CallRPC(ctx, &block, "eth_getBlockByNumber", ethtypes.HexUint64(number), false); rpcErr != nil {
		return nil, c.rpcError(ctx, "eth_getBlockByNumber", rpcErr)
	}
	return block, nil
}

func (c *chainClient) GetLogs(ctx context.Context, filter *LogFilter) ([]*Log, error) {
	var logs []*Log
	if rpcErr := c.rpc.CallRPC(ctx, &logs, "eth_getLogs", filter); rpcErr != nil {
		return nil, c.rpcError(ctx, "eth_getLogs", rpcErr)
	}
	return logs, nil
}

func (c *chainClient) BlockNumber(ctx context.Context) (uint64, error) {
	var n ethtypes.HexUint64
	if rpcErr := c.rpc.CallRPC(ctx, &n, "eth_blockNumber"); rpcErr != nil {
		return 0, c.rpcError(ctx, "eth_blockNumber", rpcErr)
	}
	return n.Uint64(), nil
}

func (c *chainClient) GetBalance(ctx context.Context, addr gctypes.EthAddress, block string) (*big.Int, error) {
	var balance ethtypes.HexInteger
	if rpcErr := c.rpc.CallRPC(ctx, &balance, "eth_getBalance", addr.Address0xHex(), block); rpcErr != nil {
		return nil, c.rpcError(ctx, "eth_getBalance", rpcErr)
	}
	return balance.BigInt(), nil
}

func (c *chainClient) RevertReason(ctx context.Context, revertData []byte) string {
	if len(revertData) == 0 {
		return i18n.NewError(ctx, msgs.MsgReceiptNoRevertReason).Error()
	}
	if errString, ok := c.errABI.ErrorStringCtx(ctx, revertData); ok {
		return errString
	}
	return i18n.NewError(ctx, msgs.MsgReceiptRevertUndecoded, ethtypes.HexBytes0xPrefix(revertData)).Error()
}
