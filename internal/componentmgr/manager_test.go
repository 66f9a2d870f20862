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

package componentmgr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
)

const testPrivateKey = "8f2a55949038a9610f50fb23b5883af3b4ecb3c3bb792cbcefbd1542c692be63"

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// newTestNode answers the handful of JSON-RPC calls made while starting up
func newTestNode(t *testing.T) *httptest.Server {
	results := map[string]string{
		"eth_chainId":             `"0x13882"`,
		"eth_getTransactionCount": `"0x5"`,
		"eth_gasPrice":            `"0x6fc23ac00"`,
		"eth_blockNumber":         `"0x100"`,
		"eth_getBalance":          `"0xde0b6b3a7640000"`,
	}
	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		result, ok := results[req.Method]
		if !ok {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32601,"message":"method %s not found"}}`, req.ID, req.Method)
			return
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
	}))
	t.Cleanup(node.Close)
	return node
}

func newTestConfig(t *testing.T, rpcURL string) *gcconf.GanadoConfig {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "operator.key")
	require.NoError(t, os.WriteFile(keyFile, []byte("0x"+testPrivateKey+"\n"), 0600))

	conf := &gcconf.GanadoConfig{}
	conf.DB = gcconf.DBConfig{
		Type: "sqlite",
		SQLDBConfig: gcconf.SQLDBConfig{
			DSN:           filepath.Join(dir, "ganadochain.db"),
			AutoMigrate:   confutil.P(true),
			MigrationsDir: "../../db/migrations/sqlite",
		},
	}
	conf.Blockchain.RPC.URL = rpcURL
	conf.Contracts = gcconf.ContractsConfig{
		ArtifactsDir: confutil.P("../chainclient/testdata/artifacts"),
		Token:        gcconf.ContractConfig{Address: "0x1111111111111111111111111111111111111111"},
		NFT:          gcconf.ContractConfig{Address: "0x2222222222222222222222222222222222222222"},
		Registry:     gcconf.ContractConfig{Address: "0x3333333333333333333333333333333333333333"},
	}
	conf.Signer.KeyFile = &keyFile
	conf.Startup.BlockchainConnectRetry = gcconf.RetryConfigWithMax{
		RetryConfig: gcconf.RetryConfig{InitialDelay: confutil.P("1ms"), MaxDelay: confutil.P("1ms")},
		MaxAttempts: confutil.P(2),
	}
	conf.StatusAPI.Enabled = confutil.P(true)
	conf.StatusAPI.Address = confutil.P("127.0.0.1")
	conf.StatusAPI.Port = confutil.P(0)
	conf.Metrics.Enabled = confutil.P(true)
	conf.Metrics.Address = confutil.P("127.0.0.1")
	conf.Metrics.Port = confutil.P(0)
	return conf
}

func httpGet(t *testing.T, url string) (int, string) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(b)
}

func TestInitStartStop(t *testing.T) {
	node := newTestNode(t)
	cm := NewComponentManager(context.Background(), newTestConfig(t, node.URL))

	require.NoError(t, cm.Init())
	require.NoError(t, cm.Start())

	assert.Equal(t, int64(80002), cm.ChainClient().ChainID())
	assert.NotNil(t, cm.TxManager())
	assert.NotNil(t, cm.GasOracle())
	assert.NotNil(t, cm.AnomalyProcessor())
	assert.NotNil(t, cm.Persistence())

	code, body := httpGet(t, fmt.Sprintf("http://%s/metrics", cm.MetricsServer().Addr()))
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "ganadochain_tracked_receipts")

	code, body = httpGet(t, fmt.Sprintf("http://%s/api/v1/gas/history", cm.StatusAPI().Addr()))
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, body)

	code, body = httpGet(t, fmt.Sprintf("http://%s/api/v1/gas/suggestion", cm.StatusAPI().Addr()))
	assert.Equal(t, http.StatusOK, code)
	var suggestion map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &suggestion))
	assert.Equal(t, float64(27000000000), suggestion["suggested"])

	ns, err := cm.TxManager().NetworkStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), ns.NextNonce)
	assert.Equal(t, uint64(256), ns.BlockNumber)
	assert.Equal(t, "1000000000000000000", ns.Balance.String())

	cm.Stop()
	assert.Nil(t, cm.Persistence())
	// second stop is harmless
	cm.Stop()
}

func TestInitBadDBType(t *testing.T) {
	conf := newTestConfig(t, "http://localhost:8545")
	conf.DB.Type = "wrong"
	cm := NewComponentManager(context.Background(), conf)
	assert.Regexp(t, "GC011000", cm.Init())
	cm.Stop()
}

func TestInitChainUnreachable(t *testing.T) {
	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer node.Close()

	cm := NewComponentManager(context.Background(), newTestConfig(t, node.URL))
	err := cm.Init()
	assert.Regexp(t, "GC011001.*GC010012", err)
	cm.Stop()
}

func TestInitChainMisconfigured(t *testing.T) {
	conf := newTestConfig(t, "")
	cm := NewComponentManager(context.Background(), conf)
	assert.Regexp(t, "GC011001.*GC010003", cm.Init())
	cm.Stop()
}

func TestInitMissingKey(t *testing.T) {
	node := newTestNode(t)
	conf := newTestConfig(t, node.URL)
	conf.Signer.KeyFile = nil
	cm := NewComponentManager(context.Background(), conf)
	assert.Regexp(t, "GC011002.*GC010009", cm.Init())
	cm.Stop()
}

func TestInitBadThresholds(t *testing.T) {
	node := newTestNode(t)
	conf := newTestConfig(t, node.URL)
	conf.Anomaly.TemperatureMin = confutil.P(41.0)
	cm := NewComponentManager(context.Background(), conf)
	assert.Regexp(t, "GC011004.*GC010017", cm.Init())
	cm.Stop()
}

func TestInitStatusAPIPortMissing(t *testing.T) {
	node := newTestNode(t)
	conf := newTestConfig(t, node.URL)
	conf.StatusAPI.Port = nil
	cm := NewComponentManager(context.Background(), conf)
	assert.Regexp(t, "GC011005.*GC010015", cm.Init())
	cm.Stop()
}

func TestStartBeforeInit(t *testing.T) {
	cm := NewComponentManager(context.Background(), &gcconf.GanadoConfig{})
	assert.Regexp(t, "GC011011", cm.Start())
}
