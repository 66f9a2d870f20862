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

package metricsserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
)

func TestMetricsServerServesRegistry(t *testing.T) {
	ctx := context.Background()
	registry := prometheus.NewRegistry()
	m := metrics.InitMetrics(ctx, registry)
	m.IncSubmitted("MINT_ANIMAL")

	s, err := NewMetricsServer(ctx, registry, &gcconf.MetricsServerConfig{
		Enabled: confutil.P(true),
		HTTPServerConfig: gcconf.HTTPServerConfig{
			Address: confutil.P("127.0.0.1"),
			Port:    confutil.P(0),
		},
	})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	res, err := http.Get(fmt.Sprintf("http://%s/metrics", s.Addr()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ganadochain_submitted_txns_total{operation="MINT_ANIMAL"} 1`)
}

func TestMetricsServerDisabled(t *testing.T) {
	s, err := NewMetricsServer(context.Background(), prometheus.NewRegistry(), &gcconf.MetricsServerConfig{})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Nil(t, s.Addr())
	s.Stop()
}

func TestMetricsServerMissingPort(t *testing.T) {
	_, err := NewMetricsServer(context.Background(), prometheus.NewRegistry(), &gcconf.MetricsServerConfig{
		Enabled: confutil.P(true),
	})
	assert.Regexp(t, "GC010015", err)
}
