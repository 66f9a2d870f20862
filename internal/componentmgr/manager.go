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

// Package componentmgr builds every component from configuration and owns their start/stop order.
package componentmgr

import (
	"context"
	"errors"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/anomaly"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/chainclient"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gasoracle"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/metricsserver"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/reconciler"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/signer"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/statusapi"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/submitter"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/txbuilder"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/txmgr"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/txpool"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/retry"
)

type ComponentManager interface {
	Init() error
	Start() error
	Stop()

	Persistence() persistence.Persistence
	ChainClient() chainclient.ChainClient
	TxManager() txmgr.TxManager
	GasOracle() gasoracle.Oracle
	AnomalyProcessor() anomaly.Processor
	StatusAPI() statusapi.Server
	MetricsServer() metricsserver.MetricsServer
}

// things with a background loop that must be stopped
type stoppable interface {
	Stop()
}

type namedStoppable struct {
	name string
	s    stoppable
}

type componentManager struct {
	bgCtx context.Context
	conf  *gcconf.GanadoConfig

	registry      *prometheus.Registry
	metrics       metrics.Metrics
	persistence   persistence.Persistence
	chainClient   chainclient.ChainClient
	signer        signer.Signer
	builder       txbuilder.Builder
	submitter     submitter.Submitter
	confirmer     submitter.Confirmer
	pool          txpool.Pool
	sweeper       txpool.Sweeper
	outbox        reconciler.Outbox
	dispatcher    reconciler.Dispatcher
	reconciler    reconciler.Reconciler
	txManager     txmgr.TxManager
	gasOracle     gasoracle.Oracle
	anomalies     anomaly.Processor
	statusAPI     statusapi.Server
	metricsServer metricsserver.MetricsServer

	chainConnectRetry *retry.Retry
	// in start order, stopped in reverse
	started []namedStoppable
}

func NewComponentManager(bgCtx context.Context, conf *gcconf.GanadoConfig) ComponentManager {
	log.InitConfig(&conf.Log)
	return &componentManager{
		bgCtx:             bgCtx,
		conf:              conf,
		chainConnectRetry: retry.NewRetryLimited(&conf.Startup.BlockchainConnectRetry, &gcconf.StartupDefaults.BlockchainConnectRetry),
	}
}

func (cm *componentManager) Init() (err error) {
	cm.registry = prometheus.NewRegistry()
	cm.metrics = metrics.InitMetrics(cm.bgCtx, cm.registry)

	cm.persistence, err = persistence.NewPersistence(cm.bgCtx, &cm.conf.DB)
	err = cm.wrapIfErr(err, msgs.MsgComponentDBInitError)

	if err == nil {
		err = cm.connectChain()
		err = cm.wrapIfErr(err, msgs.MsgComponentChainClientInitError)
	}

	if err == nil {
		var keyPair *secp256k1.KeyPair
		keyPair, err = signer.LoadKey(cm.bgCtx, &cm.conf.Signer)
		if err == nil {
			cm.signer = signer.NewSigner(cm.bgCtx, &cm.conf.Signer, cm.persistence, cm.chainClient, keyPair)
		}
		err = cm.wrapIfErr(err, msgs.MsgComponentSignerInitError)
	}

	if err == nil {
		cm.builder, err = txbuilder.NewBuilder(cm.bgCtx, &cm.conf.TxBuilder, cm.chainClient, cm.signer.Address())
		err = cm.wrapIfErr(err, msgs.MsgComponentTxBuilderInitError)
	}

	if err == nil {
		cm.submitter = submitter.NewSubmitter(&cm.conf.Submitter, cm.chainClient, cm.builder.GasPricer(), cm.metrics)
		cm.confirmer = submitter.NewConfirmer(&cm.conf.Confirmer, cm.chainClient, cm.metrics)
		cm.pool = txpool.NewPool(cm.persistence)
		cm.sweeper = txpool.NewSweeper(&cm.conf.TxPool, cm.persistence, cm.pool, cm.chainClient, cm.submitter, cm.confirmer, cm.metrics)
		cm.outbox = reconciler.NewOutbox(cm.persistence)
		cm.dispatcher = reconciler.NewDispatcher(&cm.conf.Outbox, cm.persistence, cm.outbox)
		cm.reconciler = reconciler.NewReconciler(cm.outbox, cm.metrics)
		cm.txManager = txmgr.NewTxManager(cm.bgCtx, cm.conf, &txmgr.Components{
			Persistence: cm.persistence,
			ChainClient: cm.chainClient,
			Builder:     cm.builder,
			Signer:      cm.signer,
			Submitter:   cm.submitter,
			Confirmer:   cm.confirmer,
			Pool:        cm.pool,
			Sweeper:     cm.sweeper,
			Outbox:      cm.outbox,
			Dispatcher:  cm.dispatcher,
			Reconciler:  cm.reconciler,
			Metrics:     cm.metrics,
		})
		cm.gasOracle = gasoracle.NewOracle(cm.bgCtx, &cm.conf.GasOracle, cm.persistence, cm.chainClient, cm.metrics)
	}

	if err == nil {
		var th *anomaly.Thresholds
		th, err = anomaly.ThresholdsFromConfig(cm.bgCtx, &cm.conf.Anomaly)
		if err == nil {
			cm.anomalies = anomaly.NewProcessor(th, cm.txManager, cm.metrics)
		}
		err = cm.wrapIfErr(err, msgs.MsgComponentAnomalyInitError)
	}

	if err == nil {
		cm.statusAPI, err = statusapi.NewServer(cm.bgCtx, &cm.conf.StatusAPI, cm.txManager, cm.gasOracle, cm.anomalies)
		err = cm.wrapIfErr(err, msgs.MsgComponentStatusAPIInitError)
	}

	if err == nil {
		cm.metricsServer, err = metricsserver.NewMetricsServer(cm.bgCtx, cm.registry, &cm.conf.Metrics)
		err = cm.wrapIfErr(err, msgs.MsgComponentMetricsServerInitError)
	}

	return err
}

// connectChain retries while the node is unreachable. Bad configuration fails immediately.
func (cm *componentManager) connectChain() error {
	return cm.chainConnectRetry.Do(cm.bgCtx, func(attempt int) (retryable bool, err error) {
		cm.chainClient, err = chainclient.NewChainClient(cm.bgCtx, &cm.conf.Blockchain, &cm.conf.Contracts)
		return isConnectionError(err), err
	})
}

func isConnectionError(err error) bool {
	var ffe i18n.FFError
	return errors.As(err, &ffe) && ffe.MessageKey() == msgs.MsgConfigChainIDQueryFailed
}

func (cm *componentManager) Start() (err error) {
	if cm.txManager == nil {
		return i18n.NewError(cm.bgCtx, msgs.MsgComponentNotInitialized)
	}

	// the signer reconciles its nonce with the node before anything can submit
	err = cm.signer.Start(cm.bgCtx)
	err = cm.addIfStarted("signer", cm.signer, err, msgs.MsgComponentSignerStartError)

	if err == nil {
		cm.confirmer.Start(cm.bgCtx)
		cm.addStarted("confirmer", cm.confirmer)
		cm.txManager.Start()
		cm.addStarted("tx_manager", cm.txManager)
		cm.dispatcher.Start(cm.bgCtx)
		cm.addStarted("outbox_dispatcher", cm.dispatcher)
		cm.sweeper.Start(cm.bgCtx)
		cm.addStarted("pool_sweeper", cm.sweeper)
		cm.gasOracle.Start(cm.bgCtx)
		cm.addStarted("gas_oracle", cm.gasOracle)
	}

	if err == nil {
		err = cm.statusAPI.Start()
		err = cm.addIfStarted("status_api", cm.statusAPI, err, msgs.MsgComponentStatusAPIStartError)
	}

	if err == nil {
		err = cm.metricsServer.Start()
		err = cm.addIfStarted("metrics_server", cm.metricsServer, err, msgs.MsgComponentMetricsServerStartError)
	}

	if err == nil {
		statusEndpoint := "disabled"
		if cm.statusAPI.Addr() != nil {
			statusEndpoint = cm.statusAPI.Addr().String()
		}
		metricsEndpoint := "disabled"
		if cm.metricsServer.Addr() != nil {
			metricsEndpoint = cm.metricsServer.Addr().String()
		}
		log.L(cm.bgCtx).Infof("Startup complete chainId=%d signer=%s statusApi=%s metrics=%s",
			cm.chainClient.ChainID(), cm.signer.Address(), statusEndpoint, metricsEndpoint)
	}
	return err
}

func (cm *componentManager) wrapIfErr(err error, failMsg i18n.ErrorMessageKey, inserts ...any) error {
	if err != nil {
		return i18n.WrapError(cm.bgCtx, err, failMsg, inserts...)
	}
	return nil
}

func (cm *componentManager) addStarted(name string, s stoppable) {
	cm.started = append(cm.started, namedStoppable{name: name, s: s})
}

func (cm *componentManager) addIfStarted(name string, s stoppable, err error, failMsg i18n.ErrorMessageKey) error {
	if err != nil {
		return i18n.WrapError(cm.bgCtx, err, failMsg)
	}
	cm.addStarted(name, s)
	return nil
}

func (cm *componentManager) Stop() {
	log.L(cm.bgCtx).Info("Stopping")
	for i := len(cm.started) - 1; i >= 0; i-- {
		c := cm.started[i]
		log.L(cm.bgCtx).Infof("Stopping %s", c.name)
		c.s.Stop()
		log.L(cm.bgCtx).Debugf("Stopped %s", c.name)
	}
	cm.started = nil
	if cm.persistence != nil {
		cm.persistence.Close()
		cm.persistence = nil
	}
	log.L(cm.bgCtx).Debug("Stopped")
}

func (cm *componentManager) Persistence() persistence.Persistence {
	return cm.persistence
}

func (cm *componentManager) ChainClient() chainclient.ChainClient {
	return cm.chainClient
}

func (cm *componentManager) TxManager() txmgr.TxManager {
	return cm.txManager
}

func (cm *componentManager) GasOracle() gasoracle.Oracle {
	return cm.gasOracle
}

func (cm *componentManager) AnomalyProcessor() anomaly.Processor {
	return cm.anomalies
}

func (cm *componentManager) StatusAPI() statusapi.Server {
	return cm.statusAPI
}

func (cm *componentManager) MetricsServer() metricsserver.MetricsServer {
	return cm.metricsServer
}
