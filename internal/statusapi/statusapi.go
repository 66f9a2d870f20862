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

// Package statusapi is the operational HTTP surface: transaction status polling, gas suggestions,
// sensor reading intake and a websocket stream of settled transactions.
package statusapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/anomaly"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gasoracle"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/httpserver"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/router"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/txmgr"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

const (
	defaultHistoryLimit = 24
	maxHistoryLimit     = 1000
)

type Server interface {
	Start() error
	Stop()
	Addr() net.Addr
	// Connections is the number of live websocket clients
	Connections() int
}

type statusServer struct {
	bgCtx      context.Context
	tm         txmgr.TxManager
	oracle     gasoracle.Oracle
	anomalies  anomaly.Processor
	httpServer router.Router
	wsUpgrader *websocket.Upgrader
	// with a token configured the websocket stream is for operators only
	wsRequireAuth bool

	wsMux         sync.Mutex
	wsConnections map[string]*wsConnection
}

var _ Server = &statusServer{}

func NewServer(ctx context.Context, conf *gcconf.StatusAPIConfig, tm txmgr.TxManager, oracle gasoracle.Oracle, anomalies anomaly.Processor) (_ Server, err error) {
	s := &statusServer{
		bgCtx:         ctx,
		tm:            tm,
		oracle:        oracle,
		anomalies:     anomalies,
		wsConnections: make(map[string]*wsConnection),
	}
	if !confutil.Bool(conf.Enabled, *gcconf.StatusAPIDefaults.Enabled) {
		log.L(ctx).Infof("Status API disabled")
		return s, nil
	}

	s.wsUpgrader = &websocket.Upgrader{
		ReadBufferSize:  int(confutil.ByteSize(conf.ReadBufferSize, 0, *gcconf.StatusAPIDefaults.ReadBufferSize)),
		WriteBufferSize: int(confutil.ByteSize(conf.WriteBufferSize, 0, *gcconf.StatusAPIDefaults.WriteBufferSize)),
		CheckOrigin:     httpserver.WebSocketOriginCheck(&conf.CORS),
	}
	s.wsRequireAuth = conf.AuthTokenFile != nil && *conf.AuthTokenFile != ""

	r, err := router.NewRouter(ctx, "Status API (HTTP)", &conf.HTTPServerConfig)
	if err != nil {
		return nil, err
	}
	r.HandleFunc("/api/v1/transactions/{hash}", s.getTransaction, http.MethodGet)
	r.HandleFunc("/api/v1/gas/suggestion", s.getGasSuggestion, http.MethodGet)
	r.HandleFunc("/api/v1/gas/history", s.getGasHistory, http.MethodGet)
	r.HandleFunc("/api/v1/sensors/readings", s.postSensorReading, http.MethodPost)
	r.HandleFunc("/ws", s.wsHandler, http.MethodGet)
	s.httpServer = r

	tm.AddListener(s.broadcast)
	return s, nil
}

func (s *statusServer) Start() (err error) {
	if s.httpServer != nil {
		err = s.httpServer.Start()
	}
	return err
}

func (s *statusServer) Stop() {
	if s.httpServer != nil {
		s.httpServer.Stop()
	}
	for _, c := range s.connectionList() {
		c.close()
	}
}

func (s *statusServer) Addr() net.Addr {
	if s.httpServer != nil {
		return s.httpServer.Addr()
	}
	return nil
}

func (s *statusServer) getTransaction(res http.ResponseWriter, req *http.Request) {
	status, err := s.tm.GetTransactionStatus(req.Context(), mux.Vars(req)["hash"])
	if err != nil {
		s.writeError(req.Context(), res, err)
		return
	}
	if status.ErrorMessage != nil && !router.Authenticated(req.Context()) {
		redacted := *status
		redacted.ErrorMessage = confutil.P(txmgr.Redact(*status.ErrorMessage))
		status = &redacted
	}
	s.writeJSON(req.Context(), res, http.StatusOK, status)
}

func (s *statusServer) getGasSuggestion(res http.ResponseWriter, req *http.Request) {
	suggestion := s.oracle.Last()
	if suggestion == nil {
		var err error
		if suggestion, err = s.oracle.Sample(req.Context()); err != nil {
			s.writeError(req.Context(), res, err)
			return
		}
	}
	s.writeJSON(req.Context(), res, http.StatusOK, suggestion)
}

func (s *statusServer) getGasHistory(res http.ResponseWriter, req *http.Request) {
	limit := defaultHistoryLimit
	if l := req.URL.Query().Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v <= 0 {
			s.writeError(req.Context(), res, i18n.NewError(req.Context(), msgs.MsgStatusAPIInvalidLimit, l))
			return
		}
		limit = v
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	samples, err := s.oracle.History(req.Context(), limit)
	if err != nil {
		s.writeError(req.Context(), res, err)
		return
	}
	s.writeJSON(req.Context(), res, http.StatusOK, samples)
}

func (s *statusServer) postSensorReading(res http.ResponseWriter, req *http.Request) {
	var reading anomaly.SensorReading
	if err := json.NewDecoder(req.Body).Decode(&reading); err != nil {
		s.writeError(req.Context(), res, i18n.WrapError(req.Context(), err, msgs.MsgStatusAPIInvalidBody, err))
		return
	}
	if reading.AnimalID == "" {
		s.writeError(req.Context(), res, i18n.NewError(req.Context(), msgs.MsgStatusAPIInvalidBody, "animalId"))
		return
	}
	result, err := s.anomalies.Process(req.Context(), &reading)
	if err != nil {
		s.writeError(req.Context(), res, err)
		return
	}
	status := http.StatusOK
	if result.TxHash != nil {
		status = http.StatusAccepted
		if !router.Authenticated(req.Context()) {
			// the 202 still says an update went on chain
			redacted := *result
			redacted.TxHash = nil
			result = &redacted
		}
	}
	s.writeJSON(req.Context(), res, status, result)
}

// writeError logs the full error. The body is redacted for unauthenticated callers.
func (s *statusServer) writeError(ctx context.Context, res http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ffe i18n.FFError
	if errors.As(err, &ffe) {
		status = ffe.HTTPStatus()
	}
	log.L(ctx).Errorf("Request failed [%d]: %s", status, err)
	result := txmgr.ResultFromError(err, map[string]interface{}{
		txmgr.ContextAuthenticated: router.Authenticated(ctx),
	})
	result.Context = nil
	s.writeJSON(ctx, res, status, result)
}

func (s *statusServer) writeJSON(ctx context.Context, res http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		err = i18n.WrapError(ctx, err, msgs.MsgStatusAPIEncodeFailed)
		log.L(ctx).Error(err)
		status = http.StatusInternalServerError
		b, _ = json.Marshal(&txmgr.Result{Error: err.Error()})
	}
	res.Header().Set("Content-Type", "application/json; charset=utf-8")
	res.WriteHeader(status)
	_, _ = res.Write(b)
}
