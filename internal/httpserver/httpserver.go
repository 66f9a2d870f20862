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

// Package httpserver runs the HTTP listeners: the status API and the metrics endpoint.
package httpserver

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

type Server interface {
	Start() error
	Stop()
	Addr() net.Addr
}

var _ Server = &httpServer{}

type httpServer struct {
	ctx             context.Context
	cancelCtx       func()
	description     string
	listener        net.Listener
	httpServer      *http.Server
	served          chan error
	requestTimeout  time.Duration
	shutdownTimeout time.Duration
	started         bool
}

func NewServer(ctx context.Context, description string, conf *gcconf.HTTPServerConfig, handler http.Handler) (_ Server, err error) {
	if conf.Port == nil {
		return nil, i18n.NewError(ctx, msgs.MsgConfigHTTPPortMissing, description)
	}
	s := &httpServer{
		description:     description,
		served:          make(chan error, 1),
		requestTimeout:  confutil.DurationMin(conf.RequestTimeout, time.Second, *gcconf.HTTPDefaults.RequestTimeout),
		shutdownTimeout: confutil.DurationMin(conf.ShutdownTimeout, 0, *gcconf.HTTPDefaults.ShutdownTimeout),
	}

	listenAddr := fmt.Sprintf("%s:%d", confutil.StringNotEmpty(conf.Address, *gcconf.HTTPDefaults.Address), *conf.Port)
	if s.listener, err = net.Listen("tcp", listenAddr); err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgConfigHTTPListenFailed, listenAddr)
	}
	s.ctx, s.cancelCtx = context.WithCancel(ctx)
	log.L(ctx).Infof("%s server listening on %s (request timeout %s)", description, s.listener.Addr(), s.requestTimeout)

	s.httpServer = &http.Server{
		Handler: WrapCorsIfEnabled(ctx, s.withRequestLog(handler), &conf.CORS),
		// no write timeout: it would cut off the websocket stream
		ReadHeaderTimeout: s.requestTimeout,
		ConnContext: func(connCtx context.Context, c net.Conn) context.Context {
			return log.WithLogField(connCtx, "req", uuid.NewString()[:8])
		},
		BaseContext: func(net.Listener) context.Context {
			return s.ctx
		},
	}
	return s, nil
}

func (s *httpServer) Addr() net.Addr {
	return s.listener.Addr()
}

// statusRecorder keeps the status for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(statusCode int) {
	sr.status = statusCode
	sr.ResponseWriter.WriteHeader(statusCode)
}

// Hijack is required for the websocket upgrade
func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := sr.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, i18n.NewError(context.Background(), msgs.MsgHTTPNoWSUpgradeSupport, sr.ResponseWriter)
	}
	sr.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (s *httpServer) withRequestLog(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(req.Context(), s.requestTimeout)
		defer cancel()
		req = req.WithContext(ctx)

		sr := &statusRecorder{ResponseWriter: res, status: http.StatusOK}
		handler.ServeHTTP(sr, req)
		log.L(ctx).Debugf("%s %s %s [%d] (%.2fms)", s.description, req.Method, req.URL.Path, sr.status,
			float64(time.Since(startTime))/float64(time.Millisecond))
	})
}

func (s *httpServer) Start() error {
	s.started = true
	go func() {
		s.served <- s.httpServer.Serve(s.listener)
	}()
	return nil
}

// Stop waits up to the shutdown timeout for in-flight requests, then closes what is left
func (s *httpServer) Stop() {
	if !s.started {
		return
	}
	s.started = false
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.L(s.ctx).Warnf("%s server did not drain within %s: %s", s.description, s.shutdownTimeout, err)
		_ = s.httpServer.Close()
	}
	s.cancelCtx()
	log.L(s.ctx).Infof("%s server ended (err=%v)", s.description, <-s.served)
}
