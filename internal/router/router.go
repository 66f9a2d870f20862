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

// Package router puts gorilla/mux in front of an HTTP listener, and marks requests that present
// the listener's bearer token so handlers can decide what to reveal.
package router

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/httpserver"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
)

type Router interface {
	Start() error
	Stop()
	Addr() net.Addr

	HandleFunc(path string, f func(http.ResponseWriter, *http.Request), methods ...string)
}

type authenticatedKey struct{}

// Authenticated is true for a request that presented the configured bearer token.
// Without a configured token no request is authenticated.
func Authenticated(ctx context.Context) bool {
	v, _ := ctx.Value(authenticatedKey{}).(bool)
	return v
}

type router struct {
	router *mux.Router
	server httpserver.Server
	token  []byte
}

var _ Router = &router{}

func NewRouter(ctx context.Context, description string, conf *gcconf.HTTPServerConfig) (_ Router, err error) {
	r := &router{router: mux.NewRouter()}
	if conf.AuthTokenFile != nil && *conf.AuthTokenFile != "" {
		b, err := os.ReadFile(*conf.AuthTokenFile)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgConfigAuthTokenFile, description, *conf.AuthTokenFile)
		}
		r.token = []byte(strings.TrimSpace(string(b)))
	}
	r.router.Use(r.identify)
	if r.server, err = httpserver.NewServer(ctx, description, conf, r.router); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *router) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		authenticated := false
		if len(r.token) > 0 {
			presented, ok := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer ")
			authenticated = ok && subtle.ConstantTimeCompare([]byte(presented), r.token) == 1
		}
		next.ServeHTTP(res, req.WithContext(context.WithValue(req.Context(), authenticatedKey{}, authenticated)))
	})
}

func (r *router) HandleFunc(path string, f func(http.ResponseWriter, *http.Request), methods ...string) {
	route := r.router.HandleFunc(path, f)
	if len(methods) > 0 {
		route.Methods(methods...)
	}
}

func (r *router) Addr() net.Addr {
	return r.server.Addr()
}

func (r *router) Start() error {
	return r.server.Start()
}

func (r *router) Stop() {
	r.server.Stop()
}
