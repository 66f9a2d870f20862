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

package httpserver

import (
	"context"
	"net/http"

	"github.com/rs/cors"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

var DefaultCORS = &gcconf.CORSConfig{
	AllowCredentials: confutil.P(false),
	AllowedMethods:   []string{http.MethodHead, http.MethodGet, http.MethodPost},
	AllowedHeaders:   []string{},
	AllowedOrigins:   []string{"*"},
	MaxAge:           confutil.P("0"),
}

func corsOptions(conf *gcconf.CORSConfig) cors.Options {
	return cors.Options{
		AllowedOrigins:   confutil.StringSlice(conf.AllowedOrigins, DefaultCORS.AllowedOrigins),
		AllowedMethods:   confutil.StringSlice(conf.AllowedMethods, DefaultCORS.AllowedMethods),
		AllowedHeaders:   confutil.StringSlice(conf.AllowedHeaders, DefaultCORS.AllowedHeaders),
		AllowCredentials: confutil.Bool(conf.AllowCredentials, *DefaultCORS.AllowCredentials),
		MaxAge:           int(confutil.DurationSeconds(conf.MaxAge, 0, *DefaultCORS.MaxAge)),
		Debug:            conf.Debug,
	}
}

func WrapCorsIfEnabled(ctx context.Context, chain http.Handler, conf *gcconf.CORSConfig) http.Handler {
	if !conf.Enabled {
		return chain
	}
	opts := corsOptions(conf)
	log.L(ctx).Debugf("CORS origins=%v methods=%v headers=%v creds=%t maxAge=%ds",
		opts.AllowedOrigins, opts.AllowedMethods, opts.AllowedHeaders, opts.AllowCredentials, opts.MaxAge)
	return cors.New(opts).Handler(chain)
}

// WebSocketOriginCheck applies the CORS origin list to websocket upgrades.
// With CORS disabled it returns nil, which leaves the upgrader on its same-origin check.
// Requests without an Origin header do not come from a browser and are accepted.
func WebSocketOriginCheck(conf *gcconf.CORSConfig) func(r *http.Request) bool {
	if !conf.Enabled {
		return nil
	}
	c := cors.New(corsOptions(conf))
	return func(r *http.Request) bool {
		return r.Header.Get("Origin") == "" || c.OriginAllowed(r)
	}
}
