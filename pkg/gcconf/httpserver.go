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

type HTTPServerConfig struct {
	CORS    CORSConfig `json:"cors"`
	Address *string    `json:"address"`
	Port    *int       `json:"port"`
	// every request runs under this deadline; websocket streams are detached from it
	RequestTimeout  *string `json:"requestTimeout"`
	ShutdownTimeout *string `json:"shutdownTimeout"`
	// requests presenting this token as "Authorization: Bearer" are treated as operators
	AuthTokenFile *string `json:"authTokenFile"`
}

var HTTPDefaults = &HTTPServerConfig{
	Address:         confutil.P("127.0.0.1"),
	RequestTimeout:  confutil.P("30s"),
	ShutdownTimeout: confutil.P("10s"),
}

type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	Debug            bool     `json:"debug"`
	AllowCredentials *bool    `json:"allowCredentials"`
	AllowedHeaders   []string `json:"allowedHeaders"`
	AllowedMethods   []string `json:"allowedMethods"`
	AllowedOrigins   []string `json:"allowedOrigins"`
	MaxAge           *string  `json:"maxAge"`
}

type StatusAPIConfig struct {
	Enabled          *bool `json:"enabled"`
	HTTPServerConfig `json:",inline"`
	// websocket buffer sizes
	ReadBufferSize  *string `json:"readBufferSize"`
	WriteBufferSize *string `json:"writeBufferSize"`
}

var StatusAPIDefaults = &StatusAPIConfig{
	Enabled:         confutil.P(false),
	ReadBufferSize:  confutil.P("4KB"),
	WriteBufferSize: confutil.P("4KB"),
}

type MetricsServerConfig struct {
	Enabled          *bool `json:"enabled"`
	HTTPServerConfig `json:",inline"`
}

var MetricsServerDefaults = &MetricsServerConfig{
	Enabled: confutil.P(false),
}
