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

type LogConfig struct {
	Level      *string           `json:"level"`
	Format     *string           `json:"format"` // simple, detailed or json
	Output     *string           `json:"output"` // stdout, stderr or file
	Color      *string           `json:"color"`  // auto, always or never
	TimeFormat *string           `json:"timeFormat"`
	UTC        *bool             `json:"utc"`
	Node       *string           `json:"node"` // tags every line, so replicas sharing a collector can be told apart
	File       LogFileConfig     `json:"file"`
	JSONFields map[string]string `json:"jsonFields"` // renames json keys: time, level, msg, func, file
}

type LogFileConfig struct {
	Filename   *string `json:"filename"`
	MaxSize    *string `json:"maxSize"`
	MaxBackups *int    `json:"maxBackups"`
	MaxAge     *string `json:"maxAge"`
	Compress   *bool   `json:"compress"`
}

var LogDefaults = &LogConfig{
	Level:      confutil.P("info"),
	Format:     confutil.P("simple"),
	Output:     confutil.P("stderr"),
	Color:      confutil.P("auto"),
	TimeFormat: confutil.P("2006-01-02T15:04:05.000Z07:00"),
	UTC:        confutil.P(false),
	File: LogFileConfig{
		Filename:   confutil.P("ganadochain.log"),
		MaxSize:    confutil.P("100Mb"),
		MaxBackups: confutil.P(2),
		MaxAge:     confutil.P("24h"),
		Compress:   confutil.P(true),
	},
	JSONFields: map[string]string{
		"time": "@timestamp",
	},
}
