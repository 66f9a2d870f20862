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

type GasOracleConfig struct {
	Enabled        *bool             `json:"enabled"`
	SampleInterval *string           `json:"sampleInterval"`
	Writer         FlushWriterConfig `json:"writer"`
}

var GasOracleDefaults = &GasOracleConfig{
	Enabled:        confutil.P(false),
	SampleInterval: confutil.P("1m"),
	Writer: FlushWriterConfig{
		WorkerCount:  confutil.P(1),
		BatchTimeout: confutil.P("250ms"),
		BatchMaxSize: confutil.P(20),
	},
}

var InteractionWriterDefaults = &FlushWriterConfig{
	WorkerCount:  confutil.P(5),
	BatchTimeout: confutil.P("75ms"),
	BatchMaxSize: confutil.P(50),
}
