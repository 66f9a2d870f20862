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

// AnomalyConfig bounds are inclusive: a reading equal to a bound is normal
type AnomalyConfig struct {
	HeartRateMin         *float64 `json:"heartRateMin"`
	HeartRateMax         *float64 `json:"heartRateMax"`
	TemperatureMin       *float64 `json:"temperatureMin"`
	TemperatureMax       *float64 `json:"temperatureMax"`
	GPSAccuracyThreshold *float64 `json:"gpsAccuracyThreshold"`
}

var AnomalyDefaults = &AnomalyConfig{
	HeartRateMin:         confutil.P(40.0),
	HeartRateMax:         confutil.P(100.0),
	TemperatureMin:       confutil.P(37.5),
	TemperatureMax:       confutil.P(39.5),
	GPSAccuracyThreshold: confutil.P(50.0),
}
