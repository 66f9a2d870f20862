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

// Package anomaly turns sensor readings into health classifications.
package anomaly

import (
	"context"
	"fmt"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
)

type Flag string

const (
	FlagHeartRateAbnormal   Flag = "heartRateAbnormal"
	FlagTemperatureAbnormal Flag = "temperatureAbnormal"
	FlagGPSLowAccuracy      Flag = "gpsLowAccuracy"
)

// SensorReading is one sample from a collar or ear-tag device. Unset vitals are not evaluated.
type SensorReading struct {
	DeviceID    string            `json:"deviceId"`
	AnimalID    string            `json:"animalId"`
	HeartRate   *float64          `json:"heartRate,omitempty"`
	Temperature *float64          `json:"temperature,omitempty"`
	Movement    *float64          `json:"movement,omitempty"`
	Latitude    *float64          `json:"latitude,omitempty"`
	Longitude   *float64          `json:"longitude,omitempty"`
	GPSAccuracy *float64          `json:"gpsAccuracy,omitempty"`
	Timestamp   gctypes.Timestamp `json:"timestamp"`
}

type Thresholds struct {
	HeartRateMin         float64
	HeartRateMax         float64
	TemperatureMin       float64
	TemperatureMax       float64
	GPSAccuracyThreshold float64
}

func ThresholdsFromConfig(ctx context.Context, conf *gcconf.AnomalyConfig) (*Thresholds, error) {
	defs := gcconf.AnomalyDefaults
	th := &Thresholds{
		HeartRateMin:         confutil.Float64(conf.HeartRateMin, *defs.HeartRateMin),
		HeartRateMax:         confutil.Float64(conf.HeartRateMax, *defs.HeartRateMax),
		TemperatureMin:       confutil.Float64(conf.TemperatureMin, *defs.TemperatureMin),
		TemperatureMax:       confutil.Float64(conf.TemperatureMax, *defs.TemperatureMax),
		GPSAccuracyThreshold: confutil.Float64(conf.GPSAccuracyThreshold, *defs.GPSAccuracyThreshold),
	}
	if th.HeartRateMin >= th.HeartRateMax {
		return nil, i18n.NewError(ctx, msgs.MsgConfigAnomalyThresholds, "heartRate", th.HeartRateMin, th.HeartRateMax)
	}
	if th.TemperatureMin >= th.TemperatureMax {
		return nil, i18n.NewError(ctx, msgs.MsgConfigAnomalyThresholds, "temperature", th.TemperatureMin, th.TemperatureMax)
	}
	return th, nil
}

type Assessment struct {
	Flags []Flag `json:"flags"`
	// Status is nil when the reading does not justify a change
	Status    *model.HealthStatus `json:"status,omitempty"`
	Notes     string              `json:"notes,omitempty"`
	Anomalies []string            `json:"anomalies,omitempty"`
}

func (a *Assessment) Has(f Flag) bool {
	for _, af := range a.Flags {
		if af == f {
			return true
		}
	}
	return false
}

// Detect is pure. Bounds are inclusive, so a reading on a bound is normal.
func Detect(r *SensorReading, th *Thresholds) *Assessment {
	a := &Assessment{Notes: fmt.Sprintf("IoT data - device %s", r.DeviceID)}

	if r.Temperature != nil {
		t := *r.Temperature
		a.Notes += fmt.Sprintf(" - Temp: %g°C", t)
		if t < th.TemperatureMin || t > th.TemperatureMax {
			a.Flags = append(a.Flags, FlagTemperatureAbnormal)
			a.Anomalies = append(a.Anomalies, fmt.Sprintf("temperature %g°C outside %g-%g", t, th.TemperatureMin, th.TemperatureMax))
		}
	}
	if r.HeartRate != nil {
		hr := *r.HeartRate
		a.Notes += fmt.Sprintf(" - HR: %gbpm", hr)
		if hr < th.HeartRateMin || hr > th.HeartRateMax {
			a.Flags = append(a.Flags, FlagHeartRateAbnormal)
			a.Anomalies = append(a.Anomalies, fmt.Sprintf("heart rate %gbpm outside %g-%g", hr, th.HeartRateMin, th.HeartRateMax))
		}
	}
	if r.GPSAccuracy != nil {
		acc := *r.GPSAccuracy
		if acc > th.GPSAccuracyThreshold {
			a.Notes += fmt.Sprintf(" - GPS accuracy: %gm", acc)
			a.Flags = append(a.Flags, FlagGPSLowAccuracy)
			a.Anomalies = append(a.Anomalies, fmt.Sprintf("gps accuracy %gm worse than %gm", acc, th.GPSAccuracyThreshold))
		}
	}

	switch {
	case a.Has(FlagTemperatureAbnormal):
		a.Status = statusP(model.HealthSick)
	case len(a.Flags) >= 2:
		a.Status = statusP(model.HealthUnderObservation)
	}
	return a
}

func statusP(s model.HealthStatus) *model.HealthStatus {
	return &s
}
