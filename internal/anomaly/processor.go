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

package anomaly

import (
	"context"

	"github.com/vices1967-beep/GanadoChain-sub000/internal/metrics"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/model"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/txmgr"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gctypes"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

// HealthUpdater is the slice of the transaction manager the processor drives
type HealthUpdater interface {
	CurrentHealth(ctx context.Context, animalID string) (model.HealthStatus, error)
	UpdateHealth(ctx context.Context, update *txmgr.HealthUpdate) (gctypes.TxHash, error)
}

type ProcessResult struct {
	Assessment *Assessment `json:"assessment"`
	// TxHash is nil when no update was pushed
	TxHash *gctypes.TxHash `json:"txHash,omitempty"`
}

type Processor interface {
	Process(ctx context.Context, reading *SensorReading) (*ProcessResult, error)
}

type processor struct {
	thresholds *Thresholds
	updater    HealthUpdater
	metrics    metrics.Metrics
}

func NewProcessor(th *Thresholds, updater HealthUpdater, m metrics.Metrics) Processor {
	return &processor{thresholds: th, updater: updater, metrics: m}
}

func (p *processor) Process(ctx context.Context, reading *SensorReading) (*ProcessResult, error) {
	ctx = log.WithLogField(ctx, "device", reading.DeviceID)
	a := Detect(reading, p.thresholds)
	res := &ProcessResult{Assessment: a}
	for _, f := range a.Flags {
		p.metrics.IncAnomalies(string(f))
	}
	if a.Status == nil {
		if len(a.Flags) > 0 {
			log.L(ctx).Infof("Anomaly %v on %s does not change health status", a.Flags, reading.AnimalID)
		}
		return res, nil
	}

	current, err := p.updater.CurrentHealth(ctx, reading.AnimalID)
	if err != nil {
		return nil, err
	}
	if current == *a.Status {
		log.L(ctx).Debugf("Animal %s already %s", reading.AnimalID, current)
		return res, nil
	}

	deviceID := reading.DeviceID
	hash, err := p.updater.UpdateHealth(ctx, &txmgr.HealthUpdate{
		AnimalID: reading.AnimalID,
		Status:   *a.Status,
		Source:   model.SourceIoTSensor,
		DeviceID: &deviceID,
		Biometrics: txmgr.Biometrics{
			Temperature: reading.Temperature,
			HeartRate:   reading.HeartRate,
			Movement:    reading.Movement,
			Latitude:    reading.Latitude,
			Longitude:   reading.Longitude,
			GPSAccuracy: reading.GPSAccuracy,
		},
		Notes:     a.Notes,
		Anomalies: a.Anomalies,
	})
	if err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Animal %s %s -> %s in %s", reading.AnimalID, current, *a.Status, hash)
	res.TxHash = &hash
	return res, nil
}
