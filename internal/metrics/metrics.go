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

package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

const subsystem = "ganadochain"

type Metrics interface {
	IncSubmitted(operation string)
	IncBroadcastError(reason string)
	IncConfirmed(operation string)
	IncFailed(operation string)
	IncTimedOut()
	IncRetried()
	IncReallocated()
	IncReconcile(outcome string)
	IncAnomalies(flag string)
	ObserveConfirmSeconds(seconds float64)
	SetGasPriceGwei(gwei float64)
	SetTrackedReceipts(n int)
}

type gcMetrics struct {
	submitted       *prometheus.CounterVec
	broadcastErrors *prometheus.CounterVec
	confirmed       *prometheus.CounterVec
	failed          *prometheus.CounterVec
	timedOut        prometheus.Counter
	retried         prometheus.Counter
	reallocated     prometheus.Counter
	reconciles      *prometheus.CounterVec
	anomalies       *prometheus.CounterVec
	confirmSeconds  prometheus.Histogram
	gasPriceGwei    prometheus.Gauge
	trackedReceipts prometheus.Gauge
}

func InitMetrics(ctx context.Context, registry *prometheus.Registry) Metrics {
	log.L(ctx).Debugf("Registering metrics")
	m := &gcMetrics{
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "submitted_txns_total",
			Help: "Transactions signed and broadcast", Subsystem: subsystem}, []string{"operation"}),
		broadcastErrors: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "broadcast_errors_total",
			Help: "Broadcast rejections by mapped reason", Subsystem: subsystem}, []string{"reason"}),
		confirmed: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "confirmed_txns_total",
			Help: "Transactions confirmed with a successful receipt", Subsystem: subsystem}, []string{"operation"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "failed_txns_total",
			Help: "Transactions marked failed", Subsystem: subsystem}, []string{"operation"}),
		timedOut: prometheus.NewCounter(prometheus.CounterOpts{Name: "confirm_timeouts_total",
			Help: "Receipt waits that hit their deadline", Subsystem: subsystem}),
		retried: prometheus.NewCounter(prometheus.CounterOpts{Name: "retried_txns_total",
			Help: "Rebroadcasts made by the pool sweep", Subsystem: subsystem}),
		reallocated: prometheus.NewCounter(prometheus.CounterOpts{Name: "nonce_reallocations_total",
			Help: "Payloads moved to a fresh nonce after a nonce conflict", Subsystem: subsystem}),
		reconciles: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "reconcile_outcomes_total",
			Help: "Dual-write reconcile outcomes", Subsystem: subsystem}, []string{"outcome"}),
		anomalies: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "sensor_anomalies_total",
			Help: "Sensor anomaly flags raised", Subsystem: subsystem}, []string{"flag"}),
		confirmSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{Name: "confirm_seconds",
			Help: "Time from tracking to receipt", Subsystem: subsystem, Buckets: prometheus.ExponentialBuckets(1, 2, 10)}),
		gasPriceGwei: prometheus.NewGauge(prometheus.GaugeOpts{Name: "gas_price_gwei",
			Help: "Last sampled network gas price", Subsystem: subsystem}),
		trackedReceipts: prometheus.NewGauge(prometheus.GaugeOpts{Name: "tracked_receipts",
			Help: "Hashes currently polled by the confirmer", Subsystem: subsystem}),
	}
	registry.MustRegister(
		m.submitted, m.broadcastErrors, m.confirmed, m.failed, m.timedOut, m.retried, m.reallocated,
		m.reconciles, m.anomalies, m.confirmSeconds, m.gasPriceGwei, m.trackedReceipts,
	)
	return m
}

// NewUnitTestMetrics registers against a throwaway registry
func NewUnitTestMetrics() Metrics {
	return InitMetrics(context.Background(), prometheus.NewRegistry())
}

func (m *gcMetrics) IncSubmitted(operation string) {
	m.submitted.WithLabelValues(operation).Inc()
}

func (m *gcMetrics) IncBroadcastError(reason string) {
	m.broadcastErrors.WithLabelValues(reason).Inc()
}

func (m *gcMetrics) IncConfirmed(operation string) {
	m.confirmed.WithLabelValues(operation).Inc()
}

func (m *gcMetrics) IncFailed(operation string) {
	m.failed.WithLabelValues(operation).Inc()
}

func (m *gcMetrics) IncTimedOut() {
	m.timedOut.Inc()
}

func (m *gcMetrics) IncRetried() {
	m.retried.Inc()
}

func (m *gcMetrics) IncReallocated() {
	m.reallocated.Inc()
}

func (m *gcMetrics) IncReconcile(outcome string) {
	m.reconciles.WithLabelValues(outcome).Inc()
}

func (m *gcMetrics) IncAnomalies(flag string) {
	m.anomalies.WithLabelValues(flag).Inc()
}

func (m *gcMetrics) ObserveConfirmSeconds(seconds float64) {
	m.confirmSeconds.Observe(seconds)
}

func (m *gcMetrics) SetGasPriceGwei(gwei float64) {
	m.gasPriceGwei.Set(gwei)
}

func (m *gcMetrics) SetTrackedReceipts(n int) {
	m.trackedReceipts.Set(float64(n))
}
