/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sync

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpx "github.com/carverauto/vmsync/pkg/http"
	"github.com/carverauto/vmsync/pkg/models"
)

const metricsNamespace = "vmsync"

// Metrics collects Prometheus metrics for the sync service. Each instance
// owns its registry so tests do not share global state.
type Metrics struct {
	registry *prometheus.Registry

	apiCalls    *prometheus.CounterVec
	apiDuration *prometheus.HistogramVec

	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	lastSuccess prometheus.Gauge
	discovered  prometheus.Gauge
	vsNew       prometheus.Gauge
	vsDeleted   prometheus.Gauge
	mutations   *prometheus.CounterVec

	breakerState *prometheus.GaugeVec
}

// NewMetrics creates and registers the sync service metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "api",
				Name:      "calls_total",
				Help:      "Calls to collaborator APIs.",
			},
			[]string{"integration", "endpoint", "status"},
		),
		apiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "api",
				Name:      "call_duration_seconds",
				Help:      "Collaborator API call duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"integration", "endpoint"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "run",
				Name:      "total",
				Help:      "Reconciliation runs by result.",
			},
			[]string{"result"},
		),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Reconciliation run duration in seconds.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "run",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		discovered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "discovered_instances",
			Help:      "Virtual machines returned by the last discovery.",
		}),
		vsNew: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "virtual_servers_new",
			Help:      "Virtual servers flagged as new after the last run.",
		}),
		vsDeleted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "virtual_servers_deleted",
			Help:      "Virtual servers deleted but not yet confirmed after the last run.",
		}),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "mutations_total",
				Help:      "Mutations sent per stage and action.",
			},
			[]string{"stage", "action"},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Circuit breaker state: 0 closed, 1 open, 2 half-open.",
			},
			[]string{"name"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiCalls, m.apiDuration,
		m.runs, m.runDuration, m.lastSuccess,
		m.discovered, m.vsNew, m.vsDeleted,
		m.mutations, m.breakerState,
	)

	return m
}

// Gatherer exposes the registry to the /metrics handler.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// RecordAPICall implements httpx.APIMetrics. Calls that failed before a
// response was received are labelled "error".
func (m *Metrics) RecordAPICall(integration, endpoint string, statusCode int, duration time.Duration, err error) {
	status := strconv.Itoa(statusCode)
	if statusCode == 0 {
		status = "ok"
		if err != nil {
			status = "error"
		}
	}

	m.apiCalls.WithLabelValues(integration, endpoint, status).Inc()
	m.apiDuration.WithLabelValues(integration, endpoint).Observe(duration.Seconds())
}

// RecordRun records the outcome of one reconciliation run.
func (m *Metrics) RecordRun(stats *models.RunStats, err error) {
	if err != nil {
		m.runs.WithLabelValues("failure").Inc()
	} else {
		m.runs.WithLabelValues("success").Inc()
		m.lastSuccess.SetToCurrentTime()
	}

	if stats == nil {
		return
	}

	m.runDuration.Observe(stats.Duration.Seconds())
	m.discovered.Set(float64(stats.Discovered))
	m.vsNew.Set(float64(stats.VSNew))
	m.vsDeleted.Set(float64(stats.VSDeleted))

	m.addStage("inventory", stats.Inventory)
	m.addStage("monitoring", stats.Monitoring)
}

func (m *Metrics) addStage(stage string, s models.StageStats) {
	m.mutations.WithLabelValues(stage, "created").Add(float64(s.Created))
	m.mutations.WithLabelValues(stage, "updated").Add(float64(s.Updated))
	m.mutations.WithLabelValues(stage, "deleted").Add(float64(s.Deleted))
	m.mutations.WithLabelValues(stage, "failed").Add(float64(s.Failed))
}

// RecordCircuitBreakerStateChange matches httpx.StateObserver.
func (m *Metrics) RecordCircuitBreakerStateChange(name string, _, to httpx.CircuitBreakerState) {
	m.breakerState.WithLabelValues(name).Set(float64(to))
}
