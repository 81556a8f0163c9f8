// MIT License
//
// Copyright (c) 2025 Advanced Micro Devices, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package metrics exposes the prometheus collectors of the wizard status engine.
//
// Collectors are registered with controller-runtime's registry so they are
// served by the manager's metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
)

// Resource kinds used as label values.
const (
	ResourceCluster = "cluster"
	ResourceHost    = "host"

	// KindAgent and KindBareMetalHost label the host gauges.
	KindAgent         = "agent"
	KindBareMetalHost = "baremetalhost"
)

var (
	unmappedConditionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "classifier",
			Name:      "unmapped_conditions_total",
			Help:      "Condition sets that matched no classification rule, by resource kind",
		},
		[]string{"resource"},
	)

	missingConditionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "classifier",
			Name:      "missing_conditions_total",
			Help:      "Condition sets lacking required condition types, by resource kind",
		},
		[]string{"resource"},
	)

	malformedValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "validations",
			Name:      "malformed_payloads_total",
			Help:      "Validation payloads that could not be decoded, by resource kind",
		},
		[]string{"resource"},
	)

	stepReady = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "wizard",
			Name:      "step_ready",
			Help:      "Whether the cluster may proceed from the wizard step (1) or not (0)",
		},
		[]string{"namespace", "cluster", "step"},
	)

	clusterHosts = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "wizard",
			Name:      "hosts",
			Help:      "Hosts of a cluster by kind (agent, baremetalhost) and presented status",
		},
		[]string{"namespace", "cluster", "kind", "status"},
	)

	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "controller",
			Name:      "reconcile_total",
			Help:      "Total number of reconciliations by result",
		},
		[]string{"result"},
	)

	reconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "controller",
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)
)

func init() {
	metrics.Registry.MustRegister(
		unmappedConditionsTotal,
		missingConditionsTotal,
		malformedValidationsTotal,
		stepReady,
		clusterHosts,
		reconcileTotal,
		reconcileDuration,
	)
}

// RecordUnmappedConditions counts a condition set that matched no rule.
func RecordUnmappedConditions(resource string) {
	unmappedConditionsTotal.WithLabelValues(resource).Inc()
}

// RecordMissingConditions counts a condition set lacking required types.
func RecordMissingConditions(resource string) {
	missingConditionsTotal.WithLabelValues(resource).Inc()
}

// RecordMalformedValidations counts a validations payload that failed to decode.
func RecordMalformedValidations(resource string) {
	malformedValidationsTotal.WithLabelValues(resource).Inc()
}

// RecordStepReadiness records the readiness of one wizard step of a cluster.
func RecordStepReadiness(namespace, cluster, step string, ready bool) {
	value := 0.0
	if ready {
		value = 1
	}
	stepReady.WithLabelValues(namespace, cluster, step).Set(value)
}

// RecordHostStatuses replaces the host counts of one kind for a cluster.
func RecordHostStatuses(namespace, cluster, kind string, counts map[string]int) {
	clusterHosts.DeletePartialMatch(prometheus.Labels{"namespace": namespace, "cluster": cluster, "kind": kind})
	for status, count := range counts {
		clusterHosts.WithLabelValues(namespace, cluster, kind, status).Set(float64(count))
	}
}

// ForgetCluster drops the gauges of a deleted cluster.
func ForgetCluster(namespace, cluster string) {
	labels := prometheus.Labels{"namespace": namespace, "cluster": cluster}
	stepReady.DeletePartialMatch(labels)
	clusterHosts.DeletePartialMatch(labels)
}

// RecordReconcile records a reconciliation result and its duration.
func RecordReconcile(result string, seconds float64) {
	reconcileTotal.WithLabelValues(result).Inc()
	reconcileDuration.Observe(seconds)
}
