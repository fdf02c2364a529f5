// Package observability – Prometheus collectors.
//
// This file exposes the bot's domain metrics. Label cardinality is bounded by
// construction: "command" ranges over the five bot commands plus "message",
// "outcome" over ok/error, and "op" over the handful of store primitives.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// commandsTotal counts handled chat updates by command and outcome.
	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waiterbot_commands_total",
			Help: "Total number of handled bot commands.",
		},
		[]string{"command", "outcome"},
	)

	// storeOpDuration records the latency of individual store calls.
	storeOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waiterbot_store_op_duration_seconds",
			Help:    "Duration of Redis operations in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// storeOpFailures counts failed store calls by operation.
	storeOpFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waiterbot_store_op_failures_total",
			Help: "Total number of failed Redis operations.",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(commandsTotal, storeOpDuration, storeOpFailures)
}

// CountCommand records one handled command with its outcome ("ok" / "error").
func CountCommand(command, outcome string) {
	commandsTotal.WithLabelValues(command, outcome).Inc()
}

// ObserveStoreOp records the duration of one store call and, when err is
// non-nil, its failure. Call with the time captured just before the call.
func ObserveStoreOp(op string, start time.Time, err error) {
	storeOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		storeOpFailures.WithLabelValues(op).Inc()
	}
}
