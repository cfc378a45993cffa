// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Package metrics provides Prometheus instrumentation for the
// view-state engine:
//   - Snapshot persistence (saves, errors, load fallbacks)
//   - Rating aggregation throughput
//   - Watch-time accrual
//   - Session transitions
//   - API latency and WebSocket connections
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Snapshot store metrics
	SnapshotSaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "theatrum_snapshot_saves_total",
			Help: "Total number of persisted snapshot writes",
		},
	)

	SnapshotSaveErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "theatrum_snapshot_save_errors_total",
			Help: "Total number of failed snapshot writes (degraded, not fatal)",
		},
	)

	SnapshotLoadFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "theatrum_snapshot_load_fallbacks_total",
			Help: "Times a missing or corrupt snapshot was replaced with defaults",
		},
	)

	// Rating metrics
	RatingsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "theatrum_ratings_applied_total",
			Help: "Total number of personal ratings applied",
		},
		[]string{"kind"}, // "first" or "rerate"
	)

	RatingsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "theatrum_ratings_rejected_total",
			Help: "Total number of rating submissions rejected at the boundary",
		},
	)

	// Watch-time metrics
	WatchTimeTicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "theatrum_watch_time_ticks_total",
			Help: "Total number of watch-time accrual ticks",
		},
	)

	WatchTimeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "theatrum_watch_time_seconds",
			Help: "Current cumulative watch time in seconds",
		},
	)

	// Session metrics
	SessionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "theatrum_session_transitions_total",
			Help: "Total number of session state transitions",
		},
		[]string{"transition"}, // "login", "logout", "switch_profile", "restore"
	)

	// API metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "theatrum_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// WebSocket metrics
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "theatrum_websocket_connections",
			Help: "Current number of connected WebSocket clients",
		},
	)

	WebSocketMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "theatrum_websocket_messages_sent_total",
			Help: "Total number of WebSocket messages broadcast to clients",
		},
	)
)

// ObserveAPIRequest records one API request's latency.
func ObserveAPIRequest(endpoint, method, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(endpoint, method, status).Observe(duration.Seconds())
}
