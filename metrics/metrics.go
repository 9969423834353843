// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/chainvote/livesync"
)

// Metrics used in monitoring service.
var (
	syncTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of results refresh ticks by outcome",
			Name:      "sync_ticks_total",
			Namespace: "chainvote",
		},
		[]string{"result"},
	)
	syncTickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Help:      "Results refresh fetch and render time",
			Name:      "sync_tick_duration_seconds",
			Namespace: "chainvote",
		},
	)
	relayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of requests relayed to the voting server",
			Name:      "relay_requests_total",
			Namespace: "chainvote",
		},
		[]string{"path", "code"},
	)
)

func init() {
	prometheus.MustRegister(
		syncTicks,
		syncTickDuration,
		relayRequests,
	)
}

// SyncObserver records results refresh outcomes
type SyncObserver struct{}

func (SyncObserver) ObserveTick(result livesync.TickResult, elapsed time.Duration) {
	syncTicks.WithLabelValues(result.String()).Inc()
	syncTickDuration.Observe(elapsed.Seconds())
}

// ObserveRelay counts one relayed request and the status it got back
func ObserveRelay(path string, code int) {
	relayRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}
