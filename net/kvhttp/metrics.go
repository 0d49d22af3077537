// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus collectors this server exposes. It is
// additive instrumentation (see SPEC_FULL.md's METRICS ENDPOINT
// section): nothing on the §4 request path depends on it being wired
// up, so a nil-registry Server still serves correctly, just unobserved.
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	queueDepth      prometheus.GaugeFunc
	activeConns     prometheus.Gauge
	lockWaitSeconds *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer, queueDepthFn func() float64) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kvhttpd_requests_total",
			Help: "Completed requests by method and status code.",
		}, []string{"method", "status"}),
		queueDepth: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "kvhttpd_queue_depth",
			Help: "Current occupancy of the accept hand-off queue.",
		}, queueDepthFn),
		activeConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kvhttpd_active_connections",
			Help: "Connections currently being served by a worker.",
		}),
		lockWaitSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kvhttpd_lock_wait_seconds",
			Help:    "Time spent blocked acquiring a per-URI lock.",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
	}
}
