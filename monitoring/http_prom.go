// Copyright 2026 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "vulncorrelator_http_request_duration_seconds",
	Help:    "Duration of handled http requests by route and status",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route", "status"})
