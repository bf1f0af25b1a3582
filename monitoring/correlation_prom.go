// Copyright 2026 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var CorrelationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "vulncorrelator_correlation_duration_seconds",
	Help:    "Duration of a single identity correlation in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"identity"})

var CorrelationMatches = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vulncorrelator_correlation_matches_total",
	Help: "Total number of status assertions matched, by status",
}, []string{"status"})

var SkippedAssertions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vulncorrelator_skipped_assertions_total",
	Help: "Assertions skipped during correlation because their range could not be evaluated",
}, []string{"reason"})
