// Copyright 2026 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var GraphBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "vulncorrelator_graph_build_duration_seconds",
	Help:    "Duration of loading and materializing one sbom graph in seconds",
	Buckets: prometheus.DefBuckets,
})

var GraphBuildFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vulncorrelator_graph_build_failures_total",
	Help: "Total number of failed sbom graph builds",
})

var AnalysisCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vulncorrelator_analysis_cache_lookups_total",
	Help: "Analysis cache lookups by result (hit or miss)",
}, []string{"result"})

var AnalysisCacheSize = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "vulncorrelator_analysis_cache_graphs",
	Help: "Number of sbom graphs currently cached",
})

var DroppedEdges = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vulncorrelator_dropped_edges_total",
	Help: "Edges dropped while building graphs because an endpoint was unknown",
})
