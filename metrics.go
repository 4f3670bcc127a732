// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lockbmc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors updated by a Checker.
type Metrics struct {
	// Queries counts queries by method and result (deadlock, none, error).
	Queries *prometheus.CounterVec
	// Duration observes query durations by method.
	Duration *prometheus.HistogramVec
	// Visited observes the configurations explored per search.
	Visited prometheus.Histogram
	// Variables is the number of named variables of the last formula.
	Variables prometheus.Gauge
	// Disagreements counts queries on which search and sat differ.
	Disagreements prometheus.Counter
}

// NewMetrics creates Metrics registered with reg.  A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Queries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lockbmc_queries_total",
			Help: "Bounded deadlock queries by method and result",
		}, []string{"method", "result"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lockbmc_query_duration_seconds",
			Help:    "Bounded deadlock query duration",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"method"}),
		Visited: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lockbmc_search_visited",
			Help:    "Configurations explored per search",
			Buckets: prometheus.ExponentialBuckets(1, 8, 8),
		}),
		Variables: f.NewGauge(prometheus.GaugeOpts{
			Name: "lockbmc_formula_variables",
			Help: "Named variables of the last encoded formula",
		}),
		Disagreements: f.NewCounter(prometheus.CounterOpts{
			Name: "lockbmc_disagreements_total",
			Help: "Queries on which search and sat disagree",
		}),
	}
}
