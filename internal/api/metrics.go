package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themis_evaluations_total",
		Help: "Engine invocations by workflow kind and outcome.",
	}, []string{"kind", "outcome"})

	evaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "themis_evaluation_duration_seconds",
		Help:    "Engine invocation latency by workflow kind.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	consistencyWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "themis_consistency_warnings_total",
		Help: "Prioritizations whose comparison judgments exceeded the consistency threshold.",
	})
)
