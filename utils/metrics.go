package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricSimulationCreatedCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foresight_simulations_created_total",
		Help: "Simulations accepted through the API, by organization and cache outcome.",
	}, []string{"org_id", "cache_hit"})

	MetricCacheLookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foresight_cache_lookup_duration_seconds",
		Help:    "Time spent looking up a reusable simulation result.",
		Buckets: prometheus.DefBuckets,
	}, []string{"org_id"})

	MetricSimulationBacklog = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "foresight_simulation_backlog",
		Help: "Simulations currently queued or running, by organization and status.",
	}, []string{"org_id", "status"})

	MetricOldestQueuedSimulationAge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "foresight_oldest_queued_simulation_age_seconds",
		Help: "Age of the oldest simulation still waiting for an engine, by organization.",
	}, []string{"org_id"})
)
