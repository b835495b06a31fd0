package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for monitoring
var (
	IntentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railrouter_intents_created_total",
		Help: "The total number of payment intents created",
	}, []string{"rail"})

	NoEligibleRail = promauto.NewCounter(prometheus.CounterOpts{
		Name: "railrouter_no_eligible_rail_total",
		Help: "The number of intent creations rejected because no rail was eligible",
	})

	EligibleRails = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "railrouter_eligible_rails",
		Help:    "Number of rails surviving the eligibility filter per intent",
		Buckets: prometheus.LinearBuckets(0, 1, 8),
	})

	IntentsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railrouter_intents_executed_total",
		Help: "The total number of executed intents by rail and outcome",
	}, []string{"rail", "status"})

	AttemptDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "railrouter_attempt_duration_seconds",
		Help:    "Time taken by individual rail transfer attempts",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"rail"})

	FallbackExecutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railrouter_fallback_executions_total",
		Help: "The number of intents settled by a fallback rail instead of the selected one",
	}, []string{"rail"})

	BreakerTrips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railrouter_breaker_trips_total",
		Help: "The number of times a rail's circuit breaker tripped open",
	}, []string{"rail"})

	ComplianceDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railrouter_compliance_denials_total",
		Help: "The number of rails denied by the compliance gate",
	}, []string{"rail"})
)
