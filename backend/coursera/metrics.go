package coursera

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

var (
	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learngenie_coursera_requests_total",
			Help: "Coursera API calls by outcome (success, failure, rejected)",
		},
		[]string{"outcome"},
	)

	upstreamRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "learngenie_coursera_retries_total",
			Help: "Coursera API attempts that were retried",
		},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learngenie_coursera_cache_lookups_total",
			Help: "Coursera response cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	breakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "learngenie_coursera_circuit_breaker_state",
			Help: "Coursera circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
