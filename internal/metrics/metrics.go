package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_http_requests_total",
			Help: "Total number of handled API requests.",
		},
		[]string{"route", "method", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ats_http_request_duration_seconds",
			Help:    "Duration of API requests including simulated latency.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 1.5, 2.5, 5},
		},
		[]string{"route"},
	)
	SimulatedFailuresCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_simulated_failures_total",
			Help: "Total number of failures injected by the data access client.",
		},
		[]string{"op"},
	)
	RollbacksCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_optimistic_rollbacks_total",
			Help: "Total number of optimistic updates reverted after a failed request.",
		},
		[]string{"kind"},
	)
	StaleResponsesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_stale_responses_total",
			Help: "Total number of responses discarded because a newer request superseded them.",
		},
		[]string{"kind"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(RequestsCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(SimulatedFailuresCounter)
		prometheus.MustRegister(RollbacksCounter)
		prometheus.MustRegister(StaleResponsesCounter)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
