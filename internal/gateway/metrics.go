package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventhub",
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Outbound API requests by method and outcome.",
	}, []string{"method", "outcome"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "eventhub",
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Outbound API request latency.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})
)

// outcomeLabel maps a request result to the metrics outcome label.
func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if ge, ok := err.(*Error); ok {
		return string(ge.Kind)
	}
	return string(KindOther)
}
