package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks the latency of every routed request
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "coupon_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		},
		[]string{"method", "route", "status"},
	)

	// RepairsTotal counts coupons whose expired/active flags were rewritten while listing
	RepairsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coupon_repairs_total",
			Help: "Number of coupon status repairs written during list requests",
		},
	)
)

// RecordHTTPRequest records the duration of a request
func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration)
}

// RecordRepair counts one status repair
func RecordRepair() {
	RepairsTotal.Inc()
}
