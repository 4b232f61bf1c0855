package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketing_api_requests_total",
			Help: "Total number of requests sent to the ticketing backend",
		},
		[]string{"method", "route", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticketing_api_request_duration_seconds",
			Help:    "Ticketing backend request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	paymentPollAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_poll_attempts_total",
			Help: "Total number of payment status polls by observed result",
		},
		[]string{"result"},
	)

	paymentOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_outcomes_total",
			Help: "Total number of payment sessions by final outcome",
		},
		[]string{"outcome"},
	)

	countdownExpirationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reservation_countdown_expirations_total",
			Help: "Total number of checkout countdowns that reached zero",
		},
	)

	sessionsSweptTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_sessions_swept_total",
			Help: "Total number of orphaned payment sessions cancelled by the sweeper",
		},
	)
)

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(paymentPollAttemptsTotal)
	prometheus.MustRegister(paymentOutcomesTotal)
	prometheus.MustRegister(countdownExpirationsTotal)
	prometheus.MustRegister(sessionsSweptTotal)
}

// ObserveAPIRequest records one backend call. A zero status means the request
// never got a response.
func ObserveAPIRequest(method, route string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	apiRequestsTotal.WithLabelValues(method, route, label).Inc()
	apiRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordPollAttempt(result string) {
	paymentPollAttemptsTotal.WithLabelValues(result).Inc()
}

func RecordPaymentOutcome(outcome string) {
	paymentOutcomesTotal.WithLabelValues(outcome).Inc()
}

func RecordCountdownExpired() {
	countdownExpirationsTotal.Inc()
}

func RecordSessionSwept() {
	sessionsSweptTotal.Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
