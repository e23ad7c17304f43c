package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VotesCast counts vote requests by target (idea, comment) and resulting state.
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ideaforge_votes_cast_total",
		Help: "Total number of votes cast by target and resulting state",
	}, []string{"target", "state"})

	// CreditsMoved counts credit ledger entries by action and direction.
	CreditsMoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ideaforge_credits_moved_total",
		Help: "Total credits added or removed by action",
	}, []string{"action", "direction"})

	AdsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ideaforge_ads_created_total",
		Help: "Total number of ads purchased by placement type",
	}, []string{"type"})

	AdsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ideaforge_ads_served_total",
		Help: "Total number of ad views served by placement type",
	}, []string{"type"})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ideaforge_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"resource"})

	RateLimiterErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ideaforge_rate_limiter_errors_total",
		Help: "Total number of rate limiter store errors (requests were let through)",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ideaforge_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// RecordCredits tracks a ledger movement.
func RecordCredits(action string, amount int) {
	switch {
	case amount > 0:
		CreditsMoved.WithLabelValues(action, "in").Add(float64(amount))
	case amount < 0:
		CreditsMoved.WithLabelValues(action, "out").Add(float64(-amount))
	}
}
