package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Auth metrics

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "logins_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "registrations_total",
		Help:      "Successful account registrations.",
	})

	TokenRejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "token_rejections_total",
		Help:      "Bearer tokens rejected by the auth middleware, by reason.",
	}, []string{"reason"})

	RateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter, by route.",
	}, []string{"route"})

	// Match scorer metrics

	MatchComputationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "match_computations_total",
		Help:      "Match score computations, split by real vs fallback resume content.",
	}, []string{"content"})

	MatchScoreDistribution = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "applytrack",
		Name:      "match_score_percent",
		Help:      "Distribution of computed match percentages.",
		Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	// Reminder metrics

	RemindersSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "reminders_sent_total",
		Help:      "Follow-up reminder emails sent.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "applytrack",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "applytrack",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		LoginsTotal,
		RegistrationsTotal,
		TokenRejectionsTotal,
		RateLimitedTotal,
		MatchComputationsTotal,
		MatchScoreDistribution,
		RemindersSentTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}
