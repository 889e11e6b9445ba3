package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PageRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taskmate", Name: "page_renders_total", Help: "Number of rendered pages by surface and page."},
		[]string{"surface", "page"},
	)
	FetchFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taskmate", Name: "fetch_fallbacks_total", Help: "Number of backend fetches that fell back to the built-in sample dataset."},
		[]string{"page"},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taskmate", Name: "login_attempts_total", Help: "Console login attempts by outcome."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taskmate", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taskmate", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(PageRenders)
	reg.MustRegister(FetchFallbacks)
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
