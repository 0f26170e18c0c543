package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DAOWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "edutask", Subsystem: "dao", Name: "writes_total", Help: "Number of create calls by collection and result (created|rejected|error)."},
		[]string{"collection", "result"},
	)
	DAOFinds = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "edutask", Subsystem: "dao", Name: "finds_total", Help: "Number of find calls by collection and result (ok|error)."},
		[]string{"collection", "result"},
	)
	UserLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "edutask", Name: "user_lookups_total", Help: "Number of user-by-email lookups by outcome."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "edutask", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by route."},
		[]string{"route"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "edutask", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by route."},
		[]string{"route"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DAOWrites)
	reg.MustRegister(DAOFinds)
	reg.MustRegister(UserLookups)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
