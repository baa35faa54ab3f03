// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SessionsIssued counts login sessions established, labelled by how the
	// session was created (login or register).
	SessionsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_sessions_issued_total",
		Help: "Total number of login sessions established",
	}, []string{"method"})

	// AccessDenials counts access-gate rejections on post mutation by reason.
	AccessDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_access_denials_total",
		Help: "Total number of post mutation requests denied by the access gate",
	}, []string{"reason"})
)
