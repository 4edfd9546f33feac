// Package metrics defines and registers all custom Prometheus metrics for the
// auth service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default registry at init time via promauto; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// RegistrationsTotal counts completed registrations.
// Label:
//   - role: the role assigned to the new user ("admin", "analyst", "viewer")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful user registrations, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRefreshTotal counts refresh attempts.
// Label:
//   - outcome: "success" or "failure"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of token refresh attempts, by outcome.",
	},
	[]string{"outcome"},
)

// FailuresTotal counts rejected requests across the auth surface.
// Label:
//   - reason: short failure class ("invalid_input", "forbidden", "throttled")
var FailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "failures_total",
		Help:      "Total number of rejected auth requests, by reason.",
	},
	[]string{"reason"},
)

// TokenIssueDuration measures how long issuing a token pair takes, including
// the credential store round-trips of the surrounding operation.
// Label:
//   - operation: "register", "login", or "refresh"
var TokenIssueDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "token_issue_duration_seconds",
		Help:      "Duration of operations that mint a token pair.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// AuditDroppedTotal counts audit events dropped because the dispatcher
// buffer was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit events dropped under back-pressure.",
	},
)
