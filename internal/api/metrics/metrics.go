// Package metrics defines and registers the custom Prometheus metrics of the
// townboard API. It is the single source of truth for metric names, labels
// and help strings. All metrics register with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "townboard"

// ── Auth metrics ─────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts credential operations.
// Labels:
//   - action: "register", "login" or "upgrade"
//   - result: "success" or the error code returned (e.g. "unauthenticated")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register, login and upgrade attempts by result.",
	},
	[]string{"action", "result"},
)

// AccessDeniedTotal counts requests rejected by the access-control layer.
// Label:
//   - reason: "missing_token", "malformed_token", "invalid_token", "role" or "ownership"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by token, role or ownership checks.",
	},
	[]string{"reason"},
)

// ── Resource metrics ─────────────────────────────────────────────────────────

// ResourceMutationsTotal counts successful writes.
// Labels:
//   - resource: "event" or "post"
//   - action: "create", "update", "delete", "reply", "like" or "unlike"
var ResourceMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_mutations_total",
		Help:      "Total number of successful resource writes.",
	},
	[]string{"resource", "action"},
)

// APIErrorsTotal counts error responses rendered by the HTTP error handler.
// Label:
//   - code: the machine-readable error code in the response envelope
var APIErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_errors_total",
		Help:      "Total number of error responses by error code.",
	},
	[]string{"code"},
)
