// Package metrics defines all custom Prometheus metrics for the web API.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "webapi"

// TokensIssuedTotal counts API tokens successfully issued to client apps.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of API tokens issued.",
	},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: short failure identifier (e.g. "invalid_credentials", "token_expired", "unknown_client")
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts, labelled by reason.",
	},
	[]string{"reason"},
)

// SessionsStartedTotal counts successful interactive logins.
var SessionsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of browser sessions started via login.",
	},
)

// EntitiesCreatedTotal counts created records per entity kind.
// Label:
//   - entity: "user", "item" or "client_app"
var EntitiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entities_created_total",
		Help:      "Total number of records created, labelled by entity kind.",
	},
	[]string{"entity"},
)
