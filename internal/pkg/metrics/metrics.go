// Package metrics defines and registers all custom Prometheus metrics for the
// photogram API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry through promauto when the
// package is loaded; /metrics exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "photogram"

// ── Sign-up metrics ───────────────────────────────────────────────────────────

// SignUpSubmissionsTotal counts sign-up submissions by outcome.
// Label:
//   - result: "success", "username_taken", "auth", "unknown"
var SignUpSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signup_submissions_total",
		Help:      "Total number of sign-up submissions, by outcome.",
	},
	[]string{"result"},
)

// UsernameChecksTotal counts uniqueness checks.
// Labels:
//   - source: "cache" or "store"
//   - result: "available", "taken", "error"
var UsernameChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "username_checks_total",
		Help:      "Total number of username uniqueness checks.",
	},
	[]string{"source", "result"},
)

// StaleValidationsTotal counts async validation answers dropped because a
// newer value had been submitted for the same field.
var StaleValidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_validations_total",
		Help:      "Async field validations discarded as superseded.",
	},
)

// ── GraphQL metrics ───────────────────────────────────────────────────────────

// GraphQLRequestDuration measures round trips to the GraphQL store.
// Labels:
//   - operation: operation name (e.g. "createUser")
//   - outcome: "ok" or "error"
var GraphQLRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graphql_request_duration_seconds",
		Help:      "Duration of GraphQL operations against the store.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation", "outcome"},
)

// ── Reaction metrics ──────────────────────────────────────────────────────────

// ReactionsTotal counts like/save mutations applied by the dispatcher.
// Labels:
//   - kind: "like" or "save"
//   - action: "add" or "remove"
//   - result: "ok" or "error"
var ReactionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reactions_total",
		Help:      "Total number of reactions applied, by kind, action and result.",
	},
	[]string{"kind", "action", "result"},
)

// ReactionQueueDepth tracks pending reactions in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReactionQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reaction_queue_depth",
		Help:      "Current number of reactions pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ContentCreatedTotal counts posts and comments written.
// Label:
//   - type: "post" or "comment"
var ContentCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_created_total",
		Help:      "Total number of posts and comments created.",
	},
	[]string{"type"},
)
