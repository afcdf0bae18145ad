// Package metrics defines and registers all custom Prometheus metrics for the
// community board. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "community"

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreCommitsTotal counts state commits.
// Label:
//   - op: "update", "set", "clear" or "migrate"
var StoreCommitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_commits_total",
		Help:      "Total number of committed state transactions, by operation.",
	},
	[]string{"op"},
)

// StoreAbortsTotal counts transactions whose updater returned an error.
var StoreAbortsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_aborts_total",
		Help:      "Total number of state transactions aborted by their updater.",
	},
)

// StorePersistDuration measures how long writing the state document takes.
var StorePersistDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_persist_duration_seconds",
		Help:      "Duration of persisting the state document to the storage backend.",
		Buckets:   prometheus.DefBuckets,
	},
)

// StoreListenerPanicsTotal counts listeners that panicked during notification.
var StoreListenerPanicsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_listener_panics_total",
		Help:      "Total number of store listeners that panicked while being notified.",
	},
)

// StoreCorruptionResetsTotal counts documents discarded because they could not be parsed.
var StoreCorruptionResetsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_corruption_resets_total",
		Help:      "Total number of times an unparsable state document was reset to defaults.",
	},
)

// ── Router metrics ────────────────────────────────────────────────────────────

// RouterTransitionsTotal counts route resolutions.
// Labels:
//   - path: resolved route path (e.g. "#/feed")
//   - result: "render" or "redirect"
var RouterTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "router_transitions_total",
		Help:      "Total number of route transitions, by path and result.",
	},
	[]string{"path", "result"},
)

// ── Community metrics ─────────────────────────────────────────────────────────

// SignInsTotal counts successful sign-ins.
// Label:
//   - status: "approved" or "pending"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of successful sign-ins, by approval status.",
	},
	[]string{"status"},
)

// EntitiesCreatedTotal counts created posts, comments and events.
// Label:
//   - kind: "post", "comment", "event" or "user"
var EntitiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entities_created_total",
		Help:      "Total number of community entities created, by kind.",
	},
	[]string{"kind"},
)

// ModerationActionsTotal counts admin console actions.
// Label:
//   - action: "approve", "deny", "toggle_admin", "delete_post", "delete_event"
var ModerationActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_actions_total",
		Help:      "Total number of admin moderation actions, by action.",
	},
	[]string{"action"},
)
