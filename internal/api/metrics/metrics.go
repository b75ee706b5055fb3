// Package metrics defines and registers the custom Prometheus metrics of the
// employee directory. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default registry through promauto when
// the package is first imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Bookmark metrics ──────────────────────────────────────────────────────────

// BookmarkMutationsTotal counts bookmark changes requested through the API.
// Label:
//   - op: "add" or "remove"
var BookmarkMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookmark_mutations_total",
		Help:      "Total number of bookmark add/remove operations.",
	},
	[]string{"op"},
)

// ── Roster metrics ────────────────────────────────────────────────────────────

// RosterFetchDuration measures calls to the external roster API.
// Labels:
//   - op: "list", "get" or "ping"
//   - result: "ok" or "error"
var RosterFetchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "roster_fetch_duration_seconds",
		Help:      "Duration of requests to the external roster API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op", "result"},
)

// RosterCacheTotal counts page cache lookups.
// Label:
//   - result: "hit" or "miss"
var RosterCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_cache_total",
		Help:      "Total number of roster page cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Promotion metrics ─────────────────────────────────────────────────────────

// PromotionsTotal counts promotion requests by outcome.
// Label:
//   - result: "recorded", "failed" or "rejected" (queue full)
var PromotionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "promotions_total",
		Help:      "Total number of promotion requests, by outcome.",
	},
	[]string{"result"},
)

// PromotionQueueDepth tracks pending requests per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var PromotionQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "promotion_queue_depth",
		Help:      "Current number of promotion requests pending in each worker channel.",
	},
	[]string{"worker_id"},
)
