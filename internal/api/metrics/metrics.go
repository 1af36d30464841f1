// Package metrics defines and registers the custom Prometheus metrics for the
// blog service. It is the single source of truth for metric names, labels and
// help strings.
//
// All collectors register with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "invalid" or "conflict"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Article metrics ───────────────────────────────────────────────────────────

// ArticlesCreatedTotal counts newly created articles.
var ArticlesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created.",
	},
)

// ArticleMutationsTotal counts edit and delete attempts.
// Labels:
//   - op: "update" or "delete"
//   - result: "ok", "forbidden", "not_found" or "invalid"
var ArticleMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_mutations_total",
		Help:      "Total number of article update/delete attempts, by operation and result.",
	},
	[]string{"op", "result"},
)

// SearchesTotal counts title searches.
// Label:
//   - result: "hit" (at least one match) or "miss"
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of title searches, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
