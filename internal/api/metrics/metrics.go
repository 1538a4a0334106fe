// Package metrics defines and registers all custom Prometheus metrics for
// the friends API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at import time via promauto;
// the /metrics route is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "friends"

// FriendRequestActionsTotal counts friend-request workflow outcomes.
// Labels:
//   - action: "send", "accept", or "reject"
//   - result: "ok", "rejected" (failed a business check), or "error"
var FriendRequestActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "friend_request_actions_total",
		Help:      "Total number of friend request workflow actions, by action and result.",
	},
	[]string{"action", "result"},
)

// RateLimitedTotal counts send attempts blocked by the per-user throttle.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of friend request sends rejected by the rate limiter.",
	},
)

// SignupsTotal counts successfully created accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// NotificationQueueDepth tracks the pending notifications in each worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", ...)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
