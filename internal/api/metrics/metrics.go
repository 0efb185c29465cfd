// Package metrics defines and registers all custom Prometheus metrics for
// the task system. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskhub"

// LoginsTotal counts login attempts that passed user lookup.
// Label:
//   - result: "ok" or "rejected" (password mismatch)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsRevokedTotal counts explicit logouts.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions explicitly revoked by logout.",
	},
)

// UsersCreatedTotal counts successfully provisioned users.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// UsersDeletedTotal counts deleted users.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted.",
	},
)

// TasksAssignedTotal counts tasks appended to a user's task list.
var TasksAssignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_assigned_total",
		Help:      "Total number of tasks assigned.",
	},
)

// TasksToggledTotal counts completion toggles.
var TasksToggledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_toggled_total",
		Help:      "Total number of task completion toggles.",
	},
)

// TasksRemovedTotal counts removed tasks.
var TasksRemovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_removed_total",
		Help:      "Total number of tasks removed.",
	},
)

// ForbiddenTotal counts operations denied by the rank rule.
// Label:
//   - operation: "assign_task", "toggle_task", "remove_task", "delete_user"
var ForbiddenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forbidden_total",
		Help:      "Total number of operations denied by the rank comparison.",
	},
	[]string{"operation"},
)
