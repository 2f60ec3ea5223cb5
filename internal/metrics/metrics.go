// Package metrics holds application level prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NewUsersTotal counts completed signups.
	NewUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spendwise_new_users_total",
		Help: "Total number of new user registrations.",
	})
	// LoginAttemptsTotal counts sign-in attempts by status ("success" or "failed").
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spendwise_login_attempts_total",
		Help: "Total number of sign-in attempts.",
	}, []string{"status"})

	// LedgerWritesTotal counts ledger mutations by record and action.
	LedgerWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spendwise_ledger_writes_total",
		Help: "Total number of ledger writes.",
	}, []string{"record", "action"})

	// DBOpenConnections tracks the sqlite pool.
	DBOpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spendwise_db_open_connections",
		Help: "Number of open database connections.",
	})
)
