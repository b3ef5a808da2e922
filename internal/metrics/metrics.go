package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsHandled is a counter for chat commands handled successfully.
	CommandsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sleeptober_commands_handled_total",
			Help: "The total number of chat commands handled.",
		},
		[]string{"command"},
	)

	// CommandErrors is a counter for commands answered with an error reply.
	CommandErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sleeptober_command_errors_total",
			Help: "The total number of commands that produced an error reply.",
		},
		[]string{"kind"},
	)

	// StorePersists is a counter for successful store snapshots.
	StorePersists = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sleeptober_store_persists_total",
			Help: "The total number of store snapshots written to disk.",
		},
	)

	// StorePersistRetries is a counter for snapshot writes that were retried.
	StorePersistRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sleeptober_store_persist_retries_total",
			Help: "The total number of snapshot writes retried after a failure.",
		},
	)
)
