package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts faucet requests by network and outcome status
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faucet_requests_total",
			Help: "Total number of faucet requests",
		},
		[]string{"network", "status"},
	)

	// BroadcastDuration tracks how long the ledger broadcast takes
	BroadcastDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "faucet_broadcast_duration_seconds",
			Help:    "Ledger broadcast duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"network", "outcome"},
	)

	// GrantsIssued counts successfully recorded grants
	GrantsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faucet_grants_issued_total",
			Help: "Total number of grants issued",
		},
		[]string{"network"},
	)

	// GrantConflicts counts grant writes that lost a race to a concurrent request
	GrantConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faucet_grant_conflicts_total",
			Help: "Total number of grant writes rejected by the uniqueness constraint",
		},
		[]string{"network"},
	)

	// NonceReconciliations counts stored-nonce repairs driven by ledger hints
	NonceReconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faucet_nonce_reconciliations_total",
			Help: "Total number of nonce reconciliations",
		},
		[]string{"network"},
	)
)
