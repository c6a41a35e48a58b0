package bcc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blocksBroadcastCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bcc_blocks_broadcast_total",
			Help: "Count of blocks broadcast to peers.",
		},
	)
	attestationsBroadcastCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bcc_attestations_broadcast_total",
			Help: "Count of attestations broadcast to peers.",
		},
	)
	blocksImportedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bcc_blocks_imported_total",
			Help: "Count of blocks successfully imported into the chain.",
		},
	)
	blocksOrphanedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bcc_blocks_orphaned_total",
			Help: "Count of blocks added to the orphan pool to await their parent.",
		},
	)
	blocksRejectedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bcc_blocks_rejected_total",
			Help: "Count of blocks dropped for failing validation on import.",
		},
	)
	attestationsPooledCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bcc_attestations_pooled_total",
			Help: "Count of attestations accepted into the attestation pool.",
		},
	)
)
