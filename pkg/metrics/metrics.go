package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ArtifactsIngested counts artifacts upserted into the library
	ArtifactsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "artifact_vault_artifacts_ingested_total",
		Help: "Number of artifacts normalized and upserted into the library",
	})

	// IngestFailures counts failed per-network provider fetches
	IngestFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "artifact_vault_ingest_failures_total",
		Help: "Number of per-network fetches that failed",
	})

	// SyncFailures counts failed or dropped persistence sync tasks
	SyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "artifact_vault_sync_failures_total",
		Help: "Number of persistence reconciliation tasks that failed or were dropped",
	})
)
