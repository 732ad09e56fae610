package repositories

import (
	"context"

	"artifact-vault.backend/internal/domain/entities"
)

// ArtifactRepository mirrors artifacts to the remote system of record. The
// in-memory store is authoritative for reads; these writes are best-effort
// and applied through the sync queue.
type ArtifactRepository interface {
	Upsert(ctx context.Context, artifact *entities.Artifact) error
	UpsertBatch(ctx context.Context, artifacts []*entities.Artifact) error
	Delete(ctx context.Context, id entities.ArtifactID) error
	DeleteByWallet(ctx context.Context, walletID string) error
	SetSpam(ctx context.Context, id entities.ArtifactID, isSpam bool) error
	ListByWallet(ctx context.Context, walletID string) ([]*entities.Artifact, error)
}
