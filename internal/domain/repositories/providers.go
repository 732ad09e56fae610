package repositories

import (
	"context"

	"artifact-vault.backend/internal/domain/entities"
)

// ChainDataProvider is the external token indexer. One call per
// (wallet, network) pair; failures are scoped to that pair.
type ChainDataProvider interface {
	FetchArtifactsForWallet(ctx context.Context, address, network string) ([]entities.RawToken, error)
}

// DelegationRegistry is the external on-chain delegation lookup, paginated
type DelegationRegistry interface {
	ResolveDelegations(ctx context.Context, address string, page, pageSize int) ([]entities.Delegation, error)
}
