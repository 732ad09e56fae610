package usecases

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domainerrors "artifact-vault.backend/internal/domain/errors"
	"artifact-vault.backend/internal/domain/repositories"
	"artifact-vault.backend/pkg/logger"
	"artifact-vault.backend/pkg/metrics"
)

// NetworkScan reports what happened on one (wallet, network) fetch. A
// failed network carries a warning; it never aborts the other networks of
// the same scan.
type NetworkScan struct {
	Network string       `json:"network"`
	Result  IngestResult `json:"result"`
	Warning string       `json:"warning,omitempty"`
}

// IngestUsecase orchestrates wallet scans: one provider fetch per linked
// network, run concurrently, each completion committed to the artifact
// store as its own isolated per-partition update.
type IngestUsecase struct {
	store    *ArtifactStore
	wallets  *WalletUsecase
	provider repositories.ChainDataProvider
}

// NewIngestUsecase creates an ingest usecase
func NewIngestUsecase(store *ArtifactStore, wallets *WalletUsecase, provider repositories.ChainDataProvider) *IngestUsecase {
	return &IngestUsecase{store: store, wallets: wallets, provider: provider}
}

// ScanWallet fetches and ingests artifacts for one wallet across the given
// networks. Fetches run concurrently; a slow network neither blocks nor
// overwrites a fast one, since each commit touches only its own partition.
// Per-network failures are returned as warnings alongside the successes.
func (u *IngestUsecase) ScanWallet(ctx context.Context, address string, networks []string) ([]NetworkScan, error) {
	wallet, err := u.wallets.Get(address)
	if err != nil {
		return nil, err
	}

	scans := make([]NetworkScan, len(networks))
	var wg sync.WaitGroup
	for i, network := range networks {
		wg.Add(1)
		go func(i int, network string) {
			defer wg.Done()
			scans[i] = u.scanNetwork(ctx, wallet.Address, network)
		}(i, network)
	}
	wg.Wait()

	return scans, nil
}

func (u *IngestUsecase) scanNetwork(ctx context.Context, address, network string) NetworkScan {
	scan := NetworkScan{Network: network}

	tokens, err := u.provider.FetchArtifactsForWallet(ctx, address, network)
	if err != nil {
		metrics.IngestFailures.Inc()
		appErr := domainerrors.Provider(network, err)
		scan.Warning = appErr.Message
		logger.Warn(ctx, "network fetch failed",
			zap.String("wallet", address),
			zap.String("network", network),
			zap.Error(err))
		return scan
	}

	// Commit checks wallet existence: a completion racing an unlink is
	// discarded here rather than resurrecting the wallet's artifacts.
	scan.Result = u.store.Ingest(ctx, address, network, tokens)
	return scan
}
