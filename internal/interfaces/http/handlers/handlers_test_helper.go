package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/usecases"
)

const (
	testAddress          = "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"
	testAddressLowercase = "0x71c7656ec7ab88b098defb751b7401b5f6d8976f"
)

type providerStub struct {
	fetchFn func(ctx context.Context, address, network string) ([]entities.RawToken, error)
}

func (s *providerStub) FetchArtifactsForWallet(ctx context.Context, address, network string) ([]entities.RawToken, error) {
	if s.fetchFn != nil {
		return s.fetchFn(ctx, address, network)
	}
	return []entities.RawToken{}, nil
}

type delegationStub struct {
	resolveFn func(ctx context.Context, address string, page, pageSize int) ([]entities.Delegation, error)
}

func (s *delegationStub) ResolveDelegations(ctx context.Context, address string, page, pageSize int) ([]entities.Delegation, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, address, page, pageSize)
	}
	return []entities.Delegation{}, nil
}

// testEngines wires every engine over one shared in-memory library, with
// stubbed external clients and no persistence mirror.
type testEngines struct {
	lib        *usecases.Library
	wallets    *usecases.WalletUsecase
	store      *usecases.ArtifactStore
	catalogs   *usecases.CatalogEngine
	folders    *usecases.FolderEngine
	aggregator *usecases.Aggregator
	ingest     *usecases.IngestUsecase
}

func newTestEngines(provider *providerStub, delegations *delegationStub) *testEngines {
	if provider == nil {
		provider = &providerStub{}
	}
	if delegations == nil {
		delegations = &delegationStub{}
	}

	lib := usecases.NewLibrary()
	wallets := usecases.NewWalletUsecase(lib, nil)
	store := usecases.NewArtifactStore(lib, nil)
	return &testEngines{
		lib:        lib,
		wallets:    wallets,
		store:      store,
		catalogs:   usecases.NewCatalogEngine(lib, nil),
		folders:    usecases.NewFolderEngine(lib, nil),
		aggregator: usecases.NewAggregator(lib, delegations),
		ingest:     usecases.NewIngestUsecase(store, wallets, provider),
	}
}

func (e *testEngines) linkAndIngest(t *testing.T, tokens ...entities.RawToken) string {
	t.Helper()
	w, err := e.wallets.Link(testAddress)
	require.NoError(t, err)
	if len(tokens) > 0 {
		e.store.Ingest(context.Background(), w.Address, "eth", tokens)
	}
	return w.Address
}
