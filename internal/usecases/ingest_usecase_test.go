package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"artifact-vault.backend/internal/domain/entities"
	domainerrors "artifact-vault.backend/internal/domain/errors"
	"artifact-vault.backend/internal/usecases"
)

func newScanFixture(t *testing.T) (*usecases.ArtifactStore, *usecases.IngestUsecase, *MockChainDataProvider, string) {
	t.Helper()

	lib, store, ids := newTestLibrary(t, testAddressA)
	wallets := usecases.NewWalletUsecase(lib, nil)
	provider := new(MockChainDataProvider)
	return store, usecases.NewIngestUsecase(store, wallets, provider), provider, ids[0]
}

func TestScanWallet(t *testing.T) {
	store, ingest, provider, w := newScanFixture(t)

	provider.On("FetchArtifactsForWallet", mock.Anything, w, "eth").
		Return([]entities.RawToken{erc721("0xAA", "1", "a"), erc721("0xBB", "2", "b")}, nil)
	provider.On("FetchArtifactsForWallet", mock.Anything, w, "polygon").
		Return([]entities.RawToken{erc721("0xCC", "3", "c")}, nil)

	scans, err := ingest.ScanWallet(context.Background(), w, []string{"eth", "polygon"})
	require.NoError(t, err)
	require.Len(t, scans, 2)

	// results keep the requested network order even though fetches race
	assert.Equal(t, "eth", scans[0].Network)
	assert.Equal(t, 2, scans[0].Result.Ingested)
	assert.Equal(t, "polygon", scans[1].Network)
	assert.Equal(t, 1, scans[1].Result.Ingested)

	assert.Equal(t, 3, store.TotalCount())
	provider.AssertExpectations(t)
}

func TestScanWallet_UnknownWallet(t *testing.T) {
	_, ingest, _, _ := newScanFixture(t)

	_, err := ingest.ScanWallet(context.Background(), testAddressB, []string{"eth"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestScanWallet_NetworkFailureIsIsolated(t *testing.T) {
	store, ingest, provider, w := newScanFixture(t)

	provider.On("FetchArtifactsForWallet", mock.Anything, w, "eth").
		Return([]entities.RawToken{erc721("0xAA", "1", "a")}, nil)
	provider.On("FetchArtifactsForWallet", mock.Anything, w, "polygon").
		Return(nil, errors.New("rpc timeout"))

	scans, err := ingest.ScanWallet(context.Background(), w, []string{"eth", "polygon"})
	require.NoError(t, err, "one failed network does not fail the scan")
	require.Len(t, scans, 2)

	assert.Empty(t, scans[0].Warning)
	assert.Equal(t, 1, scans[0].Result.Ingested)
	assert.NotEmpty(t, scans[1].Warning)
	assert.Zero(t, scans[1].Result.Ingested)

	assert.Equal(t, 1, store.TotalCount(), "the healthy network's batch landed")
}

func TestScanWallet_AcceptsAnyAddressCase(t *testing.T) {
	_, ingest, provider, w := newScanFixture(t)

	provider.On("FetchArtifactsForWallet", mock.Anything, w, "eth").
		Return([]entities.RawToken{}, nil)

	// lowercase input resolves to the linked checksummed wallet
	scans, err := ingest.ScanWallet(context.Background(), "0x71c7656ec7ab88b098defb751b7401b5f6d8976f", []string{"eth"})
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.False(t, scans[0].Result.Discarded)
}
