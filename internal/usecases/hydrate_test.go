package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/usecases"
	"artifact-vault.backend/pkg/utils"
)

func TestHydrateFromMirror(t *testing.T) {
	lib := usecases.NewLibrary()

	wallet := &entities.Wallet{
		ID:        utils.GenerateUUIDv7(),
		Address:   testAddressA,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	stored := &entities.Artifact{
		ID: entities.ArtifactID{
			WalletID:        testAddressA,
			Network:         "eth",
			ContractAddress: "0xAA",
			TokenID:         "1",
		},
		TokenStandard: entities.StandardERC721,
		Title:         "restored",
	}
	catalog := &entities.Catalog{
		ID:      "cat-1",
		Name:    "Favorites",
		Members: []entities.ArtifactID{stored.ID},
	}
	folder := &entities.Folder{
		ID:          "folder-1",
		Name:        "Art",
		Description: null.StringFrom("restored"),
		CatalogIDs:  []string{"cat-1", "cat-gone"},
	}

	wallets := new(MockWalletRepository)
	artifacts := new(MockArtifactRepository)
	catalogs := new(MockCatalogRepository)
	folders := new(MockFolderRepository)

	wallets.On("List", mock.Anything).Return([]*entities.Wallet{wallet}, nil)
	artifacts.On("ListByWallet", mock.Anything, testAddressA).Return([]*entities.Artifact{stored}, nil)
	catalogs.On("List", mock.Anything).Return([]*entities.Catalog{catalog}, nil)
	folders.On("List", mock.Anything).Return([]*entities.Folder{folder}, nil)

	require.NoError(t, usecases.HydrateFromMirror(context.Background(), lib, wallets, artifacts, catalogs, folders))

	store := usecases.NewArtifactStore(lib, nil)
	walletUC := usecases.NewWalletUsecase(lib, nil)
	catalogEngine := usecases.NewCatalogEngine(lib, nil)
	folderEngine := usecases.NewFolderEngine(lib, nil)

	got, err := walletUC.Get(testAddressA)
	require.NoError(t, err)
	assert.Equal(t, wallet.ID, got.ID)

	a, ok := store.Get(stored.ID)
	require.True(t, ok)
	assert.Equal(t, "restored", a.Title)
	assert.True(t, a.IsInCatalog, "membership flags are re-derived after load")

	count, err := catalogEngine.Count("cat-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	f, err := folderEngine.Get("folder-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat-1"}, f.CatalogIDs, "references to unknown catalogs are dropped")
}

func TestHydrateFromMirror_WalletLoadFailureAborts(t *testing.T) {
	lib := usecases.NewLibrary()

	wallets := new(MockWalletRepository)
	wallets.On("List", mock.Anything).Return(nil, errors.New("db down"))

	err := usecases.HydrateFromMirror(context.Background(), lib, wallets,
		new(MockArtifactRepository), new(MockCatalogRepository), new(MockFolderRepository))
	assert.Error(t, err)
}

func TestHydrateFromMirror_ArtifactLoadFailureIsPerWallet(t *testing.T) {
	lib := usecases.NewLibrary()

	wallets := new(MockWalletRepository)
	artifacts := new(MockArtifactRepository)
	catalogs := new(MockCatalogRepository)
	folders := new(MockFolderRepository)

	wallets.On("List", mock.Anything).Return([]*entities.Wallet{
		{ID: utils.GenerateUUIDv7(), Address: testAddressA},
		{ID: utils.GenerateUUIDv7(), Address: testAddressB},
	}, nil)
	artifacts.On("ListByWallet", mock.Anything, testAddressA).Return(nil, errors.New("timeout"))
	artifacts.On("ListByWallet", mock.Anything, testAddressB).Return([]*entities.Artifact{{
		ID: entities.ArtifactID{WalletID: testAddressB, Network: "eth", ContractAddress: "0xBB", TokenID: "2"},
	}}, nil)
	catalogs.On("List", mock.Anything).Return([]*entities.Catalog{}, nil)
	folders.On("List", mock.Anything).Return([]*entities.Folder{}, nil)

	require.NoError(t, usecases.HydrateFromMirror(context.Background(), lib, wallets, artifacts, catalogs, folders))

	store := usecases.NewArtifactStore(lib, nil)
	assert.Equal(t, 1, store.TotalCount(), "the healthy wallet still loads")
}
