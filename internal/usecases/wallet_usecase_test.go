package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifact-vault.backend/internal/domain/entities"
	domainerrors "artifact-vault.backend/internal/domain/errors"
	"artifact-vault.backend/internal/usecases"
)

func TestNormalizeAddress(t *testing.T) {
	got, err := usecases.NormalizeAddress("0x71c7656ec7ab88b098defb751b7401b5f6d8976f")
	require.NoError(t, err)
	assert.Equal(t, testAddressA, got, "lowercase input checksums to the canonical form")

	_, err = usecases.NormalizeAddress("not an address")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = usecases.NormalizeAddress("0x123")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestWalletLink_Idempotent(t *testing.T) {
	lib := usecases.NewLibrary()
	wallets := usecases.NewWalletUsecase(lib, nil)

	first, err := wallets.Link(testAddressA)
	require.NoError(t, err)

	// case variants resolve to the same wallet
	second, err := wallets.Link("0x71c7656ec7ab88b098defb751b7401b5f6d8976f")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, wallets.List(), 1)
}

func TestWalletGet(t *testing.T) {
	lib := usecases.NewLibrary()
	wallets := usecases.NewWalletUsecase(lib, nil)

	_, err := wallets.Get(testAddressA)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	linked, err := wallets.Link(testAddressA)
	require.NoError(t, err)

	got, err := wallets.Get(testAddressA)
	require.NoError(t, err)
	assert.Equal(t, linked.ID, got.ID)
}

func TestWalletList_AddressOrder(t *testing.T) {
	lib := usecases.NewLibrary()
	wallets := usecases.NewWalletUsecase(lib, nil)

	_, err := wallets.Link(testAddressA)
	require.NoError(t, err)
	_, err = wallets.Link(testAddressB)
	require.NoError(t, err)

	list := wallets.List()
	require.Len(t, list, 2)
	assert.Less(t, list[0].Address, list[1].Address)
}

func TestWalletUnlink_Cascades(t *testing.T) {
	lib, store, ids := newTestLibrary(t, testAddressA, testAddressB)
	wallets := usecases.NewWalletUsecase(lib, nil)
	catalogs := usecases.NewCatalogEngine(lib, nil)

	store.Ingest(context.Background(), ids[0], "eth", []entities.RawToken{
		erc721("0xAA", "1", "doomed"),
		erc1155("0xBB", "2", 3),
	})
	store.Ingest(context.Background(), ids[1], "eth", []entities.RawToken{
		erc721("0xCC", "9", "survivor"),
	})

	doomed := entities.ArtifactID{WalletID: ids[0], Network: "eth", ContractAddress: "0xAA", TokenID: "1"}
	survivor := entities.ArtifactID{WalletID: ids[1], Network: "eth", ContractAddress: "0xCC", TokenID: "9"}

	c, err := catalogs.Create("Favorites", "")
	require.NoError(t, err)
	require.NoError(t, catalogs.AddArtifact(c.ID, doomed))
	require.NoError(t, catalogs.AddArtifact(c.ID, survivor))

	require.NoError(t, wallets.Unlink(ids[0]))

	_, err = wallets.Get(ids[0])
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, ok := store.Get(doomed)
	assert.False(t, ok, "the wallet's artifacts are gone")
	assert.Zero(t, store.BalanceOf(ids[0], "2", "0xBB"))
	assert.Equal(t, 1, store.TotalCount())

	members, err := catalogs.MembersAsArtifacts(c.ID)
	require.NoError(t, err)
	require.Len(t, members, 1, "catalog references to the wallet are purged")
	assert.Equal(t, survivor, members[0].ID)

	count, err := catalogs.Count(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "purged, not just orphaned: the stored count shrinks")
}

func TestWalletUnlink_DiscardsInFlightIngest(t *testing.T) {
	lib, store, ids := newTestLibrary(t, testAddressA)
	wallets := usecases.NewWalletUsecase(lib, nil)

	require.NoError(t, wallets.Unlink(ids[0]))

	// the fetch completed after the unlink; its commit must be thrown away
	res := store.Ingest(context.Background(), ids[0], "eth", []entities.RawToken{erc721("0xAA", "1", "late")})
	assert.True(t, res.Discarded)
	assert.Zero(t, store.TotalCount())
}

func TestWalletUnlink_SpamCountShrinks(t *testing.T) {
	lib, store, ids := newTestLibrary(t, testAddressA)
	wallets := usecases.NewWalletUsecase(lib, nil)

	spam := erc721("0xAA", "1", "airdrop")
	spam.IsSpam = true
	store.Ingest(context.Background(), ids[0], "eth", []entities.RawToken{spam})
	require.Equal(t, 1, store.TotalSpamCount())

	require.NoError(t, wallets.Unlink(ids[0]))
	assert.Zero(t, store.TotalSpamCount())
}

func TestWalletUnlink_NotLinked(t *testing.T) {
	lib := usecases.NewLibrary()
	wallets := usecases.NewWalletUsecase(lib, nil)
	assert.ErrorIs(t, wallets.Unlink(testAddressA), domainerrors.ErrNotFound)
}
