package usecases_test

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"artifact-vault.backend/internal/domain/entities"
	domainerrors "artifact-vault.backend/internal/domain/errors"
	"artifact-vault.backend/internal/usecases"
)

const (
	testAddressA = "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"
	testAddressB = "0x2B5AD5c4795c026514f8317c7a215E218DcCD6cF"
)

// newTestLibrary links the given addresses and returns the shared state plus
// the checksummed wallet ids, in input order.
func newTestLibrary(t *testing.T, addresses ...string) (*usecases.Library, *usecases.ArtifactStore, []string) {
	t.Helper()

	lib := usecases.NewLibrary()
	wallets := usecases.NewWalletUsecase(lib, nil)
	store := usecases.NewArtifactStore(lib, nil)

	ids := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		w, err := wallets.Link(addr)
		require.NoError(t, err)
		ids = append(ids, w.Address)
	}
	return lib, store, ids
}

func erc721(contract, tokenID, title string) entities.RawToken {
	return entities.RawToken{
		ContractAddress: contract,
		TokenID:         tokenID,
		Title:           title,
	}
}

func erc1155(contract, tokenID string, balance int) entities.RawToken {
	return entities.RawToken{
		ContractAddress: contract,
		ContractType:    "ERC1155",
		TokenID:         tokenID,
		Balance:         json.RawMessage(jsonInt(balance)),
	}
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestIngest_IsIdempotent(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]

	batch := []entities.RawToken{
		erc721("0xAA", "1", "one"),
		erc721("0xAA", "2", "two"),
	}

	res := store.Ingest(context.Background(), w, "eth", batch)
	assert.Equal(t, 2, res.Ingested)
	assert.Equal(t, 2, store.TotalCount())

	res = store.Ingest(context.Background(), w, "eth", batch)
	assert.Equal(t, 2, res.Ingested)
	assert.Equal(t, 2, store.TotalCount(), "re-ingesting must not duplicate")
}

func TestIngest_UpdatesInPlace(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]

	store.Ingest(context.Background(), w, "eth", []entities.RawToken{erc721("0xAA", "1", "before")})
	store.Ingest(context.Background(), w, "eth", []entities.RawToken{erc721("0xAA", "1", "after")})

	a, ok := store.Get(entities.ArtifactID{WalletID: w, Network: "eth", ContractAddress: "0xAA", TokenID: "1"})
	require.True(t, ok)
	assert.Equal(t, "after", a.Title)
	assert.Equal(t, 1, store.TotalCount())
}

func TestIngest_SkipsMalformedRecords(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]

	res := store.Ingest(context.Background(), w, "eth", []entities.RawToken{
		erc721("0xAA", "1", "good"),
		{TokenID: "2"},          // missing contract
		{ContractAddress: "0x"}, // missing token id
	})

	assert.Equal(t, 1, res.Ingested)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 1, store.TotalCount())
}

func TestIngest_DiscardsUnlinkedWallet(t *testing.T) {
	_, store, _ := newTestLibrary(t, testAddressA)

	res := store.Ingest(context.Background(), "0xNotLinked", "eth", []entities.RawToken{erc721("0xAA", "1", "x")})
	assert.True(t, res.Discarded)
	assert.Zero(t, res.Ingested)
	assert.Zero(t, store.TotalCount())
}

func TestIngest_MarksNetworkFetched(t *testing.T) {
	lib, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]

	store.Ingest(context.Background(), w, "eth", nil)

	wallets := usecases.NewWalletUsecase(lib, nil)
	got, err := wallets.Get(w)
	require.NoError(t, err)
	assert.True(t, got.HasFetched("eth"))
	assert.False(t, got.HasFetched("polygon"))
}

func TestIngest_WalletsDoNotCollide(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA, testAddressB)

	store.Ingest(context.Background(), ids[0], "eth", []entities.RawToken{erc721("0xAA", "1", "from A")})
	store.Ingest(context.Background(), ids[1], "eth", []entities.RawToken{erc721("0xAA", "1", "from B")})

	assert.Equal(t, 2, store.TotalCount(), "same token in two wallets is two records")
	assert.Len(t, store.ListByWallet(ids[0]), 1)
	assert.Len(t, store.ListByWallet(ids[1]), 1)
}

func TestListByWallet_OrderIsStable(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]

	store.Ingest(context.Background(), w, "polygon", []entities.RawToken{erc721("0xCC", "9", "p")})
	store.Ingest(context.Background(), w, "eth", []entities.RawToken{
		erc721("0xAA", "2", "e2"),
		erc721("0xAA", "1", "e1"),
	})

	list := store.ListByWallet(w)
	require.Len(t, list, 3)
	// networks alphabetically, insertion order within each
	assert.Equal(t, "eth", list[0].ID.Network)
	assert.Equal(t, "2", list[0].ID.TokenID)
	assert.Equal(t, "1", list[1].ID.TokenID)
	assert.Equal(t, "polygon", list[2].ID.Network)
}

func TestFlatten_CollapsesCrossNetworkDuplicates(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]

	store.Ingest(context.Background(), w, "eth", []entities.RawToken{erc721("0xAA", "1", "on eth")})
	store.Ingest(context.Background(), w, "polygon", []entities.RawToken{erc721("0xAA", "1", "on polygon")})

	flat := store.Flatten(w)
	require.Len(t, flat, 1)
	assert.Equal(t, "eth", flat[0].ID.Network, "first-seen entry wins")
}

func TestRemove(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]
	id := entities.ArtifactID{WalletID: w, Network: "eth", ContractAddress: "0xAA", TokenID: "1"}

	store.Ingest(context.Background(), w, "eth", []entities.RawToken{erc721("0xAA", "1", "x")})

	require.NoError(t, store.Remove(id))
	assert.Zero(t, store.TotalCount())

	err := store.Remove(id)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSetSpam_Invariant(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]
	id := entities.ArtifactID{WalletID: w, Network: "eth", ContractAddress: "0xAA", TokenID: "1"}

	store.Ingest(context.Background(), w, "eth", []entities.RawToken{erc721("0xAA", "1", "x")})

	require.NoError(t, store.SetSpam(id, true))
	a, _ := store.Get(id)
	assert.True(t, a.IsSpam)
	assert.True(t, a.IsInCatalog, "spam implies organized")
	assert.Equal(t, 1, store.TotalSpamCount())

	require.NoError(t, store.SetSpam(id, false))
	a, _ = store.Get(id)
	assert.False(t, a.IsSpam)
	assert.False(t, a.IsInCatalog, "not in any catalog once un-flagged")
	assert.Zero(t, store.TotalSpamCount())
}

func TestSetSpam_UnflagKeepsCatalogMembership(t *testing.T) {
	lib, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]
	id := entities.ArtifactID{WalletID: w, Network: "eth", ContractAddress: "0xAA", TokenID: "1"}

	store.Ingest(context.Background(), w, "eth", []entities.RawToken{erc721("0xAA", "1", "x")})

	catalogs := usecases.NewCatalogEngine(lib, nil)
	c, err := catalogs.Create("Favorites", "")
	require.NoError(t, err)
	require.NoError(t, catalogs.AddArtifact(c.ID, id))

	require.NoError(t, store.SetSpam(id, true))
	require.NoError(t, store.SetSpam(id, false))

	a, _ := store.Get(id)
	assert.True(t, a.IsInCatalog, "membership in a user catalog survives the spam round-trip")
}

func TestSetSpam_NotFound(t *testing.T) {
	_, store, _ := newTestLibrary(t, testAddressA)
	err := store.SetSpam(entities.ArtifactID{WalletID: "w", Network: "eth", ContractAddress: "0xAA", TokenID: "1"}, true)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestIngest_SpamFlagFromProvider(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]

	spamToken := erc721("0xAA", "1", "free mint!!")
	spamToken.IsSpam = true

	store.Ingest(context.Background(), w, "eth", []entities.RawToken{
		spamToken,
		erc721("0xBB", "2", "legit"),
	})

	assert.Equal(t, 2, store.TotalCount())
	assert.Equal(t, 1, store.TotalSpamCount())

	spam := store.SpamArtifacts()
	require.Len(t, spam, 1)
	assert.Equal(t, "0xAA", spam[0].ID.ContractAddress)
	assert.True(t, spam[0].IsInCatalog)
}

func TestBalances_MixedStandards(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]

	store.Ingest(context.Background(), w, "eth", []entities.RawToken{
		erc721("0xAA", "1", "single"),
		erc1155("0xBB", "2", 3),
	})

	assert.Equal(t, 2, store.TotalCount())
	assert.Equal(t, 3, store.BalanceOf(w, "2", "0xBB"))
	assert.Zero(t, store.BalanceOf(w, "1", "0xAA"), "721 holdings are not balance-indexed")
	assert.Zero(t, store.BalanceOf(w, "2", "0xAA"))
}

func TestBalances_UpdateOnReingest(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]

	store.Ingest(context.Background(), w, "eth", []entities.RawToken{erc1155("0xBB", "2", 3)})
	store.Ingest(context.Background(), w, "eth", []entities.RawToken{erc1155("0xBB", "2", 7)})

	assert.Equal(t, 7, store.BalanceOf(w, "2", "0xBB"))
}

func TestBalances_ClearedWhenReclassified(t *testing.T) {
	_, store, ids := newTestLibrary(t, testAddressA)
	w := ids[0]

	store.Ingest(context.Background(), w, "eth", []entities.RawToken{erc1155("0xBB", "2", 3)})
	require.Equal(t, 3, store.BalanceOf(w, "2", "0xBB"))

	// the provider reclassified the tuple; the stale balance entry must go
	store.Ingest(context.Background(), w, "eth", []entities.RawToken{erc721("0xBB", "2", "now a 721")})

	assert.Zero(t, store.BalanceOf(w, "2", "0xBB"))
	a, ok := store.Get(entities.ArtifactID{WalletID: w, Network: "eth", ContractAddress: "0xBB", TokenID: "2"})
	require.True(t, ok)
	assert.Equal(t, entities.StandardERC721, a.TokenStandard)
}

func TestIngest_MirrorsFetchedNetworks(t *testing.T) {
	var updates atomic.Int32
	walletRepo := new(MockWalletRepository)
	walletRepo.On("Update", mock.Anything, mock.MatchedBy(func(w *entities.Wallet) bool {
		return len(w.FetchedNetworks) == 1 && w.FetchedNetworks[0] == "eth"
	})).Run(func(mock.Arguments) { updates.Add(1) }).Return(nil)

	sync := usecases.NewSyncer(nil, nil, nil, walletRepo)
	sync.Start()
	defer sync.Stop()

	lib := usecases.NewLibrary()
	wallets := usecases.NewWalletUsecase(lib, nil)
	store := usecases.NewArtifactStore(lib, sync)

	w, err := wallets.Link(testAddressA)
	require.NoError(t, err)

	store.Ingest(context.Background(), w.Address, "eth", nil)
	require.Eventually(t, func() bool {
		return updates.Load() == 1
	}, 2*time.Second, 10*time.Millisecond, "the fetched-network set reaches the mirror")

	// re-fetching a known network enqueues nothing
	store.Ingest(context.Background(), w.Address, "eth", nil)
	time.Sleep(100 * time.Millisecond)
	assert.EqualValues(t, 1, updates.Load())
}
