package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"artifact-vault.backend/internal/domain/entities"
	domainerrors "artifact-vault.backend/internal/domain/errors"
	"artifact-vault.backend/pkg/utils"
)

// WalletUsecase handles linking and unlinking wallets. Unlinking cascades:
// the wallet's artifacts are dropped, every catalog reference to them is
// purged, and in-flight ingest completions for the wallet are discarded.
type WalletUsecase struct {
	lib  *Library
	sync *Syncer
}

// NewWalletUsecase creates a wallet usecase over the shared library state
func NewWalletUsecase(lib *Library, sync *Syncer) *WalletUsecase {
	return &WalletUsecase{lib: lib, sync: sync}
}

// NormalizeAddress validates an EVM address and returns its checksum form
func NormalizeAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", domainerrors.Validation("invalid wallet address")
	}
	return common.HexToAddress(address).Hex(), nil
}

// Link registers a wallet address. Linking an already-linked address
// returns the existing wallet.
func (u *WalletUsecase) Link(address string) (*entities.Wallet, error) {
	checksummed, err := NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	u.lib.mu.Lock()
	defer u.lib.mu.Unlock()

	if existing, ok := u.lib.wallets[checksummed]; ok {
		return existing.Clone(), nil
	}

	now := time.Now()
	w := &entities.Wallet{
		ID:        utils.GenerateUUIDv7(),
		Address:   checksummed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.lib.wallets[checksummed] = w

	if u.sync != nil {
		rec := w.Clone()
		u.sync.Enqueue("create wallet", func(ctx context.Context) error {
			return u.sync.wallets.Create(ctx, rec)
		})
	}

	return w.Clone(), nil
}

// Unlink removes a wallet and cascade-deletes everything it owned
func (u *WalletUsecase) Unlink(address string) error {
	checksummed, err := NormalizeAddress(address)
	if err != nil {
		return err
	}

	u.lib.mu.Lock()
	defer u.lib.mu.Unlock()

	w, ok := u.lib.wallets[checksummed]
	if !ok {
		return domainerrors.NotFound("wallet not linked")
	}
	walletUUID := w.ID
	delete(u.lib.wallets, checksummed)

	// Once the wallet entry is gone, any ingest completion still in flight
	// fails its existence check and is discarded.
	for _, ids := range u.lib.partitions[checksummed] {
		for _, id := range append([]entities.ArtifactID(nil), ids...) {
			u.lib.dropArtifactLocked(id)
		}
	}
	delete(u.lib.partitions, checksummed)
	delete(u.lib.balances, checksummed)
	u.lib.purgeCatalogReferences(checksummed)

	if u.sync != nil {
		u.sync.Enqueue("delete wallet", func(ctx context.Context) error {
			if err := u.sync.artifacts.DeleteByWallet(ctx, checksummed); err != nil {
				return err
			}
			return u.sync.wallets.Delete(ctx, walletUUID)
		})
	}
	return nil
}

// Get returns one linked wallet by address
func (u *WalletUsecase) Get(address string) (*entities.Wallet, error) {
	checksummed, err := NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	u.lib.mu.RLock()
	defer u.lib.mu.RUnlock()

	w, ok := u.lib.wallets[checksummed]
	if !ok {
		return nil, domainerrors.NotFound("wallet not linked")
	}
	return w.Clone(), nil
}

// List returns all linked wallets in address order
func (u *WalletUsecase) List() []*entities.Wallet {
	u.lib.mu.RLock()
	defer u.lib.mu.RUnlock()

	out := make([]*entities.Wallet, 0, len(u.lib.wallets))
	for _, w := range u.lib.wallets {
		out = append(out, w.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}
