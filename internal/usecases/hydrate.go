package usecases

import (
	"context"

	"go.uber.org/zap"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/domain/repositories"
	"artifact-vault.backend/pkg/logger"
)

// HydrateFromMirror warm-starts the library from the persistence mirror at
// boot. A failure leaves the library empty and the service running: the
// mirror is an eventually-consistent copy, never a dependency of the read
// path.
func HydrateFromMirror(
	ctx context.Context,
	lib *Library,
	wallets repositories.WalletRepository,
	artifacts repositories.ArtifactRepository,
	catalogs repositories.CatalogRepository,
	folders repositories.FolderRepository,
) error {
	ws, err := wallets.List(ctx)
	if err != nil {
		return err
	}

	store := &ArtifactStore{lib: lib}

	lib.mu.Lock()
	for _, w := range ws {
		wallet := *w
		lib.wallets[wallet.Address] = &wallet
	}
	lib.mu.Unlock()

	for _, w := range ws {
		as, err := artifacts.ListByWallet(ctx, w.Address)
		if err != nil {
			logger.Warn(ctx, "hydrate: artifact load failed",
				zap.String("wallet", w.Address), zap.Error(err))
			continue
		}
		lib.mu.Lock()
		for _, a := range as {
			store.upsertLocked(a)
		}
		lib.mu.Unlock()
	}

	cs, err := catalogs.List(ctx)
	if err != nil {
		return err
	}
	fs, err := folders.List(ctx)
	if err != nil {
		return err
	}

	lib.mu.Lock()
	defer lib.mu.Unlock()

	for _, c := range cs {
		if c.IsSystem || c.ID == entities.SpamCatalogID {
			continue
		}
		catalog := *c
		lib.catalogs[catalog.ID] = &catalog
	}
	for _, f := range fs {
		folder := *f
		kept := folder.CatalogIDs[:0]
		for _, id := range folder.CatalogIDs {
			if _, ok := lib.catalogs[id]; ok {
				kept = append(kept, id)
			}
		}
		folder.CatalogIDs = kept
		lib.folders[folder.ID] = &folder
	}

	// Membership arrived after the artifacts, so re-derive the flags once.
	for id := range lib.artifacts {
		lib.recomputeInCatalog(id)
	}
	return nil
}
