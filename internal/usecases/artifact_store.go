package usecases

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"artifact-vault.backend/internal/domain/entities"
	domainerrors "artifact-vault.backend/internal/domain/errors"
	"artifact-vault.backend/pkg/logger"
	"artifact-vault.backend/pkg/metrics"
)

// ArtifactStore owns the artifact lifecycle inside the library: ingestion,
// removal, spam flagging and the derived counts. Catalog membership cascades
// are the catalog engine's job and are invoked by the caller.
type ArtifactStore struct {
	lib  *Library
	sync *Syncer
}

// NewArtifactStore creates an artifact store over the shared library state
func NewArtifactStore(lib *Library, sync *Syncer) *ArtifactStore {
	return &ArtifactStore{lib: lib, sync: sync}
}

// IngestResult summarizes one per-network ingestion commit
type IngestResult struct {
	WalletID string `json:"walletId"`
	Network  string `json:"network"`
	Ingested int    `json:"ingested"`
	Skipped  int    `json:"skipped"`
	// Discarded is true when the wallet was unlinked while the fetch was
	// in flight and the completion was thrown away.
	Discarded bool `json:"discarded,omitempty"`
}

// Ingest normalizes and upserts one fetched batch for a (wallet, network)
// pair. Re-ingesting the same batch is idempotent: existing identity tuples
// are updated in place, never duplicated. A record the normalizer rejects is
// logged and skipped without failing the rest of the batch.
func (s *ArtifactStore) Ingest(ctx context.Context, walletID, network string, rawTokens []entities.RawToken) IngestResult {
	res := IngestResult{WalletID: walletID, Network: network}

	s.lib.mu.Lock()
	defer s.lib.mu.Unlock()

	// A completion for a wallet unlinked mid-flight must not resurrect it.
	wallet, ok := s.lib.wallets[walletID]
	if !ok {
		res.Discarded = true
		logger.Warn(ctx, "discarding ingest for unlinked wallet",
			zap.String("wallet", walletID), zap.String("network", network))
		return res
	}

	var mirrored []*entities.Artifact
	for _, raw := range rawTokens {
		normalized, err := NormalizeToken(walletID, network, raw)
		if err != nil {
			res.Skipped++
			logger.Warn(ctx, "skipping malformed token record",
				zap.String("wallet", walletID),
				zap.String("network", network),
				zap.String("contract", raw.ContractAddress),
				zap.Error(err))
			continue
		}
		s.upsertLocked(normalized)
		mirrored = append(mirrored, normalized)
		res.Ingested++
	}

	if wallet.MarkFetched(network) {
		wallet.UpdatedAt = time.Now()
		if s.sync != nil {
			rec := wallet.Clone()
			s.sync.Enqueue("update wallet fetched networks", func(ctx context.Context) error {
				return s.sync.wallets.Update(ctx, rec)
			})
		}
	}
	metrics.ArtifactsIngested.Add(float64(res.Ingested))

	if s.sync != nil && len(mirrored) > 0 {
		batch := mirrored
		s.sync.Enqueue("upsert artifacts batch", func(ctx context.Context) error {
			return s.sync.artifacts.UpsertBatch(ctx, batch)
		})
	}
	return res
}

// upsertLocked inserts or updates by identity tuple. Callers hold the lock.
func (s *ArtifactStore) upsertLocked(a *entities.Artifact) {
	id := a.ID
	if existing, ok := s.lib.artifacts[id]; ok {
		existing.TokenStandard = a.TokenStandard
		existing.Title = a.Title
		existing.Description = a.Description
		existing.Media = a.Media
		existing.Balance = a.Balance
		existing.IsSpam = a.IsSpam
		existing.Creator = a.Creator
		existing.ContractName = a.ContractName
		existing.RawMetadata = a.RawMetadata
	} else {
		s.lib.artifacts[id] = a
		networks, ok := s.lib.partitions[id.WalletID]
		if !ok {
			networks = make(map[string][]entities.ArtifactID)
			s.lib.partitions[id.WalletID] = networks
		}
		networks[id.Network] = append(networks[id.Network], id)
	}

	if a.IsSpam {
		s.lib.spam[id] = struct{}{}
	} else {
		delete(s.lib.spam, id)
	}
	s.lib.recomputeInCatalog(id)

	if a.TokenStandard == entities.StandardERC1155 {
		tokens, ok := s.lib.balances[id.WalletID]
		if !ok {
			tokens = make(map[string]map[string]int)
			s.lib.balances[id.WalletID] = tokens
		}
		contracts, ok := tokens[id.TokenID]
		if !ok {
			contracts = make(map[string]int)
			tokens[id.TokenID] = contracts
		}
		contracts[id.ContractAddress] = a.Balance
	} else if contracts, ok := s.lib.balances[id.WalletID][id.TokenID]; ok {
		// A re-ingest may reclassify a tuple away from ERC1155; its old
		// balance entry must not linger.
		delete(contracts, id.ContractAddress)
		if len(contracts) == 0 {
			delete(s.lib.balances[id.WalletID], id.TokenID)
		}
	}
}

// Remove deletes one artifact and its balance entry. It does not cascade to
// catalog membership; the caller invokes the catalog engine for that.
func (s *ArtifactStore) Remove(id entities.ArtifactID) error {
	s.lib.mu.Lock()
	defer s.lib.mu.Unlock()

	if _, ok := s.lib.artifacts[id]; !ok {
		return domainerrors.NotFound("artifact not found")
	}
	s.lib.dropArtifactLocked(id)

	if s.sync != nil {
		s.sync.Enqueue("delete artifact", func(ctx context.Context) error {
			return s.sync.artifacts.Delete(ctx, id)
		})
	}
	return nil
}

// SetSpam flips the spam flag. Marking as spam forces isInCatalog true
// (spam counts as organized); un-marking re-derives it from the stored
// catalog membership, so an artifact in a real catalog stays organized.
func (s *ArtifactStore) SetSpam(id entities.ArtifactID, isSpam bool) error {
	s.lib.mu.Lock()
	defer s.lib.mu.Unlock()

	a, ok := s.lib.artifacts[id]
	if !ok {
		return domainerrors.NotFound("artifact not found")
	}

	a.IsSpam = isSpam
	if isSpam {
		s.lib.spam[id] = struct{}{}
		a.IsInCatalog = true
	} else {
		delete(s.lib.spam, id)
		s.lib.recomputeInCatalog(id)
	}

	if s.sync != nil {
		s.sync.Enqueue("set artifact spam", func(ctx context.Context) error {
			return s.sync.artifacts.SetSpam(ctx, id, isSpam)
		})
	}
	return nil
}

// Get resolves one artifact by identity
func (s *ArtifactStore) Get(id entities.ArtifactID) (*entities.Artifact, bool) {
	s.lib.mu.RLock()
	defer s.lib.mu.RUnlock()
	a, ok := s.lib.artifacts[id]
	if !ok {
		return nil, false
	}
	copied := *a
	return &copied, true
}

// ListByWallet returns the wallet's artifacts across all networks, in
// network order and per-network insertion order.
func (s *ArtifactStore) ListByWallet(walletID string) []*entities.Artifact {
	s.lib.mu.RLock()
	defer s.lib.mu.RUnlock()

	networks, ok := s.lib.partitions[walletID]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(networks))
	for n := range networks {
		names = append(names, n)
	}
	sort.Strings(names)

	var out []*entities.Artifact
	for _, n := range names {
		for _, id := range networks[n] {
			if a, ok := s.lib.artifacts[id]; ok {
				copied := *a
				out = append(out, &copied)
			}
		}
	}
	return out
}

// Flatten returns a linear view of the wallet's artifacts with the same
// token (contract + tokenId) held on several networks collapsed to the
// first-seen entry.
func (s *ArtifactStore) Flatten(walletID string) []*entities.Artifact {
	seen := make(map[string]struct{})
	var out []*entities.Artifact
	for _, a := range s.ListByWallet(walletID) {
		key := a.ID.ContractAddress + "/" + a.ID.TokenID
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

// TotalCount recomputes the artifact count as the sum over all partitions
func (s *ArtifactStore) TotalCount() int {
	s.lib.mu.RLock()
	defer s.lib.mu.RUnlock()

	total := 0
	for _, networks := range s.lib.partitions {
		for _, ids := range networks {
			total += len(ids)
		}
	}
	return total
}

// TotalSpamCount recomputes the spam count from the spam index
func (s *ArtifactStore) TotalSpamCount() int {
	s.lib.mu.RLock()
	defer s.lib.mu.RUnlock()
	return len(s.lib.spam)
}

// SpamArtifacts lists all artifacts flagged as spam in stable partition
// order. This is the computed membership of the system catalog.
func (s *ArtifactStore) SpamArtifacts() []*entities.Artifact {
	s.lib.mu.RLock()
	defer s.lib.mu.RUnlock()

	var out []*entities.Artifact
	for _, a := range s.lib.artifactsInOrder() {
		if a.IsSpam {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out
}

// BalanceOf returns the indexed ERC1155 quantity, zero when absent
func (s *ArtifactStore) BalanceOf(walletID, tokenID, contract string) int {
	s.lib.mu.RLock()
	defer s.lib.mu.RUnlock()

	if tokens, ok := s.lib.balances[walletID]; ok {
		if contracts, ok := tokens[tokenID]; ok {
			return contracts[contract]
		}
	}
	return 0
}
