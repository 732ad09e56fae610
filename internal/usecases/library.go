package usecases

import (
	"sort"
	"sync"
	"time"

	"artifact-vault.backend/internal/domain/entities"
)

// Library is the in-memory model of the user's NFT library: linked wallets,
// ingested artifacts, catalogs and folders. It is the source of truth for
// all reads; the remote persistence service only mirrors it. All engines
// share one Library by reference and serialize mutations through its lock.
type Library struct {
	mu sync.RWMutex

	wallets   map[string]*entities.Wallet // keyed by checksum address
	artifacts map[entities.ArtifactID]*entities.Artifact

	// partitions preserves per-wallet, per-network insertion order
	partitions map[string]map[string][]entities.ArtifactID
	// balances indexes ERC1155 quantities: wallet → tokenID → contract
	balances map[string]map[string]map[string]int
	// spam is the computed-membership index behind the system catalog
	spam map[entities.ArtifactID]struct{}

	catalogs map[string]*entities.Catalog
	folders  map[string]*entities.Folder
}

// NewLibrary constructs an empty library with the system spam catalog
func NewLibrary() *Library {
	return &Library{
		wallets:    make(map[string]*entities.Wallet),
		artifacts:  make(map[entities.ArtifactID]*entities.Artifact),
		partitions: make(map[string]map[string][]entities.ArtifactID),
		balances:   make(map[string]map[string]map[string]int),
		spam:       make(map[entities.ArtifactID]struct{}),
		catalogs: map[string]*entities.Catalog{
			entities.SpamCatalogID: {
				ID:        entities.SpamCatalogID,
				Name:      entities.SpamCatalogName,
				IsSystem:  true,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		},
		folders: make(map[string]*entities.Folder),
	}
}

// memberOfAnyCatalog reports whether the identity is stored in any
// non-system catalog. Callers must hold the lock.
func (l *Library) memberOfAnyCatalog(id entities.ArtifactID) bool {
	for _, c := range l.catalogs {
		if c.IsSystem {
			continue
		}
		if c.HasMember(id) {
			return true
		}
	}
	return false
}

// recomputeInCatalog re-derives isInCatalog = spam OR member-of-any-catalog
// for one artifact. Callers must hold the lock.
func (l *Library) recomputeInCatalog(id entities.ArtifactID) {
	a, ok := l.artifacts[id]
	if !ok {
		return
	}
	a.IsInCatalog = a.IsSpam || l.memberOfAnyCatalog(id)
}

// dropArtifactLocked removes one artifact and its index entries. Catalog
// membership is not touched here; that cascade belongs to the callers that
// own the catalog table.
func (l *Library) dropArtifactLocked(id entities.ArtifactID) {
	if _, ok := l.artifacts[id]; !ok {
		return
	}
	delete(l.artifacts, id)
	delete(l.spam, id)

	if networks, ok := l.partitions[id.WalletID]; ok {
		ids := networks[id.Network]
		for i, existing := range ids {
			if existing == id {
				networks[id.Network] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}

	if tokens, ok := l.balances[id.WalletID]; ok {
		if contracts, ok := tokens[id.TokenID]; ok {
			delete(contracts, id.ContractAddress)
			if len(contracts) == 0 {
				delete(tokens, id.TokenID)
			}
		}
		if len(tokens) == 0 {
			delete(l.balances, id.WalletID)
		}
	}
}

// purgeCatalogReferences removes every stored membership reference to
// artifacts of the given wallet. Callers must hold the lock.
func (l *Library) purgeCatalogReferences(walletID string) {
	for _, c := range l.catalogs {
		if c.IsSystem {
			continue
		}
		kept := c.Members[:0]
		for _, m := range c.Members {
			if m.WalletID != walletID {
				kept = append(kept, m)
			}
		}
		if len(kept) != len(c.Members) {
			c.Members = kept
			c.UpdatedAt = time.Now()
		}
	}
}

// walletOrder returns wallet addresses in a stable order for deterministic
// cross-wallet listings. Callers must hold the lock.
func (l *Library) walletOrder() []string {
	addrs := make([]string, 0, len(l.partitions))
	for addr := range l.partitions {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}

// artifactsInOrder walks every partition in stable wallet/network order and
// returns artifacts in insertion order within each partition. Callers must
// hold the lock.
func (l *Library) artifactsInOrder() []*entities.Artifact {
	var out []*entities.Artifact
	for _, addr := range l.walletOrder() {
		networks := l.partitions[addr]
		names := make([]string, 0, len(networks))
		for n := range networks {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			for _, id := range networks[n] {
				if a, ok := l.artifacts[id]; ok {
					out = append(out, a)
				}
			}
		}
	}
	return out
}
