package usecases

import (
	"context"
	"sort"
	"strings"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/domain/repositories"
	"artifact-vault.backend/pkg/utils"
)

// FilterCategory names one facet of the artifact filter
type FilterCategory string

const (
	FilterWallet    FilterCategory = "wallet"
	FilterContract  FilterCategory = "contract"
	FilterNetwork   FilterCategory = "network"
	FilterMediaType FilterCategory = "mediaType"
)

// SortField names one sortable artifact field
type SortField string

const (
	SortByName     SortField = "name"
	SortByWallet   SortField = "wallet"
	SortByContract SortField = "contract"
	SortByNetwork  SortField = "network"
)

// Aggregator produces read-only derived views over the library: the global
// deduplicated search index, faceted filtering, deterministic sorting, and
// the paginated delegated-wallet listing.
type Aggregator struct {
	lib         *Library
	delegations repositories.DelegationRegistry
}

// NewAggregator creates an aggregator over the shared library state
func NewAggregator(lib *Library, delegations repositories.DelegationRegistry) *Aggregator {
	return &Aggregator{lib: lib, delegations: delegations}
}

// GlobalIndex flattens all wallets into one linear list, deduplicated by
// (network, contract, tokenId). The wallet is deliberately not part of the
// key: a token co-owned by two linked wallets appears once, under the
// first-seen pairing.
func (ag *Aggregator) GlobalIndex() []*entities.Artifact {
	ag.lib.mu.RLock()
	defer ag.lib.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []*entities.Artifact
	for _, a := range ag.lib.artifactsInOrder() {
		key := a.ID.TokenKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		copied := *a
		out = append(out, &copied)
	}
	return out
}

// Search lists index entries whose title, token id or contract name
// contains the query, case-insensitively. An empty query returns an empty
// result regardless of store contents: listing only activates once the user
// has typed something.
func (ag *Aggregator) Search(query string) []*entities.Artifact {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*entities.Artifact{}
	}

	needle := strings.ToLower(query)
	out := []*entities.Artifact{}
	for _, a := range ag.GlobalIndex() {
		haystacks := []string{a.Title, a.ID.TokenID, a.ContractName.String}
		for _, h := range haystacks {
			if h != "" && strings.Contains(strings.ToLower(h), needle) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// Filter keeps artifacts matching at least one accepted value in every
// category present in the filter map: AND across categories, OR within one.
// An empty or nil filter map passes everything through.
func Filter(artifacts []*entities.Artifact, filters map[FilterCategory][]string) []*entities.Artifact {
	if len(filters) == 0 {
		return artifacts
	}

	out := []*entities.Artifact{}
	for _, a := range artifacts {
		if matchesFilters(a, filters) {
			out = append(out, a)
		}
	}
	return out
}

func matchesFilters(a *entities.Artifact, filters map[FilterCategory][]string) bool {
	for category, accepted := range filters {
		if len(accepted) == 0 {
			continue
		}
		var value string
		switch category {
		case FilterWallet:
			value = a.ID.WalletID
		case FilterContract:
			value = a.ID.ContractAddress
		case FilterNetwork:
			value = a.ID.Network
		case FilterMediaType:
			value = string(a.Media.Type)
		default:
			return false
		}
		if !containsFold(accepted, value) {
			return false
		}
	}
	return true
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}

// Sort orders artifacts by the chosen field, ascending unless desc is set.
// Ties break on the identity tuple so the order is stable across re-reads.
func Sort(artifacts []*entities.Artifact, field SortField, desc bool) {
	sort.SliceStable(artifacts, func(i, j int) bool {
		a, b := artifacts[i], artifacts[j]
		av, bv := sortKey(a, field), sortKey(b, field)
		if av == bv {
			av, bv = a.ID.String(), b.ID.String()
		}
		if desc {
			return av > bv
		}
		return av < bv
	})
}

func sortKey(a *entities.Artifact, field SortField) string {
	switch field {
	case SortByWallet:
		return a.ID.WalletID
	case SortByContract:
		return a.ID.ContractAddress
	case SortByNetwork:
		return a.ID.Network
	default:
		return strings.ToLower(a.Title)
	}
}

// Delegations pages through the external delegation registry for the
// onboarding wallet-set expansion.
func (ag *Aggregator) Delegations(ctx context.Context, address string, params utils.PaginationParams) ([]entities.Delegation, error) {
	pageSize := params.Limit
	if pageSize <= 0 {
		pageSize = 50
	}
	return ag.delegations.ResolveDelegations(ctx, address, params.Page, pageSize)
}
