package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/interfaces/http/response"
	"artifact-vault.backend/internal/usecases"
	"artifact-vault.backend/pkg/utils"
)

// ArtifactHandler handles artifact listing, spam flagging and search
type ArtifactHandler struct {
	store      *usecases.ArtifactStore
	aggregator *usecases.Aggregator
}

// NewArtifactHandler creates a new artifact handler
func NewArtifactHandler(store *usecases.ArtifactStore, aggregator *usecases.Aggregator) *ArtifactHandler {
	return &ArtifactHandler{store: store, aggregator: aggregator}
}

func identityFromQuery(c *gin.Context) entities.ArtifactID {
	return entities.ArtifactID{
		WalletID:        c.Query("walletId"),
		Network:         c.Query("network"),
		ContractAddress: c.Query("contract"),
		TokenID:         c.Query("tokenId"),
	}
}

// ListByWallet lists a wallet's artifacts; flatten=true collapses
// cross-network duplicates.
// GET /api/v1/wallets/:address/artifacts
func (h *ArtifactHandler) ListByWallet(c *gin.Context) {
	wallet := c.Param("address")

	var artifacts []*entities.Artifact
	if c.Query("flatten") == "true" {
		artifacts = h.store.Flatten(wallet)
	} else {
		artifacts = h.store.ListByWallet(wallet)
	}
	if artifacts == nil {
		artifacts = []*entities.Artifact{}
	}
	response.Success(c, http.StatusOK, gin.H{"artifacts": artifacts})
}

// Counts reports the live total and spam counts
// GET /api/v1/artifacts/counts
func (h *ArtifactHandler) Counts(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"total": h.store.TotalCount(),
		"spam":  h.store.TotalSpamCount(),
	})
}

// SetSpam flags or unflags one artifact as spam
// PUT /api/v1/artifacts/spam
func (h *ArtifactHandler) SetSpam(c *gin.Context) {
	var input struct {
		ID     entities.ArtifactID `json:"id" binding:"required"`
		IsSpam bool                `json:"isSpam"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SetSpam(input.ID, input.IsSpam); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "spam flag updated"})
}

// Search lists global-index artifacts matching the query, filtered and
// sorted. An empty query returns an empty list.
// GET /api/v1/artifacts/search
func (h *ArtifactHandler) Search(c *gin.Context) {
	results := h.aggregator.Search(c.Query("q"))

	filters := map[usecases.FilterCategory][]string{}
	for _, category := range []usecases.FilterCategory{
		usecases.FilterWallet, usecases.FilterContract,
		usecases.FilterNetwork, usecases.FilterMediaType,
	} {
		if values, ok := c.GetQueryArray(string(category)); ok {
			filters[category] = values
		}
	}
	results = usecases.Filter(results, filters)

	sortField := usecases.SortField(c.DefaultQuery("sort", string(usecases.SortByName)))
	desc := c.Query("order") == "desc"
	usecases.Sort(results, sortField, desc)

	response.Success(c, http.StatusOK, gin.H{"artifacts": results})
}

// ListDelegations pages the external delegation registry for an address
// GET /api/v1/wallets/:address/delegations
func (h *ArtifactHandler) ListDelegations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	params := utils.GetPaginationParams(page, limit)

	delegations, err := h.aggregator.Delegations(c.Request.Context(), c.Param("address"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	if delegations == nil {
		delegations = []entities.Delegation{}
	}
	response.Success(c, http.StatusOK, gin.H{"delegations": delegations})
}
