package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/interfaces/http/response"
	"artifact-vault.backend/internal/usecases"
)

// WalletHandler handles wallet linking and scanning endpoints
type WalletHandler struct {
	wallets *usecases.WalletUsecase
	ingest  *usecases.IngestUsecase
	// defaultNetworks is scanned when a request names none
	defaultNetworks []string
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(wallets *usecases.WalletUsecase, ingest *usecases.IngestUsecase, defaultNetworks []string) *WalletHandler {
	return &WalletHandler{wallets: wallets, ingest: ingest, defaultNetworks: defaultNetworks}
}

// LinkWallet links a wallet address
// POST /api/v1/wallets
func (h *WalletHandler) LinkWallet(c *gin.Context) {
	var input entities.LinkWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := h.wallets.Link(input.Address)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"wallet": wallet})
}

// ListWallets lists all linked wallets
// GET /api/v1/wallets
func (h *WalletHandler) ListWallets(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"wallets": h.wallets.List()})
}

// UnlinkWallet unlinks a wallet and cascade-deletes its artifacts
// DELETE /api/v1/wallets/:address
func (h *WalletHandler) UnlinkWallet(c *gin.Context) {
	if err := h.wallets.Unlink(c.Param("address")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "wallet unlinked"})
}

// ScanWallet fetches and ingests the wallet's artifacts on the given
// networks. Per-network failures come back as warnings, not errors.
// POST /api/v1/wallets/:address/scan
func (h *WalletHandler) ScanWallet(c *gin.Context) {
	var input struct {
		Networks []string `json:"networks"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	networks := input.Networks
	if networks == nil {
		networks = h.defaultNetworks
	}
	if len(networks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "networks must name at least one network"})
		return
	}

	scans, err := h.ingest.ScanWallet(c.Request.Context(), c.Param("address"), networks)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scans": scans})
}
