package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/interfaces/http/response"
	"artifact-vault.backend/internal/usecases"
)

// FolderHandler handles folder CRUD and catalog-assignment endpoints
type FolderHandler struct {
	folders *usecases.FolderEngine
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folders *usecases.FolderEngine) *FolderHandler {
	return &FolderHandler{folders: folders}
}

// CreateFolder creates a folder, optionally seeded with catalog ids
// POST /api/v1/folders
func (h *FolderHandler) CreateFolder(c *gin.Context) {
	var input entities.CreateFolderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	folder, err := h.folders.Create(input.Name, input.Description, input.CatalogIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"folder": folder})
}

// ListFolders lists all folders, newest first
// GET /api/v1/folders
func (h *FolderHandler) ListFolders(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"folders": h.folders.ListAll()})
}

// GetFolder returns one folder
// GET /api/v1/folders/:id
func (h *FolderHandler) GetFolder(c *gin.Context) {
	folder, err := h.folders.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"folder": folder})
}

// UpdateFolder edits a folder; a provided catalogIds replaces the set
// PUT /api/v1/folders/:id
func (h *FolderHandler) UpdateFolder(c *gin.Context) {
	var input entities.UpdateFolderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	folder, err := h.folders.Update(c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"folder": folder})
}

// DeleteFolder deletes a folder; its catalogs are untouched
// DELETE /api/v1/folders/:id
func (h *FolderHandler) DeleteFolder(c *gin.Context) {
	if err := h.folders.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "folder deleted"})
}

// AddCatalog assigns a catalog to the folder
// PUT /api/v1/folders/:id/catalogs/:catalogId
func (h *FolderHandler) AddCatalog(c *gin.Context) {
	if err := h.folders.AddCatalog(c.Param("id"), c.Param("catalogId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "catalog added to folder"})
}

// RemoveCatalog drops a catalog from the folder
// DELETE /api/v1/folders/:id/catalogs/:catalogId
func (h *FolderHandler) RemoveCatalog(c *gin.Context) {
	if err := h.folders.RemoveCatalog(c.Param("id"), c.Param("catalogId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "catalog removed from folder"})
}
