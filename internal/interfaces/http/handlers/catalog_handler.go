package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/interfaces/http/response"
	"artifact-vault.backend/internal/usecases"
)

// CatalogHandler handles catalog CRUD and membership endpoints
type CatalogHandler struct {
	catalogs *usecases.CatalogEngine
	folders  *usecases.FolderEngine
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogs *usecases.CatalogEngine, folders *usecases.FolderEngine) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs, folders: folders}
}

// CreateCatalog creates a catalog
// POST /api/v1/catalogs
func (h *CatalogHandler) CreateCatalog(c *gin.Context) {
	var input entities.CreateCatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catalog, err := h.catalogs.Create(input.Name, input.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"catalog": catalog})
}

// ListCatalogs lists all catalogs, newest first
// GET /api/v1/catalogs
func (h *CatalogHandler) ListCatalogs(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"catalogs": h.catalogs.ListAll()})
}

// GetCatalog returns one catalog with its live member count
// GET /api/v1/catalogs/:id
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	id := c.Param("id")
	catalog, err := h.catalogs.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	count, err := h.catalogs.Count(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"catalog": catalog, "count": count})
}

// UpdateCatalog renames or re-describes a catalog
// PUT /api/v1/catalogs/:id
func (h *CatalogHandler) UpdateCatalog(c *gin.Context) {
	var input entities.UpdateCatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catalog, err := h.catalogs.Update(c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"catalog": catalog})
}

// DeleteCatalog deletes a catalog and removes it from every folder
// DELETE /api/v1/catalogs/:id
func (h *CatalogHandler) DeleteCatalog(c *gin.Context) {
	if err := h.catalogs.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "catalog deleted"})
}

// GetCatalogArtifacts resolves the catalog's members as artifacts
// GET /api/v1/catalogs/:id/artifacts
func (h *CatalogHandler) GetCatalogArtifacts(c *gin.Context) {
	artifacts, err := h.catalogs.MembersAsArtifacts(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if artifacts == nil {
		artifacts = []*entities.Artifact{}
	}
	response.Success(c, http.StatusOK, gin.H{"artifacts": artifacts})
}

// AddArtifact adds one artifact identity to the catalog
// POST /api/v1/catalogs/:id/artifacts
func (h *CatalogHandler) AddArtifact(c *gin.Context) {
	var input entities.ArtifactID
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogs.AddArtifact(c.Param("id"), input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "artifact added"})
}

// RemoveArtifact removes one artifact identity from the catalog
// DELETE /api/v1/catalogs/:id/artifacts
func (h *CatalogHandler) RemoveArtifact(c *gin.Context) {
	if err := h.catalogs.RemoveArtifact(c.Param("id"), identityFromQuery(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "artifact removed"})
}

// MoveCatalog re-homes the catalog into exactly the given folders
// PUT /api/v1/catalogs/:id/folders
func (h *CatalogHandler) MoveCatalog(c *gin.Context) {
	var input struct {
		FolderIDs []string `json:"folderIds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.folders.MoveCatalogToFolders(c.Param("id"), input.FolderIDs); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "catalog moved"})
}

// FoldersContaining lists the folders holding this catalog, newest first
// GET /api/v1/catalogs/:id/folders
func (h *CatalogHandler) FoldersContaining(c *gin.Context) {
	folders := h.folders.FoldersContaining(c.Param("id"))
	if folders == nil {
		folders = []*entities.Folder{}
	}
	response.Success(c, http.StatusOK, gin.H{"folders": folders})
}
