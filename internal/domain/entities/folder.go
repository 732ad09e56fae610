package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Folder is a named group of catalogs. CatalogIDs only ever reference
// catalogs that exist; deleting a catalog removes it from every folder in
// the same logical transaction.
type Folder struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description,omitempty"`
	CatalogIDs  []string    `json:"catalogIds"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Clone returns a copy whose CatalogIDs slice shares no backing storage
// with the original, so callers may hold it across later folder mutations.
func (f *Folder) Clone() *Folder {
	copied := *f
	copied.CatalogIDs = append([]string(nil), f.CatalogIDs...)
	return &copied
}

// HasCatalog reports whether the catalog id is in the folder
func (f *Folder) HasCatalog(catalogID string) bool {
	for _, id := range f.CatalogIDs {
		if id == catalogID {
			return true
		}
	}
	return false
}

// CreateFolderInput represents input for creating a folder
type CreateFolderInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	CatalogIDs  []string `json:"catalogIds"`
}

// UpdateFolderInput represents input for updating a folder. A nil
// CatalogIDs leaves the assignment untouched; non-nil replaces it in full.
type UpdateFolderInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	CatalogIDs  *[]string `json:"catalogIds"`
}
