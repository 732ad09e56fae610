package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// SpamCatalogID is the well-known id of the built-in system catalog. Its
// membership is computed from the spam flags in the artifact store, never
// stored, and it cannot be edited, renamed or deleted.
const SpamCatalogID = "spam"

// SpamCatalogName is the display name of the system catalog
const SpamCatalogName = "Spam"

// Catalog is a named, user-ordered set of artifact identities. Members are
// references into the artifact store, never copies, so artifact updates are
// visible everywhere without synchronization.
type Catalog struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description,omitempty"`
	IsSystem    bool        `json:"isSystem"`
	// Members holds identity tuples in insertion order with set semantics.
	Members   []ArtifactID `json:"memberArtifactIds"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Clone returns a copy whose Members slice shares no backing storage with
// the original, so callers may hold it across later catalog mutations.
func (c *Catalog) Clone() *Catalog {
	copied := *c
	copied.Members = append([]ArtifactID(nil), c.Members...)
	return &copied
}

// HasMember reports whether the identity is already in the catalog
func (c *Catalog) HasMember(id ArtifactID) bool {
	for _, m := range c.Members {
		if m == id {
			return true
		}
	}
	return false
}

// CreateCatalogInput represents input for creating a catalog
type CreateCatalogInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCatalogInput represents input for renaming/updating a catalog
type UpdateCatalogInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
