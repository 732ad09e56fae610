package usecases

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"artifact-vault.backend/internal/domain/entities"
	domainerrors "artifact-vault.backend/internal/domain/errors"
	"artifact-vault.backend/pkg/utils"
)

// CatalogEngine manages user catalogs and the one system spam catalog.
// User catalogs store their membership explicitly; the spam catalog's
// membership is recomputed from the artifact store's spam index on every
// read and is never stored.
type CatalogEngine struct {
	lib  *Library
	sync *Syncer
}

// NewCatalogEngine creates a catalog engine over the shared library state
func NewCatalogEngine(lib *Library, sync *Syncer) *CatalogEngine {
	return &CatalogEngine{lib: lib, sync: sync}
}

// Create allocates a new empty catalog. The name must be non-empty and not
// already used by another non-system catalog.
func (e *CatalogEngine) Create(name, description string) (*entities.Catalog, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.Validation("catalog name must not be empty")
	}

	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	if e.nameTakenLocked(name, "") {
		return nil, domainerrors.Conflict("catalog name already in use")
	}

	now := time.Now()
	c := &entities.Catalog{
		ID:        utils.GenerateUUIDv7().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if description != "" {
		c.Description = null.StringFrom(description)
	}
	e.lib.catalogs[c.ID] = c

	// The mirror task runs after the lock is released, so it gets its own
	// clone rather than the live struct.
	rec := c.Clone()
	e.mirror("create catalog", func(ctx context.Context, s *Syncer) error {
		return s.catalogs.Create(ctx, rec)
	})

	return c.Clone(), nil
}

// Update renames or re-describes a catalog. The system catalog is immutable.
func (e *CatalogEngine) Update(id string, input entities.UpdateCatalogInput) (*entities.Catalog, error) {
	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	c, ok := e.lib.catalogs[id]
	if !ok {
		return nil, domainerrors.NotFound("catalog not found")
	}
	if c.IsSystem {
		return nil, domainerrors.SystemLocked("the spam catalog cannot be edited")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.Validation("catalog name must not be empty")
		}
		if e.nameTakenLocked(name, id) {
			return nil, domainerrors.Conflict("catalog name already in use")
		}
		c.Name = name
	}
	if input.Description != nil {
		c.Description = null.NewString(*input.Description, *input.Description != "")
	}
	c.UpdatedAt = time.Now()

	rec := c.Clone()
	e.mirror("update catalog", func(ctx context.Context, s *Syncer) error {
		return s.catalogs.Update(ctx, rec)
	})

	return c.Clone(), nil
}

// Delete removes a catalog and, in the same logical transaction, removes
// its id from every folder and re-derives isInCatalog for its former
// members. Irreversible. The system catalog cannot be deleted.
func (e *CatalogEngine) Delete(id string) error {
	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	c, ok := e.lib.catalogs[id]
	if !ok {
		return domainerrors.NotFound("catalog not found")
	}
	if c.IsSystem {
		return domainerrors.SystemLocked("the spam catalog cannot be deleted")
	}

	members := c.Members
	delete(e.lib.catalogs, id)

	for _, f := range e.lib.folders {
		if removeString(&f.CatalogIDs, id) {
			f.UpdatedAt = time.Now()
		}
	}
	for _, m := range members {
		e.lib.recomputeInCatalog(m)
	}

	e.mirror("delete catalog", func(ctx context.Context, s *Syncer) error {
		return s.catalogs.Delete(ctx, id)
	})
	return nil
}

// AddArtifact adds an identity to a user catalog with set semantics: adding
// an existing member is a no-op, not an error.
func (e *CatalogEngine) AddArtifact(catalogID string, artifactID entities.ArtifactID) error {
	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	c, ok := e.lib.catalogs[catalogID]
	if !ok {
		return domainerrors.NotFound("catalog not found")
	}
	if c.IsSystem {
		return domainerrors.SystemLocked("spam membership is computed, not editable")
	}
	if _, ok := e.lib.artifacts[artifactID]; !ok {
		return domainerrors.NotFound("artifact not found")
	}
	if c.HasMember(artifactID) {
		return nil
	}

	c.Members = append(c.Members, artifactID)
	c.UpdatedAt = time.Now()
	e.lib.recomputeInCatalog(artifactID)

	e.mirror("add artifact to catalog", func(ctx context.Context, s *Syncer) error {
		return s.catalogs.AddArtifact(ctx, catalogID, artifactID)
	})
	return nil
}

// RemoveArtifact removes an identity from a user catalog; removing a
// non-member is a no-op.
func (e *CatalogEngine) RemoveArtifact(catalogID string, artifactID entities.ArtifactID) error {
	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	c, ok := e.lib.catalogs[catalogID]
	if !ok {
		return domainerrors.NotFound("catalog not found")
	}
	if c.IsSystem {
		return domainerrors.SystemLocked("spam membership is computed, not editable")
	}

	removed := false
	for i, m := range c.Members {
		if m == artifactID {
			c.Members = append(c.Members[:i], c.Members[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return nil
	}

	c.UpdatedAt = time.Now()
	e.lib.recomputeInCatalog(artifactID)

	e.mirror("remove artifact from catalog", func(ctx context.Context, s *Syncer) error {
		return s.catalogs.RemoveArtifact(ctx, catalogID, artifactID)
	})
	return nil
}

// Count returns the member count. The spam catalog is counted from the
// artifact store's spam index; user catalogs from their stored membership.
// The two paths are deliberately separate: the spam catalog has no stored
// membership list to count.
func (e *CatalogEngine) Count(catalogID string) (int, error) {
	e.lib.mu.RLock()
	defer e.lib.mu.RUnlock()

	c, ok := e.lib.catalogs[catalogID]
	if !ok {
		return 0, domainerrors.NotFound("catalog not found")
	}
	if c.IsSystem {
		return len(e.lib.spam), nil
	}
	return len(c.Members), nil
}

// MembersAsArtifacts resolves the catalog's members through the artifact
// store. Identities orphaned by a wallet removal are dropped silently.
func (e *CatalogEngine) MembersAsArtifacts(catalogID string) ([]*entities.Artifact, error) {
	e.lib.mu.RLock()
	defer e.lib.mu.RUnlock()

	c, ok := e.lib.catalogs[catalogID]
	if !ok {
		return nil, domainerrors.NotFound("catalog not found")
	}

	if c.IsSystem {
		var out []*entities.Artifact
		for _, a := range e.lib.artifactsInOrder() {
			if a.IsSpam {
				copied := *a
				out = append(out, &copied)
			}
		}
		return out, nil
	}

	var out []*entities.Artifact
	for _, m := range c.Members {
		if a, ok := e.lib.artifacts[m]; ok {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Get returns one catalog by id
func (e *CatalogEngine) Get(id string) (*entities.Catalog, error) {
	e.lib.mu.RLock()
	defer e.lib.mu.RUnlock()

	c, ok := e.lib.catalogs[id]
	if !ok {
		return nil, domainerrors.NotFound("catalog not found")
	}
	return c.Clone(), nil
}

// ListAll returns all catalogs in descending creation-time order
func (e *CatalogEngine) ListAll() []*entities.Catalog {
	e.lib.mu.RLock()
	defer e.lib.mu.RUnlock()

	out := make([]*entities.Catalog, 0, len(e.lib.catalogs))
	for _, c := range e.lib.catalogs {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// nameTakenLocked checks name uniqueness against non-system catalogs,
// excluding the catalog being renamed. Callers must hold the lock.
func (e *CatalogEngine) nameTakenLocked(name, excludeID string) bool {
	for _, c := range e.lib.catalogs {
		if c.IsSystem || c.ID == excludeID {
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (e *CatalogEngine) mirror(name string, run func(ctx context.Context, s *Syncer) error) {
	if e.sync == nil {
		return
	}
	s := e.sync
	s.Enqueue(name, func(ctx context.Context) error { return run(ctx, s) })
}

// removeString deletes one occurrence of v from the slice, reporting
// whether anything changed.
func removeString(ids *[]string, v string) bool {
	for i, id := range *ids {
		if id == v {
			*ids = append((*ids)[:i], (*ids)[i+1:]...)
			return true
		}
	}
	return false
}
