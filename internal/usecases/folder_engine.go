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

// FolderEngine manages folders and the folder→catalog relationship table.
// Folders only ever hold references to catalogs that exist; catalogs may
// live in zero or more folders.
type FolderEngine struct {
	lib  *Library
	sync *Syncer
}

// NewFolderEngine creates a folder engine over the shared library state
func NewFolderEngine(lib *Library, sync *Syncer) *FolderEngine {
	return &FolderEngine{lib: lib, sync: sync}
}

// Create makes a new folder, optionally seeded with catalog ids. Seed ids
// that do not resolve are ignored, not errored, to tolerate stale clients.
func (e *FolderEngine) Create(name, description string, catalogIDs []string) (*entities.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.Validation("folder name must not be empty")
	}

	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	now := time.Now()
	f := &entities.Folder{
		ID:         utils.GenerateUUIDv7().String(),
		Name:       name,
		CatalogIDs: e.knownCatalogsLocked(catalogIDs),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if description != "" {
		f.Description = null.StringFrom(description)
	}
	e.lib.folders[f.ID] = f

	// The mirror task runs after the lock is released, so it gets its own
	// clone rather than the live struct.
	rec := f.Clone()
	e.mirror("create folder", func(ctx context.Context, s *Syncer) error {
		return s.folders.Create(ctx, rec)
	})

	return f.Clone(), nil
}

// Update edits a folder. A provided CatalogIDs replaces the whole
// assignment (full-replace semantics, not a merge).
func (e *FolderEngine) Update(id string, input entities.UpdateFolderInput) (*entities.Folder, error) {
	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	f, ok := e.lib.folders[id]
	if !ok {
		return nil, domainerrors.NotFound("folder not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.Validation("folder name must not be empty")
		}
		f.Name = name
	}
	if input.Description != nil {
		f.Description = null.NewString(*input.Description, *input.Description != "")
	}
	if input.CatalogIDs != nil {
		f.CatalogIDs = e.knownCatalogsLocked(*input.CatalogIDs)
	}
	f.UpdatedAt = time.Now()

	rec := f.Clone()
	e.mirror("update folder", func(ctx context.Context, s *Syncer) error {
		return s.folders.Update(ctx, rec)
	})

	return f.Clone(), nil
}

// Delete removes the folder and its relationship entry. Catalogs inside it
// are untouched.
func (e *FolderEngine) Delete(id string) error {
	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	if _, ok := e.lib.folders[id]; !ok {
		return domainerrors.NotFound("folder not found")
	}
	delete(e.lib.folders, id)

	e.mirror("delete folder", func(ctx context.Context, s *Syncer) error {
		return s.folders.Delete(ctx, id)
	})
	return nil
}

// AddCatalog assigns a catalog to a folder; adding an existing assignment
// is a no-op. Adding bumps the folder's updatedAt.
func (e *FolderEngine) AddCatalog(folderID, catalogID string) error {
	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	f, ok := e.lib.folders[folderID]
	if !ok {
		return domainerrors.NotFound("folder not found")
	}
	if _, ok := e.lib.catalogs[catalogID]; !ok {
		return domainerrors.NotFound("catalog not found")
	}
	if f.HasCatalog(catalogID) {
		return nil
	}

	f.CatalogIDs = append(f.CatalogIDs, catalogID)
	f.UpdatedAt = time.Now()

	e.mirror("add catalog to folder", func(ctx context.Context, s *Syncer) error {
		return s.folders.AddCatalog(ctx, folderID, catalogID)
	})
	return nil
}

// RemoveCatalog drops a catalog from a folder; removing a missing
// assignment is a no-op.
func (e *FolderEngine) RemoveCatalog(folderID, catalogID string) error {
	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	f, ok := e.lib.folders[folderID]
	if !ok {
		return domainerrors.NotFound("folder not found")
	}
	if !removeString(&f.CatalogIDs, catalogID) {
		return nil
	}
	f.UpdatedAt = time.Now()

	e.mirror("remove catalog from folder", func(ctx context.Context, s *Syncer) error {
		return s.folders.RemoveCatalog(ctx, folderID, catalogID)
	})
	return nil
}

// MoveCatalogToFolders re-homes a catalog in one step: it is removed from
// every folder and added to exactly the given ones under a single lock, so
// no reader ever observes it in both old and new folders or in neither.
func (e *FolderEngine) MoveCatalogToFolders(catalogID string, folderIDs []string) error {
	e.lib.mu.Lock()
	defer e.lib.mu.Unlock()

	if _, ok := e.lib.catalogs[catalogID]; !ok {
		return domainerrors.NotFound("catalog not found")
	}
	for _, fid := range folderIDs {
		if _, ok := e.lib.folders[fid]; !ok {
			return domainerrors.NotFound("folder not found")
		}
	}

	now := time.Now()
	var removedFrom, addedTo []string
	for id, f := range e.lib.folders {
		want := containsString(folderIDs, id)
		has := f.HasCatalog(catalogID)
		switch {
		case has && !want:
			removeString(&f.CatalogIDs, catalogID)
			f.UpdatedAt = now
			removedFrom = append(removedFrom, id)
		case !has && want:
			f.CatalogIDs = append(f.CatalogIDs, catalogID)
			f.UpdatedAt = now
			addedTo = append(addedTo, id)
		}
	}

	e.mirror("move catalog to folders", func(ctx context.Context, s *Syncer) error {
		for _, fid := range removedFrom {
			if err := s.folders.RemoveCatalog(ctx, fid, catalogID); err != nil {
				return err
			}
		}
		for _, fid := range addedTo {
			if err := s.folders.AddCatalog(ctx, fid, catalogID); err != nil {
				return err
			}
		}
		return nil
	})
	return nil
}

// FoldersContaining returns every folder holding the catalog, newest first,
// matching ListAll's ordering convention.
func (e *FolderEngine) FoldersContaining(catalogID string) []*entities.Folder {
	e.lib.mu.RLock()
	defer e.lib.mu.RUnlock()

	var out []*entities.Folder
	for _, f := range e.lib.folders {
		if f.HasCatalog(catalogID) {
			out = append(out, f.Clone())
		}
	}
	sortFoldersNewestFirst(out)
	return out
}

// Get returns one folder by id
func (e *FolderEngine) Get(id string) (*entities.Folder, error) {
	e.lib.mu.RLock()
	defer e.lib.mu.RUnlock()

	f, ok := e.lib.folders[id]
	if !ok {
		return nil, domainerrors.NotFound("folder not found")
	}
	return f.Clone(), nil
}

// ListAll returns all folders in descending creation-time order
func (e *FolderEngine) ListAll() []*entities.Folder {
	e.lib.mu.RLock()
	defer e.lib.mu.RUnlock()

	out := make([]*entities.Folder, 0, len(e.lib.folders))
	for _, f := range e.lib.folders {
		out = append(out, f.Clone())
	}
	sortFoldersNewestFirst(out)
	return out
}

// knownCatalogsLocked filters the ids down to catalogs that exist,
// deduplicated, preserving order. Callers must hold the lock.
func (e *FolderEngine) knownCatalogsLocked(ids []string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := e.lib.catalogs[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (e *FolderEngine) mirror(name string, run func(ctx context.Context, s *Syncer) error) {
	if e.sync == nil {
		return
	}
	s := e.sync
	s.Enqueue(name, func(ctx context.Context) error { return run(ctx, s) })
}

func sortFoldersNewestFirst(folders []*entities.Folder) {
	sort.Slice(folders, func(i, j int) bool {
		if folders[i].CreatedAt.Equal(folders[j].CreatedAt) {
			return folders[i].ID > folders[j].ID
		}
		return folders[i].CreatedAt.After(folders[j].CreatedAt)
	})
}

func containsString(ids []string, v string) bool {
	for _, id := range ids {
		if id == v {
			return true
		}
	}
	return false
}
