package repositories

import (
	"context"

	"artifact-vault.backend/internal/domain/entities"
)

// CatalogRepository mirrors catalogs and their membership rows
type CatalogRepository interface {
	Create(ctx context.Context, catalog *entities.Catalog) error
	Update(ctx context.Context, catalog *entities.Catalog) error
	Delete(ctx context.Context, id string) error
	AddArtifact(ctx context.Context, catalogID string, artifactID entities.ArtifactID) error
	RemoveArtifact(ctx context.Context, catalogID string, artifactID entities.ArtifactID) error
	List(ctx context.Context) ([]*entities.Catalog, error)
}

// FolderRepository mirrors folders and the folder→catalog relationship table
type FolderRepository interface {
	Create(ctx context.Context, folder *entities.Folder) error
	Update(ctx context.Context, folder *entities.Folder) error
	Delete(ctx context.Context, id string) error
	AddCatalog(ctx context.Context, folderID, catalogID string) error
	RemoveCatalog(ctx context.Context, folderID, catalogID string) error
	List(ctx context.Context) ([]*entities.Folder, error)
}
