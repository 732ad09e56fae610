package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"artifact-vault.backend/internal/domain/entities"
	domainerrors "artifact-vault.backend/internal/domain/errors"
	"artifact-vault.backend/internal/domain/repositories"
	"artifact-vault.backend/internal/infrastructure/models"
)

// folderRepo implements repositories.FolderRepository over the mirror DB
type folderRepo struct {
	db *gorm.DB
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(db *gorm.DB) repositories.FolderRepository {
	return &folderRepo{db: db}
}

// Create inserts the folder and its seeded relationship rows
func (r *folderRepo) Create(ctx context.Context, folder *entities.Folder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(r.toModel(folder)).Error; err != nil {
			return err
		}
		for _, catalogID := range folder.CatalogIDs {
			row := &models.FolderCatalog{FolderID: folder.ID, CatalogID: catalogID}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err)
}

// Update saves folder fields and replaces the relationship rows in full
func (r *folderRepo) Update(ctx context.Context, folder *entities.Folder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Folder{}).
			Where("id = ?", folder.ID).
			Updates(map[string]interface{}{
				"name":        folder.Name,
				"description": folder.Description.Ptr(),
				"updated_at":  folder.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("folder_id = ?", folder.ID).Delete(&models.FolderCatalog{}).Error; err != nil {
			return err
		}
		for _, catalogID := range folder.CatalogIDs {
			row := &models.FolderCatalog{FolderID: folder.ID, CatalogID: catalogID}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err)
}

// Delete removes the folder and its relationship rows
func (r *folderRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("folder_id = ?", id).Delete(&models.FolderCatalog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Folder{}).Error
	})
	return translateError(err)
}

// AddCatalog inserts one relationship row; re-adding is a no-op
func (r *folderRepo) AddCatalog(ctx context.Context, folderID, catalogID string) error {
	row := &models.FolderCatalog{FolderID: folderID, CatalogID: catalogID}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		translated := translateError(err)
		if errors.Is(translated, domainerrors.ErrConflict) {
			return nil
		}
		return translated
	}
	return nil
}

// RemoveCatalog deletes one relationship row
func (r *folderRepo) RemoveCatalog(ctx context.Context, folderID, catalogID string) error {
	err := r.db.WithContext(ctx).
		Where("folder_id = ? AND catalog_id = ?", folderID, catalogID).
		Delete(&models.FolderCatalog{}).Error
	return translateError(err)
}

// List loads all folders with their catalog ids, newest first
func (r *folderRepo) List(ctx context.Context) ([]*entities.Folder, error) {
	var ms []models.Folder
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}

	out := make([]*entities.Folder, 0, len(ms))
	for i := range ms {
		f := r.toEntity(&ms[i])

		var rows []models.FolderCatalog
		if err := r.db.WithContext(ctx).
			Where("folder_id = ?", f.ID).
			Order("created_at").
			Find(&rows).Error; err != nil {
			return nil, translateError(err)
		}
		for _, row := range rows {
			f.CatalogIDs = append(f.CatalogIDs, row.CatalogID)
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *folderRepo) toModel(f *entities.Folder) *models.Folder {
	return &models.Folder{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description.Ptr(),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (r *folderRepo) toEntity(m *models.Folder) *entities.Folder {
	f := &entities.Folder{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Description != nil {
		f.Description.SetValid(*m.Description)
	}
	return f
}
