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

// catalogRepo implements repositories.CatalogRepository over the mirror DB
type catalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) repositories.CatalogRepository {
	return &catalogRepo{db: db}
}

// Create inserts a catalog row
func (r *catalogRepo) Create(ctx context.Context, catalog *entities.Catalog) error {
	m := r.toModel(catalog)
	return translateError(r.db.WithContext(ctx).Create(m).Error)
}

// Update saves name and description changes
func (r *catalogRepo) Update(ctx context.Context, catalog *entities.Catalog) error {
	res := r.db.WithContext(ctx).Model(&models.Catalog{}).
		Where("id = ?", catalog.ID).
		Updates(map[string]interface{}{
			"name":        catalog.Name,
			"description": catalog.Description.Ptr(),
			"updated_at":  catalog.UpdatedAt,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes the catalog, its membership rows and its folder
// assignments in one transaction.
func (r *catalogRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalog_id = ?", id).Delete(&models.CatalogArtifact{}).Error; err != nil {
			return err
		}
		if err := tx.Where("catalog_id = ?", id).Delete(&models.FolderCatalog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Catalog{}).Error
	})
	return translateError(err)
}

// AddArtifact appends one membership row; re-adding is a no-op
func (r *catalogRepo) AddArtifact(ctx context.Context, catalogID string, artifactID entities.ArtifactID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CatalogArtifact{}).
		Where("catalog_id = ?", catalogID).
		Count(&count).Error; err != nil {
		return translateError(err)
	}

	row := &models.CatalogArtifact{
		CatalogID:       catalogID,
		WalletID:        artifactID.WalletID,
		Network:         artifactID.Network,
		ContractAddress: artifactID.ContractAddress,
		TokenID:         artifactID.TokenID,
		Position:        int(count),
	}
	err := r.db.WithContext(ctx).Create(row).Error
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, domainerrors.ErrConflict) {
			return nil
		}
		return translated
	}
	return nil
}

// RemoveArtifact deletes one membership row; removing a non-member is a
// no-op.
func (r *catalogRepo) RemoveArtifact(ctx context.Context, catalogID string, artifactID entities.ArtifactID) error {
	err := r.db.WithContext(ctx).
		Where("catalog_id = ? AND wallet_id = ? AND network = ? AND contract_address = ? AND token_id = ?",
			catalogID, artifactID.WalletID, artifactID.Network, artifactID.ContractAddress, artifactID.TokenID).
		Delete(&models.CatalogArtifact{}).Error
	return translateError(err)
}

// List loads all catalogs with their membership, newest first
func (r *catalogRepo) List(ctx context.Context) ([]*entities.Catalog, error) {
	var ms []models.Catalog
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}

	out := make([]*entities.Catalog, 0, len(ms))
	for i := range ms {
		c := r.toEntity(&ms[i])

		var rows []models.CatalogArtifact
		if err := r.db.WithContext(ctx).
			Where("catalog_id = ?", c.ID).
			Order("position").
			Find(&rows).Error; err != nil {
			return nil, translateError(err)
		}
		for _, row := range rows {
			c.Members = append(c.Members, entities.ArtifactID{
				WalletID:        row.WalletID,
				Network:         row.Network,
				ContractAddress: row.ContractAddress,
				TokenID:         row.TokenID,
			})
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *catalogRepo) toModel(c *entities.Catalog) *models.Catalog {
	return &models.Catalog{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description.Ptr(),
		IsSystem:    c.IsSystem,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *catalogRepo) toEntity(m *models.Catalog) *entities.Catalog {
	c := &entities.Catalog{
		ID:        m.ID,
		Name:      m.Name,
		IsSystem:  m.IsSystem,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Description != nil {
		c.Description.SetValid(*m.Description)
	}
	return c
}
