package repositories

import (
	"context"
	"encoding/json"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/domain/repositories"
	"artifact-vault.backend/internal/infrastructure/models"
)

// artifactRepo implements repositories.ArtifactRepository over the mirror DB
type artifactRepo struct {
	db *gorm.DB
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(db *gorm.DB) repositories.ArtifactRepository {
	return &artifactRepo{db: db}
}

var artifactKeyColumns = []clause.Column{
	{Name: "wallet_id"},
	{Name: "network"},
	{Name: "contract_address"},
	{Name: "token_id"},
}

// Upsert inserts or updates one artifact row by identity tuple
func (r *artifactRepo) Upsert(ctx context.Context, artifact *entities.Artifact) error {
	m := r.toModel(artifact)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   artifactKeyColumns,
		UpdateAll: true,
	}).Create(m).Error
	return translateError(err)
}

// UpsertBatch inserts or updates a fetched batch in one statement
func (r *artifactRepo) UpsertBatch(ctx context.Context, artifacts []*entities.Artifact) error {
	if len(artifacts) == 0 {
		return nil
	}
	ms := make([]*models.Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		ms = append(ms, r.toModel(a))
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   artifactKeyColumns,
		UpdateAll: true,
	}).Create(ms).Error
	return translateError(err)
}

// Delete removes one artifact row by identity tuple
func (r *artifactRepo) Delete(ctx context.Context, id entities.ArtifactID) error {
	err := r.db.WithContext(ctx).
		Where("wallet_id = ? AND network = ? AND contract_address = ? AND token_id = ?",
			id.WalletID, id.Network, id.ContractAddress, id.TokenID).
		Delete(&models.Artifact{}).Error
	return translateError(err)
}

// DeleteByWallet removes every artifact row of an unlinked wallet
func (r *artifactRepo) DeleteByWallet(ctx context.Context, walletID string) error {
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Delete(&models.Artifact{}).Error
	return translateError(err)
}

// SetSpam updates the spam flag and the derived organized flag
func (r *artifactRepo) SetSpam(ctx context.Context, id entities.ArtifactID, isSpam bool) error {
	updates := map[string]interface{}{"is_spam": isSpam}
	if isSpam {
		updates["is_in_catalog"] = true
	}
	res := r.db.WithContext(ctx).Model(&models.Artifact{}).
		Where("wallet_id = ? AND network = ? AND contract_address = ? AND token_id = ?",
			id.WalletID, id.Network, id.ContractAddress, id.TokenID).
		Updates(updates)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// ListByWallet loads every mirrored artifact of a wallet
func (r *artifactRepo) ListByWallet(ctx context.Context, walletID string) ([]*entities.Artifact, error) {
	var ms []models.Artifact
	if err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("network, created_at").
		Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}

	out := make([]*entities.Artifact, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

func (r *artifactRepo) toModel(a *entities.Artifact) *models.Artifact {
	m := &models.Artifact{
		WalletID:        a.ID.WalletID,
		Network:         a.ID.Network,
		ContractAddress: a.ID.ContractAddress,
		TokenID:         a.ID.TokenID,
		TokenStandard:   string(a.TokenStandard),
		Title:           a.Title,
		Description:     a.Description,
		MediaURL:        a.Media.PrimaryURL,
		MediaType:       string(a.Media.Type),
		CoverImage:      a.Media.CoverImage,
		Balance:         a.Balance,
		IsSpam:          a.IsSpam,
		IsInCatalog:     a.IsInCatalog,
		RawMetadata:     string(a.RawMetadata),
	}
	if a.Creator.Valid {
		m.Creator = &a.Creator.String
	}
	if a.ContractName.Valid {
		m.ContractName = &a.ContractName.String
	}
	if len(a.Media.Auxiliary) > 0 {
		if aux, err := json.Marshal(a.Media.Auxiliary); err == nil {
			m.MediaAuxiliary = string(aux)
		}
	}
	return m
}

func (r *artifactRepo) toEntity(m *models.Artifact) *entities.Artifact {
	a := &entities.Artifact{
		ID: entities.ArtifactID{
			WalletID:        m.WalletID,
			Network:         m.Network,
			ContractAddress: m.ContractAddress,
			TokenID:         m.TokenID,
		},
		TokenStandard: entities.TokenStandard(m.TokenStandard),
		Title:         m.Title,
		Description:   m.Description,
		Media: entities.Media{
			PrimaryURL: m.MediaURL,
			Type:       entities.MediaType(m.MediaType),
			CoverImage: m.CoverImage,
		},
		Balance:     m.Balance,
		IsSpam:      m.IsSpam,
		IsInCatalog: m.IsInCatalog,
	}
	if m.Creator != nil {
		a.Creator = null.StringFromPtr(m.Creator)
	}
	if m.ContractName != nil {
		a.ContractName = null.StringFromPtr(m.ContractName)
	}
	if m.RawMetadata != "" {
		a.RawMetadata = json.RawMessage(m.RawMetadata)
	}
	if m.MediaAuxiliary != "" {
		var aux map[string]string
		if err := json.Unmarshal([]byte(m.MediaAuxiliary), &aux); err == nil {
			a.Media.Auxiliary = aux
		}
	}
	return a
}
