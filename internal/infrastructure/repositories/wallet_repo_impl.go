package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/domain/repositories"
	"artifact-vault.backend/internal/infrastructure/models"
)

// walletRepo implements repositories.WalletRepository over the mirror DB
type walletRepo struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) repositories.WalletRepository {
	return &walletRepo{db: db}
}

// Create inserts a wallet row
func (r *walletRepo) Create(ctx context.Context, wallet *entities.Wallet) error {
	return translateError(r.db.WithContext(ctx).Create(r.toModel(wallet)).Error)
}

// Update saves the wallet's fetched-network set
func (r *walletRepo) Update(ctx context.Context, wallet *entities.Wallet) error {
	err := r.db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", wallet.ID).
		Updates(map[string]interface{}{
			"fetched_networks": strings.Join(wallet.FetchedNetworks, ","),
			"updated_at":       wallet.UpdatedAt,
		}).Error
	return translateError(err)
}

// Delete removes the wallet row, freeing the address for re-linking
func (r *walletRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Wallet{}).Error)
}

// List loads all mirrored wallets
func (r *walletRepo) List(ctx context.Context) ([]*entities.Wallet, error) {
	var ms []models.Wallet
	if err := r.db.WithContext(ctx).Order("created_at").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}

	out := make([]*entities.Wallet, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

func (r *walletRepo) toModel(w *entities.Wallet) *models.Wallet {
	return &models.Wallet{
		ID:              w.ID,
		Address:         w.Address,
		FetchedNetworks: strings.Join(w.FetchedNetworks, ","),
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

func (r *walletRepo) toEntity(m *models.Wallet) *entities.Wallet {
	w := &entities.Wallet{
		ID:        m.ID,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.FetchedNetworks != "" {
		w.FetchedNetworks = strings.Split(m.FetchedNetworks, ",")
	}
	return w
}
