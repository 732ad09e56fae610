package repositories

import (
	"context"

	"github.com/google/uuid"

	"artifact-vault.backend/internal/domain/entities"
)

// WalletRepository mirrors linked wallets
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	Update(ctx context.Context, wallet *entities.Wallet) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*entities.Wallet, error)
}
