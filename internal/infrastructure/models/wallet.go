package models

import (
	"time"

	"github.com/google/uuid"
)

// Unlinking removes the row outright so the address can be linked again
// without tripping the unique index.
type Wallet struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Address string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	// FetchedNetworks is a comma-joined list; it only grows.
	FetchedNetworks string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Wallet) TableName() string {
	return "wallets"
}
