package models

import (
	"time"
)

// Catalog deletion is irreversible, so rows are removed outright: a soft
// delete would keep the name occupied in the unique index.
type Catalog struct {
	ID          string `gorm:"type:varchar(64);primaryKey"`
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description *string
	IsSystem    bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Catalog) TableName() string {
	return "catalogs"
}

// CatalogArtifact is one membership row: a catalog referencing an artifact
// by identity tuple. Position preserves the user's insertion order.
type CatalogArtifact struct {
	CatalogID       string `gorm:"type:varchar(64);primaryKey"`
	WalletID        string `gorm:"type:varchar(255);primaryKey"`
	Network         string `gorm:"type:varchar(64);primaryKey"`
	ContractAddress string `gorm:"type:varchar(255);primaryKey"`
	TokenID         string `gorm:"type:text;primaryKey"`
	Position        int    `gorm:"not null;default:0"`
	CreatedAt       time.Time
}

func (CatalogArtifact) TableName() string {
	return "catalog_artifacts"
}
