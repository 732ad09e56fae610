package models

import (
	"time"
)

// Artifact mirrors one library artifact, keyed by the identity tuple
type Artifact struct {
	WalletID        string `gorm:"type:varchar(255);primaryKey"`
	Network         string `gorm:"type:varchar(64);primaryKey"`
	ContractAddress string `gorm:"type:varchar(255);primaryKey"`
	TokenID         string `gorm:"type:text;primaryKey"`
	TokenStandard   string `gorm:"type:varchar(16);not null"`
	Title           string `gorm:"type:text"`
	Description     string `gorm:"type:text"`
	MediaURL        string `gorm:"type:text"`
	MediaType       string `gorm:"type:varchar(16)"`
	CoverImage      string `gorm:"type:text"`
	// MediaAuxiliary holds the auxiliary reference map as JSON
	MediaAuxiliary string `gorm:"type:text"`
	Balance         int    `gorm:"not null;default:1"`
	IsSpam          bool   `gorm:"not null;default:false;index"`
	IsInCatalog     bool   `gorm:"not null;default:false"`
	Creator         *string
	ContractName    *string
	RawMetadata     string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Artifact) TableName() string {
	return "artifacts"
}
