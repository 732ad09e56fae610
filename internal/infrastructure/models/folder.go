package models

import (
	"time"
)

type Folder struct {
	ID          string `gorm:"type:varchar(64);primaryKey"`
	Name        string `gorm:"type:varchar(255);not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Folder) TableName() string {
	return "folders"
}

// FolderCatalog is one row of the folder→catalog relationship table
type FolderCatalog struct {
	FolderID  string `gorm:"type:varchar(64);primaryKey"`
	CatalogID string `gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time
}

func (FolderCatalog) TableName() string {
	return "folder_catalogs"
}
