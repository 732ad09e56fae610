package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL UNIQUE,
		fetched_networks TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createArtifactTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE artifacts (
		wallet_id TEXT NOT NULL,
		network TEXT NOT NULL,
		contract_address TEXT NOT NULL,
		token_id TEXT NOT NULL,
		token_standard TEXT NOT NULL,
		title TEXT,
		description TEXT,
		media_url TEXT,
		media_type TEXT,
		cover_image TEXT,
		media_auxiliary TEXT,
		balance INTEGER NOT NULL DEFAULT 1,
		is_spam BOOLEAN NOT NULL DEFAULT FALSE,
		is_in_catalog BOOLEAN NOT NULL DEFAULT FALSE,
		creator TEXT,
		contract_name TEXT,
		raw_metadata TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		PRIMARY KEY (wallet_id, network, contract_address, token_id)
	);`)
}

func createCatalogTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE catalogs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		is_system BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE catalog_artifacts (
		catalog_id TEXT NOT NULL REFERENCES catalogs(id),
		wallet_id TEXT NOT NULL,
		network TEXT NOT NULL,
		contract_address TEXT NOT NULL,
		token_id TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		PRIMARY KEY (catalog_id, wallet_id, network, contract_address, token_id)
	);`)
}

func createFolderTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE folders (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE folder_catalogs (
		folder_id TEXT NOT NULL,
		catalog_id TEXT NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (folder_id, catalog_id)
	);`)
}

func enableForeignKeys(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `PRAGMA foreign_keys = ON;`)
}
