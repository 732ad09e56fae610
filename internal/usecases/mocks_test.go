package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"artifact-vault.backend/internal/domain/entities"
)

// Mock ArtifactRepository
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) Upsert(ctx context.Context, artifact *entities.Artifact) error {
	args := m.Called(ctx, artifact)
	return args.Error(0)
}

func (m *MockArtifactRepository) UpsertBatch(ctx context.Context, artifacts []*entities.Artifact) error {
	args := m.Called(ctx, artifacts)
	return args.Error(0)
}

func (m *MockArtifactRepository) Delete(ctx context.Context, id entities.ArtifactID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArtifactRepository) DeleteByWallet(ctx context.Context, walletID string) error {
	args := m.Called(ctx, walletID)
	return args.Error(0)
}

func (m *MockArtifactRepository) SetSpam(ctx context.Context, id entities.ArtifactID, isSpam bool) error {
	args := m.Called(ctx, id, isSpam)
	return args.Error(0)
}

func (m *MockArtifactRepository) ListByWallet(ctx context.Context, walletID string) ([]*entities.Artifact, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Artifact), args.Error(1)
}

// Mock CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Create(ctx context.Context, catalog *entities.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

func (m *MockCatalogRepository) Update(ctx context.Context, catalog *entities.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

func (m *MockCatalogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) AddArtifact(ctx context.Context, catalogID string, artifactID entities.ArtifactID) error {
	args := m.Called(ctx, catalogID, artifactID)
	return args.Error(0)
}

func (m *MockCatalogRepository) RemoveArtifact(ctx context.Context, catalogID string, artifactID entities.ArtifactID) error {
	args := m.Called(ctx, catalogID, artifactID)
	return args.Error(0)
}

func (m *MockCatalogRepository) List(ctx context.Context) ([]*entities.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Catalog), args.Error(1)
}

// Mock FolderRepository
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) Create(ctx context.Context, folder *entities.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderRepository) Update(ctx context.Context, folder *entities.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFolderRepository) AddCatalog(ctx context.Context, folderID, catalogID string) error {
	args := m.Called(ctx, folderID, catalogID)
	return args.Error(0)
}

func (m *MockFolderRepository) RemoveCatalog(ctx context.Context, folderID, catalogID string) error {
	args := m.Called(ctx, folderID, catalogID)
	return args.Error(0)
}

func (m *MockFolderRepository) List(ctx context.Context) ([]*entities.Folder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Folder), args.Error(1)
}

// Mock WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) Update(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWalletRepository) List(ctx context.Context) ([]*entities.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wallet), args.Error(1)
}

// Mock ChainDataProvider
type MockChainDataProvider struct {
	mock.Mock
}

func (m *MockChainDataProvider) FetchArtifactsForWallet(ctx context.Context, address, network string) ([]entities.RawToken, error) {
	args := m.Called(ctx, address, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.RawToken), args.Error(1)
}

// Mock DelegationRegistry
type MockDelegationRegistry struct {
	mock.Mock
}

func (m *MockDelegationRegistry) ResolveDelegations(ctx context.Context, address string, page, pageSize int) ([]entities.Delegation, error) {
	args := m.Called(ctx, address, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Delegation), args.Error(1)
}
