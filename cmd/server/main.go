package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"artifact-vault.backend/internal/config"
	"artifact-vault.backend/internal/infrastructure/chaindata"
	"artifact-vault.backend/internal/infrastructure/repositories"
	"artifact-vault.backend/internal/interfaces/http/handlers"
	"artifact-vault.backend/internal/interfaces/http/middleware"
	"artifact-vault.backend/internal/usecases"
	"artifact-vault.backend/pkg/logger"
	"artifact-vault.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// The redis cache only serves delegation lookups; the library works
	// without it.
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, delegation cache disabled", zap.Error(err))
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	lib := usecases.NewLibrary()

	// The mirror is optional at boot: with no database the service runs
	// cache-only and mutations simply stay local.
	var syncer *usecases.Syncer
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		logger.Warn(context.Background(), "mirror database unavailable, running cache-only", zap.Error(err))
	} else {
		artifactRepo := repositories.NewArtifactRepository(db)
		catalogRepo := repositories.NewCatalogRepository(db)
		folderRepo := repositories.NewFolderRepository(db)
		walletRepo := repositories.NewWalletRepository(db)

		if err := usecases.HydrateFromMirror(context.Background(), lib,
			walletRepo, artifactRepo, catalogRepo, folderRepo); err != nil {
			logger.Warn(context.Background(), "hydrate from mirror failed, starting empty", zap.Error(err))
		}

		syncer = usecases.NewSyncer(artifactRepo, catalogRepo, folderRepo, walletRepo)
		syncer.Start()
		defer syncer.Stop()
	}

	provider := chaindata.NewProviderClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Timeout)
	delegationClient := chaindata.NewDelegationClient(cfg.Delegation.BaseURL, cfg.Delegation.Timeout)
	delegations := chaindata.NewCachedDelegationRegistry(delegationClient, cfg.Delegation.CacheTTL)

	store := usecases.NewArtifactStore(lib, syncer)
	catalogEngine := usecases.NewCatalogEngine(lib, syncer)
	folderEngine := usecases.NewFolderEngine(lib, syncer)
	walletUsecase := usecases.NewWalletUsecase(lib, syncer)
	ingest := usecases.NewIngestUsecase(store, walletUsecase, provider)
	aggregator := usecases.NewAggregator(lib, delegations)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerAPIV1Routes(r, routeDeps{
		walletHandler:   handlers.NewWalletHandler(walletUsecase, ingest, cfg.Provider.Networks),
		artifactHandler: handlers.NewArtifactHandler(store, aggregator),
		catalogHandler:  handlers.NewCatalogHandler(catalogEngine, folderEngine),
		folderHandler:   handlers.NewFolderHandler(folderEngine),
	})

	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
