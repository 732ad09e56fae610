package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"artifact-vault.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	walletHandler   *handlers.WalletHandler
	artifactHandler *handlers.ArtifactHandler
	catalogHandler  *handlers.CatalogHandler
	folderHandler   *handlers.FolderHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		wallets := v1.Group("/wallets")
		{
			wallets.POST("", d.walletHandler.LinkWallet)
			wallets.GET("", d.walletHandler.ListWallets)
			wallets.DELETE("/:address", d.walletHandler.UnlinkWallet)
			wallets.POST("/:address/scan", d.walletHandler.ScanWallet)
			wallets.GET("/:address/artifacts", d.artifactHandler.ListByWallet)
			wallets.GET("/:address/delegations", d.artifactHandler.ListDelegations)
		}

		artifacts := v1.Group("/artifacts")
		{
			artifacts.GET("/counts", d.artifactHandler.Counts)
			artifacts.GET("/search", d.artifactHandler.Search)
			artifacts.PUT("/spam", d.artifactHandler.SetSpam)
		}

		catalogs := v1.Group("/catalogs")
		{
			catalogs.POST("", d.catalogHandler.CreateCatalog)
			catalogs.GET("", d.catalogHandler.ListCatalogs)
			catalogs.GET("/:id", d.catalogHandler.GetCatalog)
			catalogs.PUT("/:id", d.catalogHandler.UpdateCatalog)
			catalogs.DELETE("/:id", d.catalogHandler.DeleteCatalog)
			catalogs.GET("/:id/artifacts", d.catalogHandler.GetCatalogArtifacts)
			catalogs.POST("/:id/artifacts", d.catalogHandler.AddArtifact)
			catalogs.DELETE("/:id/artifacts", d.catalogHandler.RemoveArtifact)
			catalogs.GET("/:id/folders", d.catalogHandler.FoldersContaining)
			catalogs.PUT("/:id/folders", d.catalogHandler.MoveCatalog)
		}

		folders := v1.Group("/folders")
		{
			folders.POST("", d.folderHandler.CreateFolder)
			folders.GET("", d.folderHandler.ListFolders)
			folders.GET("/:id", d.folderHandler.GetFolder)
			folders.PUT("/:id", d.folderHandler.UpdateFolder)
			folders.DELETE("/:id", d.folderHandler.DeleteFolder)
			folders.PUT("/:id/catalogs/:catalogId", d.folderHandler.AddCatalog)
			folders.DELETE("/:id/catalogs/:catalogId", d.folderHandler.RemoveCatalog)
		}
	}
}
