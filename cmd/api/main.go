// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"cashback-optimizer/internal/catalog"
	"cashback-optimizer/internal/config"
	"cashback-optimizer/internal/handler"
	"cashback-optimizer/internal/storage"
	"cashback-optimizer/internal/storage/postgres"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	cat, err := loadCatalog(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to load catalog", "source", cfg.CatalogSource, "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog loaded",
		"source", cfg.CatalogSource,
		"cards", len(cat.Cards()),
		"categories", len(cat.Categories()),
	)

	optimizeHandler := handler.NewOptimizeHandler(cat)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/cards", optimizeHandler.GetCards)
		v1.GET("/categories", optimizeHandler.GetCategories)
		v1.POST("/optimize", optimizeHandler.Optimize)
	}

	slog.Info("Server started", "port", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

// loadCatalog builds the catalog from the configured source. The catalog
// is read once here; for the postgres source the pool is closed as soon as
// the load finishes.
func loadCatalog(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.SourceBuiltin:
		return catalog.Builtin(), nil

	case config.SourceFile:
		return catalog.LoadFile(cfg.CatalogFile)

	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.DBConn)
		if err != nil {
			return nil, fmt.Errorf("connect to db: %w", err)
		}
		defer pool.Close()

		backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
		if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := pool.Ping(ctx); err != nil {
				slog.Warn("DB ping failed, retrying", "error", err)
				return retry.RetryableError(err)
			}
			return nil
		}); err != nil {
			return nil, fmt.Errorf("ping db: %w", err)
		}

		var store storage.CatalogStorage = postgres.NewStorage(pool)
		categories, err := store.LoadCategories(ctx)
		if err != nil {
			return nil, err
		}
		cards, err := store.LoadCards(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.New(categories, cards)

	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}
