// internal/storage/storage.go
package storage

import (
	"context"

	"cashback-optimizer/internal/domain"
)

// CatalogStorage loads card and category reference data at process start.
// Implementations are read-only; the catalog never changes at runtime.
type CatalogStorage interface {
	LoadCategories(ctx context.Context) ([]domain.Category, error)
	LoadCards(ctx context.Context) ([]domain.Card, error)
}
