package usecase

import (
	"context"

	"github.com/google/uuid"

	"jacomprei/internal/domain/entity"
)

// CatalogUsecase defines the read-side browsing operations available to any
// authenticated user: stores, categories and products.
type CatalogUsecase interface {
	ListStores(ctx context.Context, category string) ([]*entity.Store, error)
	GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	ListProducts(ctx context.Context, storeID uuid.UUID) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListFeaturedProducts(ctx context.Context) ([]*entity.Product, error)

	// StoreQRCode renders a PNG QR code that links to the store page.
	StoreQRCode(ctx context.Context, id uuid.UUID) ([]byte, error)
}
