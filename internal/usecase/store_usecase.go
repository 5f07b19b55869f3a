package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jacomprei/internal/domain/entity"
)

// --- Input DTOs ---

// CreateStoreInput defines the data required to open a new store.
type CreateStoreInput struct {
	Name         string
	Description  string
	Category     string
	Address      string
	Latitude     *decimal.Decimal
	Longitude    *decimal.Decimal
	LogoURL      string
	CoverURL     string
	DeliveryTime string
	Tags         []string
}

// UpdateStoreInput defines the mutable store fields. Nil means unchanged.
type UpdateStoreInput struct {
	Name         *string
	Description  *string
	Category     *string
	Address      *string
	Latitude     *decimal.Decimal
	Longitude    *decimal.Decimal
	LogoURL      *string
	CoverURL     *string
	DeliveryTime *string
	Tags         []string
}

// CreateProductInput defines the data required to list a new product.
type CreateProductInput struct {
	StoreID     uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Stock       int
	Featured    bool
}

// UpdateProductInput defines the mutable product fields. Nil means unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Category    *string
	Stock       *int
	Featured    *bool
}

// StoreUsecase defines the merchant-side management operations.
// All operations verify that the acting merchant owns the touched store.
type StoreUsecase interface {
	CreateStore(ctx context.Context, merchantID uuid.UUID, input CreateStoreInput) (*entity.Store, error)
	UpdateStore(ctx context.Context, merchantID, storeID uuid.UUID, input UpdateStoreInput) (*entity.Store, error)
	MyStores(ctx context.Context, merchantID uuid.UUID) ([]*entity.Store, error)
	CreateProduct(ctx context.Context, merchantID uuid.UUID, input CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, merchantID, productID uuid.UUID, input UpdateProductInput) (*entity.Product, error)
}
