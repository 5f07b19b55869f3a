package repository

import (
	"context"
	"errors"

	"jacomprei/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByStore retrieves all products that belong to the given store.
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Product, error)

	// FindFeatured retrieves products flagged for the storefront highlights.
	FindFeatured(ctx context.Context) ([]*entity.Product, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product entity in the storage.
	Update(ctx context.Context, product *entity.Product) error
}
