package repository

import (
	"context"
	"errors"

	"jacomprei/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is a domain-specific error returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// StoreRepository defines the standard operations for store persistence.
type StoreRepository interface {
	// FindByID retrieves a single store by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// FindAll retrieves every store, optionally filtered by category name.
	FindAll(ctx context.Context, category string) ([]*entity.Store, error)

	// FindByMerchant retrieves all stores owned by the given merchant.
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.Store, error)

	// Create persists a new store entity to the storage.
	Create(ctx context.Context, store *entity.Store) error

	// Update modifies an existing store entity in the storage.
	Update(ctx context.Context, store *entity.Store) error
}

// CategoryRepository defines the operations for browsing categories.
type CategoryRepository interface {
	// FindAll retrieves every category.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// Create persists a new category entity to the storage.
	Create(ctx context.Context, category *entity.Category) error
}
