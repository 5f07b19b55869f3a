package repository

import (
	"context"
	"errors"

	"jacomprei/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartItemNotFound is a domain-specific error returned when a cart item is not found.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository defines the standard operations for cart persistence.
// A cart is the set of cart items owned by one user; it has no identity of its own.
type CartRepository interface {
	// FindByUser retrieves all cart items owned by the given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)

	// FindByID retrieves a single cart item by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error)

	// FindByUserAndProduct retrieves the user's cart item for a product, if any.
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error)

	// Create persists a new cart item to the storage.
	Create(ctx context.Context, item *entity.CartItem) error

	// UpdateQuantity sets the quantity of an existing cart item.
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error

	// Delete removes a single cart item from the storage.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes every cart item owned by the given user.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
