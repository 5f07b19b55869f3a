package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jacomprei/internal/domain/entity"
)

// CartOutput is the cart with product details and the running subtotal.
type CartOutput struct {
	Items    []*entity.CartLine
	Subtotal decimal.Decimal
}

// CartUsecase defines the consumer cart operations. Quantities are absolute
// on update; adding an existing product merges into the current line.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartOutput, error)

	// AddItem puts quantity of a product into the cart, merging with an
	// existing line for the same product.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.CartItem, error)

	// UpdateItem sets the line's quantity; zero or less removes the line.
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*entity.CartItem, error)

	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
