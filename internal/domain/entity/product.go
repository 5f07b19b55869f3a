package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product belongs to exactly one store. Price is an exact decimal so money
// never drifts through float arithmetic; Stock is never negative.
type Product struct {
	ID          uuid.UUID        `json:"id"`
	StoreID     uuid.UUID        `json:"storeId"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	Category    string           `json:"category"`
	Stock       int              `json:"stock"`
	Rating      *decimal.Decimal `json:"rating,omitempty"`
	Featured    bool             `json:"featured"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// CartItem is a pending purchase line. At most one cart item exists per
// (user, product) pair; adding the same product again merges quantities.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartLine joins a cart item with its live product for display. The product
// is read live, not frozen, so pre-checkout price changes are visible.
type CartLine struct {
	CartItem
	Product *Product `json:"product"`
}
