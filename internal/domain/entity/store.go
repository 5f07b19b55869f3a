package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is a storefront owned by exactly one merchant. MerchantID is a
// reference to a User with RoleMerchant; the store never owns the user.
type Store struct {
	ID           uuid.UUID        `json:"id"`
	MerchantID   uuid.UUID        `json:"merchantId"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Category     string           `json:"category"`
	Address      string           `json:"address"`
	Latitude     *decimal.Decimal `json:"latitude,omitempty"`
	Longitude    *decimal.Decimal `json:"longitude,omitempty"`
	LogoURL      string           `json:"logoUrl,omitempty"`
	CoverURL     string           `json:"coverUrl,omitempty"`
	DeliveryTime string           `json:"deliveryTime,omitempty"`
	Rating       *decimal.Decimal `json:"rating,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// Category is a browsing facet for stores and products.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}
