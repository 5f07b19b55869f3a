package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	StoreID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeliveryPersonID *uuid.UUID      `gorm:"type:uuid;index"`
	Status           string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DeliveryFee      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Address          string          `gorm:"type:text;not null"`
	AddressDetails   string          `gorm:"type:text"`
	PaymentMethod    string          `gorm:"type:varchar(30);not null"`
	PaymentDetails   string          `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items   []OrderItemModel          `gorm:"foreignKey:OrderID"`
	History []OrderStatusHistoryModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Price is the unit price
// frozen at checkout time, independent of later catalog changes.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderStatusHistoryModel mirrors the 'order_status_history' table.
type OrderStatusHistoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(20);not null"`
	Timestamp   time.Time `gorm:"not null"`
	Description string    `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (OrderStatusHistoryModel) TableName() string {
	return "order_status_history"
}
