package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table. Prices are stored as numeric
// columns and surfaced as decimals to keep money exact.
type ProductModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	StoreID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name        string           `gorm:"type:varchar(100);not null"`
	Description string           `gorm:"type:text"`
	Price       decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	ImageURL    string           `gorm:"type:text"`
	Category    string           `gorm:"type:varchar(50)"`
	Stock       int              `gorm:"not null;default:0"`
	Rating      *decimal.Decimal `gorm:"type:decimal(3,2)"`
	Featured    bool             `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
