package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StoreModel mirrors the 'stores' table.
type StoreModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	MerchantID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name         string           `gorm:"type:varchar(100);not null"`
	Description  string           `gorm:"type:text"`
	Category     string           `gorm:"type:varchar(50);index"`
	Address      string           `gorm:"type:text"`
	Latitude     *decimal.Decimal `gorm:"type:decimal(10,8)"`
	Longitude    *decimal.Decimal `gorm:"type:decimal(11,8)"`
	LogoURL      string           `gorm:"type:text"`
	CoverURL     string           `gorm:"type:text"`
	DeliveryTime string           `gorm:"type:varchar(30)"`
	Rating       *decimal.Decimal `gorm:"type:decimal(3,2)"`
	Tags         []string         `gorm:"serializer:json;type:jsonb"`
	CreatedAt    time.Time

	Products []ProductModel `gorm:"foreignKey:StoreID"`
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(50);unique;not null"`
	Icon      string    `gorm:"type:varchar(50)"`
	Color     string    `gorm:"type:varchar(30)"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}
