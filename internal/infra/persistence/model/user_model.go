package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username       string    `gorm:"type:varchar(100);unique;not null"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	Name           string    `gorm:"type:varchar(100);not null"`
	PasswordHash   string    `gorm:"type:text;not null"`
	Role           string    `gorm:"type:varchar(20);not null"`
	Phone          string    `gorm:"type:varchar(30)"`
	Address        string    `gorm:"type:text"`
	AddressDetails string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Stores []StoreModel `gorm:"foreignKey:MerchantID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
