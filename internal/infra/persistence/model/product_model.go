package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. One row per spare part listing.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerName  string    `gorm:"type:varchar(100)"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:numeric(12,2);not null"`
	Quantity    int       `gorm:"not null;default:0"`
	ImageURL    string    `gorm:"type:varchar(512)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
