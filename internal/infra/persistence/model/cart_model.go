package model

import (
	"time"

	"github.com/google/uuid"
)

// CartLineModel mirrors the 'cart_lines' table. A line is a snapshot of the
// product at add-to-cart time, so later catalog edits don't change carts.
type CartLineModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BuyerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null"`
	ProductName  string    `gorm:"type:varchar(255);not null"`
	ProductImage string    `gorm:"type:varchar(512)"`
	SellerID     uuid.UUID `gorm:"type:uuid;not null"`
	SellerName   string    `gorm:"type:varchar(100)"`
	Qty          int       `gorm:"not null"`
	UnitPrice    float64   `gorm:"type:numeric(12,2);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}
