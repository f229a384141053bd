package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. One row per seller slice of a checkout.
type OrderModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BuyerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	BuyerName     string    `gorm:"type:varchar(100)"`
	SellerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerName    string    `gorm:"type:varchar(100)"`
	TotalAmount   float64   `gorm:"type:numeric(12,2);not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod string    `gorm:"type:varchar(20);not null"`
	MpesaCode     string    `gorm:"type:varchar(30)"`
	Address       string    `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Item fields are snapshots
// copied from the cart line at checkout time.
type OrderItemModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
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
func (OrderItemModel) TableName() string {
	return "order_items"
}
