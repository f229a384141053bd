package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one pending selection in a buyer's cart. Product name, image,
// seller attribution and unit price are snapshots frozen at add time;
// checkout must not re-read the current product price. Adding the same
// product twice yields two separate lines; no merging is performed.
type CartLine struct {
	ID           uuid.UUID // Assigned by storage on creation.
	BuyerID      uuid.UUID // The cart owner.
	ProductID    uuid.UUID
	ProductName  string
	ProductImage string
	SellerID     uuid.UUID
	SellerName   string
	Qty          int     // Positive, defaults to 1.
	UnitPrice    float64 // Price snapshot at add time.
	CreatedAt    time.Time
}

// Subtotal returns the line's contribution to the cart total.
func (l *CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Qty)
}

// CartTotal sums the subtotals of the given lines.
func CartTotal(lines []*CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Subtotal()
	}

	return total
}
