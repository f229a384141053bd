package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable car spare part listed by a seller.
// Quantity is only ever mutated by checkout stock reduction and is floored
// at zero; products are never deleted.
type Product struct {
	ID          uuid.UUID // Assigned by storage on creation.
	SellerID    uuid.UUID // The account that listed this part.
	SellerName  string    // Seller display name, denormalized for catalog listings.
	Name        string    // Part name, e.g. "Brake pad set".
	Description string
	Price       float64 // Unit price in KES, non-negative.
	Quantity    int     // Units on hand, never negative.
	ImageURL    string  // Reference to the uploaded product image.
	CreatedAt   time.Time
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}
