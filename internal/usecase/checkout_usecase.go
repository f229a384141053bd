package usecase

import (
	"context"

	"carspares/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutInput defines the data required to place orders from the cart.
type CheckoutInput struct {
	BuyerID uuid.UUID
	Address string
}

// CheckoutOutput reports the orders created by one checkout, in the order
// their sellers first appear in the cart, plus the combined total.
type CheckoutOutput struct {
	Orders []*entity.Order
	Total  float64
}

// CheckoutUsecase turns the buyer's cart into per-seller orders.
type CheckoutUsecase interface {
	// Checkout reduces stock for every cart line, splits the cart by seller
	// into one pending order each, clears the cart, and reports the combined
	// total. An empty cart produces zero orders and a zero total.
	Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutOutput, error)
}
