package usecase

import (
	"context"

	"carspares/internal/domain/entity"

	"github.com/google/uuid"
)

// AddCartLineInput defines the data required to add a product to the cart.
// Qty defaults to 1 when zero.
type AddCartLineInput struct {
	BuyerID   uuid.UUID
	ProductID uuid.UUID
	Qty       int
}

// CartOutput returns the cart lines together with the running total.
type CartOutput struct {
	Lines []*entity.CartLine
	Total float64
}

// CartUsecase defines the interface for cart operations.
type CartUsecase interface {
	// AddLine snapshots the product into a new cart line. Adding the same
	// product again creates another line; lines are never merged.
	AddLine(ctx context.Context, input *AddCartLineInput) (*entity.CartLine, error)

	// ListLines returns the buyer's cart in add order with the total.
	ListLines(ctx context.Context, buyerID uuid.UUID) (*CartOutput, error)

	// Clear empties the buyer's cart. Clearing an empty cart succeeds.
	Clear(ctx context.Context, buyerID uuid.UUID) error
}
