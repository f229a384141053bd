package repository

import (
	"context"

	"carspares/internal/domain/entity"

	"github.com/google/uuid"
)

// CartRepository defines the operations for cart persistence. The cart is
// keyed by buyer ID and survives navigation and process restarts.
type CartRepository interface {
	// AddLine appends a new line to the buyer's cart. Duplicate products are
	// stored as separate lines; no merging happens at this layer.
	AddLine(ctx context.Context, line *entity.CartLine) error

	// ListByBuyer returns the buyer's cart lines in add order. An empty cart
	// yields an empty slice, never an error.
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.CartLine, error)

	// Clear removes all of the buyer's cart lines as a single operation.
	// Clearing an already-empty cart succeeds.
	Clear(ctx context.Context, buyerID uuid.UUID) error
}
