package repository

import (
	"context"
	"errors"

	"carspares/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when a referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the operations for order persistence.
type OrderRepository interface {
	// Create persists a new order together with its items as one atomic
	// write; storage assigns the ID.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByBuyer returns the buyer's orders, newest first.
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)

	// ListBySeller returns the seller's incoming orders, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatus writes the order's status field; it does not touch the
	// order's items or totals.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error
}
