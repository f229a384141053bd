package repository

import (
	"context"
	"errors"

	"carspares/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a referenced product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the operations for catalog persistence.
type ProductRepository interface {
	// Create persists a new product; storage assigns the ID.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a single product.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List returns the full catalog, newest first.
	List(ctx context.Context) ([]*entity.Product, error)

	// ListBySeller returns the products listed by one seller, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)

	// ReduceQuantity decrements a product's on-hand quantity by qty as a
	// single atomic write, flooring the result at zero. Reducing by more
	// than the current quantity yields exactly zero, never a negative.
	ReduceQuantity(ctx context.Context, productID uuid.UUID, qty int) error
}
