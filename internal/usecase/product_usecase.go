package usecase

import (
	"context"

	"carspares/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput defines the data required to list a new spare part.
type CreateProductInput struct {
	SellerID    uuid.UUID
	Name        string
	Description string
	Price       float64
	Quantity    int
	ImageURL    string
}

// ProductUsecase defines the interface for catalog operations.
type ProductUsecase interface {
	// CreateProduct lists a new spare part under the given seller.
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListProducts returns the full catalog, newest first.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// ListSellerProducts returns one seller's listings, newest first.
	ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)
}
