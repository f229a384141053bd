package usecase

import (
	"context"

	"carspares/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateOrderStatusInput defines the data required to move an order's status.
type UpdateOrderStatusInput struct {
	SellerID uuid.UUID
	OrderID  uuid.UUID
	Status   string
}

// SellerDashboardOutput aggregates a seller's order book for the dashboard.
type SellerDashboardOutput struct {
	TotalRevenue   float64
	OrderCount     int
	PendingCount   int
	CompletedCount int
	RecentOrders   []*entity.Order
}

// OrderUsecase defines the interface for order lifecycle operations.
type OrderUsecase interface {
	// GetOrder retrieves a single order with its items.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// ListBuyerOrders returns the buyer's order history, newest first.
	ListBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)

	// ListSellerOrders returns the seller's incoming orders, newest first.
	ListSellerOrders(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatus moves an order to a new status on behalf of its seller.
	UpdateStatus(ctx context.Context, input *UpdateOrderStatusInput) error

	// SellerDashboard aggregates revenue and order counts for one seller.
	SellerDashboard(ctx context.Context, sellerID uuid.UUID) (*SellerDashboardOutput, error)
}
