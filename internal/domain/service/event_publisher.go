package service

import (
	"context"
	"time"
)

// OrderEvent is the payload published when checkout commits an order. It is
// consumed by downstream sinks (seller dashboards, back-office tooling);
// publishing is best-effort and never fails a checkout.
type OrderEvent struct {
	OrderID     string    `json:"order_id"`
	BuyerID     string    `json:"buyer_id"`
	SellerID    string    `json:"seller_id"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	Status      string    `json:"status"`
	PlacedAt    time.Time `json:"placed_at"`
	RequestID   string    `json:"request_id,omitempty"`
}

// EventPublisher defines the interface for publishing order events.
type EventPublisher interface {
	// PublishOrderPlaced publishes a single order-placed event.
	PublishOrderPlaced(ctx context.Context, event *OrderEvent) error

	// Close releases publisher resources.
	Close() error
}
