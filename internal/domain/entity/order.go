package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethodMpesa is the mobile-money payment label used throughout the
// marketplace; there is no other payment method.
const PaymentMethodMpesa = "MPESA"

// OrderStatus is the seller-facing lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending is the initial status of every order created by checkout.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing means the seller has accepted the order.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusCompleted is terminal: the order was fulfilled.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled is terminal: the order was abandoned.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition leaves this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the move from s to next follows the
// seller lifecycle: pending -> processing -> completed, with cancelled
// reachable from either non-terminal state. Enforcement is a configurable
// policy; by default illegal transitions are written as requested.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		return false
	}
}

// OrderItem is a CartLine-shaped snapshot frozen into an order at checkout.
type OrderItem struct {
	ProductID    uuid.UUID
	ProductName  string
	ProductImage string
	SellerID     uuid.UUID
	SellerName   string
	Qty          int
	UnitPrice    float64
}

// Subtotal returns the item's contribution to the order total.
func (i *OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Qty)
}

// Order is a confirmed purchase scoped to exactly one seller. Its total
// always equals the sum of item subtotals at creation time, and it is
// persisted as a single storage write (order plus items).
type Order struct {
	ID            uuid.UUID // Assigned by storage on creation.
	BuyerID       uuid.UUID
	BuyerName     string
	SellerID      uuid.UUID
	SellerName    string
	Items         []*OrderItem
	TotalAmount   float64
	Status        OrderStatus
	PaymentMethod string // PaymentMethodMpesa unless overridden in config.
	MpesaCode     string // Buyer-supplied payment confirmation code.
	Address       string // Delivery address.
	CreatedAt     time.Time
}

// ItemsTotal recomputes the sum of item subtotals.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Subtotal()
	}

	return total
}
