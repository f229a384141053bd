package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusProcessing.IsValid())
	assert.True(t, OrderStatusCompleted.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusProcessing.IsTerminal())
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrder_ItemsTotal(t *testing.T) {
	order := &Order{
		Items: []*OrderItem{
			{Qty: 2, UnitPrice: 500},
			{Qty: 1, UnitPrice: 1200},
		},
	}

	assert.InDelta(t, 2200.0, order.ItemsTotal(), 0.001)
}

func TestCartTotal(t *testing.T) {
	lines := []*CartLine{
		{Qty: 3, UnitPrice: 250},
		{Qty: 1, UnitPrice: 700},
	}

	assert.InDelta(t, 1450.0, CartTotal(lines), 0.001)
	assert.Zero(t, CartTotal(nil))
}
