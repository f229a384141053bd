package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_FindByID_PreloadsItemsInInsertionOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	orderID := uuid.New()
	buyerID := uuid.New()
	sellerID := uuid.New()
	firstItemID := uuid.New()
	secondItemID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "buyer_id", "seller_id", "status", "total_amount"}).
			AddRow(orderID.String(), buyerID.String(), sellerID.String(), "pending", 2200.0))

	// Items must come back ordered by insertion time, matching the sequence
	// the cart lines were added in.
	mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE .* ORDER BY created_at ASC`).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "seller_id", "qty", "unit_price"}).
			AddRow(firstItemID.String(), orderID.String(), uuid.New().String(), "Brake pad set", sellerID.String(), 2, 500.0).
			AddRow(secondItemID.String(), orderID.String(), uuid.New().String(), "Oil filter", sellerID.String(), 1, 1200.0))

	order, err := repo.FindByID(context.Background(), orderID)

	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Brake pad set", order.Items[0].ProductName)
	assert.Equal(t, "Oil filter", order.Items[1].ProductName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
