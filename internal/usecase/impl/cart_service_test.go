package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"carspares/internal/domain/entity"
	domainerrors "carspares/internal/domain/errors"
	"carspares/internal/domain/repository"
	mockRepo "carspares/internal/mocks/repository"
	"carspares/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCartService(t *testing.T) (usecase.CartUsecase, *mockRepo.MockCartRepository, *mockRepo.MockProductRepository) {
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Logger:      logger,
	})

	return svc, cartRepo, productRepo
}

func TestCartService_AddLine_SnapshotsProduct(t *testing.T) {
	svc, cartRepo, productRepo := newTestCartService(t)

	ctx := context.Background()
	buyerID := uuid.New()
	product := &entity.Product{
		ID:         uuid.New(),
		SellerID:   uuid.New(),
		SellerName: "Aziz Auto",
		Name:       "Brake pad set",
		Price:      1500,
		Quantity:   4,
		ImageURL:   "https://cdn.example.com/brake-pads.jpg",
	}

	productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	cartRepo.EXPECT().AddLine(ctx, mock.AnythingOfType("*entity.CartLine")).Return(nil)

	line, err := svc.AddLine(ctx, &usecase.AddCartLineInput{
		BuyerID:   buyerID,
		ProductID: product.ID,
		Qty:       2,
	})

	require.NoError(t, err)
	assert.Equal(t, buyerID, line.BuyerID)
	assert.Equal(t, product.ID, line.ProductID)
	assert.Equal(t, product.Name, line.ProductName)
	assert.Equal(t, product.ImageURL, line.ProductImage)
	assert.Equal(t, product.SellerID, line.SellerID)
	assert.Equal(t, product.SellerName, line.SellerName)
	assert.Equal(t, 2, line.Qty)
	assert.InDelta(t, product.Price, line.UnitPrice, 0.001)
}

func TestCartService_AddLine_DefaultsQtyToOne(t *testing.T) {
	svc, cartRepo, productRepo := newTestCartService(t)

	ctx := context.Background()
	product := &entity.Product{ID: uuid.New(), Price: 500}

	productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	cartRepo.EXPECT().AddLine(ctx, mock.AnythingOfType("*entity.CartLine")).Return(nil)

	line, err := svc.AddLine(ctx, &usecase.AddCartLineInput{
		BuyerID:   uuid.New(),
		ProductID: product.ID,
		Qty:       0,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, line.Qty)
}

func TestCartService_AddLine_MissingProduct(t *testing.T) {
	svc, _, productRepo := newTestCartService(t)

	ctx := context.Background()
	productID := uuid.New()

	productRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	line, err := svc.AddLine(ctx, &usecase.AddCartLineInput{
		BuyerID:   uuid.New(),
		ProductID: productID,
		Qty:       1,
	})

	require.Error(t, err)
	assert.Nil(t, line)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrProductNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestCartService_ListLines_ComputesTotal(t *testing.T) {
	svc, cartRepo, _ := newTestCartService(t)

	ctx := context.Background()
	buyerID := uuid.New()
	lines := []*entity.CartLine{
		{BuyerID: buyerID, Qty: 2, UnitPrice: 500},
		{BuyerID: buyerID, Qty: 1, UnitPrice: 1200},
	}

	cartRepo.EXPECT().ListByBuyer(ctx, buyerID).Return(lines, nil)

	out, err := svc.ListLines(ctx, buyerID)

	require.NoError(t, err)
	assert.Len(t, out.Lines, 2)
	assert.InDelta(t, 2200.0, out.Total, 0.001)
}

func TestCartService_ListLines_EmptyCart(t *testing.T) {
	svc, cartRepo, _ := newTestCartService(t)

	ctx := context.Background()
	buyerID := uuid.New()

	cartRepo.EXPECT().ListByBuyer(ctx, buyerID).Return([]*entity.CartLine{}, nil)

	out, err := svc.ListLines(ctx, buyerID)

	require.NoError(t, err)
	assert.Empty(t, out.Lines)
	assert.Zero(t, out.Total)
}

func TestCartService_Clear(t *testing.T) {
	svc, cartRepo, _ := newTestCartService(t)

	ctx := context.Background()
	buyerID := uuid.New()

	cartRepo.EXPECT().Clear(ctx, buyerID).Return(nil)

	require.NoError(t, svc.Clear(ctx, buyerID))
}
