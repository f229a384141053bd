package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"carspares/config"
	"carspares/internal/domain/entity"
	"carspares/internal/domain/repository"
	"carspares/internal/domain/service"
	mockRepo "carspares/internal/mocks/repository"
	mockService "carspares/internal/mocks/service"
	"carspares/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutTestDeps struct {
	txManager   *mockRepo.MockTransactionManager
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
	userRepo    *mockRepo.MockUserRepository
	publisher   *mockService.MockEventPublisher
}

func newTestCheckoutService(t *testing.T) (usecase.CheckoutUsecase, *checkoutTestDeps) {
	deps := &checkoutTestDeps{
		txManager:   mockRepo.NewMockTransactionManager(t),
		cartRepo:    mockRepo.NewMockCartRepository(t),
		productRepo: mockRepo.NewMockProductRepository(t),
		userRepo:    mockRepo.NewMockUserRepository(t),
		publisher:   mockService.NewMockEventPublisher(t),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewCheckoutService(CheckoutServiceParams{
		TxManager:   deps.txManager,
		CartRepo:    deps.cartRepo,
		ProductRepo: deps.productRepo,
		UserRepo:    deps.userRepo,
		Publisher:   deps.publisher,
		Logger:      logger,
	})

	return svc, deps
}

// expectOrderCreation routes every transaction through a factory whose order
// repository is the given mock.
func expectOrderCreation(t *testing.T, txManager *mockRepo.MockTransactionManager, orderRepo *mockRepo.MockOrderRepository) {
	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	mockFactory.EXPECT().OrderRepo().Return(orderRepo)

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(mockFactory)
		})
}

func TestCheckoutService_Checkout_SplitsCartBySeller(t *testing.T) {
	svc, deps := newTestCheckoutService(t)

	ctx := context.Background()
	buyerID := uuid.New()
	sellerA := uuid.New()
	sellerB := uuid.New()

	lines := []*entity.CartLine{
		{BuyerID: buyerID, ProductID: uuid.New(), ProductName: "Brake pad set", SellerID: sellerA, SellerName: "Aziz Auto", Qty: 2, UnitPrice: 500},
		{BuyerID: buyerID, ProductID: uuid.New(), ProductName: "Oil filter", SellerID: sellerB, SellerName: "Mombasa Motors", Qty: 1, UnitPrice: 700},
		{BuyerID: buyerID, ProductID: uuid.New(), ProductName: "Air filter", SellerID: sellerB, SellerName: "Mombasa Motors", Qty: 1, UnitPrice: 500},
	}

	deps.cartRepo.EXPECT().ListByBuyer(ctx, buyerID).Return(lines, nil)
	deps.userRepo.EXPECT().FindByID(ctx, buyerID).Return(&entity.User{ID: buyerID, Name: "Wanjiru"}, nil)
	for _, line := range lines {
		deps.productRepo.EXPECT().ReduceQuantity(ctx, line.ProductID, line.Qty).Return(nil)
	}

	orderRepo := mockRepo.NewMockOrderRepository(t)
	orderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil).Times(2)
	expectOrderCreation(t, deps.txManager, orderRepo)

	deps.cartRepo.EXPECT().Clear(ctx, buyerID).Return(nil).Once()
	deps.publisher.EXPECT().PublishOrderPlaced(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil).Times(2)

	out, err := svc.Checkout(ctx, &usecase.CheckoutInput{BuyerID: buyerID, Address: "Ngong Road, Nairobi"})

	require.NoError(t, err)
	require.Len(t, out.Orders, 2)
	assert.InDelta(t, 2200.0, out.Total, 0.001)

	// Sellers keep the order of their first appearance in the cart.
	first, second := out.Orders[0], out.Orders[1]
	assert.Equal(t, sellerA, first.SellerID)
	assert.Equal(t, sellerB, second.SellerID)

	assert.Len(t, first.Items, 1)
	assert.InDelta(t, 1000.0, first.TotalAmount, 0.001)
	assert.Len(t, second.Items, 2)
	assert.InDelta(t, 1200.0, second.TotalAmount, 0.001)

	for _, order := range out.Orders {
		assert.Equal(t, entity.OrderStatusPending, order.Status)
		assert.Equal(t, entity.PaymentMethodMpesa, order.PaymentMethod)
		assert.Equal(t, "Wanjiru", order.BuyerName)
		assert.Equal(t, "Ngong Road, Nairobi", order.Address)

		// Every item in an order belongs to that order's seller.
		for _, item := range order.Items {
			assert.Equal(t, order.SellerID, item.SellerID)
		}
	}
}

func TestCheckoutService_Checkout_StampsConfiguredPaymentMethod(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	publisher := mockService.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewCheckoutService(CheckoutServiceParams{
		TxManager:   txManager,
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		UserRepo:    userRepo,
		Publisher:   publisher,
		Config:      &config.Config{Payment: &config.PaymentConfig{Method: "AIRTEL_MONEY"}},
		Logger:      logger,
	})

	ctx := context.Background()
	buyerID := uuid.New()

	lines := []*entity.CartLine{
		{BuyerID: buyerID, ProductID: uuid.New(), SellerID: uuid.New(), SellerName: "Aziz Auto", Qty: 1, UnitPrice: 900},
	}

	cartRepo.EXPECT().ListByBuyer(ctx, buyerID).Return(lines, nil)
	userRepo.EXPECT().FindByID(ctx, buyerID).Return(&entity.User{ID: buyerID, Name: "Wanjiru"}, nil)
	productRepo.EXPECT().ReduceQuantity(ctx, lines[0].ProductID, 1).Return(nil)

	orderRepo := mockRepo.NewMockOrderRepository(t)
	orderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil).Once()
	expectOrderCreation(t, txManager, orderRepo)

	cartRepo.EXPECT().Clear(ctx, buyerID).Return(nil).Once()
	publisher.EXPECT().PublishOrderPlaced(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil).Once()

	out, err := svc.Checkout(ctx, &usecase.CheckoutInput{BuyerID: buyerID})

	require.NoError(t, err)
	require.Len(t, out.Orders, 1)
	assert.Equal(t, "AIRTEL_MONEY", out.Orders[0].PaymentMethod)
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	svc, deps := newTestCheckoutService(t)

	ctx := context.Background()
	buyerID := uuid.New()

	deps.cartRepo.EXPECT().ListByBuyer(ctx, buyerID).Return([]*entity.CartLine{}, nil)

	out, err := svc.Checkout(ctx, &usecase.CheckoutInput{BuyerID: buyerID})

	require.NoError(t, err)
	assert.Empty(t, out.Orders)
	assert.Zero(t, out.Total)
}

func TestCheckoutService_Checkout_StockReductionFailureIsSwallowed(t *testing.T) {
	svc, deps := newTestCheckoutService(t)

	ctx := context.Background()
	buyerID := uuid.New()
	sellerID := uuid.New()

	lines := []*entity.CartLine{
		{BuyerID: buyerID, ProductID: uuid.New(), SellerID: sellerID, SellerName: "Aziz Auto", Qty: 3, UnitPrice: 250},
	}

	deps.cartRepo.EXPECT().ListByBuyer(ctx, buyerID).Return(lines, nil)
	deps.userRepo.EXPECT().FindByID(ctx, buyerID).Return(&entity.User{ID: buyerID, Name: "Wanjiru"}, nil)
	deps.productRepo.EXPECT().ReduceQuantity(ctx, lines[0].ProductID, 3).Return(repository.ErrProductNotFound)

	orderRepo := mockRepo.NewMockOrderRepository(t)
	orderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil).Once()
	expectOrderCreation(t, deps.txManager, orderRepo)

	deps.cartRepo.EXPECT().Clear(ctx, buyerID).Return(nil).Once()
	deps.publisher.EXPECT().PublishOrderPlaced(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil).Once()

	out, err := svc.Checkout(ctx, &usecase.CheckoutInput{BuyerID: buyerID})

	require.NoError(t, err)
	require.Len(t, out.Orders, 1)
	assert.InDelta(t, 750.0, out.Total, 0.001)
}

func TestCheckoutService_Checkout_OrderCreateFailureAborts(t *testing.T) {
	svc, deps := newTestCheckoutService(t)

	ctx := context.Background()
	buyerID := uuid.New()

	lines := []*entity.CartLine{
		{BuyerID: buyerID, ProductID: uuid.New(), SellerID: uuid.New(), Qty: 1, UnitPrice: 1000},
		{BuyerID: buyerID, ProductID: uuid.New(), SellerID: uuid.New(), Qty: 1, UnitPrice: 1200},
	}

	deps.cartRepo.EXPECT().ListByBuyer(ctx, buyerID).Return(lines, nil)
	deps.userRepo.EXPECT().FindByID(ctx, buyerID).Return(&entity.User{ID: buyerID}, nil)
	deps.productRepo.EXPECT().ReduceQuantity(ctx, mock.Anything, 1).Return(nil).Times(2)

	orderRepo := mockRepo.NewMockOrderRepository(t)
	orderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil).Once()
	orderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(assert.AnError).Once()
	expectOrderCreation(t, deps.txManager, orderRepo)

	// No cart clear and no events when the sequence aborts.
	out, err := svc.Checkout(ctx, &usecase.CheckoutInput{BuyerID: buyerID})

	require.Error(t, err)
	assert.Nil(t, out)
}

func TestCheckoutService_Checkout_PublishFailureIsSwallowed(t *testing.T) {
	svc, deps := newTestCheckoutService(t)

	ctx := context.Background()
	buyerID := uuid.New()

	lines := []*entity.CartLine{
		{BuyerID: buyerID, ProductID: uuid.New(), SellerID: uuid.New(), Qty: 1, UnitPrice: 300},
	}

	deps.cartRepo.EXPECT().ListByBuyer(ctx, buyerID).Return(lines, nil)
	deps.userRepo.EXPECT().FindByID(ctx, buyerID).Return(&entity.User{ID: buyerID}, nil)
	deps.productRepo.EXPECT().ReduceQuantity(ctx, lines[0].ProductID, 1).Return(nil)

	orderRepo := mockRepo.NewMockOrderRepository(t)
	orderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil).Once()
	expectOrderCreation(t, deps.txManager, orderRepo)

	deps.cartRepo.EXPECT().Clear(ctx, buyerID).Return(nil).Once()
	deps.publisher.EXPECT().
		PublishOrderPlaced(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(assert.AnError)

	out, err := svc.Checkout(ctx, &usecase.CheckoutInput{BuyerID: buyerID})

	require.NoError(t, err)
	assert.Len(t, out.Orders, 1)
}

func TestCheckoutService_Checkout_BuyerLookupFailureDegrades(t *testing.T) {
	svc, deps := newTestCheckoutService(t)

	ctx := context.Background()
	buyerID := uuid.New()

	lines := []*entity.CartLine{
		{BuyerID: buyerID, ProductID: uuid.New(), SellerID: uuid.New(), Qty: 1, UnitPrice: 450},
	}

	deps.cartRepo.EXPECT().ListByBuyer(ctx, buyerID).Return(lines, nil)
	deps.userRepo.EXPECT().FindByID(ctx, buyerID).Return(nil, repository.ErrUserNotFound)
	deps.productRepo.EXPECT().ReduceQuantity(ctx, lines[0].ProductID, 1).Return(nil)

	orderRepo := mockRepo.NewMockOrderRepository(t)
	orderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil).Once()
	expectOrderCreation(t, deps.txManager, orderRepo)

	deps.cartRepo.EXPECT().Clear(ctx, buyerID).Return(nil).Once()

	var published *service.OrderEvent
	deps.publisher.EXPECT().
		PublishOrderPlaced(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Run(func(_ context.Context, event *service.OrderEvent) {
			published = event
		}).
		Return(nil)

	out, err := svc.Checkout(ctx, &usecase.CheckoutInput{BuyerID: buyerID})

	require.NoError(t, err)
	require.Len(t, out.Orders, 1)
	assert.Empty(t, out.Orders[0].BuyerName)
	require.NotNil(t, published)
	assert.Equal(t, buyerID.String(), published.BuyerID)
}
