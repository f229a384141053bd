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

func newTestProductService(t *testing.T) (usecase.ProductUsecase, *mockRepo.MockProductRepository, *mockRepo.MockUserRepository) {
	productRepo := mockRepo.NewMockProductRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewProductService(ProductServiceParams{
		ProductRepo: productRepo,
		UserRepo:    userRepo,
		Logger:      logger,
	})

	return svc, productRepo, userRepo
}

func TestProductService_CreateProduct_Success(t *testing.T) {
	svc, productRepo, userRepo := newTestProductService(t)

	ctx := context.Background()
	sellerID := uuid.New()
	seller := &entity.User{ID: sellerID, Name: "Aziz Auto", Role: entity.RoleSeller}

	userRepo.EXPECT().FindByID(ctx, sellerID).Return(seller, nil)
	productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(_ context.Context, product *entity.Product) {
			product.ID = uuid.New()
		}).
		Return(nil)

	product, err := svc.CreateProduct(ctx, &usecase.CreateProductInput{
		SellerID:    sellerID,
		Name:        "Brake pad set",
		Description: "Front axle, fits Toyota Axio",
		Price:       1500,
		Quantity:    4,
		ImageURL:    "https://cdn.example.com/brake-pads.jpg",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, sellerID, product.SellerID)
	assert.Equal(t, "Aziz Auto", product.SellerName)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	svc, _, _ := newTestProductService(t)

	ctx := context.Background()
	sellerID := uuid.New()

	tests := []struct {
		name  string
		input *usecase.CreateProductInput
	}{
		{
			name:  "blank name",
			input: &usecase.CreateProductInput{SellerID: sellerID, Name: "   ", Price: 100, Quantity: 1},
		},
		{
			name:  "negative price",
			input: &usecase.CreateProductInput{SellerID: sellerID, Name: "Oil filter", Price: -1, Quantity: 1},
		},
		{
			name:  "negative quantity",
			input: &usecase.CreateProductInput{SellerID: sellerID, Name: "Oil filter", Price: 100, Quantity: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := svc.CreateProduct(ctx, tt.input)

			require.Error(t, err)
			assert.Nil(t, product)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, domainerrors.ErrProductInvalid.ErrorCode(), appErr.ErrorCode())
		})
	}
}

func TestProductService_CreateProduct_UnknownSeller(t *testing.T) {
	svc, _, userRepo := newTestProductService(t)

	ctx := context.Background()
	sellerID := uuid.New()

	userRepo.EXPECT().FindByID(ctx, sellerID).Return(nil, repository.ErrUserNotFound)

	product, err := svc.CreateProduct(ctx, &usecase.CreateProductInput{
		SellerID: sellerID,
		Name:     "Oil filter",
		Price:    700,
		Quantity: 2,
	})

	require.Error(t, err)
	assert.Nil(t, product)
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	svc, productRepo, _ := newTestProductService(t)

	ctx := context.Background()
	productID := uuid.New()

	productRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	product, err := svc.GetProduct(ctx, productID)

	require.Error(t, err)
	assert.Nil(t, product)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrProductNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestProductService_ListProducts(t *testing.T) {
	svc, productRepo, _ := newTestProductService(t)

	ctx := context.Background()
	products := []*entity.Product{
		{ID: uuid.New(), Name: "Brake pad set"},
		{ID: uuid.New(), Name: "Oil filter"},
	}

	productRepo.EXPECT().List(ctx).Return(products, nil)

	got, err := svc.ListProducts(ctx)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProductService_ListSellerProducts(t *testing.T) {
	svc, productRepo, _ := newTestProductService(t)

	ctx := context.Background()
	sellerID := uuid.New()

	productRepo.EXPECT().ListBySeller(ctx, sellerID).Return([]*entity.Product{}, nil)

	got, err := svc.ListSellerProducts(ctx, sellerID)

	require.NoError(t, err)
	assert.Empty(t, got)
}
