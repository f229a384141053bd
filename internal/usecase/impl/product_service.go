package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "carspares/internal/delivery/context"
	"carspares/internal/domain/entity"
	domainerrors "carspares/internal/domain/errors"
	"carspares/internal/domain/repository"
	"carspares/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct lists a new spare part under the given seller.
func (srv *productService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrProductInvalid.WrapMessage("product name is required")
	}
	if input.Price < 0 {
		return nil, domainerrors.ErrProductInvalid.WrapMessage("price must not be negative")
	}
	if input.Quantity < 0 {
		return nil, domainerrors.ErrProductInvalid.WrapMessage("quantity must not be negative")
	}

	seller, err := srv.userRepo.FindByID(ctx, input.SellerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("seller account not found")
		}

		return nil, errors.Wrap(err, "failed to load seller")
	}

	product := &entity.Product{
		SellerID:    seller.ID,
		SellerName:  seller.Name,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		ImageURL:    input.ImageURL,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product",
			slog.Any("sellerID", input.SellerID),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product listed",
		slog.Any("productID", product.ID),
		slog.Any("sellerID", seller.ID),
	)

	return product, nil
}

// GetProduct retrieves a single product by ID.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("product does not exist")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// ListProducts returns the full catalog, newest first.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// ListSellerProducts returns one seller's listings, newest first.
func (srv *productService) ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller products")
	}

	return products, nil
}
