// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "carspares/internal/delivery/context"
	"carspares/internal/domain/entity"
	domainerrors "carspares/internal/domain/errors"
	"carspares/internal/domain/repository"
	"carspares/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddLine snapshots the product into a new cart line. The same product added
// again becomes another line; lines are never merged.
func (srv *cartService) AddLine(ctx context.Context, input *usecase.AddCartLineInput) (*entity.CartLine, error) {
	qty := input.Qty
	if qty <= 0 {
		qty = 1
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("cannot add missing product to cart")
		}

		return nil, errors.Wrap(err, "failed to load product for cart")
	}

	line := &entity.CartLine{
		BuyerID:      input.BuyerID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: product.ImageURL,
		SellerID:     product.SellerID,
		SellerName:   product.SellerName,
		Qty:          qty,
		UnitPrice:    product.Price,
	}

	if err := srv.cartRepo.AddLine(ctx, line); err != nil {
		srv.log(ctx).Error("Failed to add cart line",
			slog.Any("buyerID", input.BuyerID),
			slog.Any("productID", input.ProductID),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to add cart line")
	}

	srv.log(ctx).Debug("Cart line added",
		slog.Any("buyerID", input.BuyerID),
		slog.Any("lineID", line.ID),
		slog.Int("qty", qty),
	)

	return line, nil
}

// ListLines returns the buyer's cart in add order with the running total.
// An empty cart yields an empty slice and a zero total.
func (srv *cartService) ListLines(ctx context.Context, buyerID uuid.UUID) (*usecase.CartOutput, error) {
	lines, err := srv.cartRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines")
	}

	return &usecase.CartOutput{
		Lines: lines,
		Total: entity.CartTotal(lines),
	}, nil
}

// Clear empties the buyer's cart. Clearing an empty cart succeeds.
func (srv *cartService) Clear(ctx context.Context, buyerID uuid.UUID) error {
	if err := srv.cartRepo.Clear(ctx, buyerID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	srv.log(ctx).Debug("Cart cleared", slog.Any("buyerID", buyerID))

	return nil
}
