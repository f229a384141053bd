package impl

import (
	"context"
	"log/slog"
	"time"

	"carspares/config"
	deliverycontext "carspares/internal/delivery/context"
	"carspares/internal/domain/entity"
	"carspares/internal/domain/repository"
	"carspares/internal/domain/service"
	"carspares/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager     repository.TransactionManager
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	userRepo      repository.UserRepository
	publisher     service.EventPublisher
	paymentMethod string
	logger        *slog.Logger
}

// CheckoutServiceParams holds dependencies for checkoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	paymentMethod := entity.PaymentMethodMpesa
	if params.Config != nil && params.Config.Payment != nil && params.Config.Payment.Method != "" {
		paymentMethod = params.Config.Payment.Method
	}

	return &checkoutService{
		txManager:     params.TxManager,
		cartRepo:      params.CartRepo,
		productRepo:   params.ProductRepo,
		userRepo:      params.UserRepo,
		publisher:     params.Publisher,
		paymentMethod: paymentMethod,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout runs the sequential checkout flow: reduce stock per line, split
// the cart by seller into pending orders, clear the cart, report the total.
//
// Stock reduction errors are logged and swallowed so a stock hiccup never
// blocks the sale. An order-create error aborts the remaining sequence but
// already-committed orders stay committed; the buyer retries with whatever
// is left in the cart.
func (srv *checkoutService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	lines, err := srv.cartRepo.ListByBuyer(ctx, input.BuyerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart for checkout")
	}

	// Empty cart checks out to nothing.
	if len(lines) == 0 {
		srv.log(ctx).Info("Checkout on empty cart", slog.Any("buyerID", input.BuyerID))

		return &usecase.CheckoutOutput{Orders: []*entity.Order{}, Total: 0}, nil
	}

	buyerName := srv.resolveBuyerName(ctx, input)

	// Step 2: stock reduction, floored at zero in storage. Failures are
	// logged and swallowed; the sale proceeds regardless.
	for _, line := range lines {
		if err := srv.productRepo.ReduceQuantity(ctx, line.ProductID, line.Qty); err != nil {
			srv.log(ctx).Warn("Stock reduction failed, continuing checkout",
				slog.Any("productID", line.ProductID),
				slog.Int("qty", line.Qty),
				slog.Any("error", err),
			)
		}
	}

	// Step 3: split by seller, preserving the order sellers first appear
	// in the cart, and persist one order per seller.
	orders := splitIntoOrders(lines, buyerName, input.Address, srv.paymentMethod)

	created := make([]*entity.Order, 0, len(orders))
	for _, order := range orders {
		order := order
		err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.OrderRepo().Create(ctx, order)
		})
		if err != nil {
			srv.log(ctx).Error("Failed to create order during checkout",
				slog.Any("buyerID", input.BuyerID),
				slog.Any("sellerID", order.SellerID),
				slog.Int("createdSoFar", len(created)),
				slog.Any("error", err),
			)

			return nil, errors.Wrap(err, "failed to create order")
		}
		created = append(created, order)
	}

	// Step 4: one bulk cart clear after all orders committed.
	if err := srv.cartRepo.Clear(ctx, input.BuyerID); err != nil {
		srv.log(ctx).Error("Failed to clear cart after checkout",
			slog.Any("buyerID", input.BuyerID),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to clear cart after checkout")
	}

	srv.publishOrderEvents(ctx, created)

	total := entity.CartTotal(lines)
	srv.log(ctx).Info("Checkout completed",
		slog.Any("buyerID", input.BuyerID),
		slog.Int("orderCount", len(created)),
		slog.Float64("total", total),
	)

	return &usecase.CheckoutOutput{Orders: created, Total: total}, nil
}

// resolveBuyerName looks up the buyer's display name for the order records.
// A lookup failure degrades to an empty name rather than failing checkout.
func (srv *checkoutService) resolveBuyerName(ctx context.Context, input *usecase.CheckoutInput) string {
	buyer, err := srv.userRepo.FindByID(ctx, input.BuyerID)
	if err != nil {
		srv.log(ctx).Warn("Failed to resolve buyer name for checkout",
			slog.Any("buyerID", input.BuyerID),
			slog.Any("error", err),
		)

		return ""
	}

	return buyer.Name
}

// publishOrderEvents emits one OrderPlaced event per created order.
// Publishing is best-effort and never fails a completed checkout.
func (srv *checkoutService) publishOrderEvents(ctx context.Context, orders []*entity.Order) {
	for _, order := range orders {
		event := &service.OrderEvent{
			OrderID:     order.ID.String(),
			BuyerID:     order.BuyerID.String(),
			SellerID:    order.SellerID.String(),
			TotalAmount: order.TotalAmount,
			ItemCount:   len(order.Items),
			Status:      order.Status.String(),
			PlacedAt:    time.Now().UTC(),
			RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		}

		if err := srv.publisher.PublishOrderPlaced(ctx, event); err != nil {
			srv.log(ctx).Warn("Failed to publish order event",
				slog.String("orderID", event.OrderID),
				slog.Any("error", err),
			)
		}
	}
}

// splitIntoOrders groups cart lines by seller into pending orders. Sellers
// keep the order of their first cart appearance; each order's seller name
// comes from that seller's first line.
func splitIntoOrders(lines []*entity.CartLine, buyerName, address, paymentMethod string) []*entity.Order {
	bySeller := make(map[string]*entity.Order)
	orders := make([]*entity.Order, 0)

	for _, line := range lines {
		key := line.SellerID.String()
		order, ok := bySeller[key]
		if !ok {
			order = &entity.Order{
				BuyerID:       line.BuyerID,
				BuyerName:     buyerName,
				SellerID:      line.SellerID,
				SellerName:    line.SellerName,
				Items:         make([]*entity.OrderItem, 0, 1),
				Status:        entity.OrderStatusPending,
				PaymentMethod: paymentMethod,
				Address:       address,
			}
			bySeller[key] = order
			orders = append(orders, order)
		}

		order.Items = append(order.Items, &entity.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			SellerID:     line.SellerID,
			SellerName:   line.SellerName,
			Qty:          line.Qty,
			UnitPrice:    line.UnitPrice,
		})
		order.TotalAmount += line.Subtotal()
	}

	return orders
}
