package impl

import (
	"context"
	"log/slog"

	"carspares/config"
	deliverycontext "carspares/internal/delivery/context"
	"carspares/internal/domain/entity"
	domainerrors "carspares/internal/domain/errors"
	"carspares/internal/domain/repository"
	"carspares/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// recentOrdersLimit caps the dashboard's recent-orders list.
const recentOrdersLimit = 10

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderRepo         repository.OrderRepository
	strictTransitions bool
	logger            *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	Config    *config.Config
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	strict := false
	if params.Config != nil && params.Config.Orders != nil {
		strict = params.Config.Orders.StrictTransitions
	}

	return &orderService{
		orderRepo:         params.OrderRepo,
		strictTransitions: strict,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetOrder retrieves a single order with its items.
func (srv *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order does not exist")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// ListBuyerOrders returns the buyer's order history, newest first.
func (srv *orderService) ListBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list buyer orders")
	}

	return orders, nil
}

// ListSellerOrders returns the seller's incoming orders, newest first.
func (srv *orderService) ListSellerOrders(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller orders")
	}

	return orders, nil
}

// UpdateStatus moves an order to a new status on behalf of its seller.
// Transition validation only applies when strictTransitions is configured;
// otherwise any known status is written as-is.
func (srv *orderService) UpdateStatus(ctx context.Context, input *usecase.UpdateOrderStatusInput) error {
	newStatus := entity.OrderStatus(input.Status)
	if !newStatus.IsValid() {
		return domainerrors.ErrOrderStatusInvalid.WithDetails(input.Status)
	}

	order, err := srv.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound.WrapMessage("cannot update missing order")
		}

		return errors.Wrap(err, "failed to find order for status update")
	}

	if order.SellerID != input.SellerID {
		return domainerrors.ErrForbidden.WrapMessage("order belongs to another seller")
	}

	if srv.strictTransitions && !order.Status.CanTransitionTo(newStatus) {
		srv.log(ctx).Warn("Order status transition rejected",
			slog.Any("orderID", input.OrderID),
			slog.String("from", order.Status.String()),
			slog.String("to", newStatus.String()),
		)

		return domainerrors.ErrOrderTransitionRejected.WithDetails(
			order.Status.String() + " -> " + newStatus.String(),
		)
	}

	if err := srv.orderRepo.UpdateStatus(ctx, input.OrderID, newStatus); err != nil {
		return errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated",
		slog.Any("orderID", input.OrderID),
		slog.String("from", order.Status.String()),
		slog.String("to", newStatus.String()),
	)

	return nil
}

// SellerDashboard aggregates revenue and order counts for one seller.
func (srv *orderService) SellerDashboard(ctx context.Context, sellerID uuid.UUID) (*usecase.SellerDashboardOutput, error) {
	orders, err := srv.orderRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders for dashboard")
	}

	out := &usecase.SellerDashboardOutput{OrderCount: len(orders)}
	for _, order := range orders {
		out.TotalRevenue += order.TotalAmount
		switch order.Status {
		case entity.OrderStatusPending:
			out.PendingCount++
		case entity.OrderStatusCompleted:
			out.CompletedCount++
		}
	}

	if len(orders) > recentOrdersLimit {
		out.RecentOrders = orders[:recentOrdersLimit]
	} else {
		out.RecentOrders = orders
	}

	return out, nil
}
