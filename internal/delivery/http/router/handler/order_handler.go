package handler

import (
	"log/slog"
	"net/http"

	"carspares/internal/delivery/http/response"
	"carspares/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order lifecycle handlers.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// UpdateOrderStatusRequest represents the request body for moving an order's status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

// GetOrder handles retrieving a single order with its items.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListMyOrders handles retrieving the caller's purchase history.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	buyerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListBuyerOrders(c.Request().Context(), buyerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// ListSellerOrders handles retrieving orders placed against the caller's listings.
func (h *OrderHandler) ListSellerOrders(c echo.Context) error {
	sellerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListSellerOrders(c.Request().Context(), sellerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// UpdateOrderStatus handles a seller moving one of their orders to a new status.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	sellerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.orderUC.UpdateStatus(c.Request().Context(), &usecase.UpdateOrderStatusInput{
		SellerID: sellerID,
		OrderID:  orderID,
		Status:   req.Status,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": req.Status}, "Order status updated successfully")
}

// SellerDashboard handles retrieving the caller's sales dashboard.
func (h *OrderHandler) SellerDashboard(c echo.Context) error {
	sellerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	dashboard, err := h.orderUC.SellerDashboard(c.Request().Context(), sellerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, dashboard, "Dashboard retrieved successfully")
}

// getUserID extracts the authenticated user ID set by the auth middleware.
func (h *OrderHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
