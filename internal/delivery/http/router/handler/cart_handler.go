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

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler holds dependencies for cart handlers.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// AddCartLineRequest represents the request body for adding a product to the cart
type AddCartLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Qty       int    `json:"qty" validate:"gte=0"`
}

// AddLine handles adding a product to the caller's cart.
func (h *CartHandler) AddLine(c echo.Context) error {
	buyerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req AddCartLineRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	line, err := h.cartUC.AddLine(c.Request().Context(), &usecase.AddCartLineInput{
		BuyerID:   buyerID,
		ProductID: productID,
		Qty:       req.Qty,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, line, "Product added to cart")
}

// ListCart handles retrieving the caller's cart with its total.
func (h *CartHandler) ListCart(c echo.Context) error {
	buyerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	cart, err := h.cartUC.ListLines(c.Request().Context(), buyerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart retrieved successfully")
}

// ClearCart handles emptying the caller's cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	buyerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	if err := h.cartUC.Clear(c.Request().Context(), buyerID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Cart cleared"}, "Cart cleared successfully")
}

// getUserID extracts the authenticated user ID set by the auth middleware.
func (h *CartHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
