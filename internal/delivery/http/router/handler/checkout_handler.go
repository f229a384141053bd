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

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// CheckoutHandler holds dependencies for the checkout handler.
type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler.
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

// CheckoutRequest represents the request body for checking out the cart
type CheckoutRequest struct {
	Address string `json:"address" validate:"required"`
}

// Checkout handles turning the caller's cart into per-seller orders.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	buyerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.checkoutUC.Checkout(c.Request().Context(), &usecase.CheckoutInput{
		BuyerID: buyerID,
		Address: req.Address,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, output, "Checkout completed successfully")
}

// getUserID extracts the authenticated user ID set by the auth middleware.
func (h *CheckoutHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
