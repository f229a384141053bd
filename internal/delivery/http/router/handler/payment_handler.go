package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"carspares/internal/delivery/http/response"
	"carspares/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PaymentHandlerParams holds dependencies for PaymentHandler, injected by Fx.
type PaymentHandlerParams struct {
	fx.In

	PaymentUC usecase.PaymentUsecase
	Logger    *slog.Logger
}

// PaymentHandler holds dependencies for the simulated M-PESA payment handlers.
type PaymentHandler struct {
	paymentUC usecase.PaymentUsecase
	logger    *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler.
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: params.PaymentUC,
		logger:    params.Logger,
	}
}

// InitiatePaymentRequest represents the request body for starting a payment
type InitiatePaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// ConfirmPaymentRequest represents the request body for confirming a payment
type ConfirmPaymentRequest struct {
	MpesaCode string `json:"mpesaCode"`
}

// InitiatePaymentResponse carries the payment reference and its QR code PNG.
type InitiatePaymentResponse struct {
	Reference  string  `json:"reference"`
	TillNumber string  `json:"tillNumber"`
	Amount     float64 `json:"amount"`
	QRCode     string  `json:"qrCode"` // Base64-encoded PNG.
}

// ConfirmPaymentResponse is the simulated M-PESA receipt.
type ConfirmPaymentResponse struct {
	MpesaCode   string    `json:"mpesaCode"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// InitiatePayment handles building a payment reference and QR code.
func (h *PaymentHandler) InitiatePayment(c echo.Context) error {
	buyerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.paymentUC.Initiate(c.Request().Context(), &usecase.InitiatePaymentInput{
		BuyerID: buyerID,
		Amount:  req.Amount,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, InitiatePaymentResponse{
		Reference:  output.Reference,
		TillNumber: output.TillNumber,
		Amount:     output.Amount,
		QRCode:     base64.StdEncoding.EncodeToString(output.QRPNG),
	}, "Payment initiated successfully")
}

// ConfirmPayment handles the simulated payment confirmation.
func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	buyerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid confirmation input")
	}

	output, err := h.paymentUC.Confirm(c.Request().Context(), &usecase.ConfirmPaymentInput{
		BuyerID:   buyerID,
		MpesaCode: req.MpesaCode,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ConfirmPaymentResponse{
		MpesaCode:   output.MpesaCode,
		ConfirmedAt: output.ConfirmedAt,
	}, "Payment confirmed successfully")
}

// getUserID extracts the authenticated user ID set by the auth middleware.
func (h *PaymentHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
