package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InitiatePaymentInput carries the amount the buyer is about to pay.
type InitiatePaymentInput struct {
	BuyerID uuid.UUID
	Amount  float64
}

// InitiatePaymentOutput returns the payment reference and its QR code.
type InitiatePaymentOutput struct {
	Reference  string
	TillNumber string
	Amount     float64
	QRPNG      []byte
}

// ConfirmPaymentInput identifies the buyer confirming a payment. MpesaCode
// is optional; one is generated when absent.
type ConfirmPaymentInput struct {
	BuyerID   uuid.UUID
	MpesaCode string
}

// ConfirmPaymentOutput is the receipt of a simulated M-PESA confirmation.
type ConfirmPaymentOutput struct {
	MpesaCode   string
	ConfirmedAt time.Time
}

// PaymentUsecase defines the interface for the simulated M-PESA payment flow.
type PaymentUsecase interface {
	// Initiate builds a payment reference and a till-number QR code for
	// the amount. No real gateway is involved.
	Initiate(ctx context.Context, input *InitiatePaymentInput) (*InitiatePaymentOutput, error)

	// Confirm waits the configured simulated processing delay, clears the
	// buyer's cart again (a no-op when checkout already emptied it), and
	// returns the receipt. Confirming twice is safe.
	Confirm(ctx context.Context, input *ConfirmPaymentInput) (*ConfirmPaymentOutput, error)
}
