package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"time"

	"carspares/config"
	deliverycontext "carspares/internal/delivery/context"
	domainerrors "carspares/internal/domain/errors"
	"carspares/internal/domain/repository"
	"carspares/internal/domain/service"
	"carspares/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultConfirmDelay = 3 * time.Second

// paymentService implements the PaymentUsecase interface. It is a boundary
// stub: no real M-PESA gateway is called, processing is simulated by a
// configurable delay and a generated confirmation code.
type paymentService struct {
	cartRepo     repository.CartRepository
	qrService    service.QRCodeService
	tillNumber   string
	confirmDelay time.Duration
	logger       *slog.Logger
}

// PaymentServiceParams holds dependencies for paymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	CartRepo  repository.CartRepository
	QRService service.QRCodeService
	Config    *config.Config
	Logger    *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	tillNumber := ""
	confirmDelay := defaultConfirmDelay
	if params.Config != nil && params.Config.Payment != nil {
		tillNumber = params.Config.Payment.TillNumber
		if params.Config.Payment.ConfirmDelay > 0 {
			confirmDelay = params.Config.Payment.ConfirmDelay
		}
	}

	return &paymentService{
		cartRepo:     params.CartRepo,
		qrService:    params.QRService,
		tillNumber:   tillNumber,
		confirmDelay: confirmDelay,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Initiate builds a payment reference and a till-number QR code for the amount.
func (srv *paymentService) Initiate(ctx context.Context, input *usecase.InitiatePaymentInput) (*usecase.InitiatePaymentOutput, error) {
	if input.Amount <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("payment amount must be positive")
	}

	reference := fmt.Sprintf("PAY-%s-%d", input.BuyerID.String()[:8], time.Now().Unix())

	png, err := srv.qrService.GeneratePaymentQR(&service.PaymentQR{
		Reference:  reference,
		TillNumber: srv.tillNumber,
		Amount:     input.Amount,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate payment QR code")
	}

	srv.log(ctx).Info("Payment initiated",
		slog.Any("buyerID", input.BuyerID),
		slog.String("reference", reference),
		slog.Float64("amount", input.Amount),
	)

	return &usecase.InitiatePaymentOutput{
		Reference:  reference,
		TillNumber: srv.tillNumber,
		Amount:     input.Amount,
		QRPNG:      png,
	}, nil
}

// Confirm waits the simulated processing delay, clears the buyer's cart once
// more, and returns the receipt. Clearing an already-empty cart is a no-op,
// so re-confirming is safe.
func (srv *paymentService) Confirm(ctx context.Context, input *usecase.ConfirmPaymentInput) (*usecase.ConfirmPaymentOutput, error) {
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "payment confirmation cancelled")
	case <-time.After(srv.confirmDelay):
	}

	code := input.MpesaCode
	if code == "" {
		code = generateMpesaCode()
	}

	if err := srv.cartRepo.Clear(ctx, input.BuyerID); err != nil {
		return nil, errors.Wrap(err, "failed to clear cart after payment")
	}

	confirmedAt := time.Now().UTC()
	srv.log(ctx).Info("Payment confirmed",
		slog.Any("buyerID", input.BuyerID),
		slog.String("mpesaCode", code),
	)

	return &usecase.ConfirmPaymentOutput{
		MpesaCode:   code,
		ConfirmedAt: confirmedAt,
	}, nil
}

// generateMpesaCode produces a ten-character uppercase alphanumeric code in
// the style of real M-PESA transaction receipts.
func generateMpesaCode() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to a time-derived code; uniqueness is best-effort here.
		return fmt.Sprintf("Q%09d", time.Now().UnixNano()%1_000_000_000)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}

	return string(buf)
}
