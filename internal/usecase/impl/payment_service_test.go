package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"carspares/config"
	domainerrors "carspares/internal/domain/errors"
	"carspares/internal/domain/service"
	mockRepo "carspares/internal/mocks/repository"
	mockService "carspares/internal/mocks/service"
	"carspares/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPaymentService(t *testing.T) (usecase.PaymentUsecase, *mockRepo.MockCartRepository, *mockService.MockQRCodeService) {
	cartRepo := mockRepo.NewMockCartRepository(t)
	qrService := mockService.NewMockQRCodeService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Payment: &config.PaymentConfig{
			TillNumber:   "174379",
			ConfirmDelay: 5 * time.Millisecond,
		},
	}

	svc := NewPaymentService(PaymentServiceParams{
		CartRepo:  cartRepo,
		QRService: qrService,
		Config:    cfg,
		Logger:    logger,
	})

	return svc, cartRepo, qrService
}

func TestPaymentService_Initiate_Success(t *testing.T) {
	svc, _, qrService := newTestPaymentService(t)

	ctx := context.Background()
	buyerID := uuid.New()
	png := []byte{0x89, 'P', 'N', 'G'}

	var payload *service.PaymentQR
	qrService.EXPECT().
		GeneratePaymentQR(mock.AnythingOfType("*service.PaymentQR")).
		Run(func(p *service.PaymentQR) {
			payload = p
		}).
		Return(png, nil)

	out, err := svc.Initiate(ctx, &usecase.InitiatePaymentInput{BuyerID: buyerID, Amount: 2200})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Reference)
	assert.Equal(t, "174379", out.TillNumber)
	assert.InDelta(t, 2200.0, out.Amount, 0.001)
	assert.Equal(t, png, out.QRPNG)

	require.NotNil(t, payload)
	assert.Equal(t, out.Reference, payload.Reference)
	assert.Equal(t, "174379", payload.TillNumber)
	assert.InDelta(t, 2200.0, payload.Amount, 0.001)
}

func TestPaymentService_Initiate_RejectsNonPositiveAmount(t *testing.T) {
	svc, _, _ := newTestPaymentService(t)

	out, err := svc.Initiate(context.Background(), &usecase.InitiatePaymentInput{
		BuyerID: uuid.New(),
		Amount:  0,
	})

	require.Error(t, err)
	assert.Nil(t, out)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}

func TestPaymentService_Confirm_GeneratesCode(t *testing.T) {
	svc, cartRepo, _ := newTestPaymentService(t)

	ctx := context.Background()
	buyerID := uuid.New()

	cartRepo.EXPECT().Clear(ctx, buyerID).Return(nil)

	out, err := svc.Confirm(ctx, &usecase.ConfirmPaymentInput{BuyerID: buyerID})

	require.NoError(t, err)
	assert.Len(t, out.MpesaCode, 10)
	assert.False(t, out.ConfirmedAt.IsZero())
}

func TestPaymentService_Confirm_KeepsProvidedCode(t *testing.T) {
	svc, cartRepo, _ := newTestPaymentService(t)

	ctx := context.Background()
	buyerID := uuid.New()

	cartRepo.EXPECT().Clear(ctx, buyerID).Return(nil)

	out, err := svc.Confirm(ctx, &usecase.ConfirmPaymentInput{
		BuyerID:   buyerID,
		MpesaCode: "QGH7KL2M9P",
	})

	require.NoError(t, err)
	assert.Equal(t, "QGH7KL2M9P", out.MpesaCode)
}

func TestPaymentService_Confirm_CancelledContext(t *testing.T) {
	svc, _, _ := newTestPaymentService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := svc.Confirm(ctx, &usecase.ConfirmPaymentInput{BuyerID: uuid.New()})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.Canceled)
}
