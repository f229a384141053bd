package qrcode

import (
	"encoding/json"
	"testing"

	"carspares/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, svc)
		})
	}
}

func TestQRCodeService_GeneratePaymentQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	qrBytes, err := svc.GeneratePaymentQR(&service.PaymentQR{
		Reference:  "ORD-123",
		TillNumber: "174379",
		Amount:     2200,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_ParsePaymentQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	data := qrPayload{
		Reference:  "ORD-123",
		TillNumber: "174379",
		Amount:     2200,
		Type:       payloadTypePayment,
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	payload, err := svc.ParsePaymentQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, "ORD-123", payload.Reference)
	assert.Equal(t, "174379", payload.TillNumber)
	assert.InDelta(t, 2200.0, payload.Amount, 0.001)
}

func TestQRCodeService_ParsePaymentQR_InvalidType(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	data := qrPayload{
		Reference:  "ORD-123",
		TillNumber: "174379",
		Amount:     2200,
		Type:       "subscription",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	payload, err := svc.ParsePaymentQR(string(jsonData))
	assert.Error(t, err)
	assert.Nil(t, payload)
}

func TestQRCodeService_ParsePaymentQR_MalformedJSON(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	payload, err := svc.ParsePaymentQR("not-json")
	assert.Error(t, err)
	assert.Nil(t, payload)
}

func TestQRCodeService_RoundTrip(t *testing.T) {
	svc := NewQRCodeService(128, "L")

	original := &service.PaymentQR{
		Reference:  "ORD-999",
		TillNumber: "555000",
		Amount:     149.99,
	}

	qrBytes, err := svc.GeneratePaymentQR(original)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)
}
