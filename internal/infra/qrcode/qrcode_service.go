package qrcode

import (
	"encoding/json"
	"fmt"

	"carspares/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// qrPayload is the QR code wire structure. The type field guards against
// scanning unrelated QR codes into the payment flow.
type qrPayload struct {
	Reference  string  `json:"reference"`
	TillNumber string  `json:"till_number"`
	Amount     float64 `json:"amount"`
	Type       string  `json:"type"`
}

const payloadTypePayment = "payment"

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GeneratePaymentQR renders the payment payload as a PNG QR code.
func (s *qrcodeService) GeneratePaymentQR(payload *service.PaymentQR) ([]byte, error) {
	data := qrPayload{
		Reference:  payload.Reference,
		TillNumber: payload.TillNumber,
		Amount:     payload.Amount,
		Type:       payloadTypePayment,
	}

	// Convert to JSON
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	// Generate QR code
	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParsePaymentQR decodes QR data back into the payment payload.
func (s *qrcodeService) ParsePaymentQR(qrData string) (*service.PaymentQR, error) {
	var data qrPayload
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	// Validate type
	if data.Type != payloadTypePayment {
		return nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	return &service.PaymentQR{
		Reference:  data.Reference,
		TillNumber: data.TillNumber,
		Amount:     data.Amount,
	}, nil
}
