package service

// PaymentQR is the payload encoded into a payment QR code: everything the
// M-PESA Express simulation needs to address a till with an amount.
type PaymentQR struct {
	Reference  string  `json:"reference"`
	TillNumber string  `json:"till_number"`
	Amount     float64 `json:"amount"`
}

// QRCodeService defines the interface for QR code generation and parsing.
type QRCodeService interface {
	// GeneratePaymentQR renders the payment payload as a PNG QR code.
	GeneratePaymentQR(payload *PaymentQR) ([]byte, error)

	// ParsePaymentQR decodes QR data back into the payment payload.
	ParsePaymentQR(qrData string) (*PaymentQR, error)
}
