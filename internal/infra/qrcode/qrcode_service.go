package qrcode

import (
	"encoding/json"
	"fmt"

	"supermarket/internal/domain/entity"
	"supermarket/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const receiptType = "receipt"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// ReceiptCodeData represents the QR code data structure
type ReceiptCodeData struct {
	OrderID string `json:"order_id"`
	Total   string `json:"total"`
	Items   int    `json:"items"`
	Type    string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.ReceiptCodeService {
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

// GenerateReceiptQR generates a PNG QR code referencing a confirmed order
func (s *qrcodeService) GenerateReceiptQR(order *entity.Order) ([]byte, error) {
	if order == nil || !order.IsConfirmed() {
		return nil, fmt.Errorf("receipt QR code needs a confirmed order")
	}

	data := ReceiptCodeData{
		OrderID: order.ID.String(),
		Total:   order.Total.StringFixed(2),
		Items:   order.ItemCount(),
		Type:    receiptType,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseReceiptQR parses scanned QR code data and returns the order ID
func (s *qrcodeService) ParseReceiptQR(qrData string) (uuid.UUID, error) {
	var data ReceiptCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != receiptType {
		return uuid.Nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	orderID, err := uuid.Parse(data.OrderID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse order ID: %w", err)
	}

	return orderID, nil
}
