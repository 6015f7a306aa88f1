package service

import (
	"context"

	"supermarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ReceiptCodeService defines the interface for receipt QR code generation and parsing
type ReceiptCodeService interface {
	// GenerateReceiptQR encodes a confirmed order reference as a PNG QR code
	GenerateReceiptQR(order *entity.Order) ([]byte, error)

	// ParseReceiptQR parses scanned QR code data and returns the order ID
	ParseReceiptQR(qrData string) (uuid.UUID, error)
}

// ReceiptArchive stores the receipt code of a confirmed order.
type ReceiptArchive interface {
	// Save stores the order's receipt code and returns where it went.
	Save(ctx context.Context, order *entity.Order) (string, error)
}
