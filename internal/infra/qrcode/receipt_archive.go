package qrcode

import (
	"context"
	"os"
	"path/filepath"

	"supermarket/internal/domain/entity"
	"supermarket/internal/domain/service"
	"supermarket/internal/errors"
)

// pngArchive writes one <order id>.png file per confirmed order into dir.
type pngArchive struct {
	dir   string
	codes service.ReceiptCodeService
}

// NewReceiptArchive creates the directory if needed.
func NewReceiptArchive(dir string, codes service.ReceiptCodeService) (service.ReceiptArchive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create receipt directory %s", dir)
	}

	return &pngArchive{dir: dir, codes: codes}, nil
}

func (a *pngArchive) Save(_ context.Context, order *entity.Order) (string, error) {
	png, err := a.codes.GenerateReceiptQR(order)
	if err != nil {
		return "", errors.Wrap(err, "generate receipt code")
	}

	path := filepath.Join(a.dir, order.ID.String()+".png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", errors.Wrapf(err, "write receipt code %s", path)
	}

	return path, nil
}
