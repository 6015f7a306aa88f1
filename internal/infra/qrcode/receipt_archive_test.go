package qrcode

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"supermarket/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptArchive_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	archive, err := NewReceiptArchive(dir, NewQRCodeService(128, "L"))
	require.NoError(t, err)

	order := confirmedOrder()
	path, err := archive.Save(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, order.ID.String()+".png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, data[:4])
}

func TestReceiptArchive_RejectsUnconfirmedOrder(t *testing.T) {
	archive, err := NewReceiptArchive(t.TempDir(), NewQRCodeService(128, "L"))
	require.NoError(t, err)

	_, err = archive.Save(context.Background(), &entity.Order{})
	assert.Error(t, err)
}
