package receipts

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ventas/app/models"
)

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer("Ventas")
	r.Uncompressed = true
	r.now = func() time.Time { return time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC) }

	out, err := r.Render(models.Sale{
		ID:        7,
		Seller:    "Ana Torres",
		Customer:  "Luis Perez",
		Payment:   "Tarjeta",
		Total:     1234.5,
		CreatedAt: time.Date(2024, 8, 30, 9, 15, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	for _, want := range []string{"Comprobante de Venta", "Ana Torres", "Luis Perez", "Tarjeta", "1234.50", "30/08/2024"} {
		assert.Contains(t, string(out), want)
	}
}

func TestRenderCompressedByDefault(t *testing.T) {
	out, err := NewRenderer("").Render(models.Sale{ID: 1, Seller: "Ana", Customer: "Luis", Payment: "Efectivo"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "venta-12.pdf", Filename(12))
	assert.Equal(t, "receipts/venta-12.pdf", ArchivePath(12))
}
