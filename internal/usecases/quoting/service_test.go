package quoting

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	dir := t.TempDir()
	renderer, err := NewRenderer(dir)
	require.NoError(t, err)

	service := NewService(renderer)
	service.now = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return service, dir
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("calcula subtotal e total com frete", func(t *testing.T) {
		service, dir := newTestService(t)

		artifact, err := service.Generate(ctx, &GenerateRequest{
			Items: []map[string]any{
				{"nome": "Ração Premium", "sku": "559", "quantidade": 2, "preco": "10,00"},
			},
			Shipping:      "5,00",
			ShippingLabel: "PAC",
		})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(artifact.URL, "/"))
		assert.Contains(t, artifact.URL, "orcamento.png?t=")

		file, err := os.Open(artifact.Path)
		require.NoError(t, err)
		defer file.Close()

		img, err := png.Decode(file)
		require.NoError(t, err)
		assert.Equal(t, 1200, img.Bounds().Dx())

		assert.Equal(t, filepath.Join(dir, "orcamento.png"), artifact.Path)
	})

	t.Run("aceita chaves em inglês", func(t *testing.T) {
		service, _ := newTestService(t)

		artifact, err := service.Generate(ctx, &GenerateRequest{
			ItemsAlias: []map[string]any{
				{"name": "Coleira", "code": "AB-10", "qty": 3, "price": 7.5},
			},
		})
		require.NoError(t, err)
		assert.FileExists(t, artifact.Path)
	})

	t.Run("sem itens ainda gera a imagem", func(t *testing.T) {
		service, _ := newTestService(t)

		artifact, err := service.Generate(ctx, &GenerateRequest{})
		require.NoError(t, err)
		assert.FileExists(t, artifact.Path)
	})
}

func TestBuildQuote(t *testing.T) {
	t.Run("quantidade e preço viram total por linha", func(t *testing.T) {
		quote := buildQuote([]map[string]any{
			{"nome": "Ração Premium", "quantidade": 2, "preco": 10.0},
			{"nome": "Coleira", "quantidade": 1, "preco": "31,05"},
		}, 5.0, "PAC")

		assert.InDelta(t, 51.05, quote.Subtotal, 0.001)
		assert.InDelta(t, 56.05, quote.Total, 0.001)
		assert.Equal(t, "PAC", quote.ShippingLabel)
		assert.Equal(t, 20.0, quote.Items[0].LineTotal)
	})

	t.Run("quantidade inválida vira 1", func(t *testing.T) {
		quote := buildQuote([]map[string]any{
			{"nome": "Item", "quantidade": 0, "preco": 10.0},
			{"nome": "Item", "quantidade": -2, "preco": 10.0},
		}, 0, "")

		assert.Equal(t, 1.0, quote.Items[0].Quantity)
		assert.Equal(t, 1.0, quote.Items[1].Quantity)
		assert.Equal(t, 20.0, quote.Subtotal)
	})

	t.Run("unidade vazia vira UN", func(t *testing.T) {
		quote := buildQuote([]map[string]any{
			{"nome": "Item", "un": "  "},
			{"nome": "Item", "un": "cx"},
		}, 0, "")

		assert.Equal(t, "UN", quote.Items[0].Unit)
		assert.Equal(t, "cx", quote.Items[1].Unit)
	})

	t.Run("sinônimos de SKU e imagem", func(t *testing.T) {
		quote := buildQuote([]map[string]any{
			{"nome": "Item", "codigo": "XYZ", "imagem": "http://img/1.png"},
		}, 0, "")

		assert.Equal(t, "XYZ", quote.Items[0].SKU)
		assert.Equal(t, "http://img/1.png", quote.Items[0].ImageURL)
	})
}
