package melhorenvio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/odlagro/posv-api/internal/config"
	"github.com/odlagro/posv-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.MelhorEnvio.SandboxURL = baseURL
	cfg.MelhorEnvio.ProductionURL = baseURL
	cfg.MelhorEnvio.UserAgent = "POSV (contato@odlagro.com.br)"
	return cfg
}

func validPackage() domain.Package {
	return domain.Package{
		Width:    "15",
		Height:   "10",
		Length:   "20",
		Weight:   "0.5",
		Quantity: 2,
	}
}

func TestCalculate(t *testing.T) {
	ctx := context.Background()

	t.Run("resposta em lista com preço em string", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/shipment/calculate", r.URL.Path)
			assert.Equal(t, "Bearer token-me", r.Header.Get("Authorization"))
			assert.Equal(t, "POSV (contato@odlagro.com.br)", r.Header.Get("User-Agent"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"name": "PAC", "price": "25,90", "delivery_time": 7},
				{"name": "SEDEX", "custom_price": 41.10, "price": "99,99", "custom_delivery_time": 3}
			]`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))

		options, err := client.Calculate(ctx, CalculateParams{
			Token:          "token-me",
			Environment:    "sandbox",
			OriginZip:      "01001000",
			DestinationZip: "38400000",
			Packages:       []domain.Package{validPackage()},
		})

		assert.NoError(t, err)
		assert.Len(t, options, 2)
		assert.Equal(t, "PAC", options[0].Name)
		assert.Equal(t, 25.90, options[0].Price)
		assert.Equal(t, float64(7), options[0].DeliveryEstimate)
		assert.Equal(t, "SEDEX", options[1].Name)
		assert.Equal(t, 41.10, options[1].Price)

		from := gotBody["from"].(map[string]any)
		assert.Equal(t, "01001000", from["postal_code"])
		assert.Equal(t, "1,2,18", gotBody["services"])

		products := gotBody["products"].([]any)
		assert.Len(t, products, 1)
		product := products[0].(map[string]any)
		assert.Equal(t, "POSV_ITEM", product["id"])
		assert.Equal(t, float64(2), product["quantity"])
		assert.Equal(t, 0.5, product["weight"])
	})

	t.Run("resposta em mapa usa a chave como nome reserva", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"1": {"company": {"name": "Correios"}, "cost": "18,50"},
				"2": {"price": 30.00}
			}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))

		options, err := client.Calculate(ctx, CalculateParams{
			Token:          "token-me",
			OriginZip:      "01001000",
			DestinationZip: "38400000",
			Packages:       []domain.Package{validPackage()},
		})

		assert.NoError(t, err)
		assert.Len(t, options, 2)

		sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })
		assert.Equal(t, "2", options[0].Name)
		assert.Equal(t, 30.00, options[0].Price)
		assert.Equal(t, "Correios", options[1].Name)
		assert.Equal(t, 18.50, options[1].Price)
	})

	t.Run("mapa com valor que não é objeto pula a entrada", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"1": {"name": "PAC", "price": "25,90"},
				"error": "Dimensões fora do limite para o SEDEX"
			}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))

		options, err := client.Calculate(ctx, CalculateParams{
			Token:          "token-me",
			OriginZip:      "01001000",
			DestinationZip: "38400000",
			Packages:       []domain.Package{validPackage()},
		})

		assert.NoError(t, err)
		assert.Len(t, options, 1)
		assert.Equal(t, "PAC", options[0].Name)
		assert.Equal(t, 25.90, options[0].Price)
	})

	t.Run("peso abaixo do mínimo é elevado para 0.1", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))

		pkg := validPackage()
		pkg.Weight = 0.02
		_, err := client.Calculate(ctx, CalculateParams{
			Token:          "token-me",
			OriginZip:      "01001000",
			DestinationZip: "38400000",
			Packages:       []domain.Package{pkg},
		})

		assert.NoError(t, err)
		product := gotBody["products"].([]any)[0].(map[string]any)
		assert.Equal(t, 0.1, product["weight"])
	})

	t.Run("todos os pacotes sem dimensões", func(t *testing.T) {
		client := NewClient(testConfig("http://invalido"))

		_, err := client.Calculate(ctx, CalculateParams{
			Token:          "token-me",
			OriginZip:      "01001000",
			DestinationZip: "38400000",
			Packages: []domain.Package{
				{Width: "15", Height: "10", Length: "20"},
				{Weight: "abc"},
			},
		})

		assert.ErrorIs(t, err, ErrNoValidPackages)
	})

	t.Run("token inválido retorna ErrUnauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))

		_, err := client.Calculate(ctx, CalculateParams{
			Token:          "errado",
			OriginZip:      "01001000",
			DestinationZip: "38400000",
			Packages:       []domain.Package{validPackage()},
		})

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("erro HTTP inclui o status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message": "CEP inválido"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))

		_, err := client.Calculate(ctx, CalculateParams{
			Token:          "token-me",
			OriginZip:      "01001000",
			DestinationZip: "00000",
			Packages:       []domain.Package{validPackage()},
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "422")
	})
}
