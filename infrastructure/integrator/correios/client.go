package correios

import (
	"context"
	"net/http"
	"time"

	"github.com/odlagro/posv-api/internal/config"
	"github.com/odlagro/posv-api/internal/domain"
)

// Códigos de serviço do calculador dos Correios
const (
	ServicePAC   = "04510"
	ServiceSEDEX = "04014"
)

// QuoteParams descreve uma cotação de um único serviço dos Correios.
// Dimensões em cm, peso em kg, CEPs apenas com dígitos.
type QuoteParams struct {
	OriginZip      string
	DestinationZip string
	WeightKg       float64
	LengthCm       float64
	HeightCm       float64
	WidthCm        float64
	ServiceCode    string
	DeclaredValue  float64
}

type Client interface {
	// QuoteService consulta preço e prazo de um serviço. Cada chamada é
	// independente: a falha de uma não impede a outra.
	QuoteService(ctx context.Context, params QuoteParams) (*domain.ShippingOption, error)
}

type CorreiosClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &CorreiosClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}
