package melhorenvio

import (
	"context"
	"net/http"
	"time"

	"github.com/odlagro/posv-api/internal/config"
	"github.com/odlagro/posv-api/internal/domain"
	"github.com/pkg/errors"
)

// Erros do cliente Melhor Envio
var (
	ErrUnauthorized = errors.New("401 do Melhor Envio (Unauthorized), verifique o token")
)

// CalculateParams é o pedido de cotação já validado pelo caso de uso.
type CalculateParams struct {
	Token          string
	Environment    string // "sandbox" ou "production"
	OriginZip      string
	DestinationZip string
	Packages       []domain.Package
}

type Client interface {
	// Calculate cota todos os pacotes válidos de uma vez. Pacotes sem
	// alguma dimensão são descartados silenciosamente; se nenhum
	// sobreviver, retorna ErrNoValidPackages.
	Calculate(ctx context.Context, params CalculateParams) ([]domain.ShippingOption, error)
}

// ErrNoValidPackages indica que todos os pacotes foram descartados
var ErrNoValidPackages = errors.New("os dados dos pacotes são inválidos")

type MelhorEnvioClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MelhorEnvioClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *MelhorEnvioClient) baseURL(env string) string {
	if env == "production" {
		return c.cfg.MelhorEnvio.ProductionURL
	}
	return c.cfg.MelhorEnvio.SandboxURL
}
