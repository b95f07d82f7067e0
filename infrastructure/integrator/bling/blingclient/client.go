package blingclient

import (
	"context"
	"net/http"
	"time"

	"github.com/odlagro/posv-api/internal/config"
	"github.com/odlagro/posv-api/internal/domain"
	"github.com/pkg/errors"
)

// Erros do cliente Bling
var (
	ErrMissingOAuthCredentials = errors.New("BLING_CLIENT_ID / BLING_CLIENT_SECRET não configurados no .env")
	ErrMissingRefreshToken     = errors.New("refresh token vazio, refaça a conexão com o Bling")
	ErrUnauthorized            = errors.New("Bling retornou 401 (Unauthorized), faça 'Conectar Bling' novamente")
)

type Client interface {
	AuthorizeURL(state string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error)
	FetchAllActive(ctx context.Context, accessToken string) ([]domain.Product, int, error)
}

type BlingClient struct {
	cfg        *config.Config
	httpClient *http.Client
	// pausa entre páginas da listagem para não estourar o rate limit
	pageDelay time.Duration
}

func NewClient(cfg *config.Config) *BlingClient {
	return &BlingClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pageDelay: 100 * time.Millisecond,
	}
}
