package bling

import (
	"context"
	"time"

	"github.com/odlagro/posv-api/infrastructure/integrator/bling/blingclient"
	"github.com/odlagro/posv-api/infrastructure/repository"
	"github.com/odlagro/posv-api/internal/config"
	"github.com/odlagro/posv-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Integrator expõe o fluxo OAuth e a listagem de produtos do Bling.
type Integrator interface {
	AuthorizeURL(state string) (string, error)
	// Connect troca o authorization_code por tokens e persiste a
	// configuração atualizada.
	Connect(ctx context.Context, code string) (*domain.Settings, error)
	// EnsureValidToken renova o access token quando ele está a menos de
	// 60s de expirar e persiste o resultado. Expiração desconhecida (0)
	// nunca dispara renovação.
	EnsureValidToken(ctx context.Context, settings *domain.Settings) (*domain.Settings, error)
	FetchAllActive(ctx context.Context, accessToken string) ([]domain.Product, int, error)
}

type Service struct {
	cfg          *config.Config
	client       blingclient.Client
	settingsRepo repository.SettingsRepository
	now          func() time.Time
}

func New(cfg *config.Config, client blingclient.Client, settingsRepo repository.SettingsRepository) *Service {
	return &Service{
		cfg:          cfg,
		client:       client,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

func (s *Service) AuthorizeURL(state string) (string, error) {
	return s.client.AuthorizeURL(state)
}

func (s *Service) Connect(ctx context.Context, code string) (*domain.Settings, error) {
	tokens, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	settings := s.settingsRepo.Load()
	settings.BlingAccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		settings.BlingRefreshToken = tokens.RefreshToken
	}
	if tokens.ExpiresIn > 0 {
		settings.BlingExpiresAt = float64(s.now().Unix() + tokens.ExpiresIn)
	} else {
		settings.BlingExpiresAt = 0
	}

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}

	logrus.Info("Conexão com o Bling concluída com sucesso")
	return settings, nil
}

func (s *Service) EnsureValidToken(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	if !settings.BlingConnected() {
		return settings, nil
	}

	if !settings.BlingTokenExpiring(s.now()) {
		return settings, nil
	}

	tokens, err := s.client.RefreshToken(ctx, settings.BlingRefreshToken)
	if err != nil {
		return nil, err
	}

	if tokens.AccessToken != "" {
		settings.BlingAccessToken = tokens.AccessToken
	}
	if tokens.RefreshToken != "" {
		settings.BlingRefreshToken = tokens.RefreshToken
	}
	if tokens.ExpiresIn > 0 {
		settings.BlingExpiresAt = float64(s.now().Unix() + tokens.ExpiresIn)
	}

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}

	logrus.Info("Token do Bling renovado com sucesso")
	return settings, nil
}

func (s *Service) FetchAllActive(ctx context.Context, accessToken string) ([]domain.Product, int, error) {
	return s.client.FetchAllActive(ctx, accessToken)
}
