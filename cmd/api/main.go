package main

import (
	"context"
	"time"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"github.com/odlagro/posv-api/infrastructure/integrator/bling"
	"github.com/odlagro/posv-api/infrastructure/integrator/bling/blingclient"
	"github.com/odlagro/posv-api/infrastructure/integrator/correios"
	"github.com/odlagro/posv-api/infrastructure/integrator/melhorenvio"
	"github.com/odlagro/posv-api/infrastructure/repository"
	"github.com/odlagro/posv-api/internal/api"
	"github.com/odlagro/posv-api/internal/config"
	"github.com/odlagro/posv-api/internal/usecases/catalog"
	"github.com/odlagro/posv-api/internal/usecases/quoting"
	"github.com/odlagro/posv-api/internal/usecases/shipping"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settingsRepo := repository.NewSettingsRepository(cfg.Storage.SettingsPath)

	blingService := bling.New(cfg, blingclient.NewClient(cfg), settingsRepo)
	catalogService := catalog.NewService(blingService)

	shippingService := shipping.NewService(
		correios.NewClient(cfg),
		melhorenvio.NewClient(cfg),
	)

	renderer, err := quoting.NewRenderer(cfg.Storage.UploadsDir)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar o renderizador de orçamentos")
	}
	quotingService := quoting.NewService(renderer)

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionKey))

	server, err := api.New(
		cfg,
		settingsRepo,
		sessionStore,
		blingService,
		catalogService,
		shippingService,
		quotingService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
