package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/odlagro/posv-api/infrastructure/integrator/bling"
	"github.com/odlagro/posv-api/infrastructure/repository"
	"github.com/odlagro/posv-api/internal/api/handler"
	"github.com/odlagro/posv-api/internal/api/handler/router"
	"github.com/odlagro/posv-api/internal/config"
	"github.com/odlagro/posv-api/internal/usecases/catalog"
	"github.com/odlagro/posv-api/internal/usecases/quoting"
	"github.com/odlagro/posv-api/internal/usecases/shipping"
	"github.com/odlagro/posv-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	settingsRepo repository.SettingsRepository,
	sessionStore sessions.Store,
	blingService bling.Integrator,
	catalogService catalog.Cataloger,
	shippingService shipping.Quoter,
	quotingService quoting.Generator,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.BlingAuth(cfg, sessionStore, blingService, catalogService)...),
		router.WithRoutes(handler.Products(settingsRepo, blingService, catalogService)...),
		router.WithRoutes(handler.Shipping(settingsRepo, shippingService)...),
		router.WithRoutes(handler.Quotes(quotingService)...),
		router.WithRoutes(handler.Settings(settingsRepo, cfg.Storage.UploadsDir)...),
		router.WithRoutes(handler.Static(cfg.Storage.UploadsDir)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
	}

	chain := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
