package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/odlagro/posv-api/infrastructure/integrator/bling"
	"github.com/odlagro/posv-api/infrastructure/integrator/bling/blingclient"
	"github.com/odlagro/posv-api/infrastructure/repository"
	"github.com/odlagro/posv-api/internal/usecases/catalog"
	"github.com/odlagro/posv-api/pkg/apiErrors"
)

// ListProducts renova o token se necessário e devolve os produtos do
// cache, filtrados pelo termo de busca.
func ListProducts(settingsRepo repository.SettingsRepository, blingService bling.Integrator, catalogService catalog.Cataloger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		settings := settingsRepo.Load()
		if !settings.BlingConnected() {
			apiErrors.WriteError(w, apiErrors.ErrBlingNotConnected,
				"Clique em 'Conectar Bling' para autorizar e gerar o token automaticamente", nil)
			return
		}

		settings, err := blingService.EnsureValidToken(r.Context(), settings)
		if err != nil {
			logrus.WithError(err).Error("Erro ao renovar o token do Bling")
			apiErrors.WriteError(w, apiErrors.ErrBlingRefreshFailed,
				"Falha ao renovar o token do Bling, refaça a conexão", nil)
			return
		}

		term := r.URL.Query().Get("busca")
		forceReload := r.URL.Query().Get("reload") == "1"

		list, err := catalogService.List(r.Context(), settings.BlingAccessToken, term, forceReload)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar produtos do Bling")

			if errors.Is(err, blingclient.ErrUnauthorized) {
				apiErrors.WriteError(w, apiErrors.ErrBlingUnauthorized,
					"Bling recusou o token, refaça a conexão", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(list); err != nil {
			logrus.WithError(err).Error("Erro ao serializar a lista de produtos")
		}
	})
}
