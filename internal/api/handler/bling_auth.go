package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/odlagro/posv-api/infrastructure/integrator/bling"
	"github.com/odlagro/posv-api/infrastructure/integrator/bling/blingclient"
	"github.com/odlagro/posv-api/internal/config"
	"github.com/odlagro/posv-api/internal/usecases/catalog"
	"github.com/odlagro/posv-api/pkg/apiErrors"
	"github.com/odlagro/posv-api/pkg/utils"
)

const (
	oauthSessionName = "posv_oauth"
	oauthStateKey    = "bling_oauth_state"
)

// BlingLogin gera o state anti-CSRF, guarda na sessão e redireciona para a
// tela de consentimento do Bling.
func BlingLogin(cfg *config.Config, store sessions.Store, service bling.Integrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !cfg.OAuthConfigured() {
			apiErrors.WriteError(w, apiErrors.ErrMissingOAuthClient,
				"Configure BLING_CLIENT_ID, BLING_CLIENT_SECRET e BLING_REDIRECT_URI no arquivo .env", nil)
			return
		}

		state, err := utils.GenerateOAuthState()
		if err != nil {
			logrus.WithError(err).Error("Erro ao gerar o state do OAuth")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar a autorização", nil)
			return
		}

		session, _ := store.Get(r, oauthSessionName)
		session.Values[oauthStateKey] = state
		if err := session.Save(r, w); err != nil {
			logrus.WithError(err).Error("Erro ao gravar a sessão do OAuth")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar a autorização", nil)
			return
		}

		url, err := service.AuthorizeURL(state)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingOAuthClient, err.Error(), nil)
			return
		}

		http.Redirect(w, r, url, http.StatusFound)
	})
}

// BlingCallback troca o code por tokens e invalida o cache de produtos,
// já que o novo token pode pertencer a outra conta.
func BlingCallback(service bling.Integrator, catalogService catalog.Cataloger, store sessions.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if errParam := strings.TrimSpace(query.Get("error")); errParam != "" {
			apiErrors.WriteError(w, apiErrors.ErrAuthorizationDenied,
				"Autorização negada ou falhou no Bling: "+errParam, nil)
			return
		}

		state := strings.TrimSpace(query.Get("state"))
		session, _ := store.Get(r, oauthSessionName)
		if expected, ok := session.Values[oauthStateKey].(string); ok && expected != "" && state != expected {
			apiErrors.WriteError(w, apiErrors.ErrInvalidOAuthState,
				"State inválido na resposta do Bling (possível CSRF), tente conectar novamente", nil)
			return
		}
		delete(session.Values, oauthStateKey)
		_ = session.Save(r, w)

		code := strings.TrimSpace(query.Get("code"))
		if code == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData,
				"Callback do Bling sem o parâmetro 'code'", nil)
			return
		}

		if _, err := service.Connect(r.Context(), code); err != nil {
			logrus.WithError(err).Error("Erro ao trocar o code por tokens no Bling")

			if errors.Is(err, blingclient.ErrMissingOAuthCredentials) {
				apiErrors.WriteError(w, apiErrors.ErrMissingOAuthClient, err.Error(), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrExternalService,
				"Erro ao trocar code por tokens: "+err.Error(), nil)
			return
		}

		catalogService.Invalidate()

		http.Redirect(w, r, "/", http.StatusFound)
	})
}
