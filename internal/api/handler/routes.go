package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/sessions"
	jsoniter "github.com/json-iterator/go"

	"github.com/odlagro/posv-api/infrastructure/integrator/bling"
	"github.com/odlagro/posv-api/infrastructure/repository"
	"github.com/odlagro/posv-api/internal/api/handler/router"
	"github.com/odlagro/posv-api/internal/config"
	"github.com/odlagro/posv-api/internal/usecases/catalog"
	"github.com/odlagro/posv-api/internal/usecases/quoting"
	"github.com/odlagro/posv-api/internal/usecases/shipping"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func BlingAuth(cfg *config.Config, store sessions.Store, blingService bling.Integrator, catalogService catalog.Cataloger) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/bling/login",
			Method:  http.MethodGet,
			Handler: BlingLogin(cfg, store, blingService),
		},
		{
			// Caminho curto porque é o redirect_uri cadastrado no app do Bling.
			Path:    "/callback",
			Method:  http.MethodGet,
			Handler: BlingCallback(blingService, catalogService, store),
		},
	}
}

func Products(settingsRepo repository.SettingsRepository, blingService bling.Integrator, catalogService catalog.Cataloger) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/produtos",
			Method:  http.MethodGet,
			Handler: ListProducts(settingsRepo, blingService, catalogService),
		},
	}
}

func Shipping(settingsRepo repository.SettingsRepository, quoter shipping.Quoter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/frete/calcular",
			Method:  http.MethodPost,
			Handler: CalculateShipping(settingsRepo, quoter),
		},
	}
}

func Quotes(generator quoting.Generator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/orcamentos",
			Method:  http.MethodPost,
			Handler: GenerateQuote(generator),
		},
	}
}

func Settings(settingsRepo repository.SettingsRepository, uploadsDir string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/configuracoes",
			Method:  http.MethodGet,
			Handler: GetSettings(settingsRepo, uploadsDir),
		},
		{
			Path:    "/v1/configuracoes",
			Method:  http.MethodPut,
			Handler: UpdateSettings(settingsRepo, uploadsDir),
		},
		{
			Path:    "/v1/configuracoes/logo",
			Method:  http.MethodPost,
			Handler: UploadLogo(uploadsDir),
		},
	}
}

// Static serve os artefatos gerados (orçamento e logo) a partir do
// diretório pai de uploads.
func Static(uploadsDir string) []router.Route {
	staticRoot := filepath.Dir(uploadsDir)
	return []router.Route{
		{
			Path:    "/static/*filepath",
			Method:  http.MethodGet,
			Handler: http.StripPrefix("/static/", http.FileServer(http.Dir(staticRoot))),
		},
	}
}
