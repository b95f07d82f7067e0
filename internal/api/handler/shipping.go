package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/odlagro/posv-api/infrastructure/integrator/melhorenvio"
	"github.com/odlagro/posv-api/infrastructure/repository"
	"github.com/odlagro/posv-api/internal/domain"
	"github.com/odlagro/posv-api/internal/usecases/shipping"
	"github.com/odlagro/posv-api/pkg/apiErrors"
)

type shippingResponse struct {
	Options []domain.ShippingOption `json:"opcoes"`
}

// CalculateShipping cota o frete no provedor pedido pelo front.
func CalculateShipping(settingsRepo repository.SettingsRepository, quoter shipping.Quoter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req shipping.QuoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Payload inválido", nil)
			return
		}

		options, err := quoter.Quote(r.Context(), settingsRepo.Load(), &req)
		if err != nil {
			writeShippingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(shippingResponse{Options: options}); err != nil {
			logrus.WithError(err).Error("Erro ao serializar as opções de frete")
		}
	})
}

func writeShippingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shipping.ErrMissingDestination),
		errors.Is(err, shipping.ErrNoPackages):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, shipping.ErrInvalidPackage),
		errors.Is(err, shipping.ErrMissingDimensions):
		apiErrors.WriteError(w, apiErrors.ErrInvalidPackages, err.Error(), nil)
	case errors.Is(err, shipping.ErrMissingOriginZip),
		errors.Is(err, shipping.ErrMissingCredentials):
		apiErrors.WriteError(w, apiErrors.ErrMissingSettings, err.Error(), nil)
	case errors.Is(err, melhorenvio.ErrUnauthorized):
		apiErrors.WriteError(w, apiErrors.ErrMelhorEnvioToken, err.Error(), nil)
	default:
		logrus.WithError(err).Error("Erro ao cotar o frete")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
	}
}
