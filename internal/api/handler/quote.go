package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/odlagro/posv-api/internal/usecases/quoting"
	"github.com/odlagro/posv-api/pkg/apiErrors"
)

type quoteResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url"`
}

// GenerateQuote gera o PNG do orçamento e devolve a URL com cache buster.
func GenerateQuote(generator quoting.Generator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req quoting.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"Payload inválido: itens precisa ser lista", nil)
			return
		}

		artifact, err := generator.Generate(r.Context(), &req)
		if err != nil {
			logrus.WithError(err).Error("Erro ao gerar o orçamento")
			apiErrors.WriteError(w, apiErrors.ErrRenderFailed, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(quoteResponse{OK: true, URL: artifact.URL}); err != nil {
			logrus.WithError(err).Error("Erro ao serializar a resposta do orçamento")
		}
	})
}
