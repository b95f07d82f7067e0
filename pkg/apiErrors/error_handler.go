package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro retornados pela API
const (
	// Erros de autenticação com serviços externos (Bling / Melhor Envio)
	ErrBlingNotConnected   = "AUTH_001" // Bling ainda não autorizado via OAuth
	ErrBlingUnauthorized   = "AUTH_002" // Bling recusou o token (401)
	ErrBlingRefreshFailed  = "AUTH_003" // Falha ao renovar o token do Bling
	ErrMissingOAuthClient  = "AUTH_004" // BLING_CLIENT_ID / BLING_CLIENT_SECRET ausentes
	ErrInvalidOAuthState   = "AUTH_005" // State inválido no callback (possível CSRF)
	ErrMelhorEnvioToken    = "AUTH_006" // Token do Melhor Envio ausente ou recusado
	ErrAuthorizationDenied = "AUTH_007" // Usuário negou a autorização no Bling

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidPackages     = "VAL_003" // Pacotes da cotação inválidos

	// Erros de configuração persistida
	ErrMissingSettings = "CFG_001" // Configuração necessária não preenchida

	// Erros do servidor e de serviços externos
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_002" // Erro em serviço externo (Bling/Correios/Melhor Envio)

	// Erros de renderização do orçamento
	ErrRenderFailed = "REN_001" // Falha ao gerar a imagem do orçamento
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrBlingNotConnected:   http.StatusBadRequest,
	ErrBlingUnauthorized:   http.StatusUnauthorized,
	ErrBlingRefreshFailed:  http.StatusUnauthorized,
	ErrMissingOAuthClient:  http.StatusInternalServerError,
	ErrInvalidOAuthState:   http.StatusBadRequest,
	ErrMelhorEnvioToken:    http.StatusUnauthorized,
	ErrAuthorizationDenied: http.StatusBadRequest,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidPackages:     http.StatusBadRequest,
	ErrMissingSettings:     http.StatusBadRequest,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrRenderFailed:        http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
