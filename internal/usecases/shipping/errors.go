package shipping

import "github.com/pkg/errors"

// Erros de validação da cotação de frete
var (
	ErrMissingDestination = errors.New("CEP de destino não informado")
	ErrNoPackages         = errors.New("nenhum pacote informado para cotação")
	ErrMissingOriginZip   = errors.New("configure o CEP de origem na tela de configurações para cotar pelos Correios")
	ErrMissingCredentials = errors.New("configure o token do Melhor Envio e o CEP de origem na tela de configurações")
	ErrInvalidPackage     = errors.New("os dados do pacote são inválidos")
	ErrMissingDimensions  = errors.New("preencha largura, altura, comprimento e peso para cotar pelos Correios")
	ErrNoQuotes           = errors.New("não foi possível cotar pelos Correios")
)
