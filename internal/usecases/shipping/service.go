package shipping

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/odlagro/posv-api/infrastructure/integrator/correios"
	"github.com/odlagro/posv-api/infrastructure/integrator/melhorenvio"
	"github.com/odlagro/posv-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/odlagro/posv-api/pkg/utils"
)

// QuoteRequest é o payload de POST /v1/frete/calcular.
type QuoteRequest struct {
	DestinationZip string           `json:"cep_destino" validate:"required"`
	Packages       []domain.Package `json:"packages" validate:"required,min=1"`
	Provider       string           `json:"provider"`
}

// Quoter cota frete no provedor escolhido e devolve as opções já
// normalizadas (nome, preço e prazo).
type Quoter interface {
	Quote(ctx context.Context, settings *domain.Settings, req *QuoteRequest) ([]domain.ShippingOption, error)
}

type Service struct {
	validate    *validator.Validate
	correios    correios.Client
	melhorEnvio melhorenvio.Client
}

func NewService(correiosClient correios.Client, melhorEnvioClient melhorenvio.Client) *Service {
	return &Service{
		validate:    validator.New(),
		correios:    correiosClient,
		melhorEnvio: melhorEnvioClient,
	}
}

func (s *Service) Quote(ctx context.Context, settings *domain.Settings, req *QuoteRequest) ([]domain.ShippingOption, error) {
	req.DestinationZip = utils.OnlyDigits(req.DestinationZip)

	if err := s.validate.Struct(req); err != nil {
		return nil, translateValidation(err)
	}

	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	if provider == "" {
		provider = domain.ProviderMelhorEnvio
	}

	originZip := utils.OnlyDigits(settings.OriginZipCode)

	if provider == domain.ProviderCorreios {
		return s.quoteCorreios(ctx, originZip, req)
	}

	return s.quoteMelhorEnvio(ctx, settings, originZip, req)
}

// quoteCorreios cota PAC e SEDEX para o primeiro pacote. As duas chamadas
// são independentes; devolve a união das que funcionaram.
func (s *Service) quoteCorreios(ctx context.Context, originZip string, req *QuoteRequest) ([]domain.ShippingOption, error) {
	if originZip == "" {
		return nil, ErrMissingOriginZip
	}

	pkg := req.Packages[0]

	width, errW := parseDimension(pkg.Width)
	height, errH := parseDimension(pkg.Height)
	length, errL := parseDimension(pkg.Length)
	weight, errP := parseDimension(pkg.Weight)
	if errW != nil || errH != nil || errL != nil || errP != nil {
		return nil, ErrInvalidPackage
	}

	if width == 0 || height == 0 || length == 0 || weight == 0 {
		return nil, ErrMissingDimensions
	}

	params := correios.QuoteParams{
		OriginZip:      originZip,
		DestinationZip: req.DestinationZip,
		WeightKg:       weight,
		LengthCm:       length,
		HeightCm:       height,
		WidthCm:        width,
	}

	var options []domain.ShippingOption

	params.ServiceCode = correios.ServicePAC
	pac, errPAC := s.correios.QuoteService(ctx, params)
	if errPAC != nil {
		logrus.WithError(errPAC).Warn("Falha ao cotar PAC nos Correios")
	} else {
		options = append(options, *pac)
	}

	params.ServiceCode = correios.ServiceSEDEX
	sedex, errSEDEX := s.correios.QuoteService(ctx, params)
	if errSEDEX != nil {
		logrus.WithError(errSEDEX).Warn("Falha ao cotar SEDEX nos Correios")
	} else {
		options = append(options, *sedex)
	}

	if len(options) == 0 {
		if errPAC != nil {
			return nil, errPAC
		}
		if errSEDEX != nil {
			return nil, errSEDEX
		}
		return nil, ErrNoQuotes
	}

	return options, nil
}

func (s *Service) quoteMelhorEnvio(ctx context.Context, settings *domain.Settings, originZip string, req *QuoteRequest) ([]domain.ShippingOption, error) {
	if settings.MelhorEnvioToken == "" || originZip == "" {
		return nil, ErrMissingCredentials
	}

	options, err := s.melhorEnvio.Calculate(ctx, melhorenvio.CalculateParams{
		Token:          settings.MelhorEnvioToken,
		Environment:    settings.MelhorEnvioEnv,
		OriginZip:      originZip,
		DestinationZip: req.DestinationZip,
		Packages:       req.Packages,
	})
	if err != nil {
		if errors.Is(err, melhorenvio.ErrNoValidPackages) {
			return nil, ErrInvalidPackage
		}
		return nil, err
	}

	return options, nil
}

func translateValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "DestinationZip":
				return ErrMissingDestination
			case "Packages":
				return ErrNoPackages
			}
		}
	}
	return err
}

// parseDimension converte valores vindos do front (número ou string com
// vírgula) em float64. String não numérica é erro, não zero.
func parseDimension(v any) (float64, error) {
	switch value := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return value, nil
	case float32:
		return float64(value), nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", "."), 64)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	default:
		return 0, errors.Errorf("dimensão com tipo inesperado: %T", v)
	}
}
