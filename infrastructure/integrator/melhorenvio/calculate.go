package melhorenvio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/odlagro/posv-api/internal/domain"
	"github.com/odlagro/posv-api/pkg/utils"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// IDs de serviço do Melhor Envio: 1=PAC, 2=SEDEX, 18=Mini Envios. Fixos
// para bater com a calculadora web.
const serviceFilter = "1,2,18"

type calculateRequest struct {
	From     zipRef           `json:"from"`
	To       zipRef           `json:"to"`
	Products []requestProduct `json:"products"`
	Options  requestOptions   `json:"options"`
	Services string           `json:"services"`
}

type zipRef struct {
	PostalCode string `json:"postal_code"`
}

type requestProduct struct {
	ID             string  `json:"id"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Length         float64 `json:"length"`
	Weight         float64 `json:"weight"`
	InsuranceValue float64 `json:"insurance_value"`
	Quantity       int     `json:"quantity"`
}

type requestOptions struct {
	Receipt bool `json:"receipt"`
	OwnHand bool `json:"own_hand"`
}

// calculatedService cobre os campos relevantes de cada serviço retornado;
// preços podem vir como número ou string com vírgula.
type calculatedService struct {
	Name    string `json:"name"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
	Price              any `json:"price"`
	CustomPrice        any `json:"custom_price"`
	Cost               any `json:"cost"`
	DeliveryTime       any `json:"delivery_time"`
	CustomDeliveryTime any `json:"custom_delivery_time"`
	DeliveryRange      any `json:"delivery_range"`
	Error              any `json:"error"`
}

func (c *MelhorEnvioClient) Calculate(ctx context.Context, params CalculateParams) ([]domain.ShippingOption, error) {
	products := buildProducts(params.Packages)
	if len(products) == 0 {
		return nil, ErrNoValidPackages
	}

	body := calculateRequest{
		From:     zipRef{PostalCode: params.OriginZip},
		To:       zipRef{PostalCode: params.DestinationZip},
		Products: products,
		Services: serviceFilter,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição: %w", err)
	}

	url := c.baseURL(params.Environment) + "/shipment/calculate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+params.Token)
	req.Header.Set("User-Agent", c.cfg.MelhorEnvio.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro de comunicação com o Melhor Envio: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do Melhor Envio: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("erro HTTP ao calcular frete: %d %s", resp.StatusCode, truncate(respBody, 200))
	}

	return parseOptions(respBody)
}

// buildProducts descarta pacotes sem largura, altura, comprimento ou peso.
func buildProducts(packages []domain.Package) []requestProduct {
	var products []requestProduct

	for _, p := range packages {
		width := utils.ParseMoney(p.Width)
		height := utils.ParseMoney(p.Height)
		length := utils.ParseMoney(p.Length)
		weight := utils.ParseMoney(p.Weight)

		if width == 0 || height == 0 || length == 0 || weight == 0 {
			continue
		}

		quantity := int(utils.ParseMoney(p.Quantity))
		if quantity <= 0 {
			quantity = 1
		}

		if weight < 0.1 {
			weight = 0.1
		}

		products = append(products, requestProduct{
			ID:             "POSV_ITEM",
			Width:          width,
			Height:         height,
			Length:         length,
			Weight:         weight,
			InsuranceValue: utils.ParseMoney(p.Insurance),
			Quantity:       quantity,
		})
	}

	return products
}

// parseOptions aceita os dois formatos de resposta do Melhor Envio: lista
// de serviços ou mapa chaveado pelo ID do serviço.
func parseOptions(body []byte) ([]domain.ShippingOption, error) {
	var asList []calculatedService
	if err := json.Unmarshal(body, &asList); err == nil {
		options := make([]domain.ShippingOption, 0, len(asList))
		for _, service := range asList {
			options = append(options, normalizeService(service, "Serviço"))
		}
		return options, nil
	}

	// Mapa chaveado pelo ID do serviço; entradas que não são objeto
	// (mensagens de erro soltas) são puladas.
	var asMap map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &asMap); err == nil {
		options := make([]domain.ShippingOption, 0, len(asMap))
		for key, raw := range asMap {
			var service calculatedService
			if err := json.Unmarshal(raw, &service); err != nil {
				continue
			}
			options = append(options, normalizeService(service, key))
		}
		return options, nil
	}

	return nil, errors.Errorf("resposta inesperada do Melhor Envio: %s", truncate(body, 200))
}

func normalizeService(service calculatedService, fallbackName string) domain.ShippingOption {
	name := service.Name
	if name == "" {
		name = service.Company.Name
	}
	if name == "" {
		name = fallbackName
	}

	price := utils.ParseMoney(service.CustomPrice)
	if price == 0 {
		price = utils.ParseMoney(service.Price)
	}
	if price == 0 {
		price = utils.ParseMoney(service.Cost)
	}

	prazo := service.CustomDeliveryTime
	if prazo == nil {
		prazo = service.DeliveryTime
	}
	if prazo == nil {
		prazo = service.DeliveryRange
	}
	if prazo == nil {
		prazo = map[string]any{}
	}

	return domain.ShippingOption{
		Name:             name,
		Price:            price,
		DeliveryEstimate: prazo,
	}
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max])
}
