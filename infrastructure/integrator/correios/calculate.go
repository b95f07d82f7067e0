package correios

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"

	"github.com/odlagro/posv-api/internal/domain"
	"github.com/odlagro/posv-api/pkg/utils"
)

func (c *CorreiosClient) QuoteService(ctx context.Context, params QuoteParams) (*domain.ShippingOption, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Correios.CalcURL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição para os Correios: %w", err)
	}

	query := req.URL.Query()
	query.Set("nCdEmpresa", "")
	query.Set("sDsSenha", "")
	query.Set("nCdServico", params.ServiceCode)
	query.Set("sCepOrigem", utils.OnlyDigits(params.OriginZip))
	query.Set("sCepDestino", utils.OnlyDigits(params.DestinationZip))
	query.Set("nVlPeso", formatNumber(params.WeightKg))
	query.Set("nCdFormato", "1")
	query.Set("nVlComprimento", formatNumber(params.LengthCm))
	query.Set("nVlAltura", formatNumber(params.HeightCm))
	query.Set("nVlLargura", formatNumber(params.WidthCm))
	query.Set("nVlDiametro", "0")
	query.Set("sCdMaoPropria", "N")
	query.Set("nVlValorDeclarado", formatNumber(params.DeclaredValue))
	query.Set("sCdAvisoRecebimento", "N")
	query.Set("StrRetorno", "xml")
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro de comunicação com os Correios: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta dos Correios: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("erro HTTP dos Correios: %d %s", resp.StatusCode, truncate(body, 200))
	}

	result, err := parseCalcResponse(body)
	if err != nil {
		return nil, err
	}

	erro := strings.TrimSpace(result.Erro)
	if erro != "" && erro != "0" && erro != "000" {
		if msg := strings.TrimSpace(result.MsgErro); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, errors.Errorf("erro dos Correios (código %s)", erro)
	}

	prazo, err := strconv.Atoi(strings.TrimSpace(result.PrazoEntrega))
	if err != nil {
		prazo = 0
	}

	name := "SEDEX"
	if params.ServiceCode == ServicePAC {
		name = "PAC"
	}

	return &domain.ShippingOption{
		Name:             name,
		Price:            utils.ParseMoney(result.Valor),
		DeliveryEstimate: prazo,
	}, nil
}

// calcFields são os campos que interessam dentro de <cServico>. O elemento
// raiz varia entre versões do calculador, então os campos são capturados em
// qualquer profundidade.
type calcFields struct {
	Erro         string
	MsgErro      string
	Valor        string
	PrazoEntrega string
}

func parseCalcResponse(body []byte) (*calcFields, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	// O calculador declara encoding="ISO-8859-1"
	decoder.CharsetReader = charset.NewReaderLabel

	fields := &calcFields{}
	found := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New("resposta inválida dos Correios (XML não pôde ser lido)")
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		var target *string
		switch start.Name.Local {
		case "Erro":
			target = &fields.Erro
		case "MsgErro":
			target = &fields.MsgErro
		case "Valor":
			target = &fields.Valor
		case "PrazoEntrega":
			target = &fields.PrazoEntrega
		default:
			continue
		}

		var value string
		if err := decoder.DecodeElement(&value, &start); err != nil {
			return nil, errors.New("resposta inválida dos Correios (XML não pôde ser lido)")
		}
		*target = value
		found = true
	}

	if !found {
		return nil, errors.New("resposta inválida dos Correios (XML não pôde ser lido)")
	}

	return fields, nil
}

// formatNumber formata no padrão esperado pelos Correios (ponto decimal)
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max])
}
