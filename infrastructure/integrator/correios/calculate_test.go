package correios

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/odlagro/posv-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xmlOK = `<?xml version="1.0" encoding="ISO-8859-1"?>
<cResultado>
  <Servicos>
    <cServico>
      <Codigo>4510</Codigo>
      <Valor>1.045,10</Valor>
      <PrazoEntrega>7</PrazoEntrega>
      <Erro>0</Erro>
      <MsgErro></MsgErro>
    </cServico>
  </Servicos>
</cResultado>`

const xmlErro = `<?xml version="1.0" encoding="ISO-8859-1"?>
<cResultado>
  <Servicos>
    <cServico>
      <Codigo>4014</Codigo>
      <Valor>0,00</Valor>
      <PrazoEntrega>0</PrazoEntrega>
      <Erro>-888</Erro>
      <MsgErro>CEP de origem invalido.</MsgErro>
    </cServico>
  </Servicos>
</cResultado>`

func testConfig(calcURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Correios.CalcURL = calcURL
	return cfg
}

func TestQuoteService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "04510", q.Get("nCdServico"))
		assert.Equal(t, "35200000", q.Get("sCepOrigem"))
		assert.Equal(t, "01310100", q.Get("sCepDestino"))
		assert.Equal(t, "0.5", q.Get("nVlPeso"))
		assert.Equal(t, "xml", q.Get("StrRetorno"))

		fmt.Fprint(w, xmlOK)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	option, err := client.QuoteService(context.Background(), QuoteParams{
		OriginZip:      "35200-000",
		DestinationZip: "01310-100",
		WeightKg:       0.5,
		LengthCm:       20,
		HeightCm:       10,
		WidthCm:        15,
		ServiceCode:    ServicePAC,
	})
	require.NoError(t, err)

	assert.Equal(t, "PAC", option.Name)
	assert.Equal(t, 1045.10, option.Price)
	assert.Equal(t, 7, option.DeliveryEstimate)
}

func TestQuoteService_ErroDoCalculador(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, xmlErro)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	_, err := client.QuoteService(context.Background(), QuoteParams{
		OriginZip:      "00000000",
		DestinationZip: "01310100",
		WeightKg:       1,
		LengthCm:       20,
		HeightCm:       10,
		WidthCm:        15,
		ServiceCode:    ServiceSEDEX,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CEP de origem invalido")
}

func TestQuoteService_XMLInvalido(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>isso não é o calculador</html>")
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	_, err := client.QuoteService(context.Background(), QuoteParams{
		OriginZip:      "35200000",
		DestinationZip: "01310100",
		WeightKg:       1,
		LengthCm:       20,
		HeightCm:       10,
		WidthCm:        15,
		ServiceCode:    ServicePAC,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "XML")
}

func TestParseCalcResponse_ErroSemMensagem(t *testing.T) {
	fields, err := parseCalcResponse([]byte(`<r><Erro>7</Erro><MsgErro></MsgErro></r>`))
	require.NoError(t, err)
	assert.Equal(t, "7", fields.Erro)
}

func TestParseCalcResponse_Encodings(t *testing.T) {
	t.Run("ISO-8859-1 declarado com acento", func(t *testing.T) {
		// "inválido" com o "á" em Latin-1 (0xE1), como o calculador envia
		body := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
			"<cResultado><Servicos><cServico>" +
			"<Valor>0,00</Valor><PrazoEntrega>0</PrazoEntrega>" +
			"<Erro>-888</Erro><MsgErro>CEP de origem inv\xe1lido.</MsgErro>" +
			"</cServico></Servicos></cResultado>")

		fields, err := parseCalcResponse(body)
		require.NoError(t, err)
		assert.Equal(t, "-888", fields.Erro)
		assert.Equal(t, "CEP de origem inválido.", fields.MsgErro)
	})

	t.Run("sem declaração XML", func(t *testing.T) {
		body := []byte(`<cResultado><Servicos><cServico>` +
			`<Valor>31,05</Valor><PrazoEntrega>5</PrazoEntrega><Erro>0</Erro>` +
			`</cServico></Servicos></cResultado>`)

		fields, err := parseCalcResponse(body)
		require.NoError(t, err)
		assert.Equal(t, "31,05", fields.Valor)
		assert.Equal(t, "5", fields.PrazoEntrega)
	})

	t.Run("UTF-8 declarado", func(t *testing.T) {
		body := []byte(`<?xml version="1.0" encoding="UTF-8"?>` +
			`<cResultado><Servicos><cServico>` +
			`<Valor>20,00</Valor><PrazoEntrega>3</PrazoEntrega><Erro>0</Erro>` +
			`</cServico></Servicos></cResultado>`)

		fields, err := parseCalcResponse(body)
		require.NoError(t, err)
		assert.Equal(t, "20,00", fields.Valor)
	})
}
