package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/odlagro/posv-api/internal/domain"
)

// Normalize converte um produto cru do Bling no formato usado pelo front.
// O Bling não é consistente entre versões/endpoints, então cada campo é
// extraído por uma cadeia de prioridade: o primeiro valor não vazio vence.
func Normalize(raw map[string]any) domain.Product {
	sku := firstString(raw, "codigo", "codigoItem", "idProduto", "id")

	name := firstString(raw, "descricao", "nome", "descricaoProduto")
	if name == "" {
		name = fmt.Sprintf("Produto %s", firstString(raw, "id"))
	}

	id := firstString(raw, "id", "idProduto")
	if id == "" {
		id = sku
	}
	if id == "" {
		id = name
	}

	price, _ := firstNumber(raw, "preco", "precoVenda", "valorUnitario")

	var stock *float64
	if v, ok := firstNumber(raw, "estoque", "saldo", "quantidadeEstoque"); ok {
		stock = &v
	}

	// Peso: guardamos o valor original (se existir) apenas para exibição;
	// o cálculo de frete usa 0.5 kg quando ausente.
	var weight *float64
	if v, ok := firstNumber(raw, "pesoLiquido", "pesoBruto", "peso_liquido", "peso_bruto"); ok {
		weight = &v
	}

	return domain.Product{
		ID:       id,
		SKU:      sku,
		Name:     name,
		Price:    price,
		Weight:   weight,
		Stock:    stock,
		ImageURL: extractImageURL(raw),
	}
}

// extractImageURL tenta extrair o link da imagem das várias estruturas que
// o Bling já usou: campo direto, objeto ou lista de objetos.
func extractImageURL(raw map[string]any) string {
	for _, key := range []string{"imagemURL", "imagemUrl", "imageURL", "imageUrl"} {
		if s := stringValue(raw[key]); s != "" {
			return s
		}
	}

	var image any
	for _, key := range []string{"imagem", "image", "imagens"} {
		if raw[key] != nil {
			image = raw[key]
			break
		}
	}

	switch v := image.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return imageURLFromObject(v)
	case []any:
		if len(v) == 0 {
			return ""
		}
		if first, ok := v[0].(map[string]any); ok {
			return imageURLFromObject(first)
		}
	}

	return ""
}

func imageURLFromObject(obj map[string]any) string {
	for _, key := range []string{"url", "link", "href", "urlImagem", "urlImagemMiniatura"} {
		if s := stringValue(obj[key]); s != "" {
			return s
		}
	}
	return ""
}

// firstString percorre as chaves na ordem dada e retorna o primeiro valor
// não vazio, convertido para string.
func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringValue(raw[key]); s != "" {
			return s
		}
	}
	return ""
}

// firstNumber percorre as chaves na ordem dada e retorna o primeiro valor
// numérico válido (aceita string com vírgula decimal).
func firstNumber(raw map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if f, ok := numberValue(raw[key]); ok {
			return f, true
		}
	}
	return 0, false
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
