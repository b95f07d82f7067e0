package domain

// QuoteItem é um item do orçamento, já normalizado e com o total da linha
// calculado. Existe apenas durante a requisição que gera a imagem.
type QuoteItem struct {
	Name      string  `json:"nome"`
	SKU       string  `json:"sku"`
	Unit      string  `json:"un"`
	Quantity  float64 `json:"quantidade"`
	UnitPrice float64 `json:"preco"`
	LineTotal float64 `json:"total"`
	ImageURL  string  `json:"imagem_url,omitempty"`
}

// Quote é o orçamento pronto para ser desenhado.
type Quote struct {
	Items         []QuoteItem
	Subtotal      float64
	Shipping      float64
	ShippingLabel string
	Total         float64
}

// QuoteArtifact referencia a imagem PNG gerada.
type QuoteArtifact struct {
	Path string `json:"-"`
	URL  string `json:"url"`
}
