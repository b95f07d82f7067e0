package domain

// Product é o produto do Bling já normalizado para o front do PDV.
// Nunca é persistido: vive apenas no cache em memória do processo.
type Product struct {
	ID    string  `json:"id"`
	SKU   string  `json:"sku"`
	Name  string  `json:"nome"`
	Price float64 `json:"preco"`
	// Peso em kg, apenas para exibição. Quando ausente o cálculo de frete
	// assume 0.5 kg.
	Weight   *float64 `json:"peso"`
	Stock    *float64 `json:"estoque"`
	ImageURL string   `json:"imagem_url,omitempty"`
}

// ProductList é o resultado de uma consulta ao catálogo.
type ProductList struct {
	Products    []Product `json:"produtos"`
	TotalActive int       `json:"total_ativos"`
}
