package domain

// Package é um volume a ser cotado. Dimensões em cm, peso em kg.
// Os campos chegam do front como número ou string ("20" / "20,5").
type Package struct {
	Width     any `json:"width"`
	Height    any `json:"height"`
	Length    any `json:"length"`
	Weight    any `json:"weight"`
	Insurance any `json:"insurance"`
	Quantity  any `json:"quantity"`
}

// ShippingOption é uma opção de frete normalizada, igual para qualquer
// transportadora. Prazo é repassado como veio do serviço: os Correios
// devolvem dias (int), o Melhor Envio pode devolver um objeto de faixa.
type ShippingOption struct {
	Name             string  `json:"nome"`
	Price            float64 `json:"preco"`
	DeliveryEstimate any     `json:"prazo"`
}

// Provedores de cotação suportados
const (
	ProviderMelhorEnvio = "melhorenvio"
	ProviderCorreios    = "correios"
)
