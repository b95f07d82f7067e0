package quoting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/odlagro/posv-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/odlagro/posv-api/pkg/utils"
)

// ErrInvalidItems indica que o payload não trouxe uma lista de itens.
var ErrInvalidItems = errors.New("payload inválido: itens precisa ser lista")

// GenerateRequest é o payload de POST /v1/orcamentos. As chaves dos itens
// aceitam os nomes em português e em inglês porque o front antigo enviava
// os dois formatos.
type GenerateRequest struct {
	Items         []map[string]any `json:"itens"`
	ItemsAlias    []map[string]any `json:"items"`
	Shipping      any              `json:"frete"`
	ShippingLabel string           `json:"frete_nome"`
}

// Generator monta o orçamento e gera o PNG em disco.
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*domain.QuoteArtifact, error)
}

type Service struct {
	renderer *Renderer
	now      func() time.Time
}

func NewService(renderer *Renderer) *Service {
	return &Service{
		renderer: renderer,
		now:      time.Now,
	}
}

func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*domain.QuoteArtifact, error) {
	if req == nil {
		return nil, ErrInvalidItems
	}

	items := req.Items
	if items == nil {
		items = req.ItemsAlias
	}

	quote := buildQuote(items, utils.ParseMoney(req.Shipping), req.ShippingLabel)

	path, err := s.renderer.Render(ctx, quote, s.now())
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"itens": len(quote.Items),
		"total": quote.Total,
	}).Info("Orçamento gerado")

	return &domain.QuoteArtifact{
		Path: path,
		URL:  fmt.Sprintf("/%s?t=%d", strings.ReplaceAll(path, "\\", "/"), s.now().Unix()),
	}, nil
}

// buildQuote normaliza os itens e calcula subtotal e total geral.
func buildQuote(items []map[string]any, shipping float64, shippingLabel string) *domain.Quote {
	quote := &domain.Quote{
		Shipping:      shipping,
		ShippingLabel: shippingLabel,
	}

	for _, raw := range items {
		item := normalizeItem(raw)
		quote.Subtotal += item.LineTotal
		quote.Items = append(quote.Items, item)
	}

	quote.Total = quote.Subtotal + quote.Shipping
	return quote
}

func normalizeItem(raw map[string]any) domain.QuoteItem {
	name := strings.TrimSpace(firstString(raw, "nome", "name"))
	sku := strings.TrimSpace(firstString(raw, "sku", "codigo", "code"))

	unit := strings.TrimSpace(firstString(raw, "un"))
	if unit == "" {
		unit = "UN"
	}

	quantity := utils.ParseMoney(firstValue(raw, "quantidade", "qty"))
	if quantity <= 0 {
		quantity = 1
	}

	price := utils.ParseMoney(firstValue(raw, "preco", "price"))

	return domain.QuoteItem{
		Name:      name,
		SKU:       sku,
		Unit:      unit,
		Quantity:  quantity,
		UnitPrice: price,
		LineTotal: price * quantity,
		ImageURL:  strings.TrimSpace(firstString(raw, "imagem_url", "imagem", "image_url")),
	}
}

func firstValue(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
