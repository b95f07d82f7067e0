package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/odlagro/posv-api/internal/domain"
	"github.com/sirupsen/logrus"
)

const (
	cacheTTL      = 15 * time.Minute
	maxUnfiltered = 100
)

// ProductFetcher busca todos os produtos ativos de uma vez no Bling.
type ProductFetcher interface {
	FetchAllActive(ctx context.Context, accessToken string) ([]domain.Product, int, error)
}

// Cataloger lista e pesquisa produtos usando o cache em memória.
type Cataloger interface {
	// List devolve os produtos filtrados pelo termo de busca. Com termo
	// vazio devolve no máximo 100 produtos; com termo, a busca não tem
	// limite de resultados.
	List(ctx context.Context, accessToken, term string, forceReload bool) (*domain.ProductList, error)
	// Invalidate descarta o cache atual.
	Invalidate()
}

type Service struct {
	fetcher ProductFetcher
	cache   cache
	now     func() time.Time
}

func NewService(fetcher ProductFetcher) *Service {
	return &Service{
		fetcher: fetcher,
		now:     time.Now,
	}
}

func (s *Service) List(ctx context.Context, accessToken, term string, forceReload bool) (*domain.ProductList, error) {
	products, totalActive, err := s.load(ctx, accessToken, forceReload)
	if err != nil {
		return nil, err
	}

	return &domain.ProductList{
		Products:    filter(products, term),
		TotalActive: totalActive,
	}, nil
}

func (s *Service) Invalidate() {
	s.cache.invalidate()
}

func (s *Service) load(ctx context.Context, accessToken string, forceReload bool) ([]domain.Product, int, error) {
	products, totalActive, fetchedAt := s.cache.get()

	fresh := s.now().Sub(fetchedAt) < cacheTTL
	if !forceReload && fresh && len(products) > 0 {
		return products, totalActive, nil
	}

	products, totalActive, err := s.fetcher.FetchAllActive(ctx, accessToken)
	if err != nil {
		return nil, 0, err
	}

	s.cache.set(products, totalActive, s.now())

	logrus.WithFields(logrus.Fields{
		"produtos":     len(products),
		"total_ativos": totalActive,
	}).Info("Cache de produtos do Bling atualizado")

	return products, totalActive, nil
}

// filter aplica a busca. Quando o termo bate exatamente com algum SKU,
// retorna somente os SKUs exatos, evitando que "559" traga também "1559"
// ou "5590".
func filter(products []domain.Product, term string) []domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		if len(products) > maxUnfiltered {
			return products[:maxUnfiltered]
		}
		return products
	}

	var exact []domain.Product
	for _, p := range products {
		if strings.ToLower(strings.TrimSpace(p.SKU)) == term {
			exact = append(exact, p)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	filtered := make([]domain.Product, 0)
	for _, p := range products {
		name := strings.ToLower(p.Name)
		sku := strings.ToLower(p.SKU)
		if strings.Contains(name, term) || strings.Contains(sku, term) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
