package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/odlagro/posv-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fetcherStub struct {
	calls    int
	products []domain.Product
	total    int
	err      error
}

func (f *fetcherStub) FetchAllActive(_ context.Context, _ string) ([]domain.Product, int, error) {
	f.calls++
	return f.products, f.total, f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestList_Cache(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	products := []domain.Product{
		{ID: "1", SKU: "559", Name: "Ração Premium"},
		{ID: "2", SKU: "1559", Name: "Ração Filhotes"},
	}

	t.Run("segunda chamada dentro do TTL usa o cache", func(t *testing.T) {
		fetcher := &fetcherStub{products: products, total: 2}
		service := NewService(fetcher)
		service.now = fixedClock(base)

		_, err := service.List(ctx, "token", "", false)
		assert.NoError(t, err)

		service.now = fixedClock(base.Add(14 * time.Minute))
		list, err := service.List(ctx, "token", "", false)
		assert.NoError(t, err)
		assert.Equal(t, 1, fetcher.calls)
		assert.Len(t, list.Products, 2)
		assert.Equal(t, 2, list.TotalActive)
	})

	t.Run("cache expirado busca de novo", func(t *testing.T) {
		fetcher := &fetcherStub{products: products, total: 2}
		service := NewService(fetcher)
		service.now = fixedClock(base)

		_, err := service.List(ctx, "token", "", false)
		assert.NoError(t, err)

		service.now = fixedClock(base.Add(16 * time.Minute))
		_, err = service.List(ctx, "token", "", false)
		assert.NoError(t, err)
		assert.Equal(t, 2, fetcher.calls)
	})

	t.Run("reload forçado ignora o cache", func(t *testing.T) {
		fetcher := &fetcherStub{products: products, total: 2}
		service := NewService(fetcher)
		service.now = fixedClock(base)

		_, err := service.List(ctx, "token", "", false)
		assert.NoError(t, err)

		_, err = service.List(ctx, "token", "", true)
		assert.NoError(t, err)
		assert.Equal(t, 2, fetcher.calls)
	})

	t.Run("cache vazio não é reaproveitado", func(t *testing.T) {
		fetcher := &fetcherStub{products: nil, total: 0}
		service := NewService(fetcher)
		service.now = fixedClock(base)

		_, err := service.List(ctx, "token", "", false)
		assert.NoError(t, err)

		_, err = service.List(ctx, "token", "", false)
		assert.NoError(t, err)
		assert.Equal(t, 2, fetcher.calls)
	})

	t.Run("invalidate descarta o cache", func(t *testing.T) {
		fetcher := &fetcherStub{products: products, total: 2}
		service := NewService(fetcher)
		service.now = fixedClock(base)

		_, err := service.List(ctx, "token", "", false)
		assert.NoError(t, err)

		service.Invalidate()

		_, err = service.List(ctx, "token", "", false)
		assert.NoError(t, err)
		assert.Equal(t, 2, fetcher.calls)
	})

	t.Run("erro do Bling é propagado", func(t *testing.T) {
		fetcher := &fetcherStub{err: errors.New("falha na API")}
		service := NewService(fetcher)
		service.now = fixedClock(base)

		_, err := service.List(ctx, "token", "", false)
		assert.Error(t, err)
	})
}

func TestList_Busca(t *testing.T) {
	ctx := context.Background()

	products := []domain.Product{
		{ID: "1", SKU: "559", Name: "Ração Premium 15kg"},
		{ID: "2", SKU: "1559", Name: "Ração Filhotes 10kg"},
		{ID: "3", SKU: "5590", Name: "Coleira Média"},
		{ID: "4", SKU: "AB-10", Name: "Vermífugo 559 especial"},
	}

	newService := func() *Service {
		service := NewService(&fetcherStub{products: products, total: len(products)})
		service.now = fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
		return service
	}

	t.Run("SKU exato tem precedência sobre substring", func(t *testing.T) {
		list, err := newService().List(ctx, "token", "559", false)
		assert.NoError(t, err)
		assert.Len(t, list.Products, 1)
		assert.Equal(t, "559", list.Products[0].SKU)
	})

	t.Run("SKU exato ignora maiúsculas e espaços", func(t *testing.T) {
		list, err := newService().List(ctx, "token", "  ab-10 ", false)
		assert.NoError(t, err)
		assert.Len(t, list.Products, 1)
		assert.Equal(t, "AB-10", list.Products[0].SKU)
	})

	t.Run("sem SKU exato cai na busca por substring", func(t *testing.T) {
		list, err := newService().List(ctx, "token", "ração", false)
		assert.NoError(t, err)
		assert.Len(t, list.Products, 2)
	})

	t.Run("substring também olha o SKU", func(t *testing.T) {
		list, err := newService().List(ctx, "token", "55", false)
		assert.NoError(t, err)
		assert.Len(t, list.Products, 4)
	})

	t.Run("busca sem resultado devolve lista vazia", func(t *testing.T) {
		list, err := newService().List(ctx, "token", "inexistente", false)
		assert.NoError(t, err)
		assert.NotNil(t, list.Products)
		assert.Len(t, list.Products, 0)
	})

	t.Run("termo vazio limita a 100 produtos", func(t *testing.T) {
		many := make([]domain.Product, 150)
		for i := range many {
			many[i] = domain.Product{ID: "p", SKU: "sku", Name: "Produto"}
		}
		service := NewService(&fetcherStub{products: many, total: 150})
		service.now = fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

		list, err := service.List(ctx, "token", "", false)
		assert.NoError(t, err)
		assert.Len(t, list.Products, 100)
		assert.Equal(t, 150, list.TotalActive)
	})
}
