package catalog

import (
	"sync"
	"time"

	"github.com/odlagro/posv-api/internal/domain"
)

// cache guarda a lista de produtos do Bling em memória. A troca é sempre
// da lista inteira, nunca de itens individuais.
type cache struct {
	mu          sync.RWMutex
	fetchedAt   time.Time
	products    []domain.Product
	totalActive int
}

func (c *cache) get() ([]domain.Product, int, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products, c.totalActive, c.fetchedAt
}

func (c *cache) set(products []domain.Product, totalActive int, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.totalActive = totalActive
	c.fetchedAt = fetchedAt
}

// invalidate zera o cache. Usado após reconectar o Bling, já que o novo
// token pode pertencer a outra conta.
func (c *cache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
	c.products = nil
	c.totalActive = 0
}
