package blingclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	blingdomain "github.com/odlagro/posv-api/infrastructure/integrator/bling/domain"
	"github.com/odlagro/posv-api/internal/domain"
	"github.com/pkg/errors"
)

const pageSize = 100

// listResponse cobre as duas chaves possíveis da listagem de produtos
type listResponse struct {
	Data     []map[string]any `json:"data"`
	Produtos []map[string]any `json:"produtos"`
}

// FetchAllActive busca todos os produtos ATIVOS do Bling paginando até
// receber uma página incompleta. Retorna os produtos normalizados e o
// total de ativos.
func (c *BlingClient) FetchAllActive(ctx context.Context, accessToken string) ([]domain.Product, int, error) {
	var all []domain.Product
	totalActive := 0

	for page := 1; ; page++ {
		items, err := c.fetchPage(ctx, accessToken, page)
		if err != nil {
			return nil, 0, err
		}

		if len(items) == 0 {
			break
		}

		for _, raw := range items {
			// alguns formatos embrulham o produto em {"produto": {...}}
			if inner, ok := raw["produto"].(map[string]any); ok {
				raw = inner
			}
			all = append(all, blingdomain.Normalize(raw))
			totalActive++
		}

		if len(items) < pageSize {
			break
		}

		// pausa curta entre páginas para evitar rajadas no rate limit
		time.Sleep(c.pageDelay)
	}

	return all, totalActive, nil
}

func (c *BlingClient) fetchPage(ctx context.Context, accessToken string, page int) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Bling.APIURL+"/produtos", nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	query := req.URL.Query()
	query.Set("pagina", strconv.Itoa(page))
	query.Set("limite", strconv.Itoa(pageSize))
	query.Set("criterio", "2") // 2 = somente ativos
	req.URL.RawQuery = query.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro de comunicação com o Bling: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do Bling: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("erro ao buscar produtos no Bling: %d - %s", resp.StatusCode, truncate(body, 200))
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("erro ao decodificar listagem de produtos: %w", err)
	}

	if len(list.Data) > 0 {
		return list.Data, nil
	}
	return list.Produtos, nil
}
