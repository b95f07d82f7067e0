package blingclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAllActive_Paginacao(t *testing.T) {
	var pagesServed []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "100", r.URL.Query().Get("limite"))
		assert.Equal(t, "2", r.URL.Query().Get("criterio"))

		page := r.URL.Query().Get("pagina")
		pagesServed = append(pagesServed, page)

		w.Header().Set("Content-Type", "application/json")
		if page == "1" {
			// página cheia: 100 itens força a busca da próxima página
			fmt.Fprint(w, `{"data":[`)
			for i := 0; i < 100; i++ {
				if i > 0 {
					fmt.Fprint(w, ",")
				}
				fmt.Fprintf(w, `{"id":%d,"codigo":"SKU-%d","descricao":"Item %d","preco":10.5}`, i, i, i)
			}
			fmt.Fprint(w, `]}`)
			return
		}

		// página curta encerra a paginação
		fmt.Fprint(w, `{"data":[{"produto":{"id":900,"codigo":"SKU-900","descricao":"Embrulhado","preco":"31,05"}}]}`)
	}))
	defer server.Close()

	client := NewClient(testConfig("", server.URL))
	client.pageDelay = 0

	products, total, err := client.FetchAllActive(context.Background(), "tok-123")
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, pagesServed)
	assert.Equal(t, 101, total)
	require.Len(t, products, 101)

	// itens embrulhados em {"produto": {...}} também são normalizados
	last := products[100]
	assert.Equal(t, "SKU-900", last.SKU)
	assert.Equal(t, "Embrulhado", last.Name)
	assert.Equal(t, 31.05, last.Price)
}

func TestFetchAllActive_ChaveProdutos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"produtos":[{"id":1,"codigo":"A","descricao":"Produto A","preco":5}]}`)
	}))
	defer server.Close()

	client := NewClient(testConfig("", server.URL))
	client.pageDelay = 0

	products, total, err := client.FetchAllActive(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "A", products[0].SKU)
}

func TestFetchAllActive_NaoAutorizado(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testConfig("", server.URL))
	client.pageDelay = 0

	_, _, err := client.FetchAllActive(context.Background(), "tok-expirado")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFetchAllActive_ErroUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig("", server.URL))
	client.pageDelay = 0

	_, _, err := client.FetchAllActive(context.Background(), "tok")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
