package blingclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TokenResponse representa a resposta do Bling ao trocar ou renovar tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// AuthorizeURL monta a URL de autorização do Bling (API v3 OAuth).
// O state é o token anti-CSRF gerado pelo chamador e conferido no callback.
func (c *BlingClient) AuthorizeURL(state string) (string, error) {
	if !c.cfg.OAuthConfigured() {
		return "", ErrMissingOAuthCredentials
	}

	params := url.Values{}
	params.Set("client_id", c.cfg.Bling.ClientID)
	params.Set("response_type", "code")
	params.Set("state", state)

	// redirect_uri é opcional na RFC; o Bling usa o valor cadastrado no
	// app, mas enviamos quando definido para clareza
	if c.cfg.Bling.RedirectURI != "" {
		params.Set("redirect_uri", c.cfg.Bling.RedirectURI)
	}

	return c.cfg.Bling.AuthorizeURL + "?" + params.Encode(), nil
}

// ExchangeCode troca o authorization_code por access_token e refresh_token.
// O Bling exige autenticação Basic no header (client_id:client_secret).
func (c *BlingClient) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)

	return c.requestToken(ctx, form)
}

// RefreshToken gera um novo access_token usando o refresh_token.
func (c *BlingClient) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	return c.requestToken(ctx, form)
}

func (c *BlingClient) requestToken(ctx context.Context, form url.Values) (*TokenResponse, error) {
	if !c.cfg.OAuthConfigured() {
		return nil, ErrMissingOAuthCredentials
	}

	if c.cfg.Bling.RedirectURI != "" {
		form.Set("redirect_uri", c.cfg.Bling.RedirectURI)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Bling.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição de token: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", basicAuthHeader(c.cfg.Bling.ClientID, c.cfg.Bling.ClientSecret))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro de comunicação com o Bling: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do Bling: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.Errorf("Falha ao obter tokens do Bling. Status: %d, Resposta: %s", resp.StatusCode, truncate(body, 300))
		return nil, fmt.Errorf("falha ao obter tokens do Bling: %d - %s", resp.StatusCode, truncate(body, 300))
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("resposta do Bling não retornou access_token")
	}

	return &tokenResp, nil
}

func basicAuthHeader(clientID, clientSecret string) string {
	raw := clientID + ":" + clientSecret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max])
}
