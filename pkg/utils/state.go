package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateOAuthState gera o token anti-CSRF usado no fluxo de autorização
// do Bling (guardado na sessão e conferido no callback).
func GenerateOAuthState() (string, error) {
	return gonanoid.Generate(characters, 24)
}
