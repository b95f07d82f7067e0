package domain

import "time"

// Settings é a configuração persistida do PDV: tokens obtidos via OAuth do
// Bling e os dados de frete. É gravada inteira em um único arquivo JSON e
// recarregada a cada operação.
type Settings struct {
	// Tokens do Bling (obtidos via OAuth)
	BlingAccessToken  string `json:"bling_access_token"`
	BlingRefreshToken string `json:"bling_refresh_token"`
	// Epoch em segundos; 0 = desconhecido. Mantido como float para
	// compatibilidade com arquivos de configuração antigos.
	BlingExpiresAt float64 `json:"bling_expires_at"`

	// Melhor Envio
	MelhorEnvioToken string `json:"melhorenvio_token"`
	OriginZipCode    string `json:"origin_zip_code"`
	MelhorEnvioEnv   string `json:"melhorenvio_env"` // "sandbox" ou "production"
}

// DefaultSettings retorna a configuração padrão usada quando o arquivo não
// existe ou está corrompido.
func DefaultSettings() *Settings {
	return &Settings{
		MelhorEnvioEnv: "sandbox",
	}
}

// BlingConnected indica se o fluxo OAuth do Bling já foi concluído.
func (s *Settings) BlingConnected() bool {
	return s.BlingAccessToken != ""
}

// BlingTokenExpiring indica se o access token expira em menos de 60
// segundos. Uma expiração desconhecida (0) nunca dispara renovação.
func (s *Settings) BlingTokenExpiring(now time.Time) bool {
	if s.BlingExpiresAt == 0 {
		return false
	}
	return float64(now.Unix()) > s.BlingExpiresAt-60
}
