package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/odlagro/posv-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_LoadSemArquivo(t *testing.T) {
	repo := NewSettingsRepository(filepath.Join(t.TempDir(), "inexistente.json"))

	settings := repo.Load()

	assert.Equal(t, domain.DefaultSettings(), settings)
	assert.Equal(t, "sandbox", settings.MelhorEnvioEnv)
}

func TestSettingsRepository_LoadArquivoCorrompido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posv_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nao é json"), 0o600))

	repo := NewSettingsRepository(path)

	assert.Equal(t, domain.DefaultSettings(), repo.Load())
}

func TestSettingsRepository_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posv_config.json")
	repo := NewSettingsRepository(path)

	original := &domain.Settings{
		BlingAccessToken:  "access-abc",
		BlingRefreshToken: "refresh-xyz",
		BlingExpiresAt:    1757343000,
		MelhorEnvioToken:  "me-token",
		OriginZipCode:     "35200000",
		MelhorEnvioEnv:    "production",
	}

	require.NoError(t, repo.Save(original))

	// save(load()) é idempotente: todos os campos sobrevivem ao round trip
	loaded := repo.Load()
	assert.Equal(t, original, loaded)

	require.NoError(t, repo.Save(loaded))
	assert.Equal(t, original, repo.Load())
}

func TestSettingsRepository_LoadArquivoAntigoComFloat(t *testing.T) {
	// Arquivos gravados por versões antigas têm bling_expires_at como float
	path := filepath.Join(t.TempDir(), "posv_config.json")
	legacy := `{"bling_access_token":"tok","bling_expires_at":1757343000.5,"melhorenvio_env":""}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	settings := NewSettingsRepository(path).Load()

	assert.Equal(t, "tok", settings.BlingAccessToken)
	assert.Equal(t, 1757343000.5, settings.BlingExpiresAt)
	assert.Equal(t, "sandbox", settings.MelhorEnvioEnv)
}
