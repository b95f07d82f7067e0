package repository

import (
	"encoding/json"
	"os"

	"github.com/odlagro/posv-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// SettingsRepository lê e grava a configuração persistida do PDV.
type SettingsRepository interface {
	// Load nunca falha: arquivo ausente ou corrompido resulta nos padrões.
	Load() *domain.Settings
	// Save sobrescreve o arquivo inteiro (escrita única, sem lock: o PDV é
	// operado por uma única pessoa).
	Save(settings *domain.Settings) error
}

type settingsRepository struct {
	path string
}

func NewSettingsRepository(path string) SettingsRepository {
	return &settingsRepository{path: path}
}

func (r *settingsRepository) Load() *domain.Settings {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("Erro ao ler arquivo de configuração, usando padrões")
		}
		return domain.DefaultSettings()
	}

	settings := domain.DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		logrus.WithError(err).Warn("Arquivo de configuração corrompido, usando padrões")
		return domain.DefaultSettings()
	}

	if settings.MelhorEnvioEnv == "" {
		settings.MelhorEnvioEnv = "sandbox"
	}

	return settings
}

func (r *settingsRepository) Save(settings *domain.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.path, data, 0o600)
}
