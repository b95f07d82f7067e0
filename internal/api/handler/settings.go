package handler

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/odlagro/posv-api/infrastructure/repository"
	"github.com/odlagro/posv-api/internal/domain"
	"github.com/odlagro/posv-api/pkg/apiErrors"
)

const logoFileName = "logo_orcamento.png"

// settingsView é a visão pública da configuração. Os tokens do Bling são
// gerenciados pelo OAuth e não aparecem nem são editáveis aqui.
type settingsView struct {
	MelhorEnvioToken string `json:"melhorenvio_token"`
	OriginZipCode    string `json:"origin_zip_code"`
	MelhorEnvioEnv   string `json:"melhorenvio_env"`
	BlingConnected   bool   `json:"bling_conectado"`
	LogoURL          string `json:"logo_url,omitempty"`
}

type settingsUpdate struct {
	MelhorEnvioToken string `json:"melhorenvio_token"`
	OriginZipCode    string `json:"origin_zip_code"`
	MelhorEnvioEnv   string `json:"melhorenvio_env"`
}

func newSettingsView(settings *domain.Settings, uploadsDir string) settingsView {
	view := settingsView{
		MelhorEnvioToken: settings.MelhorEnvioToken,
		OriginZipCode:    settings.OriginZipCode,
		MelhorEnvioEnv:   settings.MelhorEnvioEnv,
		BlingConnected:   settings.BlingConnected(),
	}

	if _, err := os.Stat(filepath.Join(uploadsDir, logoFileName)); err == nil {
		view.LogoURL = fmt.Sprintf("/static/uploads/%s?v=%d", logoFileName, time.Now().Unix())
	}

	return view
}

func GetSettings(settingsRepo repository.SettingsRepository, uploadsDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newSettingsView(settingsRepo.Load(), uploadsDir)); err != nil {
			logrus.WithError(err).Error("Erro ao serializar as configurações")
		}
	})
}

func UpdateSettings(settingsRepo repository.SettingsRepository, uploadsDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var update settingsUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Payload inválido", nil)
			return
		}

		settings := settingsRepo.Load()
		settings.MelhorEnvioToken = strings.TrimSpace(update.MelhorEnvioToken)
		settings.OriginZipCode = strings.TrimSpace(update.OriginZipCode)

		env := strings.TrimSpace(update.MelhorEnvioEnv)
		if env == "" {
			env = "sandbox"
		}
		settings.MelhorEnvioEnv = env

		if err := settingsRepo.Save(settings); err != nil {
			logrus.WithError(err).Error("Erro ao gravar as configurações")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gravar as configurações", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newSettingsView(settings, uploadsDir)); err != nil {
			logrus.WithError(err).Error("Erro ao serializar as configurações")
		}
	})
}

// UploadLogo grava a logo do orçamento em static/uploads. Quando o arquivo
// é uma imagem decodificável, reencoda como PNG; senão grava como veio.
func UploadLogo(uploadsDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Upload inválido", nil)
			return
		}

		file, _, err := r.FormFile("logo_orcamento")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData,
				"Envie o arquivo no campo 'logo_orcamento'", nil)
			return
		}
		defer file.Close()

		raw, err := io.ReadAll(file)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler o arquivo", nil)
			return
		}

		if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
			logrus.WithError(err).Error("Erro ao criar o diretório de uploads")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gravar a logo", nil)
			return
		}

		path := filepath.Join(uploadsDir, logoFileName)
		if err := saveLogo(path, raw); err != nil {
			logrus.WithError(err).Error("Erro ao gravar a logo")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gravar a logo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		response := map[string]any{
			"ok":       true,
			"logo_url": fmt.Sprintf("/static/uploads/%s?v=%d", logoFileName, time.Now().Unix()),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.WithError(err).Error("Erro ao serializar a resposta do upload")
		}
	})
}

func saveLogo(path string, raw []byte) error {
	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return os.WriteFile(path, raw, 0o644)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, decoded)
}
