package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Bling       Bling       `mapstructure:",squash"`
	MelhorEnvio MelhorEnvio `mapstructure:",squash"`
	Correios    Correios    `mapstructure:",squash"`
	Storage     Storage     `mapstructure:",squash"`
	SessionKey  string      `mapstructure:"session_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Bling guarda as credenciais do app OAuth cadastrado no Bling. Os tokens
// de acesso em si ficam na configuração persistida (domain.Settings).
type Bling struct {
	APIURL       string `mapstructure:"bling_api_url"`
	AuthorizeURL string `mapstructure:"bling_authorize_url"`
	TokenURL     string `mapstructure:"bling_token_url"`
	ClientID     string `mapstructure:"bling_client_id"`
	ClientSecret string `mapstructure:"bling_client_secret"`
	RedirectURI  string `mapstructure:"bling_redirect_uri"`
}

type MelhorEnvio struct {
	SandboxURL    string `mapstructure:"melhorenvio_sandbox_url"`
	ProductionURL string `mapstructure:"melhorenvio_production_url"`
	UserAgent     string `mapstructure:"melhorenvio_user_agent"`
}

type Correios struct {
	CalcURL string `mapstructure:"correios_calc_url"`
}

// Storage define onde ficam o arquivo de configuração persistida e os
// artefatos gerados (logo e imagem do orçamento).
type Storage struct {
	SettingsPath string `mapstructure:"settings_path"`
	UploadsDir   string `mapstructure:"uploads_dir"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "6262")

	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("BLING_API_URL", "https://api.bling.com.br/Api/v3")
	viper.SetDefault("BLING_AUTHORIZE_URL", "https://www.bling.com.br/Api/v3/oauth/authorize")
	viper.SetDefault("BLING_TOKEN_URL", "https://www.bling.com.br/Api/v3/oauth/token")
	viper.SetDefault("BLING_CLIENT_ID", "")
	viper.SetDefault("BLING_CLIENT_SECRET", "")
	viper.SetDefault("BLING_REDIRECT_URI", "")

	viper.SetDefault("MELHORENVIO_SANDBOX_URL", "https://sandbox.melhorenvio.com.br/api/v2/me")
	viper.SetDefault("MELHORENVIO_PRODUCTION_URL", "https://www.melhorenvio.com.br/api/v2/me")
	viper.SetDefault("MELHORENVIO_USER_AGENT", "POSV (contato@odlagro.com.br)")

	viper.SetDefault("CORREIOS_CALC_URL", "https://ws.correios.com.br/calculador/CalcPrecoPrazo.aspx")

	viper.SetDefault("SETTINGS_PATH", "posv_config.json")
	viper.SetDefault("UPLOADS_DIR", filepath.Join("static", "uploads"))

	viper.SetDefault("SESSION_KEY", "posv-dev-secret")
}

func NewConfig() (*Config, error) {
	// godotenv primeiro: carrega o .env sem sobrescrever variáveis já
	// definidas no ambiente
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// OAuthConfigured indica se as credenciais do app do Bling estão completas.
func (c *Config) OAuthConfigured() bool {
	return c.Bling.ClientID != "" && c.Bling.ClientSecret != ""
}

// loadEnvFile carrega o arquivo .env procurando em localizações comuns
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando apenas o ambiente")
}
