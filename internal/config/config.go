package config

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

const (
	EnvPrefix  = "CMMS_"
	FileEnvVar = "CMMS_CONFIG_FILE"
)

// AppName can be overridden with ldflags at build time.
var AppName = "master-record-service"

type App struct {
	Name string `koanf:"name" validate:"required"`
	Port string `koanf:"port" validate:"required,numeric"`
	URL  string `koanf:"url"`
}

type DB struct {
	URL string `koanf:"url" validate:"required"`
}

type Auth struct {
	RSAPublicKeyBase64 string `koanf:"rsa_public_key_base64" validate:"required,base64"`
	Issuer             string `koanf:"issuer"`
}

type CORS struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// RateLimit of zero requests disables the limiter.
type RateLimit struct {
	Requests int           `koanf:"requests" validate:"gte=0"`
	Window   time.Duration `koanf:"window" validate:"required_with=Requests"`
}

type Jobs struct {
	LowStockScanSpec string `koanf:"low_stock_scan_spec"`
}

type Log struct {
	File string `koanf:"file"`
}

type Config struct {
	App       App       `koanf:"app"`
	DB        DB        `koanf:"db"`
	Auth      Auth      `koanf:"auth"`
	CORS      CORS      `koanf:"cors"`
	RateLimit RateLimit `koanf:"rate_limit"`
	Jobs      Jobs      `koanf:"jobs"`
	Log       Log       `koanf:"log"`

	RSAPublicKey *rsa.PublicKey `koanf:"-"`
}

var defaults = map[string]any{
	"app.name":                 AppName,
	"app.port":                 "8080",
	"app.url":                  "http://localhost:3000",
	"auth.issuer":              "cmms-auth",
	"cors.allowed_origins":     []string{"http://localhost:3000"},
	"rate_limit.requests":      300,
	"rate_limit.window":        "1m",
	"jobs.low_stock_scan_spec": constants.DefaultLowStockSweepSpec,
}

/*
LoadConfig layers, lowest precedence first:

 1. built-in defaults
 2. .env in the working directory, if present
 3. the YAML file named by CMMS_CONFIG_FILE, if set
 4. CMMS_-prefixed environment variables, "__" nesting keys
    (CMMS_DB__URL -> db.url)
*/
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("default %s: %w", key, err)
		}
	}

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		utils.Logger.Debugf("Config file loaded: %s", path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	pub, err := parsePublicKey(cfg.Auth.RSAPublicKeyBase64)
	if err != nil {
		return nil, err
	}
	cfg.RSAPublicKey = pub

	utils.Logger.Infof("Loaded config for app: %s (port %s)", cfg.App.Name, cfg.App.Port)
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	if s == "CONFIG_FILE" {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

func parsePublicKey(b64 string) (*rsa.PublicKey, error) {
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode auth.rsa_public_key_base64: %w", err)
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse auth.rsa_public_key_base64: %w", err)
	}
	return pub, nil
}
