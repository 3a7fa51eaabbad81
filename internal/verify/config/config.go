package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "EMAIL_"
	// ConfigFileEnv names an optional YAML file loaded before the environment.
	ConfigFileEnv = "EMAIL_CONFIG_FILE"
)

// AppConfig holds the verifier's configuration.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Port is the HTTP port the API server binds to.
	Port int `koanf:"port" validate:"required,gte=1,lt=65535"`

	// BulkLimit caps the number of addresses classified per batch.
	BulkLimit int `koanf:"bulk_limit" validate:"required,gte=1,lte=10000"`

	// ProviderTimeout bounds each external verification request.
	ProviderTimeout time.Duration `koanf:"provider_timeout" validate:"required"`

	// DisposableFiles are extra lists (plain or JSON) merged into the built-in list.
	DisposableFiles []string `koanf:"disposable_files" validate:"dive,required"`

	// DisposableDB, when set, backs the disposable set with a bbolt file
	// instead of memory.
	DisposableDB string `koanf:"disposable_db"`

	DisposableCacheSize int     `koanf:"disposable_cache_size" validate:"gte=0"`
	DisposableFPRate    float64 `koanf:"disposable_fp_rate" validate:"gt=0,lt=1"`

	HunterURL      string `koanf:"hunter_url" validate:"required,api_base"`
	HunterKey      string `koanf:"hunter_key"`
	NeverBounceURL string `koanf:"neverbounce_url" validate:"required,api_base"`
	NeverBounceKey string `koanf:"neverbounce_key"`
	ZeroBounceURL  string `koanf:"zerobounce_url" validate:"required,api_base"`
	ZeroBounceKey  string `koanf:"zerobounce_key"`

	// CORSOrigins lists origins allowed to call the HTTP API.
	CORSOrigins []string `koanf:"cors_origins" validate:"dive,required"`
}

// Credentials returns the server-side provider keys.
func (c *AppConfig) Credentials() domain.Credentials {
	return domain.Credentials{
		domain.ProviderHunter:      c.HunterKey,
		domain.ProviderNeverBounce: c.NeverBounceKey,
		domain.ProviderZeroBounce:  c.ZeroBounceKey,
	}
}

// DEFAULT_APP_CONFIG defines the defaults applied before the file and environment.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:                 "prod",
	LogLevel:            "info",
	Port:                8080,
	BulkLimit:           100,
	ProviderTimeout:     10 * time.Second,
	DisposableFiles:     []string{},
	DisposableCacheSize: 1000,
	DisposableFPRate:    0.01,
	HunterURL:           "https://api.hunter.io",
	NeverBounceURL:      "https://api.neverbounce.com",
	ZeroBounceURL:       "https://api.zerobounce.net",
	CORSOrigins:         []string{"*"},
}

// listKeys are split on commas and spaces when read from the environment.
var listKeys = map[string]bool{
	"disposable_files": true,
	"cors_origins":     true,
}

// validAPIBase accepts absolute http(s) URLs without query or fragment.
func validAPIBase(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && u.RawQuery == "" && u.Fragment == ""
}

// envLoader loads environment variables with the prefix "EMAIL_", lower-cased
// and with the prefix removed.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			value = strings.TrimSpace(value)

			if value == "" || !listKeys[key] {
				return key, value
			}
			return key, strings.FieldsFunc(value, func(r rune) bool {
				return r == ' ' || r == ','
			})
		},
	}), nil)
}

// fileLoader loads the YAML file named by EMAIL_CONFIG_FILE, if any.
var fileLoader = func(k *koanf.Koanf) error {
	path := strings.TrimSpace(os.Getenv(ConfigFileEnv))
	if path == "" {
		return nil
	}
	return k.Load(file.Provider(path), yaml.Parser())
}

// defaultLoader loads DEFAULT_APP_CONFIG through the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the "api_base" rule.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("api_base", validAPIBase)
}

// Load builds an AppConfig from defaults, the optional YAML file and the
// environment, in that order of precedence (last wins), then validates it.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}
	if err := fileLoader(k); err != nil {
		return nil, fmt.Errorf("error loading config file: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
