package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Cache drivers.
const (
	CacheMemory = "memory"
	CacheValkey = "valkey"
	CacheRedis  = "redis"
)

// Translation providers.
const (
	ProviderOpenAI   = "openai"
	ProviderChatGPT  = "chatgpt"
	ProviderDisabled = "disabled"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Store       StoreConfig       `yaml:"store"`
	Cache       CacheConfig       `yaml:"cache"`
	Translation TranslationConfig `yaml:"translation"`
	FAQ         FAQConfig         `yaml:"faq"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
	Retry           RetryConfig     `yaml:"retry"`
	CORS            CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// StoreConfig selects the FAQ record store.
type StoreConfig struct {
	Driver   string         `yaml:"driver"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SQLiteConfig points at the database file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig selects the translation cache backend.
type CacheConfig struct {
	Driver    string        `yaml:"driver"`
	TTL       time.Duration `yaml:"ttl"`
	Addr      string        `yaml:"addr"`
	KeyPrefix string        `yaml:"keyPrefix"`
}

// TranslationConfig contains the provider settings.
type TranslationConfig struct {
	Provider       string        `yaml:"provider"`
	APIKey         string        `yaml:"apiKey"`
	BaseURL        string        `yaml:"baseUrl"`
	Model          string        `yaml:"model"`
	Temperature    float32       `yaml:"temperature"`
	SourceLang     string        `yaml:"sourceLang"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxConcurrency int           `yaml:"maxConcurrency"`
}

// FAQConfig bounds the stored fields.
type FAQConfig struct {
	MaxQuestionLen int `yaml:"maxQuestionLen"`
	MaxAnswerLen   int `yaml:"maxAnswerLen"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.Store.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("STORE_POSTGRES_DSN"); v != "" {
		cfg.Store.Postgres.DSN = v
	}
	if v := os.Getenv("STORE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Store.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("STORE_SQLITE_PATH"); v != "" {
		cfg.Store.SQLite.Path = v
	}
	if v := os.Getenv("CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, ok := parseTTL(v); ok {
			cfg.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("CACHE_KEY_PREFIX"); v != "" {
		cfg.Cache.KeyPrefix = v
	}
	if v := os.Getenv("TRANSLATION_PROVIDER"); v != "" {
		cfg.Translation.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("TRANSLATION_API_KEY"); v != "" {
		cfg.Translation.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.Translation.APIKey == "" {
		cfg.Translation.APIKey = v
	}
	if v := os.Getenv("TRANSLATION_BASE_URL"); v != "" {
		cfg.Translation.BaseURL = v
	}
	if v := os.Getenv("TRANSLATION_MODEL"); v != "" {
		cfg.Translation.Model = v
	}
	if v := os.Getenv("TRANSLATION_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Translation.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("TRANSLATION_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Translation.Timeout = parsed
		}
	}
	if v := os.Getenv("TRANSLATION_MAX_CONCURRENCY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Translation.MaxConcurrency = parsed
		}
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             40,
			},
			Retry: RetryConfig{
				Enabled:     false,
				MaxAttempts: 2,
				BaseBackoff: 100 * time.Millisecond,
				Exclude:     []string{"/metrics"},
			},
		},
		Store: StoreConfig{
			Driver: StoreMemory,
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
			SQLite: SQLiteConfig{
				Path: "faq.db",
			},
		},
		Cache: CacheConfig{
			Driver:    CacheMemory,
			TTL:       24 * time.Hour,
			KeyPrefix: "",
		},
		Translation: TranslationConfig{
			Provider:    ProviderOpenAI,
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
			SourceLang:  "en",
			Timeout:     10 * time.Second,
		},
		FAQ: FAQConfig{
			MaxQuestionLen: 1000,
			MaxAnswerLen:   20000,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff < 0 {
			return errors.New("http.retry.baseBackoff cannot be negative")
		}
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.Store.Postgres.DSN) == "" {
			return errors.New("store.postgres.dsn cannot be empty when the postgres store is selected")
		}
	case StoreSQLite:
		if strings.TrimSpace(c.Store.SQLite.Path) == "" {
			return errors.New("store.sqlite.path cannot be empty when the sqlite store is selected")
		}
	default:
		return fmt.Errorf("store.driver %q is not supported", c.Store.Driver)
	}
	switch c.Cache.Driver {
	case CacheMemory:
	case CacheValkey, CacheRedis:
		if strings.TrimSpace(c.Cache.Addr) == "" {
			return fmt.Errorf("cache.addr cannot be empty when the %s cache is selected", c.Cache.Driver)
		}
	default:
		return fmt.Errorf("cache.driver %q is not supported", c.Cache.Driver)
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	switch c.Translation.Provider {
	case ProviderOpenAI, ProviderChatGPT, ProviderDisabled:
	default:
		return fmt.Errorf("translation.provider %q is not supported", c.Translation.Provider)
	}
	if c.Translation.Timeout <= 0 {
		return errors.New("translation.timeout must be positive")
	}
	if c.Translation.MaxConcurrency < 0 {
		return errors.New("translation.maxConcurrency cannot be negative")
	}
	if c.FAQ.MaxQuestionLen < 0 || c.FAQ.MaxAnswerLen < 0 {
		return errors.New("faq length limits cannot be negative")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// parseTTL accepts a Go duration or a plain number of seconds.
func parseTTL(v string) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if parsed, err := time.ParseDuration(v); err == nil {
		return parsed, true
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, true
	}
	return 0, false
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
