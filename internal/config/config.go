package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all settings for the civiq binary
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	HTTP     HTTPConfig
	Retry    RetryConfig
	Log      LogConfig
	APIKeys  APIKeys
	Upstream UpstreamConfig
}

// ServerConfig stores web server settings
type ServerConfig struct {
	Port      string
	BaseURL   string
	RateLimit int
}

// DatabaseConfig stores the PostgreSQL connection string. Empty disables ZIP lookups.
type DatabaseConfig struct {
	URL string
}

// RedisConfig stores the Redis connection URL. Empty selects the in-memory cache.
type RedisConfig struct {
	URL string
}

// CacheConfig bounds the in-memory cache
type CacheConfig struct {
	MaxEntries int
}

// HTTPConfig stores outbound HTTP settings
type HTTPConfig struct {
	Timeout time.Duration
}

// RetryConfig stores the bounded retry policy for upstream calls
type RetryConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
}

// LogConfig stores logging settings
type LogConfig struct {
	Level string
}

// APIKeys holds credentials for the upstream government APIs
type APIKeys struct {
	Congress   string
	FEC        string
	Census     string
	OpenStates string
	GovInfo    string
}

// UpstreamConfig holds base URLs for every upstream API
type UpstreamConfig struct {
	Congress    string
	FEC         string
	Census      string
	OpenStates  string
	USASpending string
	GovInfo     string
	GDELT       string
	// CensusYear is the ACS 5-year vintage queried for demographics
	CensusYear string
}

// Configuration validation errors
var (
	ErrInvalidPort        = errors.New("server.port is required")
	ErrInvalidMaxEntries  = errors.New("cache.max_entries must be at least 1")
	ErrInvalidTimeout     = errors.New("http.timeout must be positive")
	ErrInvalidMaxAttempts = errors.New("retry.max_attempts must be at least 1")
)

// envBindings maps config keys onto the environment variable names the
// deployment already uses.
var envBindings = map[string]string{
	"server.port":         "PORT",
	"server.base_url":     "NEXT_PUBLIC_BASE_URL",
	"database.url":        "DATABASE_URL",
	"redis.url":           "REDIS_URL",
	"log.level":           "LOG_LEVEL",
	"api_keys.congress":   "CONGRESS_API_KEY",
	"api_keys.fec":        "FEC_API_KEY",
	"api_keys.census":     "CENSUS_API_KEY",
	"api_keys.openstates": "OPENSTATES_API_KEY",
	"api_keys.govinfo":    "GOVINFO_API_KEY",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.rate_limit", 120)
	v.SetDefault("cache.max_entries", 5000)
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("retry.max_attempts", 2)
	v.SetDefault("retry.initial_backoff", "500ms")
	v.SetDefault("log.level", "info")
	v.SetDefault("api_keys.govinfo", "DEMO_KEY")

	v.SetDefault("upstream.congress", "https://api.congress.gov/v3")
	v.SetDefault("upstream.fec", "https://api.open.fec.gov/v1")
	v.SetDefault("upstream.census", "https://api.census.gov/data")
	v.SetDefault("upstream.openstates", "https://v3.openstates.org")
	v.SetDefault("upstream.usaspending", "https://api.usaspending.gov/api/v2")
	v.SetDefault("upstream.govinfo", "https://api.govinfo.gov")
	v.SetDefault("upstream.gdelt", "https://api.gdeltproject.org/api/v2/doc")
	v.SetDefault("upstream.census_year", "2022")
}

// Load reads configuration from an optional config file, then the
// environment. An empty path searches ./config.yaml and ./config/config.yaml.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      v.GetString("server.port"),
			BaseURL:   strings.TrimRight(v.GetString("server.base_url"), "/"),
			RateLimit: v.GetInt("server.rate_limit"),
		},
		Database: DatabaseConfig{URL: v.GetString("database.url")},
		Redis:    RedisConfig{URL: v.GetString("redis.url")},
		Cache:    CacheConfig{MaxEntries: v.GetInt("cache.max_entries")},
		HTTP:     HTTPConfig{Timeout: v.GetDuration("http.timeout")},
		Retry: RetryConfig{
			MaxAttempts:    v.GetInt("retry.max_attempts"),
			InitialBackoff: v.GetDuration("retry.initial_backoff"),
		},
		Log: LogConfig{Level: v.GetString("log.level")},
		APIKeys: APIKeys{
			Congress:   v.GetString("api_keys.congress"),
			FEC:        v.GetString("api_keys.fec"),
			Census:     v.GetString("api_keys.census"),
			OpenStates: v.GetString("api_keys.openstates"),
			GovInfo:    v.GetString("api_keys.govinfo"),
		},
		Upstream: UpstreamConfig{
			Congress:    v.GetString("upstream.congress"),
			FEC:         v.GetString("upstream.fec"),
			Census:      v.GetString("upstream.census"),
			OpenStates:  v.GetString("upstream.openstates"),
			USASpending: v.GetString("upstream.usaspending"),
			GovInfo:     v.GetString("upstream.govinfo"),
			GDELT:       v.GetString("upstream.gdelt"),
			CensusYear:  v.GetString("upstream.census_year"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return ErrInvalidPort
	}
	if c.Cache.MaxEntries < 1 {
		return ErrInvalidMaxEntries
	}
	if c.HTTP.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}
	return nil
}
