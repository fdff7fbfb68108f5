package config

import (
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
	"os"
	"strconv"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Port     string
	LogLevel logrus.Level

	CatalogBaseURL string
	ProfileBaseURL string
	ProfileUserID  int64
	HTTPTimeout    time.Duration

	CartKey           string
	Currency          currency.Unit
	EnrichConcurrency int

	KVBackend   string
	KVFilePath  string
	RedisAddr   string
	DatabaseURL string
}

// Load reads the configuration from the environment, falling back to defaults for unset variables.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:           get("PORT", "8080"),
		CatalogBaseURL: get("CATALOG_BASE_URL", "https://dummyjson.com"),
		ProfileBaseURL: get("PROFILE_BASE_URL", "https://dummyjson.com"),
		CartKey:        get("CART_KEY", "cart"),
		KVBackend:      get("KV_BACKEND", BackendMemory),
		KVFilePath:     get("KV_FILE_PATH", "data/storefront.json"),
		RedisAddr:      get("REDIS_ADDR", ""),
		DatabaseURL:    get("DATABASE_URL", ""),
	}

	var err error

	if cfg.LogLevel, err = logrus.ParseLevel(get("LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.ProfileUserID, err = strconv.ParseInt(get("PROFILE_USER_ID", "1"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("PROFILE_USER_ID: %w", err)
	}
	if cfg.ProfileUserID <= 0 {
		return Config{}, fmt.Errorf("PROFILE_USER_ID must be positive")
	}

	if cfg.HTTPTimeout, err = time.ParseDuration(get("HTTP_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("HTTP_TIMEOUT: %w", err)
	}

	if cfg.Currency, err = currency.ParseISO(get("CURRENCY", "USD")); err != nil {
		return Config{}, fmt.Errorf("CURRENCY: %w", err)
	}

	if cfg.EnrichConcurrency, err = strconv.Atoi(get("ENRICH_CONCURRENCY", "8")); err != nil {
		return Config{}, fmt.Errorf("ENRICH_CONCURRENCY: %w", err)
	}
	if cfg.EnrichConcurrency < 1 {
		return Config{}, fmt.Errorf("ENRICH_CONCURRENCY must be at least 1")
	}

	switch cfg.KVBackend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return Config{}, fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return Config{}, fmt.Errorf("KV_BACKEND[%s] is not supported", cfg.KVBackend)
	}

	return cfg, nil
}
