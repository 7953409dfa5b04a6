package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Scoring   ScoringConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ScoringConfig holds the version identifiers and knobs of the scoring
// pipeline. The identifiers are opaque audit fields echoed into every
// ScoringResult.
type ScoringConfig struct {
	AlgorithmVersion string `mapstructure:"algorithm_version"`
	ThresholdSetID   string `mapstructure:"threshold_set_id"`
	TopReasonLimit   int    `mapstructure:"top_reason_limit"`
}

// CatalogConfig holds the catalog snapshot location
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/labelscore/")

	// Environment variable settings, e.g. LABELSCORE_CATALOG_PATH
	v.SetEnvPrefix("LABELSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Scoring defaults
	v.SetDefault("scoring.algorithm_version", "1.2.0")
	v.SetDefault("scoring.threshold_set_id", "thresholds.2025q3")
	v.SetDefault("scoring.top_reason_limit", 3)

	// Catalog defaults
	v.SetDefault("catalog.path", "./essentials_catalog.json")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "168h") // 7 days

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set LABELSCORE_CATALOG_PATH)")
	}

	if config.Scoring.AlgorithmVersion == "" {
		return fmt.Errorf("scoring algorithm version is required")
	}

	if config.Scoring.TopReasonLimit <= 0 {
		return fmt.Errorf("scoring top_reason_limit must be positive, got: %d", config.Scoring.TopReasonLimit)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
