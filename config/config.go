package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Generator GeneratorConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds the product catalog endpoint configuration
type CatalogConfig struct {
	URL               string        `mapstructure:"url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxAttempts       int           `mapstructure:"max_attempts"`
	ResultLimit       int           `mapstructure:"result_limit"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// GeneratorConfig holds the answer generator (chat model) configuration
type GeneratorConfig struct {
	Provider     string `mapstructure:"provider"` // "openai" or "anthropic"
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	Model        string `mapstructure:"model"`
	Instructions string `mapstructure:"instructions"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
}

// DefaultInstructions is the system prompt given to the shopping agent.
const DefaultInstructions = "You are a helpful shopping assistant that answers product-related questions and recommends relevant products."

// Load loads configuration from the .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopping-agent/")

	// SHOPPER_GENERATOR_API_KEY -> generator.api_key
	v.SetEnvPrefix("SHOPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional - env vars and defaults are enough
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads variables from ./.env without overriding ones already set.
// A missing file is not an error.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Catalog defaults
	v.SetDefault("catalog.url", "https://hackathon-apis.vercel.app/api/products")
	v.SetDefault("catalog.timeout", "30s")
	v.SetDefault("catalog.max_attempts", 3)
	v.SetDefault("catalog.result_limit", 5)
	v.SetDefault("catalog.requests_per_second", 5.0)
	v.SetDefault("catalog.burst", 10)

	// Generator defaults; empty base_url and model fall back to the provider's own defaults
	v.SetDefault("generator.provider", "openai")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.model", "")
	v.SetDefault("generator.instructions", DefaultInstructions)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Generator.APIKey == "" {
		return fmt.Errorf("generator API key is required (set SHOPPER_GENERATOR_API_KEY)")
	}

	if config.Generator.Provider != "openai" && config.Generator.Provider != "anthropic" {
		return fmt.Errorf("generator provider must be 'openai' or 'anthropic', got: %s", config.Generator.Provider)
	}

	if config.Catalog.URL == "" {
		return fmt.Errorf("catalog URL is required (set SHOPPER_CATALOG_URL)")
	}

	if config.Catalog.ResultLimit <= 0 {
		return fmt.Errorf("catalog result limit must be positive, got: %d", config.Catalog.ResultLimit)
	}

	if config.Catalog.MaxAttempts <= 0 {
		return fmt.Errorf("catalog max attempts must be positive, got: %d", config.Catalog.MaxAttempts)
	}

	return nil
}
