package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Provider    ProviderConfig
	Defaults    QueryDefaults
	Logging     LoggingConfig
	RateLimit   RateLimitConfig
}

// ProviderConfig holds options-data provider configuration
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// QueryDefaults holds the values used when a request omits a parameter
type QueryDefaults struct {
	TickerSymbol string
	Limit        int
	DaysForward  int
	ContractType string
	Timezone     string
}

// LoggingConfig holds log output configuration
type LoggingConfig struct {
	Level  string
	Format string // "text" or "json"
}

// RateLimitConfig holds inbound rate limiting for server mode
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("POLYGON_BASE_URL", "https://api.polygon.io")
	viper.SetDefault("POLYGON_TIMEOUT", "10s")
	viper.SetDefault("DEFAULT_TICKER", "AAPL")
	viper.SetDefault("DEFAULT_LIMIT", 10)
	viper.SetDefault("DEFAULT_DAYS_FORWARD", 30)
	viper.SetDefault("DEFAULT_CONTRACT_TYPE", "call")
	viper.SetDefault("TIMEZONE", "Local")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Provider: ProviderConfig{
			BaseURL: viper.GetString("POLYGON_BASE_URL"),
			APIKey:  viper.GetString("POLYGON_API_KEY"),
			Timeout: viper.GetDuration("POLYGON_TIMEOUT"),
		},
		Defaults: QueryDefaults{
			TickerSymbol: viper.GetString("DEFAULT_TICKER"),
			Limit:        viper.GetInt("DEFAULT_LIMIT"),
			DaysForward:  viper.GetInt("DEFAULT_DAYS_FORWARD"),
			ContractType: viper.GetString("DEFAULT_CONTRACT_TYPE"),
			Timezone:     viper.GetString("TIMEZONE"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if config.Provider.Timeout <= 0 {
		config.Provider.Timeout = 10 * time.Second
	}

	return config, nil
}

// Location resolves the configured timezone used to compute expiration windows.
// Unknown names fall back to the process local zone.
func (c *Config) Location() *time.Location {
	switch c.Defaults.Timezone {
	case "", "Local":
		return time.Local
	}
	loc, err := time.LoadLocation(c.Defaults.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
