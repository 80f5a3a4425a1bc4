package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	ServiceToken   string
	RateLimit      string
	MigrationsPath string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Environment variables win over the .env file.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SERVICE_TOKEN", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		ServiceToken:   viper.GetString("SERVICE_TOKEN"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.ServiceToken == "" {
		log.Println("Warning: SERVICE_TOKEN not set. API authentication is disabled.")
	}

	return cfg, nil
}
