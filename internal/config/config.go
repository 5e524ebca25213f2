package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server configuration. Values come from an optional yaml file
// (BACKOFFICE_CONFIG) with env variables filling anything the file leaves
// empty.
type Config struct {
	DatabaseURL    string `yaml:"database_url"`
	ServerPort     string `yaml:"server_port"`
	JWTSecret      string `yaml:"jwt_secret"`
	AllowedOrigins string `yaml:"allowed_origins"`
	OpenAIAPIKey   string `yaml:"openai_api_key"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

// Load reads configuration from yaml and env.
func Load() (Config, error) {
	cfg := Config{
		ServerPort:     "8080",
		CurrencySymbol: "R",
	}

	if path := os.Getenv("BACKOFFICE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.ServerPort = v
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.AllowedOrigins == "" {
		cfg.AllowedOrigins = os.Getenv("ALLOWED_ORIGINS")
	}
	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if v := os.Getenv("CURRENCY_SYMBOL"); v != "" {
		cfg.CurrencySymbol = v
	}

	if cfg.DatabaseURL == "" {
		return cfg, errors.New("config: database URL required (DATABASE_URL or yaml database_url)")
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("config: JWT secret required (JWT_SECRET or yaml jwt_secret)")
	}
	return cfg, nil
}
