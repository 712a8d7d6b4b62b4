// Package config loads and validates process configuration from
// environment variables. The resulting Config is read-only after startup
// and passed explicitly into every component that needs it.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment values accepted for NODE_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable.
type Config struct {
	NodeEnv string
	Port    string

	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DatabaseURL string

	JWTSecret       string
	CryptoSecretKey string

	AdminName     string
	AdminEmail    string
	AdminPassword string

	APIVersion  string
	FrontendURL string
}

// Load reads configuration from the environment and validates it.
// Missing or invalid required values make startup fail.
func Load() (*Config, error) {
	cfg := &Config{
		NodeEnv:         strings.TrimSpace(os.Getenv("NODE_ENV")),
		Port:            fallback(os.Getenv("PORT"), "8080"),
		DBHost:          strings.TrimSpace(os.Getenv("DB_HOST")),
		DBPort:          strings.TrimSpace(os.Getenv("DB_PORT")),
		DBUser:          strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          strings.TrimSpace(os.Getenv("DB_NAME")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		CryptoSecretKey: strings.TrimSpace(os.Getenv("CRYPTO_SECRET_KEY")),
		AdminName:       strings.TrimSpace(os.Getenv("ADMIN_NAME")),
		AdminEmail:      strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		APIVersion:      fallback(os.Getenv("API_VERSION"), "v1"),
		FrontendURL:     fallback(os.Getenv("FRONTEND_URL"), "http://localhost:3000"),
	}

	required := map[string]string{
		"NODE_ENV":          cfg.NodeEnv,
		"DB_HOST":           cfg.DBHost,
		"DB_USER":           cfg.DBUser,
		"DB_NAME":           cfg.DBName,
		"DATABASE_URL":      cfg.DatabaseURL,
		"JWT_SECRET":        cfg.JWTSecret,
		"CRYPTO_SECRET_KEY": cfg.CryptoSecretKey,
		"ADMIN_NAME":        cfg.AdminName,
		"ADMIN_EMAIL":       cfg.AdminEmail,
		"ADMIN_PASSWORD":    cfg.AdminPassword,
	}
	for key, value := range required {
		if value == "" {
			return nil, fmt.Errorf("missing required env var: %s", key)
		}
	}

	switch cfg.NodeEnv {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return nil, fmt.Errorf("invalid NODE_ENV: %q (want development, production or test)", cfg.NodeEnv)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c *Config) HTTPAddress() string {
	return ":" + c.Port
}

// APIPrefix returns the versioned route prefix, e.g. "/api/v1".
func (c *Config) APIPrefix() string {
	return "/api/" + c.APIVersion
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
