package config

import (
	"fmt"
	"os"
	"strings"
)

const defaultAddr = ":8080"

// Config carries everything the application needs from the environment.
// It is built once in main and passed down explicitly; nothing reads the
// environment after startup.
type Config struct {
	DatabaseURL   string
	SessionSecret string
	Addr          string
}

// Load reads configuration from the environment. DATABASE_URL and
// SESSION_SECRET are required; startup must fail hard without them.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SessionSecret: strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		Addr:          strings.TrimSpace(os.Getenv("ADDR")),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	return cfg, nil
}
