package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	SessionStoreCookie = "cookie"
	SessionStoreSQLite = "sqlite"
)

type Config struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	BaseURL      string        `env:"CATALOG_BASE_URL,required,notEmpty"`
	APIPath      string        `env:"CATALOG_API_PATH,required,notEmpty"`
	SessionStore string        `env:"SESSION_STORE" envDefault:"cookie"`
	DBDSN        string        `env:"DB_DSN" envDefault:"catalogadmin.db"`
	LogFile      string        `env:"LOG_FILE"`
	APITimeout   time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.APIPath = strings.Trim(cfg.APIPath, "/")
	switch cfg.SessionStore {
	case SessionStoreCookie, SessionStoreSQLite:
	default:
		return Config{}, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	log.Printf("[config] PORT=%s CATALOG_BASE_URL=%s CATALOG_API_PATH=%s SESSION_STORE=%s DB_DSN=%s LOG_FILE=%s",
		cfg.Port, cfg.BaseURL, cfg.APIPath, cfg.SessionStore, cfg.DBDSN, cfg.LogFile)
	return cfg, nil
}
