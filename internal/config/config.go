package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// FallbackSiteURL is used when neither VITE_SITE_URL nor URL is set.
const FallbackSiteURL = "https://baanpets.netlify.app"

const (
	StoreSupabase = "supabase"
	StorePostgres = "postgres"
	StoreBadger   = "badger"
)

// Config holds every environment-supplied setting of the service.
type Config struct {
	Addr string `env:"PETSKUB_ADDR" envDefault:":8888"`
	Dev  bool   `env:"PETSKUB_DEV"`

	Store string `env:"PETSKUB_STORE" envDefault:"supabase"`

	SupabaseURL            string `env:"VITE_SUPABASE_URL"`
	SupabaseServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseAnonKey        string `env:"SUPABASE_ANON_KEY"`
	SupabasePublishableKey string `env:"VITE_SUPABASE_PUBLISHABLE_KEY"`

	DatabaseURL string `env:"DATABASE_URL"`
	BadgerPath  string `env:"PETSKUB_BADGER_PATH" envDefault:"./badger-data"`

	RedisAddr string `env:"PETSKUB_REDIS_ADDR"`

	// CacheTTL bounds how long an unpublished article can still be served.
	CacheTTL time.Duration `env:"PETSKUB_CACHE_TTL" envDefault:"2m"`

	SiteURL   string `env:"VITE_SITE_URL"`
	DeployURL string `env:"URL"`

	LineChannelID     string `env:"VITE_LINE_CHANNEL_ID"`
	LineChannelSecret string `env:"VITE_LINE_CHANNEL_SECRET"`
	LineTokenURL      string `env:"LINE_TOKEN_URL" envDefault:"https://api.line.me/oauth2/v2.1/token"`
	LineProfileURL    string `env:"LINE_PROFILE_URL" envDefault:"https://api.line.me/v2/profile"`

	HTTPTimeout time.Duration `env:"PETSKUB_HTTP_TIMEOUT" envDefault:"10s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Parse reads an optional .env file and then the process environment.
// Callers apply their own overrides and then call Validate.
func Parse() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}


// Validate checks that the selected store backend has what it needs.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("VITE_SUPABASE_URL is required for the %s store", c.Store)
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s store", c.Store)
		}
	case StoreBadger:
		if c.BadgerPath == "" {
			return fmt.Errorf("PETSKUB_BADGER_PATH is required for the %s store", c.Store)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store)
	}
	return nil
}

// SupabaseKey returns the most privileged key configured: service role,
// then anonymous, then publishable.
func (c *Config) SupabaseKey() string {
	for _, k := range []string{c.SupabaseServiceRoleKey, c.SupabaseAnonKey, c.SupabasePublishableKey} {
		if k != "" {
			return k
		}
	}
	return ""
}

// SiteOrigin returns the public origin used for canonical URLs, without a
// trailing slash.
func (c *Config) SiteOrigin() string {
	site := c.SiteURL
	if site == "" {
		site = c.DeployURL
	}
	if site == "" {
		site = FallbackSiteURL
	}
	return strings.TrimSuffix(site, "/")
}
