package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, loaded from environment
// variables with the CAREERTALK_ prefix (falling back to defaults for
// local dev).
type Config struct {
	Port           string `envconfig:"PORT" default:"8080"`
	DatabaseURL    string `envconfig:"DATABASE_URL" default:"host=localhost user=postgres password=postgres dbname=careertalk port=5432 sslmode=disable TimeZone=Asia/Seoul"`
	SessionSecret  string `envconfig:"SESSION_SECRET" default:"secret_key_change_me"`
	SiteURL        string `envconfig:"SITE_URL" default:"http://localhost:8080"`
	FrontendOrigin string `envconfig:"FRONTEND_ORIGIN" default:"http://localhost:3000"`

	LinkedInClientID     string `envconfig:"LINKEDIN_CLIENT_ID"`
	LinkedInClientSecret string `envconfig:"LINKEDIN_CLIENT_SECRET"`
}

var cfg *Config

// Load parses the environment into the singleton Config.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("careertalk", c); err != nil {
		return nil, err
	}
	cfg = c
	return c, nil
}

// Get returns the loaded Config. Load must have been called first;
// tests may assign a Config directly via Set.
func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
		envconfig.MustProcess("careertalk", cfg)
	}
	return cfg
}

// Set overrides the singleton, used by tests.
func Set(c *Config) {
	cfg = c
}
