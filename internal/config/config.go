// Package config holds the service configuration for LeadScout.
package config

import (
	"fmt"

	"github.com/zopdev/leadscout/internal/search"
	pkgconfig "github.com/zopdev/leadscout/pkg/config"
	"github.com/zopdev/leadscout/pkg/logger"
)

// DefaultConfigPath is where the service looks for its config file unless
// CONFIG_PATH overrides it.
const DefaultConfigPath = "config.yml"

// Config is the root configuration for the LeadScout service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Cache    CacheConfig    `yaml:"cache"`
	Enrich   EnrichConfig   `yaml:"enrich"`
	Scorer   ScorerConfig   `yaml:"scorer"`
	Logging  logger.Config  `yaml:"logging"`
}

// ServiceConfig identifies the service.
type ServiceConfig struct {
	Name    string `yaml:"name" env:"SERVICE_NAME"`
	Version string `yaml:"version" env:"SERVICE_VERSION"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port            int                `yaml:"port" env:"SERVER_PORT"`
	Debug           bool               `yaml:"debug" env:"DEBUG"`
	ReadTimeout     pkgconfig.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    pkgconfig.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout pkgconfig.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	AllowedOrigins  []string           `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
}

// ProviderConfig selects and configures the active search backend. Exactly
// one backend is live per deployment.
type ProviderConfig struct {
	// Active is the backend to use: serper, googlecse, or tavily.
	Active    string          `yaml:"active" env:"SEARCH_PROVIDER"`
	Serper    SerperConfig    `yaml:"serper"`
	GoogleCSE GoogleCSEConfig `yaml:"googlecse"`
	Tavily    TavilyConfig    `yaml:"tavily"`
}

// SerperConfig holds Serper.dev credentials.
type SerperConfig struct {
	APIKey string `yaml:"api_key" env:"SERPER_API_KEY"`
}

// GoogleCSEConfig holds Google Custom Search credentials.
type GoogleCSEConfig struct {
	APIKey string `yaml:"api_key" env:"GOOGLE_CSE_API_KEY"`
	CSEID  string `yaml:"cse_id" env:"GOOGLE_CSE_ID"`
}

// TavilyConfig holds Tavily credentials.
type TavilyConfig struct {
	APIKey string `yaml:"api_key" env:"TAVILY_API_KEY"`
}

// CacheConfig holds the query cache settings.
type CacheConfig struct {
	TTL      pkgconfig.Duration `yaml:"ttl" env:"CACHE_TTL"`
	Capacity int                `yaml:"capacity" env:"CACHE_CAPACITY"`
}

// EnrichConfig holds the Proxycurl enrichment settings. Enrichment is an
// optional feature; the key is validated lazily on first use.
type EnrichConfig struct {
	APIKey string `yaml:"api_key" env:"PROXYCURL_API_KEY"`
}

// ScorerConfig holds the LLM scoring settings. Scoring is an optional
// feature; the key is validated lazily on first use.
type ScorerConfig struct {
	APIKey string `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	Model  string `yaml:"model" env:"SCORER_MODEL"`
}

// Load reads the service configuration, applies defaults and environment
// overrides, and validates it.
func Load(path string) (*Config, error) {
	cfg, err := pkgconfig.LoadWithDefaults[Config](path, func(c *Config) {
		c.setDefaults()
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "leadscout"
	}
	if c.Service.Version == "" {
		c.Service.Version = "1.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Provider.Active == "" {
		c.Provider.Active = search.ProviderSerper
	}
	c.Logging.SetDefaults()
}

// Validate fails fast on missing or malformed settings. Credentials are only
// required for the active provider so a deployment configures exactly what
// it uses.
func (c *Config) Validate() error {
	if err := pkgconfig.ValidatePort("server.port", c.Server.Port); err != nil {
		return err
	}
	if err := pkgconfig.ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := pkgconfig.ValidateLogFormat(c.Logging.Format); err != nil {
		return err
	}

	switch c.Provider.Active {
	case search.ProviderSerper:
		if c.Provider.Serper.APIKey == "" {
			return &pkgconfig.ValidationError{
				Field:   "provider.serper.api_key",
				Message: "is required when provider.active is serper (env SERPER_API_KEY)",
			}
		}
	case search.ProviderGoogleCSE:
		if c.Provider.GoogleCSE.APIKey == "" {
			return &pkgconfig.ValidationError{
				Field:   "provider.googlecse.api_key",
				Message: "is required when provider.active is googlecse (env GOOGLE_CSE_API_KEY)",
			}
		}
		if c.Provider.GoogleCSE.CSEID == "" {
			return &pkgconfig.ValidationError{
				Field:   "provider.googlecse.cse_id",
				Message: "is required when provider.active is googlecse (env GOOGLE_CSE_ID)",
			}
		}
	case search.ProviderTavily:
		if c.Provider.Tavily.APIKey == "" {
			return &pkgconfig.ValidationError{
				Field:   "provider.tavily.api_key",
				Message: "is required when provider.active is tavily (env TAVILY_API_KEY)",
			}
		}
	default:
		return &pkgconfig.ValidationError{
			Field:   "provider.active",
			Message: fmt.Sprintf("must be one of %s, %s, %s", search.ProviderSerper, search.ProviderGoogleCSE, search.ProviderTavily),
		}
	}

	if c.Cache.TTL < 0 {
		return &pkgconfig.ValidationError{Field: "cache.ttl", Message: "must not be negative"}
	}
	if c.Cache.Capacity < 0 {
		return &pkgconfig.ValidationError{Field: "cache.capacity", Message: "must not be negative"}
	}

	return nil
}
