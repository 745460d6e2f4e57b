package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/AnaFlavia-corretora/pcd/pkg/config"
	pkgvalidator "github.com/AnaFlavia-corretora/pcd/pkg/validator"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080" validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Catalog snapshot source selection (http fetches CatalogURL through the
	// circuit-breaker client, file reads CatalogPath from disk).
	CatalogSource string        `env:"CATALOG_SOURCE" envDefault:"http" validate:"oneof=http file"`
	CatalogURL    string        `env:"CATALOG_URL" envDefault:"http://localhost:8000/carros.json" validate:"required_if=CatalogSource http,omitempty,url"`
	CatalogPath   string        `env:"CATALOG_PATH" envDefault:"carros.json" validate:"required_if=CatalogSource file"`
	FetchTimeout  time.Duration `env:"CATALOG_FETCH_TIMEOUT" envDefault:"10s"`
	FetchRetries  int           `env:"CATALOG_FETCH_RETRIES" envDefault:"3" validate:"gte=0,lte=10"`

	// WhatsApp number the page CTAs link to (country code + DDD + number,
	// digits only, as wa.me expects).
	WhatsAppPhone string `env:"WHATSAPP_PHONE" envDefault:"5511999999999" validate:"required"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"50" validate:"gte=1"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"100" validate:"gte=1"`

	// Cache-Control max-age in seconds for GET responses. The snapshot never
	// changes after publish, so pages can cache aggressively.
	PageCacheMaxAge int `env:"PAGE_CACHE_MAX_AGE" envDefault:"300" validate:"gte=0"`

	// pprof access
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32,::1/128" envSeparator:","`

	// OpenTelemetry tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0" validate:"gte=0,lte=1"`
	OTLPEndpoint      string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if err := pkgvalidator.Validate(c); err != nil {
		return fmt.Errorf("invalid catalog config: %w", err)
	}
	if c.RateLimitBurst < c.RateLimitRPS {
		return fmt.Errorf("RATE_LIMIT_BURST (%d) must be >= RATE_LIMIT_RPS (%d)", c.RateLimitBurst, c.RateLimitRPS)
	}
	return nil
}
