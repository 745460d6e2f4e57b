// Package config loads service configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from the process environment using `env` struct tags.
// Defaults come from `envDefault`; fields tagged `required` fail the load
// when the variable is unset.
//
//	type Config struct {
//	    HTTPPort   int           `env:"HTTP_PORT" envDefault:"8080"`
//	    CatalogURL string        `env:"CATALOG_URL,required"`
//	    Timeout    time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
