// Package config loads process configuration from environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the stand-in reads from the environment.
// COGNITO_ENDPOINT doubles as the iss claim of every issued token so
// that verifiers pointed at this process accept them.
type Config struct {
	AppName        string `env:"APP_NAME" envDefault:"Cognito Local"`
	Port           string `env:"PORT" envDefault:"9329"`
	Issuer         string `env:"COGNITO_ENDPOINT" envDefault:"http://localhost:9329"`
	DatabasePath   string `env:"DATABASE_PATH" envDefault:"./data/accounts.db"`
	PrivateKeyFile string `env:"PRIVATE_KEY_FILE"` // PEM; a throwaway key is generated when unset
	KeyID          string `env:"KEY_ID" envDefault:"local"`
	Env            string `env:"ENV" envDefault:"DEV"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
