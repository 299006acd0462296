// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/flagx"
)

// Config holds runtime settings for the newsexplorer backend.
//
// Fields:
//   - HTTPAddr: bind address of the REST API.
//   - GRPCAddr: bind address of the gRPC health service.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects in-memory storage.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidity: lifetime of issued tokens.
//   - AllowedOrigins: CORS origins; "*" allows any.
//   - BcryptCost: password hashing cost; 0 means bcrypt.DefaultCost.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	HTTPAddr       string
	GRPCAddr       string
	DatabaseDSN    string
	SecretKey      string
	TokenValidity  time.Duration
	AllowedOrigins []string
	BcryptCost     int
	LogLevel       string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3001"
	c.GRPCAddr = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidity = 7 * 24 * time.Hour
	c.AllowedOrigins = []string{"*"}
	c.BcryptCost = 0
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address is empty"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	if c.TokenValidity <= 0 {
		errs = append(errs, errors.New("token validity must be positive"))
	}
	return errors.Join(errs...)
}
