package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/newsexplorer/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "168h" and integer nanoseconds.
//
// Pointer fields tell a key that is absent from one set to the zero value.
type JsonConfig struct {
	HTTPAddr       *string         `json:"http_addr"`
	GRPCAddr       *string         `json:"grpc_addr"`
	DatabaseDSN    *string         `json:"database_dsn"`
	SecretKey      *string         `json:"secret_key"`
	TokenValidity  *timex.Duration `json:"token_validity"`
	AllowedOrigins []string        `json:"allowed_origins"`
	BcryptCost     *int            `json:"bcrypt_cost"`
	LogLevel       *string         `json:"log_level"`
}

// parseJSON overlays the JSON file at path onto config. An empty path is a
// no-op. Keys missing from the file keep their previous value.
func parseJSON(config *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&config.HTTPAddr, c.HTTPAddr)
	setIf(&config.GRPCAddr, c.GRPCAddr)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.LogLevel, c.LogLevel)
	if c.TokenValidity != nil {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
