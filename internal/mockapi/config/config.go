// Package config handles configuration for the mock marketplace backend,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the mock backend.
//
// Fields:
//   - ListenAddress: bind address of the HTTP server.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults outside development.
//   - TokenValidity: lifetime of issued bearer tokens.
//   - LogLevel: slog level name.
//   - Seed: populate the catalogue with demo listings on start.
type Config struct {
	ListenAddress string
	SecretKey     string
	TokenValidity time.Duration
	LogLevel      string
	Seed          bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddress = ":8080"
	c.SecretKey = "secretKey"
	c.TokenValidity = 60 * time.Minute
	c.LogLevel = "info"
	c.Seed = true
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
