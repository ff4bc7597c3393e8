package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/simcar/internal/flagx"
	"github.com/dmitrijs2005/simcar/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept both "1m" strings and integer nanoseconds.
type JsonConfig struct {
	ListenAddress string         `json:"listen_address"`
	SecretKey     string         `json:"secret_key"`
	TokenValidity timex.Duration `json:"token_validity"`
	LogLevel      string         `json:"log_level"`
	Seed          *bool          `json:"seed"`
}

// parseJson overlays values from the file named by -c/-config. Missing
// fields keep their current values. A missing or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ListenAddress != "" {
		config.ListenAddress = c.ListenAddress
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidity.Duration != 0 {
		config.TokenValidity = time.Duration(c.TokenValidity.Duration)
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.Seed != nil {
		config.Seed = *c.Seed
	}
}
