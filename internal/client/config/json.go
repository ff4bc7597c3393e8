package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/simcar/internal/flagx"
	"github.com/dmitrijs2005/simcar/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the request timeout either
// as a string like "15s" or as integer nanoseconds. Empty fields leave the
// corresponding Config value untouched.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	ImageOrigin    string         `json:"image_origin"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabaseDSN    string         `json:"database_dsn"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
	QuizBankPath   string         `json:"quiz_bank_path"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// -c or -config. Without either flag it is a no-op.
//
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setIfNotEmpty(&cfg.ImageOrigin, jc.ImageOrigin)
	setIfNotEmpty(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
	setIfNotEmpty(&cfg.LogFormat, jc.LogFormat)
	setIfNotEmpty(&cfg.QuizBankPath, jc.QuizBankPath)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
