package config

import "time"

// Config holds runtime settings for the SimCar terminal client.
//
// Fields:
//   - ServerBaseURL: base address of the marketplace REST API (including /api).
//   - ImageOrigin: origin prepended to relative image paths returned by the API.
//   - RequestTimeout: transport timeout applied to every API call.
//   - DatabaseDSN: SQLite DSN of the local session database.
//   - LogLevel / LogFormat: slog level name and handler ("text" or "json").
//   - QuizBankPath: optional JSON file with quiz questions; the embedded sample
//     bank is used when empty.
type Config struct {
	ServerBaseURL  string
	ImageOrigin    string
	RequestTimeout time.Duration
	DatabaseDSN    string
	LogLevel       string
	LogFormat      string
	QuizBankPath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://simcar.kro.kr/api"
	c.ImageOrigin = "https://simcar.kro.kr"
	c.RequestTimeout = 15 * time.Second
	c.DatabaseDSN = "simcar.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.QuizBankPath = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
