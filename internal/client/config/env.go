package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// dotEnvFile is loaded (if it exists) before the environment is read.
var dotEnvFile = ".env"

// EnvConfig mirrors Config for environment variables. Unset variables leave
// the corresponding Config value untouched.
type EnvConfig struct {
	ServerBaseURL  string        `env:"SIMCAR_SERVER_URL"`
	ImageOrigin    string        `env:"SIMCAR_IMAGE_ORIGIN"`
	RequestTimeout time.Duration `env:"SIMCAR_REQUEST_TIMEOUT"`
	DatabaseDSN    string        `env:"SIMCAR_DATABASE_DSN"`
	LogLevel       string        `env:"SIMCAR_LOG_LEVEL"`
	LogFormat      string        `env:"SIMCAR_LOG_FORMAT"`
	QuizBankPath   string        `env:"SIMCAR_QUIZ_BANK"`
}

// parseEnv overlays Config with SIMCAR_* variables. A missing .env file is
// not an error; malformed values panic, as in parseJson.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(dotEnvFile)

	var ec EnvConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.ServerBaseURL, ec.ServerBaseURL)
	setIfNotEmpty(&cfg.ImageOrigin, ec.ImageOrigin)
	setIfNotEmpty(&cfg.DatabaseDSN, ec.DatabaseDSN)
	setIfNotEmpty(&cfg.LogLevel, ec.LogLevel)
	setIfNotEmpty(&cfg.LogFormat, ec.LogFormat)
	setIfNotEmpty(&cfg.QuizBankPath, ec.QuizBankPath)
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
}
