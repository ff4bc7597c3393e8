package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/simcar/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the marketplace API
//	-o string   origin used to absolutize image paths
//	-t int      request timeout (in seconds)
//	-d string   SQLite DSN of the session database
//	-l string   log level
//	-q string   quiz bank JSON file
//
// Only the flags listed above are taken from os.Args (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], "-a", "-o", "-t", "-d", "-l", "-q")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the marketplace API")
	fs.StringVar(&cfg.ImageOrigin, "o", cfg.ImageOrigin, "origin for relative image paths")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "session database DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.QuizBankPath, "q", cfg.QuizBankPath, "quiz bank JSON file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
