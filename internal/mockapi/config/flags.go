package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/simcar/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   bind address (e.g. ":8080")
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-l string   log level
//	-e bool     seed demo listings (use -e=false to start empty)
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], "-a", "-s", "-t", "-l", "-e")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddress, "a", config.ListenAddress, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	validity := fs.Int("t", int(config.TokenValidity.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.Seed, "e", config.Seed, "seed demo listings")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidity = time.Duration(*validity) * time.Minute
}
