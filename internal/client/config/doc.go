// Package config loads runtime configuration for the SimCar terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables SIMCAR_* (see parseEnv); a .env file in the
//     working directory is loaded first when present.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the marketplace API
//	-o string   origin for relative image paths
//	-t int      request timeout (seconds)
//	-d string   session database DSN
//	-l string   log level
//	-q string   quiz bank JSON file
//
// # JSON schema
//
//	{
//	  "server_base_url": "https://simcar.kro.kr/api",
//	  "image_origin": "https://simcar.kro.kr",
//	  "request_timeout": "15s",
//	  "database_dsn": "simcar.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "quiz_bank_path": ""
//	}
package config
