package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by the server. TTL is accepted as an
// integer number of minutes, matching the -t flag.
const (
	envAddress    = "ROLLBOOK_ADDRESS"
	envDSN        = "ROLLBOOK_DATABASE_DSN"
	envSecretKey  = "ROLLBOOK_SECRET_KEY"
	envAlgorithm  = "ROLLBOOK_ALGORITHM"
	envTokenTTL   = "ROLLBOOK_TOKEN_TTL_MINUTES"
	envBcryptCost = "ROLLBOOK_BCRYPT_COST"
	envLogLevel   = "ROLLBOOK_LOG_LEVEL"
)

// parseEnv overlays Config fields from the process environment. A .env
// file in the working directory is loaded first if present; real
// environment variables win over .env entries.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv(envAddress); ok {
		config.Address = v
	}
	if v, ok := os.LookupEnv(envDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envSecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(envAlgorithm); ok {
		config.Algorithm = v
	}
	if v, ok := os.LookupEnv(envTokenTTL); ok {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.TokenTTL = time.Duration(minutes) * time.Minute
		}
	}
	if v, ok := os.LookupEnv(envBcryptCost); ok {
		if cost, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = cost
		}
	}
	if v, ok := os.LookupEnv(envLogLevel); ok {
		config.LogLevel = v
	}
}
