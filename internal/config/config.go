// Package config loads application configuration from the environment.
package config

import (
	"encoding/base64"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the credentials for the upstream APIs. It is built once at
// startup and never mutated; the AstronomyAPI Basic credential is derived
// here so clients never re-encode it per request.
type Config struct {
	// AstronomyAPI application credentials.
	AppID     string
	AppSecret string

	// AuthHeader is the derived "Basic <base64(id:secret)>" header value.
	AuthHeader string

	// GoogleAPIKey is used for Places autocomplete, place details and the
	// geocoding fallback.
	GoogleAPIKey string
}

// Load reads configuration from a .env file (if present) and the process
// environment. Missing credentials are reported but not fatal: the upstream
// APIs will reject unauthenticated calls with their own errors.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := &Config{
		AppID:        os.Getenv("APP_ID"),
		AppSecret:    os.Getenv("APP_SECRET"),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
	}
	cfg.AuthHeader = basicAuth(cfg.AppID, cfg.AppSecret)

	if cfg.AppID == "" || cfg.AppSecret == "" {
		log.Warn().Msg("APP_ID/APP_SECRET not set; AstronomyAPI requests will fail")
	}
	if cfg.GoogleAPIKey == "" {
		log.Warn().Msg("GOOGLE_API_KEY not set; location lookups will fail")
	}

	return cfg
}

// basicAuth encodes credentials for an HTTP Basic Authorization header.
func basicAuth(id, secret string) string {
	creds := id + ":" + secret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}
