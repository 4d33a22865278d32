package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

const (
	prodBaseURL = "https://api.amadeus.com"
	testBaseURL = "https://test.api.amadeus.com"
)

// Config carries the Amadeus API credentials and environment selection.
type Config struct {
	ClientID     string
	ClientSecret string
	Environment  string
}

// Load reads configuration from the environment, after loading a .env
// file when one exists in the working directory. A missing .env is fine;
// missing credentials are not.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		ClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		Environment:  os.Getenv("AMADEUS_ENV"),
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return Config{}, errors.New("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set")
	}
	return cfg, nil
}

// BaseURL picks the API host for the configured environment. Anything
// other than "production" uses the test host.
func (c Config) BaseURL() string {
	if c.Environment == "production" {
		return prodBaseURL
	}
	return testBaseURL
}
