package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds all environment-provided settings for the client.
type Config struct {
	APIBaseURL   string `env:"API_BASE_URL" default:"http://localhost:8080/api"`
	MinerAddress string `env:"MINER_ADDRESS" default:"miner1"`

	TxPollInterval    time.Duration `env:"TX_POLL_INTERVAL" default:"3s"`
	ChainPollInterval time.Duration `env:"CHAIN_POLL_INTERVAL" default:"5s"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
	Debug     bool   `env:"DEBUG" default:"false"`
}

// Load reads configuration from a .env file (if present) and the
// environment, applying defaults and validating the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", cfg.APIBaseURL)
	}

	if cfg.MinerAddress == "" {
		return fmt.Errorf("MINER_ADDRESS must not be empty")
	}

	if cfg.TxPollInterval <= 0 {
		return fmt.Errorf("TX_POLL_INTERVAL must be positive, got %s", cfg.TxPollInterval)
	}
	if cfg.ChainPollInterval <= 0 {
		return fmt.Errorf("CHAIN_POLL_INTERVAL must be positive, got %s", cfg.ChainPollInterval)
	}

	return nil
}

// Dir returns the per-user state directory (~/.blocksim), creating it if
// needed. Credentials and the log file live here.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".blocksim")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
