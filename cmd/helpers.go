package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/themegen/internal/config"
	"github.com/ziadkadry99/themegen/internal/creations"
	"github.com/ziadkadry99/themegen/internal/db"
	"github.com/ziadkadry99/themegen/internal/llm"
	"github.com/ziadkadry99/themegen/internal/logging"
	"github.com/ziadkadry99/themegen/internal/theme"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `themegen init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the shared logger. --verbose means debug.
func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Options{Level: level})
}

// createLLMProviderFromConfig creates an LLM provider based on config
// settings, rate limited when requests_per_minute is set.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	p, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.RequestsPerMinute > 0 {
		p = llm.NewRateLimitedProvider(p, cfg.RequestsPerMinute)
	}
	return p, nil
}

// newGenerator wires a theme generator to the configured provider.
func newGenerator(cfg *config.Config) (*theme.Generator, error) {
	p, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	return theme.NewGenerator(p,
		theme.WithModel(cfg.Model),
		theme.WithMaxTokens(cfg.MaxTokens),
		theme.WithTemperature(cfg.Temperature),
	), nil
}

// openStore opens the creations database. The caller closes the returned DB.
func openStore(cfg *config.Config) (*db.DB, *creations.Store, error) {
	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, creations.NewStore(database), nil
}
