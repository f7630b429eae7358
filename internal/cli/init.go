// Package cli provides common initialization shared by cmd/grana and
// cmd/grana-chat.
package cli

import (
	"log/slog"
	"os"

	"grana/internal/config"
	applog "grana/internal/log"
	"grana/internal/store/memory"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads the .env file for local development. Errors are ignored
// silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// SetupLogger builds the application logger at the configured level and
// installs it as the process default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		// Validate already checked the level; keep a safe fallback anyway.
		level = slog.LevelInfo
	}
	logger := applog.New(applog.Config{Level: level, Component: applog.ComponentApp})
	applog.SetDefault(logger)
	return logger
}

// InitStore builds the in-memory store: from the configured seed file when
// one is set, otherwise with the built-in demo data. Exits on a bad file.
func InitStore(logger *applog.Logger, seedFile string) *memory.Store {
	if seedFile == "" {
		logger.Info("using built-in seed data")
		return memory.NewSeeded()
	}
	s, err := memory.NewFromFile(seedFile)
	if err != nil {
		logger.Error("failed to load seed file", applog.FieldError, err, "path", seedFile)
		os.Exit(1)
	}
	logger.Info("seed data loaded", "path", seedFile)
	return s
}
