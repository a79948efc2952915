package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catrun/internal/config"
)

// seedEnv reads the optional seed override.
type seedEnv struct {
	Seed int64 `env:"CATRUN_SEED"`
}

// loadRunnerConfig loads the config file, applies CATRUN_* overrides and the
// --difficulty preset, and validates the result.
func loadRunnerConfig() (config.RunnerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.RunnerConfig{}, err
	}

	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return config.RunnerConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}

	if err := cfg.Validate(); err != nil {
		return config.RunnerConfig{}, err
	}
	return cfg, nil
}

// resolveSeed returns --seed, else $CATRUN_SEED, else 0 (time based).
func resolveSeed() (int64, error) {
	if rootCmd.PersistentFlags().Changed("seed") {
		return flagSeed, nil
	}
	var e seedEnv
	if err := env.Parse(&e); err != nil {
		return 0, fmt.Errorf("parse env: %w", err)
	}
	return e.Seed, nil
}

// resolveDBPath returns --db, else the configured path, else the default.
func resolveDBPath(cfg config.RunnerConfig) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.Storage.DBPath
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens ~/.catrun/catrun.log for appending, so that logs do not
// corrupt the alternate screen.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".catrun")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "catrun.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
