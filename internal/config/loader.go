package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const configFile = "runner.yaml"

// Load loads the runner configuration.
// Search order: customPath -> ~/.catrun/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Files only need to name the keys they change; everything else keeps its
// default value.
func Load(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the hard-coded defaults.
func parse(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".catrun", "configs", configFile)
}

// Marshal renders the configuration as YAML.
func Marshal(cfg RunnerConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.TargetSeconds = 120
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialSpeed++
		if cfg.Difficulty.InitialSpeed > cfg.Difficulty.MaxSpeed {
			cfg.Difficulty.InitialSpeed = cfg.Difficulty.MaxSpeed
		}
		cfg.Difficulty.TargetSeconds = 60
	}
}

// EnvOverrides are optional CATRUN_* environment overrides applied after
// file loading. Unset variables leave the loaded value untouched.
type EnvOverrides struct {
	InitialSpeed  *float64 `env:"CATRUN_INITIAL_SPEED"`
	MaxSpeed      *float64 `env:"CATRUN_MAX_SPEED"`
	TargetSeconds *float64 `env:"CATRUN_TARGET_SECONDS"`
	Difficulty    *bool    `env:"CATRUN_DIFFICULTY_ENABLED"`
	DBPath        *string  `env:"CATRUN_DB_PATH"`
	GroupID       *string  `env:"CATRUN_GROUP_ID"`
	TopRankN      *int     `env:"CATRUN_TOP_RANK_N"`
}

// ApplyEnv reads CATRUN_* variables and applies the ones that are set.
func ApplyEnv(cfg *RunnerConfig) error {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.InitialSpeed != nil {
		cfg.Difficulty.InitialSpeed = *o.InitialSpeed
	}
	if o.MaxSpeed != nil {
		cfg.Difficulty.MaxSpeed = *o.MaxSpeed
	}
	if o.TargetSeconds != nil {
		cfg.Difficulty.TargetSeconds = *o.TargetSeconds
	}
	if o.Difficulty != nil {
		cfg.Difficulty.Enabled = *o.Difficulty
	}
	if o.DBPath != nil {
		cfg.Storage.DBPath = *o.DBPath
	}
	if o.GroupID != nil {
		cfg.Storage.GroupID = *o.GroupID
	}
	if o.TopRankN != nil {
		cfg.Storage.TopRankN = *o.TopRankN
	}
	return nil
}

// Validate reports every inconsistent value in the configuration.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	check(c.World.BackgroundWidth > 0, "world.background_width must be positive")
	check(c.Clock.NominalFrameMs > 0, "clock.nominal_frame_ms must be positive")
	check(c.Clock.MaxDeltaMs >= c.Clock.NominalFrameMs, "clock.max_delta_ms must be at least one nominal frame")

	check(c.Player.Size > 0, "player.size must be positive")
	check(c.FloorY(c.Player.Size) >= 0, "player does not fit in the world")
	check(c.Player.SlideRatio > 0 && c.Player.SlideRatio <= 1, "player.slide_ratio must be in (0, 1], got %v", c.Player.SlideRatio)
	check(c.Player.ReleaseDamping >= 0 && c.Player.ReleaseDamping <= 1, "player.release_damping must be in [0, 1]")
	check(c.Player.MaxShields >= 0 && c.Player.MaxShields <= ShieldCap,
		"player.max_shields must be in [0, %d], got %d", ShieldCap, c.Player.MaxShields)
	check(c.Player.HitScale > 0, "player.hit_scale must be positive")

	check(c.Obstacles.MinInterval > 0, "obstacles.min_interval must be positive")
	check(c.Obstacles.HardFloor > 0, "obstacles.hard_floor must be positive")
	check(c.Obstacles.AnimFrames > 0, "obstacles.anim_frames must be positive")
	check(probability(c.Obstacles.Probability.Ground), "obstacles.probability.ground must be in [0, 1]")
	check(probability(c.Obstacles.Probability.GroundLong), "obstacles.probability.ground_long must be in [0, 1]")
	check(probability(c.Obstacles.Probability.AirLow), "obstacles.probability.air_low must be in [0, 1]")

	check(c.Items.IntervalMin > 0 && c.Items.IntervalMin <= c.Items.IntervalMax,
		"items interval range [%v, %v] is invalid", c.Items.IntervalMin, c.Items.IntervalMax)
	check(probability(c.Items.SpawnChance), "items.spawn_chance must be in [0, 1]")
	check(probability(c.Items.ShieldChance), "items.shield_chance must be in [0, 1]")
	check(probability(c.Items.AirChance), "items.air_chance must be in [0, 1]")

	check(c.Projectiles.Speed > 0, "projectiles.speed must be positive")
	check(c.Projectiles.TrailLength >= 0, "projectiles.trail_length must not be negative")

	check(c.Difficulty.InitialSpeed > 0, "difficulty.initial_speed must be positive")
	check(c.Difficulty.MaxSpeed >= c.Difficulty.InitialSpeed,
		"difficulty.max_speed (%v) is below initial_speed (%v)", c.Difficulty.MaxSpeed, c.Difficulty.InitialSpeed)
	check(c.Difficulty.TargetSeconds > 0, "difficulty.target_seconds must be positive")

	check(c.Messages.TTL > 0, "messages.ttl must be positive")
	check(c.Storage.TopRankN > 0, "storage.top_rank_n must be positive")

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func probability(p float64) bool {
	return p >= 0 && p <= 1
}
