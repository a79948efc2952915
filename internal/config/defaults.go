package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

// DefaultRunnerConfig returns the hard-coded runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file
// cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:           1280,
			Height:          800,
			BackgroundWidth: 1280,
		},
		Clock: ClockConfig{
			NominalFrameMs: 16.67,
			MaxDeltaMs:     1000,
		},
		Player: PlayerConfig{
			X:              128,
			Size:           112,
			GroundOffset:   48,
			JumpPower:      16,
			Gravity:        0.64,
			ReleaseDamping: 0.5,
			JumpDrift:      50,
			DriftForward:   0.5,
			DriftBack:      2,
			SlideRatio:     0.7,
			MaxShields:     3,
			InvincibleMs:   1000,
			HitScale:       0.5,
			HitRadius:      30,
			RunFPS:         8,
		},
		Obstacles: ObstacleConfig{
			GroundOffset:    48,
			GroundWidth:     80,
			GroundLongWidth: 160,
			GroundHeight:    80,
			AirWidth:        96,
			AirHeight:       72,
			AirLowGap:       48,
			AirHighGap:      96,
			AnimFPS:         10,
			AnimFrames:      4,
			InitialInterval: 2000,
			BaseInterval:    2300,
			MinInterval:     700,
			HardFloor:       400,
			SpeedCoeff:      200,
			ScoreCoeff:      0.05,
			RandomDelay:     700,
			Probability: ObstacleOdds{
				Ground:     0.7,
				GroundLong: 0.3,
				AirLow:     0.4,
			},
			Thresholds: DroneThresholds{
				MoveLevel1: 5000,
				MoveLevel2: 10000,
				Attack:     50000,
			},
			BobLevel1: BobTier{Amplitude: 20, Frequency: 0.05},
			BobLevel2: BobTier{Amplitude: 30, Frequency: 0.08},
			HitScale: ObstacleHitScale{
				GroundX: 0.7,
				GroundY: 1.0,
				AirX:    1.0,
				AirY:    0.4,
			},
		},
		Items: ItemConfig{
			Size:              64,
			GroundOffset:      48,
			JumpHeight:        150,
			FloatAmplitude:    8,
			FloatSpeed:        0.05,
			AirChance:         0.5,
			InitialInterval:   1000,
			IntervalMin:       1000,
			IntervalMax:       2000,
			SpawnChance:       0.8,
			ShieldChance:      0.1,
			SafeDistance:      154,
			ObstacleLookahead: 300,
			ScoreBonus:        100,
			HitScale:          0.8,
		},
		Projectiles: ProjectileConfig{
			Radius:      6,
			Speed:       7,
			TrailLength: 5,
		},
		Scoring: ScoringConfig{
			ScoreFactor:    0.01,
			DistanceFactor: 0.001,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			InitialSpeed:  4,
			MaxSpeed:      8,
			TargetSeconds: 90,
		},
		Messages: MessageConfig{
			TTL:       1000,
			Ease:      0.03,
			RiseSpeed: 1,
			FadeStart: 0.7,
			FadeRate:  0.05,
		},
		Storage: StorageConfig{
			TopRankN: 10,
		},
	}
}
