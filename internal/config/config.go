// Package config provides YAML-based configuration loading and the
// difficulty curve for the runner.
//
// All distances are in world units of a virtual World.Width x World.Height
// canvas; all durations are in milliseconds.
package config

// RunnerConfig contains all tunable parameters of a runner session.
type RunnerConfig struct {
	World       WorldConfig      `yaml:"world"`
	Clock       ClockConfig      `yaml:"clock"`
	Player      PlayerConfig     `yaml:"player"`
	Obstacles   ObstacleConfig   `yaml:"obstacles"`
	Items       ItemConfig       `yaml:"items"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Scoring     ScoringConfig    `yaml:"scoring"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
	Messages    MessageConfig    `yaml:"messages"`
	Storage     StorageConfig    `yaml:"storage"`
}

// WorldConfig defines the virtual canvas the simulation runs in.
type WorldConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	BackgroundWidth float64 `yaml:"background_width"` // Width of one scrolling panel
}

// ClockConfig defines frame timing.
type ClockConfig struct {
	NominalFrameMs float64 `yaml:"nominal_frame_ms"` // Reference frame; speeds are per nominal frame
	MaxDeltaMs     float64 `yaml:"max_delta_ms"`     // Upper clamp for a single tick
}

// ShieldCap is the most shields a player can ever hold.
const ShieldCap = 3

// PlayerConfig defines player geometry and physics.
type PlayerConfig struct {
	X              float64 `yaml:"x"`               // Base horizontal position
	Size           float64 `yaml:"size"`            // Square sprite edge while running or jumping
	GroundOffset   float64 `yaml:"ground_offset"`   // Gap between player floor and canvas bottom
	JumpPower      float64 `yaml:"jump_power"`      // Initial upward velocity
	Gravity        float64 `yaml:"gravity"`         // Downward acceleration per nominal frame
	ReleaseDamping float64 `yaml:"release_damping"` // VY multiplier when jump is released while rising
	JumpDrift      float64 `yaml:"jump_drift"`      // Max forward drift from X while airborne
	DriftForward   float64 `yaml:"drift_forward"`
	DriftBack      float64 `yaml:"drift_back"`
	SlideRatio     float64 `yaml:"slide_ratio"` // Height multiplier while sliding
	MaxShields     int     `yaml:"max_shields"`
	InvincibleMs   float64 `yaml:"invincible_ms"` // Grace window after a shield absorbs a hit
	HitScale       float64 `yaml:"hit_scale"`     // Player hitbox scale on both axes
	HitRadius      float64 `yaml:"hit_radius"`    // Radius used against projectiles
	RunFPS         float64 `yaml:"run_fps"`       // Run animation frame rate
}

// ObstacleConfig defines obstacle geometry and spawn behavior.
type ObstacleConfig struct {
	GroundOffset    float64          `yaml:"ground_offset"` // Gap between obstacle ground line and canvas bottom
	GroundWidth     float64          `yaml:"ground_width"`
	GroundLongWidth float64          `yaml:"ground_long_width"`
	GroundHeight    float64          `yaml:"ground_height"`
	AirWidth        float64          `yaml:"air_width"`
	AirHeight       float64          `yaml:"air_height"`
	AirLowGap       float64          `yaml:"air_low_gap"`  // Clearance under a low drone
	AirHighGap      float64          `yaml:"air_high_gap"` // Clearance under a high drone
	AnimFPS         float64          `yaml:"anim_fps"`
	AnimFrames      int              `yaml:"anim_frames"`
	InitialInterval float64          `yaml:"initial_interval"`
	BaseInterval    float64          `yaml:"base_interval"`
	MinInterval     float64          `yaml:"min_interval"`
	HardFloor       float64          `yaml:"hard_floor"`
	SpeedCoeff      float64          `yaml:"speed_coeff"`
	ScoreCoeff      float64          `yaml:"score_coeff"`
	RandomDelay     float64          `yaml:"random_delay"`
	Probability     ObstacleOdds     `yaml:"probability"`
	Thresholds      DroneThresholds  `yaml:"thresholds"`
	BobLevel1       BobTier          `yaml:"bob_level_1"`
	BobLevel2       BobTier          `yaml:"bob_level_2"`
	HitScale        ObstacleHitScale `yaml:"hit_scale"`
}

// ObstacleOdds defines obstacle kind selection probabilities.
type ObstacleOdds struct {
	Ground     float64 `yaml:"ground"`      // Ground vs air
	GroundLong float64 `yaml:"ground_long"` // Long among ground
	AirLow     float64 `yaml:"air_low"`     // Low among air
}

// DroneThresholds are the scores at which drones gain behaviors.
type DroneThresholds struct {
	MoveLevel1 float64 `yaml:"move_level_1"`
	MoveLevel2 float64 `yaml:"move_level_2"`
	Attack     float64 `yaml:"attack"`
}

// BobTier defines vertical bobbing of a drone.
type BobTier struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"` // Radians per nominal frame
}

// ObstacleHitScale defines hitbox scales for obstacles.
type ObstacleHitScale struct {
	GroundX float64 `yaml:"ground_x"`
	GroundY float64 `yaml:"ground_y"`
	AirX    float64 `yaml:"air_x"`
	AirY    float64 `yaml:"air_y"`
}

// ItemConfig defines collectible geometry and spawn behavior.
type ItemConfig struct {
	Size              float64 `yaml:"size"`
	GroundOffset      float64 `yaml:"ground_offset"`
	JumpHeight        float64 `yaml:"jump_height"` // Lift of the air band above the floor band
	FloatAmplitude    float64 `yaml:"float_amplitude"`
	FloatSpeed        float64 `yaml:"float_speed"` // Radians per nominal frame
	AirChance         float64 `yaml:"air_chance"`
	InitialInterval   float64 `yaml:"initial_interval"`
	IntervalMin       float64 `yaml:"interval_min"`
	IntervalMax       float64 `yaml:"interval_max"`
	SpawnChance       float64 `yaml:"spawn_chance"`
	ShieldChance      float64 `yaml:"shield_chance"`
	SafeDistance      float64 `yaml:"safe_distance"`      // Band at the right edge that must be clear
	ObstacleLookahead float64 `yaml:"obstacle_lookahead"` // Skip when an obstacle is due within this window
	ScoreBonus        float64 `yaml:"score_bonus"`
	HitScale          float64 `yaml:"hit_scale"`
}

// ProjectileConfig defines drone projectiles.
type ProjectileConfig struct {
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"`
	TrailLength int     `yaml:"trail_length"`
}

// ScoringConfig defines score and distance accrual.
type ScoringConfig struct {
	ScoreFactor    float64 `yaml:"score_factor"`    // Score per speed unit per ms
	DistanceFactor float64 `yaml:"distance_factor"` // Distance per speed unit per ms
}

// DifficultyConfig defines the speed progression.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"`
	InitialSpeed  float64 `yaml:"initial_speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
	TargetSeconds float64 `yaml:"target_seconds"` // Play time at which MaxSpeed is reached
}

// MessageConfig defines floating feedback text.
type MessageConfig struct {
	TTL       float64 `yaml:"ttl"`
	Ease      float64 `yaml:"ease"`       // Fraction of remaining distance covered per frame
	RiseSpeed float64 `yaml:"rise_speed"` // Upward drift per nominal frame
	FadeStart float64 `yaml:"fade_start"` // Fraction of TTL after which alpha decays
	FadeRate  float64 `yaml:"fade_rate"`  // Alpha lost per nominal frame while fading
}

// StorageConfig defines persistence settings used by the frontends.
type StorageConfig struct {
	DBPath   string `yaml:"db_path"` // Empty selects ~/.catrun/scores.db
	GroupID  string `yaml:"group_id"`
	TopRankN int    `yaml:"top_rank_n"`
}

// FloorY returns the player's resting Y for the given player height.
func (c RunnerConfig) FloorY(height float64) float64 {
	return c.World.Height - height - c.Player.GroundOffset
}

// ObstacleGroundY returns the line ground obstacles stand on.
func (c RunnerConfig) ObstacleGroundY() float64 {
	return c.World.Height - c.Obstacles.GroundOffset
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Empty or unknown input
// yields "" and false, meaning the config default is used.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
