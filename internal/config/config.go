// Package config provides YAML-based simulation configuration loading and
// difficulty management for the asteroids game.
package config

import "github.com/vovakirdan/asteroids-destroyer/internal/core"

// AsteroidsConfig contains all tunables of the simulation. Durations are in
// seconds and rates are per second so the values do not depend on the tick rate.
type AsteroidsConfig struct {
	Mode       string           `yaml:"mode"` // "classic" or "modern"
	Field      FieldConfig      `yaml:"field"`
	Ship       ShipConfig       `yaml:"ship"`
	Missile    MissileConfig    `yaml:"missile"`
	Asteroids  AsteroidConfig   `yaml:"asteroids"`
	BlackHoles BlackHoleConfig  `yaml:"black_holes"`
	Spawning   SpawnConfig      `yaml:"spawning"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Modes      ModesConfig      `yaml:"modes"`
}

// FieldConfig defines the toroidal playing area in field units.
type FieldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	MaxSpeed float64 `yaml:"max_speed"` // Global speed clamp for every moving entity
}

// ShipConfig defines the player's ship.
type ShipConfig struct {
	Radius           float64 `yaml:"radius"`
	Thrust           float64 `yaml:"thrust"`            // Acceleration along the heading (units/s^2)
	Retain           float64 `yaml:"retain"`            // Fraction of velocity kept after one second of drag
	MaxSpeed         float64 `yaml:"max_speed"`         // Ship-specific speed clamp
	RotationSpeed    float64 `yaml:"rotation_speed"`    // Radians per second
	StrafeSpeed      float64 `yaml:"strafe_speed"`      // Acceleration for directional steering (units/s^2)
	FireCooldown     float64 `yaml:"fire_cooldown"`     // Seconds between missiles
	InvulnerableTime float64 `yaml:"invulnerable_time"` // Seconds of protection after respawn
}

// MissileConfig defines projectiles.
type MissileConfig struct {
	Radius    float64 `yaml:"radius"`
	Speed     float64 `yaml:"speed"`
	TTL       float64 `yaml:"ttl"`        // Lifetime in seconds
	MaxActive int     `yaml:"max_active"` // Missile population cap
}

// TierValues holds one value per asteroid tier.
type TierValues struct {
	Large  float64 `yaml:"large"`
	Medium float64 `yaml:"medium"`
	Small  float64 `yaml:"small"`
}

// For returns the value for tier t.
func (v TierValues) For(t core.Tier) float64 {
	switch t {
	case core.TierLarge:
		return v.Large
	case core.TierMedium:
		return v.Medium
	default:
		return v.Small
	}
}

// AsteroidConfig defines asteroid sizes, motion and population limits.
type AsteroidConfig struct {
	Radius       TierValues `yaml:"radius"`
	MinSpeed     float64    `yaml:"min_speed"`
	MaxSpeed     float64    `yaml:"max_speed"`
	SplitBoost   float64    `yaml:"split_boost"`   // Fragment speed multiplier relative to the parent
	SplitSpread  float64    `yaml:"split_spread"`  // Radians between the two fragment headings
	MaxSpin      float64    `yaml:"max_spin"`      // Radians per second
	Cap          int        `yaml:"cap"`           // Weight budget, not a count: large=4, medium=2, small=1
	SafeDistance float64    `yaml:"safe_distance"` // Minimum spawn distance from the ship
}

// BlackHoleConfig defines gravitational hazards.
type BlackHoleConfig struct {
	Strength        float64 `yaml:"strength"`
	HorizonRadius   float64 `yaml:"horizon_radius"`
	InfluenceRadius float64 `yaml:"influence_radius"`
	Epsilon         float64 `yaml:"epsilon"` // Lower bound for squared distance in the force law
	Spin            float64 `yaml:"spin"`
	Cap             int     `yaml:"cap"`
	RepelSpeed      float64 `yaml:"repel_speed"` // Outward speed given to asteroids touching a horizon when repelling
}

// SpawnConfig defines asteroid spawn pacing.
type SpawnConfig struct {
	BaseInterval float64 `yaml:"base_interval"` // Seconds between spawns at difficulty 0
	MinInterval  float64 `yaml:"min_interval"`  // Floor reached at difficulty 1
	Window       float64 `yaml:"window"`        // Seconds after which spawning stops (0 = never)
	InitialCount int     `yaml:"initial_count"` // Large asteroids placed at run start
}

// ModesConfig holds the per-variant rule tables.
type ModesConfig struct {
	Classic ModeConfig `yaml:"classic"`
	Modern  ModeConfig `yaml:"modern"`
}

// ModeConfig parameterises one game variant.
type ModeConfig struct {
	Lives              int        `yaml:"lives"`
	Points             TierValues `yaml:"points"`
	BlackHoles         bool       `yaml:"black_holes"`
	BlackHoleInterval  float64    `yaml:"black_hole_interval"` // Seconds between black hole spawns
	BlackHoleHit       string     `yaml:"black_hole_hit"`      // "lose_life" or "game_over"
	AsteroidHit        string     `yaml:"asteroid_hit"`        // "lose_life" or "game_over"
	Horizon            string     `yaml:"horizon"`             // "swallow" or "repel"
	AsteroidCollisions bool       `yaml:"asteroid_collisions"`
	CollisionGrace     float64    `yaml:"collision_grace"` // Seconds an asteroid ignores other asteroids after birth
	MergeChance        float64    `yaml:"merge_chance"`    // Chance an asteroid pair collapses into a black hole
	Steering           string     `yaml:"steering"`        // "rotational" or "directional"
	SpeedScale         float64    `yaml:"speed_scale"`     // Asteroid speed gain at max difficulty
	VictoryAfter       float64    `yaml:"victory_after"`   // Seconds after which an empty field wins (0 = never)
}

// Hit outcome names used in ModeConfig.
const (
	HitLoseLife = "lose_life"
	HitGameOver = "game_over"
)

// Horizon policies used in ModeConfig.
const (
	HorizonSwallow = "swallow"
	HorizonRepel   = "repel"
)

// Steering schemes used in ModeConfig.
const (
	SteeringRotational  = "rotational"
	SteeringDirectional = "directional"
)

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type      string  `yaml:"type"`      // "score", "time", "sigmoid" or "none"
	MaxAt     int     `yaml:"max_at"`    // Score/ticks at which max difficulty is reached
	Midpoint  float64 `yaml:"midpoint"`  // Sigmoid: seconds at which half the ramp is reached
	Steepness float64 `yaml:"steepness"` // Sigmoid: slope per second
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ModeByName returns the rule table for the named variant.
func (c AsteroidsConfig) ModeByName(name string) (ModeConfig, bool) {
	switch name {
	case "classic":
		return c.Modes.Classic, true
	case "modern":
		return c.Modes.Modern, true
	}
	return ModeConfig{}, false
}
