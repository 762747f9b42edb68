package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
	tickRate     int
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
		tickRate:     60,
	}
}

// SetTickRate sets the rate used to convert ticks into seconds for sigmoid progression.
func (d *DifficultyManager) SetTickRate(rate int) {
	if rate > 0 {
		d.tickRate = rate
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
// For a fixed configuration the level never decreases as score and ticks grow.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	case "sigmoid":
		seconds := float64(ticks) / float64(d.tickRate)
		k := d.cfg.Progression.Steepness
		if k <= 0 {
			k = 0.05
		}
		progress = 1.0 / (1.0 + math.Exp(-k*(seconds-d.cfg.Progression.Midpoint)))
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpawnInterval returns the seconds between asteroid spawns. It falls from
// base at level 0 to floor at level 1.
func (d *DifficultyManager) SpawnInterval(base, floor float64, score, ticks int) float64 {
	if floor > base {
		floor = base
	}
	level := d.Level(score, ticks)
	return floor + (base-floor)*(1.0-level)
}

// SpeedFactor returns the asteroid speed multiplier: 1 at level 0 and
// 1+scale at level 1.
func (d *DifficultyManager) SpeedFactor(scale float64, score, ticks int) float64 {
	level := d.Level(score, ticks)
	return 1.0 + level*scale
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
