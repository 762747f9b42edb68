package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const asteroidsFile = "asteroids.yaml"

// LoadAsteroids loads the simulation configuration.
// Search order: customPath -> ~/.asteroids/configs/asteroids.yaml -> ./configs/asteroids.yaml -> embedded default.
// Files are decoded on top of the defaults, so a file only needs the keys it changes.
func LoadAsteroids(customPath string) (AsteroidsConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultAsteroidsConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseAsteroids(data)
		if err != nil {
			return DefaultAsteroidsConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(asteroidsFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseAsteroids(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", asteroidsFile)); err == nil {
		if cfg, err := ParseAsteroids(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseAsteroids(defaultAsteroidsYAML)
	if err != nil {
		return DefaultAsteroidsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseAsteroids decodes YAML over the hardcoded defaults and validates the result.
func ParseAsteroids(data []byte) (AsteroidsConfig, error) {
	cfg := DefaultAsteroidsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".asteroids", "configs", filename)
}

// ApplyAsteroidsPreset modifies the config based on a difficulty preset.
func ApplyAsteroidsPreset(cfg *AsteroidsConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Modes.Classic.Lives = 5
		cfg.Modes.Modern.Lives = 5
		cfg.Ship.InvulnerableTime = 3.0
	case DifficultyHard:
		cfg.Modes.Classic.Lives = 2
		cfg.Modes.Modern.Lives = 2
		cfg.Asteroids.Cap += cfg.Asteroids.Cap / 2
	}
}

// Validate reports every inconsistent value in the configuration.
func (c AsteroidsConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	if _, ok := c.ModeByName(c.Mode); !ok {
		errs = append(errs, fmt.Errorf("mode must be classic or modern, got %q", c.Mode))
	}

	positive("field.width", c.Field.Width)
	positive("field.height", c.Field.Height)
	positive("field.max_speed", c.Field.MaxSpeed)
	positive("ship.radius", c.Ship.Radius)
	positive("ship.rotation_speed", c.Ship.RotationSpeed)
	if c.Ship.Retain <= 0 || c.Ship.Retain > 1 {
		errs = append(errs, fmt.Errorf("ship.retain must be in (0, 1], got %v", c.Ship.Retain))
	}
	positive("missile.radius", c.Missile.Radius)
	positive("missile.speed", c.Missile.Speed)
	positive("missile.ttl", c.Missile.TTL)
	if c.Missile.MaxActive < 1 {
		errs = append(errs, fmt.Errorf("missile.max_active must be at least 1, got %d", c.Missile.MaxActive))
	}

	r := c.Asteroids.Radius
	positive("asteroids.radius.small", r.Small)
	if !(r.Large > r.Medium && r.Medium > r.Small) {
		errs = append(errs, fmt.Errorf("asteroids.radius must strictly decrease large > medium > small, got %v > %v > %v", r.Large, r.Medium, r.Small))
	}
	if c.Asteroids.MinSpeed < 0 || c.Asteroids.MaxSpeed < c.Asteroids.MinSpeed {
		errs = append(errs, fmt.Errorf("asteroids speed range [%v, %v] is invalid", c.Asteroids.MinSpeed, c.Asteroids.MaxSpeed))
	}
	if c.Asteroids.SplitBoost < 1 {
		errs = append(errs, fmt.Errorf("asteroids.split_boost must be at least 1, got %v", c.Asteroids.SplitBoost))
	}
	if c.Asteroids.SplitSpread <= 0 || c.Asteroids.SplitSpread >= math.Pi {
		errs = append(errs, fmt.Errorf("asteroids.split_spread must be in (0, pi), got %v", c.Asteroids.SplitSpread))
	}
	if c.Asteroids.Cap < 4 {
		errs = append(errs, fmt.Errorf("asteroids.cap must fit at least one large asteroid (4), got %d", c.Asteroids.Cap))
	}
	if limit := math.Min(c.Field.Width, c.Field.Height) / 4; c.Asteroids.SafeDistance < 0 || c.Asteroids.SafeDistance > limit {
		errs = append(errs, fmt.Errorf("asteroids.safe_distance must be in [0, %v], got %v", limit, c.Asteroids.SafeDistance))
	}

	positive("black_holes.horizon_radius", c.BlackHoles.HorizonRadius)
	positive("black_holes.epsilon", c.BlackHoles.Epsilon)
	if c.BlackHoles.InfluenceRadius < c.BlackHoles.HorizonRadius {
		errs = append(errs, fmt.Errorf("black_holes.influence_radius must not be below the horizon radius"))
	}
	if c.BlackHoles.Cap < 0 {
		errs = append(errs, fmt.Errorf("black_holes.cap must not be negative, got %d", c.BlackHoles.Cap))
	}

	positive("spawning.base_interval", c.Spawning.BaseInterval)
	if c.Spawning.MinInterval <= 0 || c.Spawning.MinInterval > c.Spawning.BaseInterval {
		errs = append(errs, fmt.Errorf("spawning.min_interval must be in (0, base_interval], got %v", c.Spawning.MinInterval))
	}

	errs = append(errs, validateMode("modes.classic", c.Modes.Classic)...)
	errs = append(errs, validateMode("modes.modern", c.Modes.Modern)...)

	return errors.Join(errs...)
}

func validateMode(prefix string, m ModeConfig) []error {
	var errs []error
	if m.Lives < 1 {
		errs = append(errs, fmt.Errorf("%s.lives must be at least 1, got %d", prefix, m.Lives))
	}
	if m.Points.Large < 0 || m.Points.Medium < 0 || m.Points.Small < 0 {
		errs = append(errs, fmt.Errorf("%s.points must not be negative", prefix))
	}
	for _, hit := range []string{m.BlackHoleHit, m.AsteroidHit} {
		if hit != HitLoseLife && hit != HitGameOver {
			errs = append(errs, fmt.Errorf("%s hit outcome must be %s or %s, got %q", prefix, HitLoseLife, HitGameOver, hit))
		}
	}
	if m.Horizon != HorizonSwallow && m.Horizon != HorizonRepel {
		errs = append(errs, fmt.Errorf("%s.horizon must be %s or %s, got %q", prefix, HorizonSwallow, HorizonRepel, m.Horizon))
	}
	if m.Steering != SteeringRotational && m.Steering != SteeringDirectional {
		errs = append(errs, fmt.Errorf("%s.steering must be %s or %s, got %q", prefix, SteeringRotational, SteeringDirectional, m.Steering))
	}
	if m.MergeChance < 0 || m.MergeChance > 1 {
		errs = append(errs, fmt.Errorf("%s.merge_chance must be in [0, 1], got %v", prefix, m.MergeChance))
	}
	if m.BlackHoles && m.BlackHoleInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s.black_hole_interval must be positive when black holes are enabled", prefix))
	}
	return errs
}
