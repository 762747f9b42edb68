package config

import (
	_ "embed"
)

//go:embed defaults/asteroids.yaml
var defaultAsteroidsYAML []byte

// DefaultAsteroidsConfig returns the hardcoded configuration. It mirrors
// defaults/asteroids.yaml and is used when the embedded file cannot be parsed.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		Mode: "classic",
		Field: FieldConfig{
			Width:    800,
			Height:   600,
			MaxSpeed: 600,
		},
		Ship: ShipConfig{
			Radius:           10,
			Thrust:           648,
			Retain:           0.55,
			MaxSpeed:         400,
			RotationSpeed:    3.0,
			StrafeSpeed:      648,
			FireCooldown:     0.2,
			InvulnerableTime: 2.0,
		},
		Missile: MissileConfig{
			Radius:    2,
			Speed:     300,
			TTL:       1.2,
			MaxActive: 16,
		},
		Asteroids: AsteroidConfig{
			Radius:       TierValues{Large: 40, Medium: 25, Small: 15},
			MinSpeed:     30,
			MaxSpeed:     90,
			SplitBoost:   1.2,
			SplitSpread:  0.8,
			MaxSpin:      1.5,
			Cap:          40,
			SafeDistance: 150,
		},
		BlackHoles: BlackHoleConfig{
			Strength:        400000,
			HorizonRadius:   25,
			InfluenceRadius: 220,
			Epsilon:         100,
			Spin:            2.0,
			Cap:             3,
			RepelSpeed:      120,
		},
		Spawning: SpawnConfig{
			BaseInterval: 1.0,
			MinInterval:  0.4,
			Window:       45,
			InitialCount: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:      "sigmoid",
				MaxAt:     3600,
				Midpoint:  22.5,
				Steepness: 0.05,
			},
		},
		Modes: ModesConfig{
			Classic: ModeConfig{
				Lives:             3,
				Points:            TierValues{Large: 25, Medium: 50, Small: 100},
				BlackHoles:        true,
				BlackHoleInterval: 30,
				BlackHoleHit:      HitLoseLife,
				AsteroidHit:       HitLoseLife,
				Horizon:           HorizonSwallow,
				Steering:          SteeringRotational,
				SpeedScale:        1.0,
				VictoryAfter:      10,
			},
			Modern: ModeConfig{
				Lives:              3,
				Points:             TierValues{Large: 50, Medium: 75, Small: 150},
				BlackHoles:         true,
				BlackHoleInterval:  15,
				BlackHoleHit:       HitGameOver,
				AsteroidHit:        HitLoseLife,
				Horizon:            HorizonRepel,
				AsteroidCollisions: true,
				CollisionGrace:     1.0,
				MergeChance:        0.0667,
				Steering:           SteeringDirectional,
				SpeedScale:         2.5,
				VictoryAfter:       45,
			},
		},
	}
}
