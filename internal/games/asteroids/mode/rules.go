// Package mode holds the classic and modern rule variants. Both are thin
// wrappers over a config-driven rule table and register themselves with the
// mode registry on import.
package mode

import (
	"github.com/vovakirdan/asteroids-destroyer/internal/config"
	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/registry"
)

// rules implements every registry.Strategy capability from a ModeConfig.
type rules struct {
	cfg config.ModeConfig
}

func (r rules) Score(t core.Tier) int {
	return int(r.cfg.Points.For(t))
}

func (r rules) OnShipHit(cause registry.HitCause) registry.HitOutcome {
	name := r.cfg.AsteroidHit
	if cause == registry.CauseBlackHole {
		name = r.cfg.BlackHoleHit
	}
	if name == config.HitGameOver {
		return registry.InstantGameOver
	}
	return registry.LoseLife
}

func (r rules) StartingLives() int {
	if r.cfg.Lives < 1 {
		return 1
	}
	return r.cfg.Lives
}

// Split returns two fragments of the next tier down, or none for small asteroids.
func (r rules) Split(t core.Tier) []core.Tier {
	next, ok := t.Smaller()
	if !ok {
		return nil
	}
	return []core.Tier{next, next}
}

func (r rules) BlackHolesEnabled() bool    { return r.cfg.BlackHoles }
func (r rules) BlackHoleInterval() float64 { return r.cfg.BlackHoleInterval }
func (r rules) AsteroidCollisions() bool   { return r.cfg.AsteroidCollisions }
func (r rules) CollisionGrace() float64    { return r.cfg.CollisionGrace }
func (r rules) MergeChance() float64       { return r.cfg.MergeChance }
func (r rules) SpeedScale() float64        { return r.cfg.SpeedScale }
func (r rules) VictoryAfter() float64      { return r.cfg.VictoryAfter }

func (r rules) Horizon() registry.HorizonPolicy {
	if r.cfg.Horizon == config.HorizonRepel {
		return registry.HorizonRepel
	}
	return registry.HorizonSwallow
}

func (r rules) Steering() registry.Steering {
	if r.cfg.Steering == config.SteeringDirectional {
		return registry.SteeringDirectional
	}
	return registry.SteeringRotational
}
