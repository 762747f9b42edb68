// Package entity owns every simulated object of a run. Other components hold
// IDs and look entities up through the Registry.
package entity

import (
	"math"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
)

// ID identifies an entity for the lifetime of a run. IDs are never reused.
type ID uint64

// Kind is the entity type.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindMissile
	KindBlackHole
	kindCount
)

// Kinds lists every kind in processing order.
var Kinds = [...]Kind{KindShip, KindAsteroid, KindMissile, KindBlackHole}

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindMissile:
		return "missile"
	case KindBlackHole:
		return "black_hole"
	default:
		return "unknown"
	}
}

// ShipState is the ship-only part of an entity.
type ShipState struct {
	Thrusting    bool // Engine latch, toggled by ThrustOn/ThrustOff
	FireCooldown int  // Ticks until the next missile may be fired
	Invulnerable int  // Ticks of remaining protection
}

// AsteroidState is the asteroid-only part of an entity.
type AsteroidState struct {
	Tier     core.Tier
	BornTick uint64
}

// MissileState is the missile-only part of an entity.
type MissileState struct {
	TTL int // Ticks left to live
}

// HoleState is the black-hole-only part of an entity. The event horizon is
// the entity radius.
type HoleState struct {
	Strength  float64
	Influence float64
}

// Entity is a simulated circle on the field.
type Entity struct {
	ID       ID
	Kind     Kind
	Pos      core.Vec2
	Vel      core.Vec2
	Radius   float64
	Rotation float64 // Heading for the ship, visual spin angle otherwise
	Spin     float64 // Radians per second
	Alive    bool

	Ship     ShipState
	Asteroid AsteroidState
	Missile  MissileState
	Hole     HoleState
}

// Weight returns the entity's share of its kind's population cap.
func (e *Entity) Weight() int {
	if e.Kind == KindAsteroid {
		return e.Asteroid.Tier.Weight()
	}
	return 1
}

// NewShip builds a ship at pos facing up.
func NewShip(pos core.Vec2, radius float64) Entity {
	return Entity{
		Kind:     KindShip,
		Pos:      pos,
		Radius:   radius,
		Rotation: -math.Pi / 2, // screen up
	}
}

// NewAsteroid builds an asteroid of the given tier.
func NewAsteroid(tier core.Tier, pos, vel core.Vec2, radius float64, born uint64) Entity {
	return Entity{
		Kind:     KindAsteroid,
		Pos:      pos,
		Vel:      vel,
		Radius:   radius,
		Asteroid: AsteroidState{Tier: tier, BornTick: born},
	}
}

// NewMissile builds a missile with a lifetime in ticks.
func NewMissile(pos, vel core.Vec2, radius float64, ttl int) Entity {
	return Entity{
		Kind:    KindMissile,
		Pos:     pos,
		Vel:     vel,
		Radius:  radius,
		Missile: MissileState{TTL: ttl},
	}
}

// NewBlackHole builds a stationary black hole.
func NewBlackHole(pos core.Vec2, horizon, strength, influence float64) Entity {
	return Entity{
		Kind:   KindBlackHole,
		Pos:    pos,
		Radius: horizon,
		Hole:   HoleState{Strength: strength, Influence: influence},
	}
}
