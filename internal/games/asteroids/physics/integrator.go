package physics

import (
	"math"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/entity"
)

// ShipParams holds the ship's engine characteristics in per-second units.
type ShipParams struct {
	Thrust   float64 // Acceleration along the heading while the engine is latched
	Strafe   float64 // Acceleration along the input direction for directional steering
	Retain   float64 // Fraction of velocity kept per second
	MaxSpeed float64
}

// ShipControl is the steering input for one tick.
type ShipControl struct {
	Directional bool
	Move        core.Vec2 // Desired direction, used when Directional is set
}

// Integrator moves every entity one fixed step.
type Integrator struct {
	Field    core.Field
	MaxSpeed float64 // Global clamp; zero disables it
	Ship     ShipParams
}

// Step advances all live non-black-hole entities by dt seconds: position
// first, then velocity from gravity and engine acceleration, then drag and
// clamping, and finally toroidal wrap. Black holes only spin.
func (in *Integrator) Step(reg *entity.Registry, g *GravityField, dt float64, ctl ShipControl) {
	for _, kind := range entity.Kinds {
		for e := range reg.Iterate(kind) {
			in.stepEntity(e, g, dt, ctl)
		}
	}
}

func (in *Integrator) stepEntity(e *entity.Entity, g *GravityField, dt float64, ctl ShipControl) {
	if e.Spin != 0 {
		e.Rotation = normalizeAngle(e.Rotation + e.Spin*dt)
	}
	if e.Kind == entity.KindBlackHole {
		return
	}

	acc := g.AccelerationAt(e.Pos)
	limit := in.MaxSpeed

	if e.Kind == entity.KindShip {
		acc = acc.Add(in.engine(e, ctl))
		if in.Ship.MaxSpeed > 0 && (limit <= 0 || in.Ship.MaxSpeed < limit) {
			limit = in.Ship.MaxSpeed
		}
	}

	e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	e.Vel = e.Vel.Add(acc.Scale(dt))

	if e.Kind == entity.KindShip && in.Ship.Retain > 0 && in.Ship.Retain < 1 {
		e.Vel = e.Vel.Scale(math.Pow(in.Ship.Retain, dt))
	}
	if limit > 0 {
		e.Vel = e.Vel.ClampLen(limit)
	}

	e.Pos = in.Field.Wrap(e.Pos)
}

func (in *Integrator) engine(e *entity.Entity, ctl ShipControl) core.Vec2 {
	if ctl.Directional {
		if ctl.Move.LenSq() == 0 {
			return core.Vec2{}
		}
		return ctl.Move.Normalize().Scale(in.Ship.Strafe)
	}
	if e.Ship.Thrusting {
		return core.FromAngle(e.Rotation, in.Ship.Thrust)
	}
	return core.Vec2{}
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
