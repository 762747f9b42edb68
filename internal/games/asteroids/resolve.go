package asteroids

import (
	"math"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/entity"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/physics"
	"github.com/vovakirdan/asteroids-destroyer/internal/registry"
)

// splitJitter bounds the random turn applied to the fragment pair.
const splitJitter = 0.15

// resolve applies collision outcomes in order. An entity consumed by an
// earlier collision of the tick takes part in no later one, and resolution
// stops as soon as the run is over.
func (m *Machine) resolve(collisions []physics.Collision) {
	used := physics.NewConsumption()

	for _, c := range collisions {
		if m.state != StatePlaying {
			return
		}
		if used.Consumed(c.A, c.B) {
			continue
		}
		a, okA := m.reg.Get(c.A)
		b, okB := m.reg.Get(c.B)
		if !okA || !okB {
			continue
		}

		switch c.Kind {
		case physics.PairShipAsteroid:
			m.hitShip(a, b, registry.CauseAsteroid)
		case physics.PairShipBlackHole:
			m.hitShip(a, b, registry.CauseBlackHole)
		case physics.PairMissileAsteroid:
			used.Consume(a.ID, b.ID)
			m.shootAsteroid(a, b)
		case physics.PairMissileBlackHole:
			used.Consume(a.ID)
			m.reg.Remove(a.ID)
		case physics.PairAsteroidBlackHole:
			if m.strategy.Horizon() == registry.HorizonSwallow {
				used.Consume(a.ID)
				m.reg.Remove(a.ID)
			} else {
				m.repel(a, b)
			}
		case physics.PairAsteroidAsteroid:
			if m.collideAsteroids(a, b) {
				used.Consume(a.ID, b.ID)
			}
		}
	}
}

// hitShip applies a hit to an unprotected ship. The hazard itself survives.
// A ship that survives a black hole is pulled back out of it.
func (m *Machine) hitShip(ship, hazard *entity.Entity, cause registry.HitCause) {
	if ship.Ship.Invulnerable > 0 {
		return
	}

	switch m.strategy.OnShipHit(cause) {
	case registry.InstantGameOver:
		m.session.Lives = 0
		m.emit(Event{Kind: EventShipHit, Entity: ship.ID, Pos: ship.Pos})
		m.endRun(OutcomeSwallowed)
	default:
		over := m.session.LoseLife()
		m.emit(Event{Kind: EventShipHit, Entity: ship.ID, Pos: ship.Pos})
		if over {
			m.endRun(OutcomeDestroyed)
			return
		}
		ship.Ship.Invulnerable = m.rt.Ticks(m.cfg.Ship.InvulnerableTime)
		if cause == registry.CauseBlackHole {
			m.escapeHole(ship, hazard)
		}
	}
	m.logger.Debug("ship hit", "tick", m.tick, "cause", cause, "lives", m.session.Lives)
}

// escapeHole moves the ship to the point of the field farthest from the hole
// and stops it there.
func (m *Machine) escapeHole(ship, hole *entity.Entity) {
	ship.Pos = m.field.Antipode(hole.Pos)
	ship.Vel = core.Vec2{}
	ship.Ship.Thrusting = false
}

func (m *Machine) shootAsteroid(missile, ast *entity.Entity) {
	m.reg.Remove(missile.ID)
	m.reg.Remove(ast.ID)

	tier := ast.Asteroid.Tier
	points := m.strategy.Score(tier)
	m.session.AddScore(points)
	m.emit(Event{Kind: EventAsteroidDestroyed, Entity: ast.ID, Tier: tier, Points: points, Pos: ast.Pos})

	m.split(ast)
}

// split replaces a destroyed asteroid with its fragments. Fragments weigh
// exactly what the parent weighed, so the population cap cannot be crossed.
func (m *Machine) split(parent *entity.Entity) []entity.ID {
	tiers := m.strategy.Split(parent.Asteroid.Tier)
	if len(tiers) == 0 {
		return nil
	}

	speed := math.Max(parent.Vel.Len(), m.cfg.Asteroids.MinSpeed) * m.cfg.Asteroids.SplitBoost
	heading := parent.Vel.Angle()
	if parent.Vel.LenSq() == 0 {
		heading = m.rng.Float64() * 2 * math.Pi
	}
	heading += (m.rng.Float64()*2 - 1) * splitJitter
	half := m.cfg.Asteroids.SplitSpread / 2

	ids := make([]entity.ID, 0, len(tiers))
	for i, t := range tiers {
		angle := heading - half
		if i%2 == 1 {
			angle = heading + half
		}
		frag := entity.NewAsteroid(t, parent.Pos, core.FromAngle(angle, speed), m.cfg.Asteroids.Radius.For(t), m.tick)
		frag.Rotation = parent.Rotation
		frag.Spin = (m.rng.Float64()*2 - 1) * m.cfg.Asteroids.MaxSpin
		ids = append(ids, m.reg.Add(frag))
	}
	return ids
}

// repel pushes an asteroid just outside the horizon and makes sure it moves
// away from the hole.
func (m *Machine) repel(ast, hole *entity.Entity) {
	out := m.field.Displacement(hole.Pos, ast.Pos)
	dir := out.Normalize()
	if dir.LenSq() == 0 {
		dir = core.FromAngle(m.rng.Float64()*2*math.Pi, 1)
	}

	ast.Pos = m.field.Wrap(hole.Pos.Add(dir.Scale(hole.Radius + ast.Radius + 0.5)))
	if radial := ast.Vel.Dot(dir); radial < m.cfg.BlackHoles.RepelSpeed {
		ast.Vel = ast.Vel.Add(dir.Scale(m.cfg.BlackHoles.RepelSpeed - radial))
	}
}

// collideAsteroids handles two touching asteroids. Young or separating pairs
// are ignored; otherwise the pair either collapses into a black hole or both
// split. It reports whether the pair was consumed.
func (m *Machine) collideAsteroids(a, b *entity.Entity) bool {
	grace := uint64(m.rt.Ticks(m.strategy.CollisionGrace()))
	if m.tick < a.Asteroid.BornTick+grace || m.tick < b.Asteroid.BornTick+grace {
		return false
	}

	rel := b.Vel.Sub(a.Vel)
	if rel.Dot(m.field.Displacement(a.Pos, b.Pos)) >= 0 {
		return false
	}

	if m.rng.Float64() < m.strategy.MergeChance() && m.director.CanSpawnHole(m.reg) {
		pos := a.Pos
		m.reg.Remove(a.ID)
		m.reg.Remove(b.ID)
		id := m.reg.Add(m.director.BlackHoleAt(pos))
		m.emit(Event{Kind: EventBlackHoleFormed, Entity: id, Pos: pos})
		m.logger.Debug("asteroids collapsed", "tick", m.tick, "a", a.ID, "b", b.ID, "hole", id)
		return true
	}

	m.reg.Remove(a.ID)
	m.reg.Remove(b.ID)
	m.split(a)
	m.split(b)
	return true
}
