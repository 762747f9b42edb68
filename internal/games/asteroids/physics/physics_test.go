package physics

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/entity"
)

var field = core.Field{W: 800, H: 600}

func TestGravityPointsTowardHole(t *testing.T) {
	reg := entity.NewRegistry()
	reg.Add(entity.NewBlackHole(core.V(400, 300), 20, 10000, 200))

	g := NewGravityField(field, 1)
	g.Rebuild(reg)

	acc := g.AccelerationAt(core.V(300, 300))
	if acc.X <= 0 || math.Abs(acc.Y) > 1e-9 {
		t.Errorf("AccelerationAt() = %v, expected +x pull", acc)
	}
	// strength / d^2 = 10000 / 100^2
	if math.Abs(acc.Len()-1.0) > 1e-9 {
		t.Errorf("|AccelerationAt()| = %v, expected 1", acc.Len())
	}
}

func TestGravityOutsideInfluence(t *testing.T) {
	reg := entity.NewRegistry()
	reg.Add(entity.NewBlackHole(core.V(400, 300), 20, 10000, 50))

	g := NewGravityField(field, 1)
	g.Rebuild(reg)

	if acc := g.AccelerationAt(core.V(300, 300)); acc != (core.Vec2{}) {
		t.Errorf("AccelerationAt() = %v, expected zero outside influence", acc)
	}
}

func TestGravityWrapsAcrossEdge(t *testing.T) {
	reg := entity.NewRegistry()
	reg.Add(entity.NewBlackHole(core.V(5, 300), 20, 10000, 100))

	g := NewGravityField(field, 1)
	g.Rebuild(reg)

	// The hole is 15 units to the right across the edge
	acc := g.AccelerationAt(core.V(790, 300))
	if acc.X <= 0 {
		t.Errorf("AccelerationAt() = %v, expected pull across the right edge", acc)
	}
}

func TestGravityBoundedAtCenter(t *testing.T) {
	reg := entity.NewRegistry()
	reg.Add(entity.NewBlackHole(core.V(400, 300), 20, 10000, 100))

	g := NewGravityField(field, 100)
	g.Rebuild(reg)

	if acc := g.AccelerationAt(core.V(400, 300)); acc != (core.Vec2{}) {
		t.Errorf("AccelerationAt(center) = %v, expected zero", acc)
	}
	acc := g.AccelerationAt(core.V(400.001, 300))
	if math.IsInf(acc.Len(), 0) || acc.Len() > 10000/100+1e-9 {
		t.Errorf("AccelerationAt(near center) = %v, expected bounded by strength/epsilon", acc)
	}
}

func TestIntegratorOrderAndWrap(t *testing.T) {
	reg := entity.NewRegistry()
	id := reg.Add(entity.NewAsteroid(core.TierLarge, core.V(795, 10), core.V(600, 0), 40, 0))

	in := &Integrator{Field: field}
	g := NewGravityField(field, 1)
	in.Step(reg, g, 1.0/60.0, ShipControl{})

	e, _ := reg.Get(id)
	if math.Abs(e.Pos.X-5) > 1e-9 || math.Abs(e.Pos.Y-10) > 1e-9 {
		t.Errorf("Pos = %v, expected (5, 10) after wrapping", e.Pos)
	}
	if !field.Contains(e.Pos) {
		t.Errorf("Pos = %v outside field", e.Pos)
	}
}

func TestIntegratorPositionBeforeVelocity(t *testing.T) {
	reg := entity.NewRegistry()
	reg.Add(entity.NewBlackHole(core.V(500, 300), 20, 10000, 300))
	id := reg.Add(entity.NewMissile(core.V(400, 300), core.V(0, 0), 2, 10))

	in := &Integrator{Field: field}
	g := NewGravityField(field, 1)
	g.Rebuild(reg)
	in.Step(reg, g, 1.0, ShipControl{})

	m, _ := reg.Get(id)
	if m.Pos != core.V(400, 300) {
		t.Errorf("Pos = %v, expected unchanged on the first step", m.Pos)
	}
	if m.Vel.X <= 0 {
		t.Errorf("Vel = %v, expected gravity to accelerate toward the hole", m.Vel)
	}
}

func TestIntegratorShipThrustAndClamp(t *testing.T) {
	reg := entity.NewRegistry()
	ship := entity.NewShip(core.V(400, 300), 10)
	ship.Rotation = 0
	ship.Ship.Thrusting = true
	id := reg.Add(ship)

	in := &Integrator{
		Field:    field,
		MaxSpeed: 1000,
		Ship:     ShipParams{Thrust: 600, Retain: 1, MaxSpeed: 50},
	}
	g := NewGravityField(field, 1)
	for range 60 {
		in.Step(reg, g, 1.0/60.0, ShipControl{})
	}

	e, _ := reg.Get(id)
	if math.Abs(e.Vel.Len()-50) > 1e-9 {
		t.Errorf("speed = %v, expected ship clamp 50", e.Vel.Len())
	}
	if e.Vel.X <= 0 {
		t.Errorf("Vel = %v, expected motion along heading +x", e.Vel)
	}
}

func TestIntegratorDrag(t *testing.T) {
	reg := entity.NewRegistry()
	ship := entity.NewShip(core.V(400, 300), 10)
	ship.Vel = core.V(100, 0)
	id := reg.Add(ship)

	in := &Integrator{Field: field, Ship: ShipParams{Retain: 0.5}}
	in.Step(reg, NewGravityField(field, 1), 1.0, ShipControl{})

	e, _ := reg.Get(id)
	if math.Abs(e.Vel.X-50) > 1e-9 {
		t.Errorf("Vel.X = %v, expected 50 after one second at retain 0.5", e.Vel.X)
	}
}

func TestIntegratorDirectional(t *testing.T) {
	reg := entity.NewRegistry()
	id := reg.Add(entity.NewShip(core.V(400, 300), 10))

	in := &Integrator{Field: field, Ship: ShipParams{Strafe: 100, Retain: 1}}
	in.Step(reg, NewGravityField(field, 1), 1.0, ShipControl{Directional: true, Move: core.V(1, 1)})

	e, _ := reg.Get(id)
	expected := 100 / math.Sqrt2
	if math.Abs(e.Vel.X-expected) > 1e-9 || math.Abs(e.Vel.Y-expected) > 1e-9 {
		t.Errorf("Vel = %v, expected diagonal of length 100", e.Vel)
	}
}

func TestDetectStrictOverlap(t *testing.T) {
	reg := entity.NewRegistry()
	m := reg.Add(entity.NewMissile(core.V(100, 100), core.Vec2{}, 2, 5))
	a := reg.Add(entity.NewAsteroid(core.TierLarge, core.V(142, 100), core.Vec2{}, 40, 0))

	d := &Detector{Field: field}
	// Exactly touching (distance == r1+r2) is not a collision
	if got := d.Detect(reg); len(got) != 0 {
		t.Errorf("Detect() = %v, expected no collision when touching", got)
	}

	e, _ := reg.Get(a)
	e.Pos = core.V(141.9, 100)
	got := d.Detect(reg)
	expected := []Collision{{A: m, B: a, Kind: PairMissileAsteroid}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Detect() = %v, expected %v", got, expected)
	}
}

func TestDetectAcrossEdge(t *testing.T) {
	reg := entity.NewRegistry()
	s := reg.Add(entity.NewShip(core.V(2, 300), 10))
	a := reg.Add(entity.NewAsteroid(core.TierSmall, core.V(795, 300), core.Vec2{}, 15, 0))

	d := &Detector{Field: field}
	got := d.Detect(reg)
	expected := []Collision{{A: s, B: a, Kind: PairShipAsteroid}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Detect() = %v, expected %v", got, expected)
	}
}

func TestDetectRoleOrderAndSort(t *testing.T) {
	reg := entity.NewRegistry()
	hole := reg.Add(entity.NewBlackHole(core.V(300, 300), 20, 1, 1))
	ast := reg.Add(entity.NewAsteroid(core.TierMedium, core.V(310, 300), core.Vec2{}, 25, 0))
	ship := reg.Add(entity.NewShip(core.V(305, 300), 10))
	missile := reg.Add(entity.NewMissile(core.V(300, 305), core.Vec2{}, 2, 5))

	d := &Detector{Field: field}
	got := d.Detect(reg)
	expected := []Collision{
		{A: ast, B: hole, Kind: PairAsteroidBlackHole},
		{A: ship, B: hole, Kind: PairShipBlackHole},
		{A: ship, B: ast, Kind: PairShipAsteroid},
		{A: missile, B: hole, Kind: PairMissileBlackHole},
		{A: missile, B: ast, Kind: PairMissileAsteroid},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Detect() =\n%v\nexpected\n%v", got, expected)
	}
}

func TestDetectAsteroidPairsOptIn(t *testing.T) {
	reg := entity.NewRegistry()
	a := reg.Add(entity.NewAsteroid(core.TierLarge, core.V(100, 100), core.Vec2{}, 40, 0))
	b := reg.Add(entity.NewAsteroid(core.TierLarge, core.V(150, 100), core.Vec2{}, 40, 0))

	off := &Detector{Field: field}
	if got := off.Detect(reg); len(got) != 0 {
		t.Errorf("Detect() = %v, expected no asteroid pairs when disabled", got)
	}

	on := &Detector{Field: field, AsteroidCollisions: true}
	expected := []Collision{{A: a, B: b, Kind: PairAsteroidAsteroid}}
	if got := on.Detect(reg); !reflect.DeepEqual(got, expected) {
		t.Errorf("Detect() = %v, expected %v", got, expected)
	}
}

func TestDetectMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := range 20 {
		reg := entity.NewRegistry()
		for range 60 {
			pos := core.V(rng.Float64()*field.W, rng.Float64()*field.H)
			switch rng.Intn(4) {
			case 0:
				reg.Add(entity.NewAsteroid(core.Tier(rng.Intn(3)), pos, core.Vec2{}, 10+rng.Float64()*30, 0))
			case 1:
				reg.Add(entity.NewMissile(pos, core.Vec2{}, 2, 5))
			case 2:
				reg.Add(entity.NewBlackHole(pos, 25, 1, 1))
			default:
				reg.Add(entity.NewShip(pos, 10))
			}
		}

		d := &Detector{Field: field, AsteroidCollisions: round%2 == 0}
		grid := d.Detect(reg)
		brute := d.DetectBrute(reg)
		if !reflect.DeepEqual(grid, brute) {
			t.Fatalf("round %d: Detect() found %d pairs, brute force %d", round, len(grid), len(brute))
		}
	}
}

func TestDetectIgnoresDead(t *testing.T) {
	reg := entity.NewRegistry()
	m := reg.Add(entity.NewMissile(core.V(100, 100), core.Vec2{}, 2, 5))
	reg.Add(entity.NewAsteroid(core.TierLarge, core.V(110, 100), core.Vec2{}, 40, 0))
	reg.Remove(m)

	d := &Detector{Field: field}
	if got := d.Detect(reg); len(got) != 0 {
		t.Errorf("Detect() = %v, expected dead entities to be ignored", got)
	}
}

func TestConsumption(t *testing.T) {
	c := NewConsumption()
	if c.Consumed(1, 2) {
		t.Error("empty set should not report consumption")
	}
	c.Consume(1)
	if !c.Consumed(2, 1) {
		t.Error("Consumed() should report a claimed id")
	}
	c.Consume(1)
	if c.Len() != 1 {
		t.Errorf("Len() = %d, expected 1 after repeated claims", c.Len())
	}
}
