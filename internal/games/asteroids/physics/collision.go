package physics

import (
	"math"
	"sort"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/entity"
)

// PairKind classifies a collision by the kinds of its participants.
type PairKind int

const (
	PairShipAsteroid PairKind = iota
	PairShipBlackHole
	PairMissileAsteroid
	PairMissileBlackHole
	PairAsteroidBlackHole
	PairAsteroidAsteroid
)

func (k PairKind) String() string {
	switch k {
	case PairShipAsteroid:
		return "ship-asteroid"
	case PairShipBlackHole:
		return "ship-black_hole"
	case PairMissileAsteroid:
		return "missile-asteroid"
	case PairMissileBlackHole:
		return "missile-black_hole"
	case PairAsteroidBlackHole:
		return "asteroid-black_hole"
	case PairAsteroidAsteroid:
		return "asteroid-asteroid"
	default:
		return "unknown"
	}
}

// Collision is an overlapping pair. A is the acting participant (ship,
// missile, or asteroid touching a hole); for asteroid pairs A has the lower ID.
type Collision struct {
	A, B entity.ID
	Kind PairKind
}

// Detector finds overlapping circles on a toroidal field.
type Detector struct {
	Field              core.Field
	AsteroidCollisions bool // Report asteroid-asteroid pairs
}

// Detect returns every overlapping pair of live entities, sorted by
// (A, B, Kind). Two circles overlap when their toroidal distance is strictly
// less than the sum of their radii.
func (d *Detector) Detect(reg *entity.Registry) []Collision {
	var ents []*entity.Entity
	maxR := 0.0
	for e := range reg.All() {
		ents = append(ents, e)
		maxR = math.Max(maxR, e.Radius)
	}
	if len(ents) < 2 {
		return nil
	}

	grid := newGrid(d.Field, 2*maxR)
	for i, e := range ents {
		grid.insert(i, e.Pos)
	}

	var out []Collision
	for _, a := range ents {
		for _, cell := range grid.neighbors(a.Pos) {
			for _, j := range grid.cells[cell] {
				b := ents[j]
				if b.ID <= a.ID {
					continue
				}
				if c, ok := d.test(a, b); ok {
					out = append(out, c)
				}
			}
		}
	}

	SortCollisions(out)
	return out
}

// DetectBrute is the quadratic reference implementation of Detect.
func (d *Detector) DetectBrute(reg *entity.Registry) []Collision {
	var ents []*entity.Entity
	for e := range reg.All() {
		ents = append(ents, e)
	}

	var out []Collision
	for i := range ents {
		for j := i + 1; j < len(ents); j++ {
			if c, ok := d.test(ents[i], ents[j]); ok {
				out = append(out, c)
			}
		}
	}

	SortCollisions(out)
	return out
}

// SortCollisions orders collisions by (A, B, Kind).
func SortCollisions(cs []Collision) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].A != cs[j].A {
			return cs[i].A < cs[j].A
		}
		if cs[i].B != cs[j].B {
			return cs[i].B < cs[j].B
		}
		return cs[i].Kind < cs[j].Kind
	})
}

func (d *Detector) test(a, b *entity.Entity) (Collision, bool) {
	first, second, kind, ok := classify(a, b)
	if !ok {
		return Collision{}, false
	}
	if kind == PairAsteroidAsteroid && !d.AsteroidCollisions {
		return Collision{}, false
	}
	if !Overlaps(d.Field, a, b) {
		return Collision{}, false
	}
	return Collision{A: first.ID, B: second.ID, Kind: kind}, true
}

// Overlaps reports whether two circles intersect on the torus.
func Overlaps(f core.Field, a, b *entity.Entity) bool {
	r := a.Radius + b.Radius
	return f.DistanceSq(a.Pos, b.Pos) < r*r
}

// classify orders a pair by role and names it. Pairs without gameplay
// meaning (missile-missile, ship-missile, hole-hole) are rejected.
func classify(a, b *entity.Entity) (first, second *entity.Entity, kind PairKind, ok bool) {
	if rank(a.Kind) > rank(b.Kind) {
		a, b = b, a
	}
	switch {
	case a.Kind == entity.KindShip && b.Kind == entity.KindAsteroid:
		return a, b, PairShipAsteroid, true
	case a.Kind == entity.KindShip && b.Kind == entity.KindBlackHole:
		return a, b, PairShipBlackHole, true
	case a.Kind == entity.KindMissile && b.Kind == entity.KindAsteroid:
		return a, b, PairMissileAsteroid, true
	case a.Kind == entity.KindMissile && b.Kind == entity.KindBlackHole:
		return a, b, PairMissileBlackHole, true
	case a.Kind == entity.KindAsteroid && b.Kind == entity.KindBlackHole:
		return a, b, PairAsteroidBlackHole, true
	case a.Kind == entity.KindAsteroid && b.Kind == entity.KindAsteroid:
		if b.ID < a.ID {
			a, b = b, a
		}
		return a, b, PairAsteroidAsteroid, true
	}
	return nil, nil, 0, false
}

// rank orders kinds by which side of a pair they act from.
func rank(k entity.Kind) int {
	switch k {
	case entity.KindShip:
		return 0
	case entity.KindMissile:
		return 1
	case entity.KindAsteroid:
		return 2
	default:
		return 3
	}
}

// Consumption tracks entities destroyed while a batch of collisions is
// applied. The first collision to claim an entity wins; later collisions that
// would destroy it again are dropped.
type Consumption struct {
	ids map[entity.ID]bool
}

// NewConsumption creates an empty consumption set.
func NewConsumption() *Consumption {
	return &Consumption{ids: make(map[entity.ID]bool)}
}

// Consumed reports whether any of ids was already claimed.
func (c *Consumption) Consumed(ids ...entity.ID) bool {
	for _, id := range ids {
		if c.ids[id] {
			return true
		}
	}
	return false
}

// Consume claims ids for the current batch.
func (c *Consumption) Consume(ids ...entity.ID) {
	for _, id := range ids {
		c.ids[id] = true
	}
}

// Len returns the number of claimed entities.
func (c *Consumption) Len() int {
	return len(c.ids)
}
