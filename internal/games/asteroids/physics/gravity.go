// Package physics advances entity motion and finds overlaps on the toroidal
// field. It mutates positions and velocities only; outcomes are decided by
// the caller.
package physics

import (
	"math"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/entity"
)

type well struct {
	pos       core.Vec2
	strength  float64
	influence float64
}

// GravityField sums the pull of every black hole. It is rebuilt from the
// registry once per tick.
type GravityField struct {
	field   core.Field
	epsilon float64
	wells   []well
}

// NewGravityField creates an empty field. epsilon bounds the squared distance
// in the force law so accelerations stay finite near a hole's center.
func NewGravityField(field core.Field, epsilon float64) *GravityField {
	if epsilon <= 0 {
		epsilon = 1
	}
	return &GravityField{field: field, epsilon: epsilon}
}

// Rebuild collects the live black holes of reg.
func (g *GravityField) Rebuild(reg *entity.Registry) {
	g.wells = g.wells[:0]
	for h := range reg.Iterate(entity.KindBlackHole) {
		g.wells = append(g.wells, well{pos: h.Pos, strength: h.Hole.Strength, influence: h.Hole.Influence})
	}
}

// Len returns the number of contributing black holes.
func (g *GravityField) Len() int {
	return len(g.wells)
}

// AccelerationAt returns the summed pull at p: strength/max(d^2, epsilon)
// toward each hole whose influence radius contains p, using the shortest
// toroidal displacement.
func (g *GravityField) AccelerationAt(p core.Vec2) core.Vec2 {
	var acc core.Vec2
	for _, w := range g.wells {
		d := g.field.Displacement(p, w.pos)
		d2 := d.LenSq()
		if d2 == 0 {
			continue
		}
		if w.influence > 0 && d2 > w.influence*w.influence {
			continue
		}
		mag := w.strength / math.Max(d2, g.epsilon)
		acc = acc.Add(d.Scale(mag / math.Sqrt(d2)))
	}
	return acc
}
