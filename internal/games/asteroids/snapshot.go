package asteroids

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/entity"
)

// EntityView is the read-only picture of one entity.
type EntityView struct {
	ID           entity.ID
	Kind         entity.Kind
	Tier         core.Tier
	Pos          core.Vec2
	Rotation     float64
	Radius       float64
	Invulnerable bool
	Thrusting    bool
}

// Snapshot is a copy of the observable state after a step. Entities are in
// ascending ID order.
type Snapshot struct {
	Tick     uint64
	State    State
	Mode     string
	Score    int
	Lives    int
	Outcome  Outcome
	Field    core.Field
	Entities []EntityView
}

// Snapshot returns the current observable state.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    m.tick,
		State:   m.state,
		Mode:    m.modeName,
		Score:   m.session.Score,
		Lives:   m.session.Lives,
		Outcome: m.session.Outcome,
		Field:   m.field,
	}
	for e := range m.reg.All() {
		v := EntityView{
			ID:       e.ID,
			Kind:     e.Kind,
			Pos:      e.Pos,
			Rotation: e.Rotation,
			Radius:   e.Radius,
		}
		switch e.Kind {
		case entity.KindAsteroid:
			v.Tier = e.Asteroid.Tier
		case entity.KindShip:
			v.Invulnerable = e.Ship.Invulnerable > 0
			v.Thrusting = e.Ship.Thrusting
		}
		snap.Entities = append(snap.Entities, v)
	}
	return snap
}

// Count returns the number of entities of a kind in the snapshot.
func (s Snapshot) Count(kind entity.Kind) int {
	n := 0
	for _, e := range s.Entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Ship returns the ship view, if the snapshot has one.
func (s Snapshot) Ship() (EntityView, bool) {
	for _, e := range s.Entities {
		if e.Kind == entity.KindShip {
			return e, true
		}
	}
	return EntityView{}, false
}

// Hash returns a digest of the snapshot. Equal snapshots hash equally, which
// makes it a cheap determinism and replay check.
func (s Snapshot) Hash() uint64 {
	h := xxhash.New()
	var buf [8]byte

	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	putF := func(v float64) {
		putU(math.Float64bits(v))
	}
	putB := func(v bool) {
		if v {
			putU(1)
		} else {
			putU(0)
		}
	}

	putU(s.Tick)
	putU(uint64(s.State))
	_, _ = h.WriteString(s.Mode)
	putU(uint64(int64(s.Score)))
	putU(uint64(int64(s.Lives)))
	putU(uint64(s.Outcome))
	for _, e := range s.Entities {
		putU(uint64(e.ID))
		putU(uint64(e.Kind))
		putU(uint64(e.Tier))
		putF(e.Pos.X)
		putF(e.Pos.Y)
		putF(e.Rotation)
		putF(e.Radius)
		putB(e.Invulnerable)
		putB(e.Thrusting)
	}
	return h.Sum64()
}
