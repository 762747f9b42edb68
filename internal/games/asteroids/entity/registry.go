package entity

import (
	"iter"
	"slices"
	"sort"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
)

// Registry stores the entities of one run. Removal is deferred: Remove marks
// an entity dead at once and Flush deletes it at the end of the tick, so
// iterations in progress never observe a reshuffled store.
type Registry struct {
	nextID   ID
	entities map[ID]*Entity
	order    [kindCount][]ID // ascending ids per kind
	pending  []ID
	weight   int // weighted population of live asteroids
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[ID]*Entity),
	}
}

// Add stores e under a fresh ID and returns it. The entity is alive and
// visible to iterations started after this call.
func (r *Registry) Add(e Entity) ID {
	if e.Kind < 0 || e.Kind >= kindCount {
		core.Violate("entity.Add", "unknown kind %d", e.Kind)
	}
	r.nextID++
	e.ID = r.nextID
	e.Alive = true

	stored := e
	r.entities[e.ID] = &stored
	r.order[e.Kind] = append(r.order[e.Kind], e.ID)
	if e.Kind == KindAsteroid {
		r.weight += e.Weight()
	}
	return e.ID
}

// Remove marks the entity dead. Removing an absent or already dead entity is
// a no-op; the return value reports whether this call killed it.
func (r *Registry) Remove(id ID) bool {
	e, ok := r.entities[id]
	if !ok || !e.Alive {
		return false
	}
	e.Alive = false
	r.pending = append(r.pending, id)
	if e.Kind == KindAsteroid {
		r.weight -= e.Weight()
	}
	return true
}

// Get returns the live entity with the given ID.
func (r *Registry) Get(id ID) (*Entity, bool) {
	e, ok := r.entities[id]
	if !ok || !e.Alive {
		return nil, false
	}
	return e, true
}

// Iterate yields the live entities of a kind in ascending ID order. The ID
// list is captured when iteration starts: entities added during the pass are
// not yielded and entities removed during the pass are skipped.
func (r *Registry) Iterate(kind Kind) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		if kind < 0 || kind >= kindCount {
			return
		}
		ids := slices.Clone(r.order[kind])
		for _, id := range ids {
			e, ok := r.entities[id]
			if !ok || !e.Alive {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// All yields every live entity in ascending ID order.
func (r *Registry) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		var ids []ID
		for _, k := range Kinds {
			ids = append(ids, r.order[k]...)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			e, ok := r.entities[id]
			if !ok || !e.Alive {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Count returns the number of live entities of a kind.
func (r *Registry) Count(kind Kind) int {
	n := 0
	for range r.Iterate(kind) {
		n++
	}
	return n
}

// AsteroidWeight returns the weighted asteroid population (large=4, medium=2, small=1).
func (r *Registry) AsteroidWeight() int {
	return r.weight
}

// Ship returns the live ship, if any.
func (r *Registry) Ship() (*Entity, bool) {
	for e := range r.Iterate(KindShip) {
		return e, true
	}
	return nil, false
}

// Pending returns the number of dead entities awaiting Flush.
func (r *Registry) Pending() int {
	return len(r.pending)
}

// Flush physically deletes the entities removed since the last flush.
func (r *Registry) Flush() int {
	if len(r.pending) == 0 {
		return 0
	}
	kinds := make(map[Kind]bool, kindCount)
	for _, id := range r.pending {
		if e, ok := r.entities[id]; ok {
			kinds[e.Kind] = true
			delete(r.entities, id)
		}
	}
	for k := range kinds {
		r.order[k] = slices.DeleteFunc(r.order[k], func(id ID) bool {
			_, ok := r.entities[id]
			return !ok
		})
	}
	n := len(r.pending)
	r.pending = r.pending[:0]
	return n
}

// Clear removes every entity. IDs keep increasing across clears.
func (r *Registry) Clear() {
	clear(r.entities)
	for k := range r.order {
		r.order[k] = nil
	}
	r.pending = r.pending[:0]
	r.weight = 0
}

// Len returns the number of stored entities, including those awaiting Flush.
func (r *Registry) Len() int {
	return len(r.entities)
}
