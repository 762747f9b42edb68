package asteroids

import (
	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/entity"
)

// EventKind names a notable moment for audio and UI consumers.
type EventKind int

const (
	EventAsteroidDestroyed EventKind = iota
	EventShipHit
	EventMissileFired
	EventGameOver
	EventBlackHoleFormed
	EventVictory
	EventStateChanged
)

func (k EventKind) String() string {
	switch k {
	case EventAsteroidDestroyed:
		return "asteroid_destroyed"
	case EventShipHit:
		return "ship_hit"
	case EventMissileFired:
		return "missile_fired"
	case EventGameOver:
		return "game_over"
	case EventBlackHoleFormed:
		return "black_hole_formed"
	case EventVictory:
		return "victory"
	case EventStateChanged:
		return "state_changed"
	default:
		return "unknown"
	}
}

// Event is emitted by Step. Fields that do not apply to the kind are zero.
type Event struct {
	Kind    EventKind
	Tick    uint64
	Entity  entity.ID
	Tier    core.Tier
	Points  int
	Pos     core.Vec2
	State   State
	Outcome Outcome
}
