// Package registry provides a global registry for game mode strategies.
// Modes register themselves in init() functions, allowing the simulation
// and the platform to discover and select rule variants by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/asteroids-destroyer/internal/config"
	"github.com/vovakirdan/asteroids-destroyer/internal/core"
)

// HitCause identifies what struck the ship.
type HitCause int

const (
	CauseAsteroid HitCause = iota
	CauseBlackHole
)

// HitOutcome is the consequence of a ship hit.
type HitOutcome int

const (
	LoseLife HitOutcome = iota
	InstantGameOver
)

// HorizonPolicy decides what happens to an asteroid touching an event horizon.
type HorizonPolicy int

const (
	HorizonSwallow HorizonPolicy = iota // asteroid is removed
	HorizonRepel                        // asteroid is pushed out
)

// Steering selects how the ship responds to movement input.
type Steering int

const (
	SteeringRotational  Steering = iota // rotate + thrust along heading
	SteeringDirectional                 // accelerate along the pressed directions
)

// Strategy is the rule set of a game variant. The simulation consults it
// whenever an outcome depends on the mode; it holds no run state.
type Strategy interface {
	// Name returns the identifier used in config and storage ("classic", "modern").
	Name() string

	// Title returns a human-readable name for display.
	Title() string

	// Score returns the points awarded for destroying an asteroid of the tier.
	Score(t core.Tier) int

	// OnShipHit decides whether a hit costs a life or ends the run.
	OnShipHit(cause HitCause) HitOutcome

	// StartingLives returns the lives a new run begins with.
	StartingLives() int

	// Split returns the tiers of the fragments a destroyed asteroid leaves:
	// either none or exactly two, each strictly smaller than t.
	Split(t core.Tier) []core.Tier

	// BlackHolesEnabled reports whether black holes appear in this variant.
	BlackHolesEnabled() bool

	// BlackHoleInterval returns the seconds between black hole spawns.
	BlackHoleInterval() float64

	// Horizon returns the asteroid/event-horizon policy.
	Horizon() HorizonPolicy

	// AsteroidCollisions reports whether asteroids interact with each other.
	AsteroidCollisions() bool

	// CollisionGrace returns the seconds a new asteroid ignores other asteroids.
	CollisionGrace() float64

	// MergeChance returns the probability that two colliding asteroids collapse into a black hole.
	MergeChance() float64

	// Steering returns the ship control scheme.
	Steering() Steering

	// SpeedScale returns the asteroid speed gain reached at max difficulty.
	SpeedScale() float64

	// VictoryAfter returns the seconds after which an empty field ends the
	// run as a victory. Zero disables victory.
	VictoryAfter() float64
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	Name  string
	Title string
}

// Factory builds a strategy from its rule table.
type Factory func(cfg config.ModeConfig) Strategy

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from a mode's init() function.
// Panics if a mode with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", name))
	}

	factories[name] = f

	// Get title by creating a temporary instance
	titles[name] = f(config.ModeConfig{}).Title()
}

// List returns information about all registered modes, sorted by name.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(factories))
	for name := range factories {
		result = append(result, ModeInfo{
			Name:  name,
			Title: titles[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates the named mode using its rule table from cfg.
// Returns an error if the mode is not registered or cfg has no table for it.
func Create(name string, cfg config.AsteroidsConfig) (Strategy, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", name)
	}

	table, ok := cfg.ModeByName(name)
	if !ok {
		return nil, fmt.Errorf("registry: no rule table for mode %q", name)
	}

	return f(table), nil
}

// Exists checks if a mode with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

// Next returns the registered mode following name in sorted order, wrapping around.
func Next(name string) string {
	modes := List()
	if len(modes) == 0 {
		return name
	}
	for i, m := range modes {
		if m.Name == name {
			return modes[(i+1)%len(modes)].Name
		}
	}
	return modes[0].Name
}
