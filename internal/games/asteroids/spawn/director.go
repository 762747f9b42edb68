// Package spawn paces the arrival of new asteroids and black holes.
package spawn

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/asteroids-destroyer/internal/config"
	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/entity"
	"github.com/vovakirdan/asteroids-destroyer/internal/registry"
)

// Result reports what one Step did.
type Result struct {
	Spawned []entity.ID
	Skipped int // Spawns dropped because a population cap was reached
}

// Director owns the spawn timers of a run. Timers count ticks, so a paused
// run that does not step also does not advance them.
type Director struct {
	cfg        config.AsteroidsConfig
	rt         core.RuntimeConfig
	field      core.Field
	strategy   registry.Strategy
	difficulty *config.DifficultyManager

	asteroidTimer int
	holeTimer     int
}

// NewDirector creates a director for one run.
func NewDirector(cfg config.AsteroidsConfig, rt core.RuntimeConfig, strategy registry.Strategy, difficulty *config.DifficultyManager) *Director {
	d := &Director{
		cfg:        cfg,
		rt:         rt,
		field:      core.Field{W: cfg.Field.Width, H: cfg.Field.Height},
		strategy:   strategy,
		difficulty: difficulty,
	}
	d.Reset()
	return d
}

// Reset restarts both timers as at the beginning of a run.
func (d *Director) Reset() {
	d.asteroidTimer = d.asteroidInterval(0, 0)
	d.holeTimer = d.rt.Ticks(d.strategy.BlackHoleInterval())
}

// NextAsteroid returns the ticks left until the next asteroid attempt.
func (d *Director) NextAsteroid() int {
	return d.asteroidTimer
}

// Populate places the configured number of initial large asteroids.
func (d *Director) Populate(reg *entity.Registry, rng *rand.Rand, tick uint64) Result {
	var res Result
	for range d.cfg.Spawning.InitialCount {
		d.trySpawnAsteroid(reg, rng, tick, 0, &res)
	}
	return res
}

// Step advances the timers by one tick and spawns whatever is due. When a
// cap is reached the attempt is skipped and the timer restarts.
func (d *Director) Step(reg *entity.Registry, rng *rand.Rand, tick uint64, score int) Result {
	var res Result

	if d.asteroidsOpen(tick) {
		d.asteroidTimer--
		if d.asteroidTimer <= 0 {
			d.trySpawnAsteroid(reg, rng, tick, score, &res)
			d.asteroidTimer = d.asteroidInterval(score, int(tick))
		}
	}

	if d.strategy.BlackHolesEnabled() {
		d.holeTimer--
		if d.holeTimer <= 0 {
			d.trySpawnHole(reg, rng, &res)
			d.holeTimer = d.rt.Ticks(d.strategy.BlackHoleInterval())
		}
	}

	return res
}

// SpawnOpen reports whether asteroid spawning is still active at tick.
func (d *Director) SpawnOpen(tick uint64) bool {
	return d.asteroidsOpen(tick)
}

func (d *Director) asteroidsOpen(tick uint64) bool {
	w := d.cfg.Spawning.Window
	return w <= 0 || float64(tick) < w*float64(d.tickRate())
}

func (d *Director) tickRate() int {
	if d.rt.TickRate <= 0 {
		return 60
	}
	return d.rt.TickRate
}

func (d *Director) asteroidInterval(score, ticks int) int {
	secs := d.difficulty.SpawnInterval(d.cfg.Spawning.BaseInterval, d.cfg.Spawning.MinInterval, score, ticks)
	return max(1, d.rt.Ticks(secs))
}

// CanSpawnAsteroid reports whether an asteroid of the tier fits under the cap.
func (d *Director) CanSpawnAsteroid(reg *entity.Registry, t core.Tier) bool {
	return reg.AsteroidWeight()+t.Weight() <= d.cfg.Asteroids.Cap
}

// CanSpawnHole reports whether another black hole fits under the cap.
func (d *Director) CanSpawnHole(reg *entity.Registry) bool {
	return reg.Count(entity.KindBlackHole) < d.cfg.BlackHoles.Cap
}

func (d *Director) trySpawnAsteroid(reg *entity.Registry, rng *rand.Rand, tick uint64, score int, res *Result) {
	if !d.CanSpawnAsteroid(reg, core.TierLarge) {
		res.Skipped++
		return
	}

	pos := d.safePosition(reg, rng)
	speed := d.cfg.Asteroids.MinSpeed + rng.Float64()*(d.cfg.Asteroids.MaxSpeed-d.cfg.Asteroids.MinSpeed)
	speed *= d.difficulty.SpeedFactor(d.strategy.SpeedScale(), score, int(tick))
	vel := core.FromAngle(rng.Float64()*2*math.Pi, speed)

	a := entity.NewAsteroid(core.TierLarge, pos, vel, d.cfg.Asteroids.Radius.Large, tick)
	a.Spin = (rng.Float64()*2 - 1) * d.cfg.Asteroids.MaxSpin
	res.Spawned = append(res.Spawned, reg.Add(a))
}

func (d *Director) trySpawnHole(reg *entity.Registry, rng *rand.Rand, res *Result) {
	if !d.CanSpawnHole(reg) {
		res.Skipped++
		return
	}
	pos := d.safePosition(reg, rng)
	res.Spawned = append(res.Spawned, reg.Add(d.BlackHoleAt(pos)))
}

// BlackHoleAt builds a black hole with the configured strength at pos.
func (d *Director) BlackHoleAt(pos core.Vec2) entity.Entity {
	bh := d.cfg.BlackHoles
	h := entity.NewBlackHole(pos, bh.HorizonRadius, bh.Strength, bh.InfluenceRadius)
	h.Spin = bh.Spin
	return h
}

// safePosition draws a uniform field position. A draw closer to the ship
// than the safe distance is moved to its antipode, which is at least a
// quarter field away on each axis and so outside the safe distance.
func (d *Director) safePosition(reg *entity.Registry, rng *rand.Rand) core.Vec2 {
	pos := core.V(rng.Float64()*d.field.W, rng.Float64()*d.field.H)
	ship, ok := reg.Ship()
	if !ok {
		return pos
	}
	if d.field.Distance(pos, ship.Pos) < d.cfg.Asteroids.SafeDistance {
		pos = d.field.Antipode(pos)
	}
	return pos
}
