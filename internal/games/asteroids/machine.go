// Package asteroids runs the simulation: a state machine over menu, play,
// pause and game over that advances the field one fixed tick per Step.
package asteroids

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroids-destroyer/internal/config"
	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/entity"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/physics"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/spawn"
	"github.com/vovakirdan/asteroids-destroyer/internal/registry"

	// Register the classic and modern rule sets
	_ "github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/mode"
)

// State is the machine state.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// StepResult is returned by Step after each call.
type StepResult struct {
	State    core.GameState
	Snapshot Snapshot
	Events   []Event
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMode overrides the mode selected in the config.
func WithMode(name string) Option {
	return func(m *Machine) {
		m.modeName = name
	}
}

// Machine is one single-player game: its own registry, session and RNG.
// It is not safe for concurrent use; run one machine per player.
type Machine struct {
	cfg      config.AsteroidsConfig
	rt       core.RuntimeConfig
	field    core.Field
	logger   *log.Logger
	modeName string

	state    State
	strategy registry.Strategy
	session  Session

	reg        *entity.Registry
	gravity    *physics.GravityField
	integrator *physics.Integrator
	detector   *physics.Detector
	director   *spawn.Director
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	tick    uint64
	runs    int64
	runSeed int64
	events  []Event
}

// New creates a machine in the menu state.
func New(cfg config.AsteroidsConfig, rt core.RuntimeConfig, opts ...Option) (*Machine, error) {
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	m := &Machine{
		cfg:      cfg,
		rt:       rt,
		field:    core.Field{W: cfg.Field.Width, H: cfg.Field.Height},
		logger:   log.New(io.Discard),
		modeName: cfg.Mode,
		reg:      entity.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if !registry.Exists(m.modeName) {
		return nil, fmt.Errorf("asteroids: unknown mode %q", m.modeName)
	}
	m.cfg.Mode = m.modeName
	if err := m.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("asteroids: invalid config: %w", err)
	}

	m.gravity = physics.NewGravityField(m.field, cfg.BlackHoles.Epsilon)
	m.integrator = &physics.Integrator{
		Field:    m.field,
		MaxSpeed: cfg.Field.MaxSpeed,
		Ship: physics.ShipParams{
			Thrust:   cfg.Ship.Thrust,
			Strafe:   cfg.Ship.StrafeSpeed,
			Retain:   cfg.Ship.Retain,
			MaxSpeed: cfg.Ship.MaxSpeed,
		},
	}
	m.detector = &physics.Detector{Field: m.field}
	return m, nil
}

// Step applies one frame of input. Only the playing state advances the
// simulation; every other state just reacts to its transition actions.
func (m *Machine) Step(in core.InputFrame) StepResult {
	m.events = nil

	if m.state != StateTerminated && in.Has(core.ActionQuit) {
		m.setState(StateTerminated)
		return m.result()
	}

	switch m.state {
	case StateMenu:
		if in.Has(core.ActionToggleMode) {
			m.modeName = registry.Next(m.modeName)
			m.logger.Debug("mode selected", "mode", m.modeName)
		}
		if in.Has(core.ActionStart) {
			m.startRun()
		}
	case StatePlaying:
		if in.Has(core.ActionPauseToggle) {
			m.setState(StatePaused)
			break
		}
		m.advance(in)
	case StatePaused:
		if in.Has(core.ActionPauseToggle) {
			m.setState(StatePlaying)
		}
	case StateGameOver:
		if in.Has(core.ActionAcknowledge) {
			m.setState(StateMenu)
		}
	}

	return m.result()
}

func (m *Machine) result() StepResult {
	return StepResult{
		State:    m.State(),
		Snapshot: m.Snapshot(),
		Events:   m.events,
	}
}

// State returns the status summary for the platform.
func (m *Machine) State() core.GameState {
	return core.GameState{
		Score:    m.session.Score,
		Lives:    m.session.Lives,
		GameOver: m.state == StateGameOver,
		Paused:   m.state == StatePaused,
		InMenu:   m.state == StateMenu,
		Quit:     m.state == StateTerminated,
	}
}

// Phase returns the machine state.
func (m *Machine) Phase() State {
	return m.state
}

// Session returns a copy of the current run's score and lives.
func (m *Machine) Session() Session {
	return m.session
}

// Mode returns the selected mode name.
func (m *Machine) Mode() string {
	return m.modeName
}

// Tick returns the number of simulated ticks in the current run.
func (m *Machine) Tick() uint64 {
	return m.tick
}

// RunSeed returns the RNG seed of the current run. Replaying a run's input
// frames against a machine with this seed reproduces it exactly.
func (m *Machine) RunSeed() int64 {
	return m.runSeed
}

// Directional reports whether the running mode uses directional steering.
func (m *Machine) Directional() bool {
	return m.strategy != nil && m.strategy.Steering() == registry.SteeringDirectional
}

func (m *Machine) setState(s State) {
	if m.state == s {
		return
	}
	m.logger.Debug("state changed", "from", m.state, "to", s)
	m.state = s
	m.emit(Event{Kind: EventStateChanged, State: s})
}

func (m *Machine) emit(e Event) {
	e.Tick = m.tick
	m.events = append(m.events, e)
}

// startRun resets everything a run owns and enters the playing state.
func (m *Machine) startRun() {
	strategy, err := registry.Create(m.modeName, m.cfg)
	if err != nil {
		m.logger.Error("cannot start run", "mode", m.modeName, "error", err)
		return
	}
	m.strategy = strategy

	m.reg.Clear()
	m.tick = 0
	m.session.Reset(strategy.Name(), strategy.StartingLives())

	seed := m.rt.Seed + m.runs
	m.runs++
	m.runSeed = seed
	m.rng = rand.New(rand.NewSource(seed))

	m.difficulty = config.NewDifficultyManager(m.cfg.Difficulty)
	m.difficulty.SetTickRate(m.rt.TickRate)
	m.director = spawn.NewDirector(m.cfg, m.rt, strategy, m.difficulty)
	m.detector.AsteroidCollisions = strategy.AsteroidCollisions()

	m.reg.Add(entity.NewShip(m.field.Center(), m.cfg.Ship.Radius))
	m.director.Populate(m.reg, m.rng, m.tick)

	m.logger.Info("run started", "mode", strategy.Name(), "seed", seed, "lives", m.session.Lives)
	m.setState(StatePlaying)
}

// advance runs one simulation tick: input, motion, collisions, outcomes,
// timers, removal, spawning and the victory check.
func (m *Machine) advance(in core.InputFrame) {
	dt := m.rt.DT()

	ctl := m.applyInput(in, dt)

	m.gravity.Rebuild(m.reg)
	m.integrator.Step(m.reg, m.gravity, dt, ctl)

	collisions := m.detector.Detect(m.reg)
	m.resolve(collisions)

	if m.state == StateGameOver {
		m.reg.Flush()
		m.tick++
		return
	}

	m.ageTimers()
	m.reg.Flush()

	res := m.director.Step(m.reg, m.rng, m.tick, m.session.Score)
	if res.Skipped > 0 {
		m.logger.Debug("spawn skipped at cap", "tick", m.tick, "skipped", res.Skipped)
	}

	m.tick++
	m.checkVictory()
	m.checkInvariants()
}

// applyInput turns the frame into ship state changes and missile launches.
func (m *Machine) applyInput(in core.InputFrame, dt float64) physics.ShipControl {
	var ctl physics.ShipControl
	ship, ok := m.reg.Ship()
	if !ok {
		return ctl
	}

	if in.Has(core.ActionRotateLeft) && !in.Has(core.ActionRotateRight) {
		ship.Rotation -= m.cfg.Ship.RotationSpeed * dt
	}
	if in.Has(core.ActionRotateRight) && !in.Has(core.ActionRotateLeft) {
		ship.Rotation += m.cfg.Ship.RotationSpeed * dt
	}

	if m.strategy.Steering() == registry.SteeringDirectional {
		ctl.Directional = true
		if in.Has(core.ActionMoveUp) {
			ctl.Move.Y--
		}
		if in.Has(core.ActionMoveDown) {
			ctl.Move.Y++
		}
		if in.Has(core.ActionMoveLeft) {
			ctl.Move.X--
		}
		if in.Has(core.ActionMoveRight) {
			ctl.Move.X++
		}
	} else {
		if in.Has(core.ActionThrustOn) {
			ship.Ship.Thrusting = true
		}
		if in.Has(core.ActionThrustOff) {
			ship.Ship.Thrusting = false
		}
	}

	if in.Has(core.ActionFire) {
		m.fire(ship)
	}
	return ctl
}

func (m *Machine) fire(ship *entity.Entity) {
	if ship.Ship.FireCooldown > 0 {
		return
	}
	if m.reg.Count(entity.KindMissile) >= m.cfg.Missile.MaxActive {
		m.logger.Debug("fire skipped at missile cap", "tick", m.tick)
		return
	}

	heading := core.FromAngle(ship.Rotation, 1)
	pos := m.field.Wrap(ship.Pos.Add(heading.Scale(ship.Radius)))
	missile := entity.NewMissile(pos, heading.Scale(m.cfg.Missile.Speed), m.cfg.Missile.Radius, m.rt.Ticks(m.cfg.Missile.TTL))
	id := m.reg.Add(missile)

	ship.Ship.FireCooldown = m.rt.Ticks(m.cfg.Ship.FireCooldown)
	m.emit(Event{Kind: EventMissileFired, Entity: id, Pos: pos})
}

// ageTimers counts down missile lifetimes and ship timers. A missile whose
// lifetime reaches zero is removed, so a missile created with TTL n takes
// part in exactly n ticks.
func (m *Machine) ageTimers() {
	for mis := range m.reg.Iterate(entity.KindMissile) {
		mis.Missile.TTL--
		if mis.Missile.TTL <= 0 {
			mis.Missile.TTL = 0
			m.reg.Remove(mis.ID)
		}
	}
	if ship, ok := m.reg.Ship(); ok {
		if ship.Ship.FireCooldown > 0 {
			ship.Ship.FireCooldown--
		}
		if ship.Ship.Invulnerable > 0 {
			ship.Ship.Invulnerable--
		}
	}
}

func (m *Machine) checkVictory() {
	after := m.strategy.VictoryAfter()
	if after <= 0 {
		return
	}
	elapsed := float64(m.tick) / float64(m.rt.TickRate)
	if elapsed <= after || m.reg.Count(entity.KindAsteroid) > 0 {
		return
	}
	m.endRun(OutcomeVictory)
	m.emit(Event{Kind: EventVictory, Points: m.session.Score})
}

func (m *Machine) endRun(outcome Outcome) {
	m.session.Outcome = outcome
	m.logger.Info("game over",
		"mode", m.session.Mode,
		"score", m.session.Score,
		"outcome", outcome,
		"ticks", m.tick,
	)
	m.setState(StateGameOver)
	m.emit(Event{Kind: EventGameOver, Outcome: outcome, Points: m.session.Score})
}

// checkInvariants panics when the run reached a state no rule can produce.
func (m *Machine) checkInvariants() {
	if w := m.reg.AsteroidWeight(); w > m.cfg.Asteroids.Cap {
		m.violate("asteroid population %d exceeds cap %d", w, m.cfg.Asteroids.Cap)
	}
	if n := m.reg.Count(entity.KindMissile); n > m.cfg.Missile.MaxActive {
		m.violate("missile population %d exceeds cap %d", n, m.cfg.Missile.MaxActive)
	}
	if n := m.reg.Count(entity.KindBlackHole); n > m.cfg.BlackHoles.Cap {
		m.violate("black hole population %d exceeds cap %d", n, m.cfg.BlackHoles.Cap)
	}
	if m.session.Lives < 0 {
		m.violate("negative lives %d", m.session.Lives)
	}
	for e := range m.reg.All() {
		if !m.field.Contains(e.Pos) {
			m.violate("entity %d at %v outside the field", e.ID, e.Pos)
		}
		if e.Kind == entity.KindMissile && e.Missile.TTL < 0 {
			m.violate("missile %d has negative ttl %d", e.ID, e.Missile.TTL)
		}
	}
}

func (m *Machine) violate(format string, args ...any) {
	err := core.InvariantViolation{Op: "asteroids.Step", Detail: fmt.Sprintf(format, args...)}
	m.logger.Error("invariant violated", "tick", m.tick, "error", err)
	panic(err)
}
