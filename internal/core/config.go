package core

// RuntimeConfig contains configuration passed to the simulation at initialization.
// The platform uses the screen size for rendering; the simulation uses the
// tick rate and seed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// DT returns the fixed timestep in seconds.
func (c RuntimeConfig) DT() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// Ticks converts a duration in seconds into a whole number of ticks (at least 1
// for positive durations).
func (c RuntimeConfig) Ticks(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	n := int(seconds*float64(rate) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

// GameState is the status summary the platform polls after each step.
type GameState struct {
	Score    int  // Current score
	Lives    int  // Remaining lives
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the run is paused
	InMenu   bool // Whether the machine sits in the menu
	Quit     bool // Whether the session was terminated
}
