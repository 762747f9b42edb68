package mode

import (
	"github.com/vovakirdan/asteroids-destroyer/internal/config"
	"github.com/vovakirdan/asteroids-destroyer/internal/registry"
)

// Classic is the original arcade variant: rotate-and-thrust steering,
// no asteroid-asteroid interaction, every hit costs a life.
type Classic struct {
	rules
}

// NewClassic creates the classic variant from its rule table.
func NewClassic(cfg config.ModeConfig) *Classic {
	return &Classic{rules: rules{cfg: cfg}}
}

func init() {
	registry.Register("classic", func(cfg config.ModeConfig) registry.Strategy {
		return NewClassic(cfg)
	})
}

// Name returns the mode identifier.
func (c *Classic) Name() string { return "classic" }

// Title returns the display name.
func (c *Classic) Title() string { return "Classic" }
