package mode

import (
	"github.com/vovakirdan/asteroids-destroyer/internal/config"
	"github.com/vovakirdan/asteroids-destroyer/internal/registry"
)

// Modern adds black holes, eight-way steering and colliding asteroids that
// either shatter or collapse into a new black hole.
type Modern struct {
	rules
}

// NewModern creates the modern variant from its rule table.
func NewModern(cfg config.ModeConfig) *Modern {
	return &Modern{rules: rules{cfg: cfg}}
}

func init() {
	registry.Register("modern", func(cfg config.ModeConfig) registry.Strategy {
		return NewModern(cfg)
	})
}

// Name returns the mode identifier.
func (m *Modern) Name() string { return "modern" }

// Title returns the display name.
func (m *Modern) Title() string { return "Modern" }
