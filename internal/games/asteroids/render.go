package asteroids

import (
	"fmt"
	"math"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/entity"
	"github.com/vovakirdan/asteroids-destroyer/internal/registry"
)

// Glyphs used on the terminal field.
const (
	MissileChar    = '·'
	HoleCoreChar   = '@'
	HoleRimChar    = '░'
	LargeRockChar  = '#'
	MediumRockChar = '%'
	SmallRockChar  = '*'
)

// shipGlyphs is indexed by heading in eighths of a turn, starting east and
// turning clockwise (screen y grows downward).
var shipGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// hudRows is the number of screen rows above the field.
const hudRows = 1

// Render draws the current state into dst. The field is scaled to the
// screen below the HUD row, so the same run renders at any terminal size.
func (m *Machine) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() < 20 || dst.Height() < 8 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorBrightRed)
		return
	}

	switch m.state {
	case StateMenu:
		m.renderMenu(dst)
		return
	case StateTerminated:
		dst.DrawTextCentered(dst.Height()/2, "Goodbye", core.ColorGray)
		return
	}

	snap := m.Snapshot()
	v := newViewport(snap.Field, dst)
	for _, e := range snap.Entities {
		switch e.Kind {
		case entity.KindBlackHole:
			v.disc(dst, e.Pos, e.Radius, HoleRimChar, core.ColorPurple)
			v.point(dst, e.Pos, HoleCoreChar, core.ColorMagenta)
		case entity.KindAsteroid:
			glyph, color := rockGlyph(e.Tier)
			v.disc(dst, e.Pos, e.Radius, glyph, color)
		}
	}
	for _, e := range snap.Entities {
		switch e.Kind {
		case entity.KindMissile:
			v.point(dst, e.Pos, MissileChar, core.ColorBrightYellow)
		case entity.KindShip:
			color := core.ColorBrightCyan
			if e.Invulnerable && (snap.Tick/8)%2 == 0 {
				color = core.ColorGray
			}
			v.point(dst, e.Pos, shipGlyph(e.Rotation), color)
		}
	}

	m.renderHUD(dst)
	m.renderOverlay(dst)
}

func (m *Machine) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", m.session.Score), core.ColorBrightWhite)
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", m.session.Lives), core.ColorBrightRed)
	mode := modeTitle(m.modeName)
	dst.DrawText(dst.Width()-len(mode)-1, 0, mode, core.ColorCyan)
}

func (m *Machine) renderMenu(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-4, "A S T E R O I D S", core.ColorBrightYellow)
	dst.DrawTextCentered(mid-2, "Mode: "+modeTitle(m.modeName), core.ColorCyan)
	dst.DrawTextCentered(mid, "ENTER start", core.ColorWhite)
	dst.DrawTextCentered(mid+1, "M change mode", core.ColorGray)
	dst.DrawTextCentered(mid+2, "Q quit", core.ColorGray)
}

func (m *Machine) renderOverlay(dst *core.Screen) {
	mid := dst.Height() / 2
	switch m.state {
	case StatePaused:
		dst.DrawTextCentered(mid, "PAUSED", core.ColorBrightWhite)
		dst.DrawTextCentered(mid+1, "P to resume", core.ColorGray)
	case StateGameOver:
		title := "GAME OVER"
		color := core.ColorBrightRed
		switch m.session.Outcome {
		case OutcomeVictory:
			title, color = "FIELD CLEARED", core.ColorGreen
		case OutcomeSwallowed:
			title = "SWALLOWED"
		}
		dst.DrawTextCentered(mid-1, title, color)
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Final score: %d", m.session.Score), core.ColorBrightWhite)
		dst.DrawTextCentered(mid+2, "ENTER to continue", core.ColorGray)
	}
}

func modeTitle(name string) string {
	for _, info := range registry.List() {
		if info.Name == name {
			return info.Title
		}
	}
	return name
}

func rockGlyph(t core.Tier) (rune, core.Color) {
	switch t {
	case core.TierLarge:
		return LargeRockChar, core.ColorOrange
	case core.TierMedium:
		return MediumRockChar, core.ColorYellow
	default:
		return SmallRockChar, core.ColorWhite
	}
}

func shipGlyph(rotation float64) rune {
	eighth := int(math.Round(rotation/(math.Pi/4))) % 8
	if eighth < 0 {
		eighth += 8
	}
	return shipGlyphs[eighth]
}

// viewport maps field coordinates onto screen cells below the HUD.
type viewport struct {
	field  core.Field
	w, h   int
	sx, sy float64
}

func newViewport(f core.Field, dst *core.Screen) viewport {
	w, h := dst.Width(), dst.Height()-hudRows
	return viewport{field: f, w: w, h: h, sx: float64(w) / f.W, sy: float64(h) / f.H}
}

func (v viewport) cell(p core.Vec2) (int, int) {
	x := int(p.X * v.sx)
	y := int(p.Y * v.sy)
	return core.Clamp(x, 0, v.w-1), core.Clamp(y, 0, v.h-1)
}

func (v viewport) point(dst *core.Screen, p core.Vec2, r rune, c core.Color) {
	x, y := v.cell(p)
	dst.SetColored(x, y+hudRows, r, c)
}

// disc fills the cells whose centers lie inside the circle, wrapping across
// screen edges the way the field wraps. The center cell is always drawn.
func (v viewport) disc(dst *core.Screen, p core.Vec2, radius float64, r rune, c core.Color) {
	rx := int(math.Ceil(radius * v.sx))
	ry := int(math.Ceil(radius * v.sy))
	cx, cy := v.cell(p)

	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			// Cell center back in field units, relative to the circle center
			fx := (float64(cx+dx)+0.5)/v.sx - p.X
			fy := (float64(cy+dy)+0.5)/v.sy - p.Y
			if fx*fx+fy*fy >= radius*radius && (dx != 0 || dy != 0) {
				continue
			}
			x := ((cx+dx)%v.w + v.w) % v.w
			y := ((cy+dy)%v.h + v.h) % v.h
			dst.SetColored(x, y+hudRows, r, c)
		}
	}
}
