package physics

import (
	"github.com/vovakirdan/asteroids-destroyer/internal/core"
)

// grid is a uniform bucket grid over the torus. Cells are at least minCell
// wide, so two circles whose radii sum to at most minCell can only overlap
// when they sit in the same or adjacent cells (adjacency wraps at the edges).
type grid struct {
	cols, rows   int
	cellW, cellH float64
	cells        [][]int
}

func newGrid(f core.Field, minCell float64) *grid {
	cols, rows := 1, 1
	if minCell > 0 {
		cols = max(1, int(f.W/minCell))
		rows = max(1, int(f.H/minCell))
	}
	g := &grid{
		cols:  cols,
		rows:  rows,
		cellW: f.W / float64(cols),
		cellH: f.H / float64(rows),
		cells: make([][]int, cols*rows),
	}
	return g
}

func (g *grid) coords(p core.Vec2) (int, int) {
	cx := core.Clamp(int(p.X/g.cellW), 0, g.cols-1)
	cy := core.Clamp(int(p.Y/g.cellH), 0, g.rows-1)
	return cx, cy
}

func (g *grid) insert(idx int, p core.Vec2) {
	cx, cy := g.coords(p)
	cell := cy*g.cols + cx
	g.cells[cell] = append(g.cells[cell], idx)
}

// neighbors returns the distinct cells around p, including its own.
func (g *grid) neighbors(p core.Vec2) []int {
	cx, cy := g.coords(p)
	out := make([]int, 0, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x := (cx + dx + g.cols) % g.cols
			y := (cy + dy + g.rows) % g.rows
			cell := y*g.cols + x
			dup := false
			for _, c := range out {
				if c == cell {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, cell)
			}
		}
	}
	return out
}
