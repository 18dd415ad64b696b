package bramble

import (
	"math"
	"strings"
)

// Grid is a 2D boolean occupancy table addressed by tile column and row.
// Tile (0, 0) is the top-left tile. Grid coordinates are local to the
// collider that carries the grid; world-space helpers take the grid's
// world-space top-left corner.
type Grid struct {
	TileWidth  float64
	TileHeight float64
	cols       int
	rows       int
	cells      []bool // row-major, len = cols * rows
}

// NewGridTable creates an empty grid of cols x rows tiles.
// Panics if any dimension is not positive.
func NewGridTable(cols, rows int, tileW, tileH float64) *Grid {
	if cols <= 0 || rows <= 0 {
		panic("bramble: grid must have at least one column and one row")
	}
	if tileW <= 0 || tileH <= 0 {
		panic("bramble: grid tile size must be positive")
	}
	return &Grid{
		TileWidth:  tileW,
		TileHeight: tileH,
		cols:       cols,
		rows:       rows,
		cells:      make([]bool, cols*rows),
	}
}

// Cols returns the number of tile columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// Width returns the grid width in pixels.
func (g *Grid) Width() float64 { return float64(g.cols) * g.TileWidth }

// Height returns the grid height in pixels.
func (g *Grid) Height() float64 { return float64(g.rows) * g.TileHeight }

// Tile reports whether the tile at (col, row) is solid. Out-of-range tiles
// are empty.
func (g *Grid) Tile(col, row int) bool {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return false
	}
	return g.cells[row*g.cols+col]
}

// SetTile marks the tile at (col, row) solid or empty. Out-of-range tiles
// are ignored.
func (g *Grid) SetTile(col, row int, solid bool) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return
	}
	g.cells[row*g.cols+col] = solid
}

// SetRect marks every tile in the cols x rows block starting at (col, row).
func (g *Grid) SetRect(col, row, cols, rows int, solid bool) {
	for r := row; r < row+rows; r++ {
		for c := col; c < col+cols; c++ {
			g.SetTile(c, r, solid)
		}
	}
}

// Clear marks every tile empty.
func (g *Grid) Clear() {
	clear(g.cells)
}

// TileRectSolid reports whether any tile in the cols x rows block starting at
// (col, row) is solid.
func (g *Grid) TileRectSolid(col, row, cols, rows int) bool {
	c0, r0 := max(col, 0), max(row, 0)
	c1, r1 := min(col+cols, g.cols), min(row+rows, g.rows)
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			if g.cells[r*g.cols+c] {
				return true
			}
		}
	}
	return false
}

// LoadString fills the grid from rows of text where '#' marks a solid tile
// and any other character an empty one. Rows are separated by newlines;
// leading and trailing blank lines are ignored.
func (g *Grid) LoadString(s string) {
	g.Clear()
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	for row, line := range lines {
		for col, ch := range []rune(line) {
			if ch == '#' {
				g.SetTile(col, row, true)
			}
		}
	}
}

// tileSpan returns the inclusive tile range covering r, given the grid's
// world-space top-left corner (ox, oy). ok is false when r lies entirely
// outside the grid.
func (g *Grid) tileSpan(ox, oy float64, r Rect) (c0, r0, c1, r1 int, ok bool) {
	c0 = int(math.Floor((r.X - ox) / g.TileWidth))
	r0 = int(math.Floor((r.Y - oy) / g.TileHeight))
	c1 = int(math.Floor((r.X + r.Width - ox) / g.TileWidth))
	r1 = int(math.Floor((r.Y + r.Height - oy) / g.TileHeight))
	if c1 < 0 || r1 < 0 || c0 >= g.cols || r0 >= g.rows {
		return 0, 0, 0, 0, false
	}
	return max(c0, 0), max(r0, 0), min(c1, g.cols-1), min(r1, g.rows-1), true
}

// tileRect returns the world-space rectangle of tile (col, row).
func (g *Grid) tileRect(ox, oy float64, col, row int) Rect {
	return Rect{
		X:      ox + float64(col)*g.TileWidth,
		Y:      oy + float64(row)*g.TileHeight,
		Width:  g.TileWidth,
		Height: g.TileHeight,
	}
}

// RectSolid reports whether any solid tile overlaps the world-space
// rectangle r, for a grid whose top-left corner sits at (ox, oy). This is the
// coarse pre-filter the overlap tests run before checking individual tiles.
func (g *Grid) RectSolid(ox, oy float64, r Rect) bool {
	c0, r0, c1, r1, ok := g.tileSpan(ox, oy, r)
	if !ok {
		return false
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if g.cells[row*g.cols+col] && g.tileRect(ox, oy, col, row).Overlaps(r) {
				return true
			}
		}
	}
	return false
}

// PointSolid reports whether the world-space point (x, y) falls in a solid
// tile of a grid whose top-left corner sits at (ox, oy).
func (g *Grid) PointSolid(ox, oy, x, y float64) bool {
	col := int(math.Floor((x - ox) / g.TileWidth))
	row := int(math.Floor((y - oy) / g.TileHeight))
	return g.Tile(col, row)
}

// eachSolidTile calls fn with the world-space rectangle of every solid tile
// whose cell range covers r, stopping early when fn returns true. It reports
// whether fn returned true.
func (g *Grid) eachSolidTile(ox, oy float64, r Rect, fn func(tile Rect) bool) bool {
	c0, r0, c1, r1, ok := g.tileSpan(ox, oy, r)
	if !ok {
		return false
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if g.cells[row*g.cols+col] && fn(g.tileRect(ox, oy, col, row)) {
				return true
			}
		}
	}
	return false
}
