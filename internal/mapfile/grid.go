// Package mapfile parses .cub map files into a closed, read-only tile grid
// and the player's spawn pose.
package mapfile

import (
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// DefaultTileSize is the pixel extent of one tile.
const DefaultTileSize = 64

// CellKind is the geometric role of a grid cell.
type CellKind uint8

const (
	// Void pads ragged rows; it lies outside the declared map.
	Void CellKind = iota
	Empty
	Wall
	Spawn
)

// String returns a readable name for the kind.
func (k CellKind) String() string {
	switch k {
	case Void:
		return "void"
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Spawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// Orientation is a compass direction for spawns and wall faces.
type Orientation uint8

const (
	North Orientation = iota
	South
	East
	West
)

// Angle returns the facing angle in radians (0 = east, clockwise on screen).
func (o Orientation) Angle() float64 {
	switch o {
	case East:
		return 0
	case South:
		return math.Pi / 2
	case West:
		return math.Pi
	default:
		return 3 * math.Pi / 2
	}
}

// String returns the one-letter map symbol of the orientation.
func (o Orientation) String() string {
	switch o {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	default:
		return "W"
	}
}

// Cell is one tile of the grid.
type Cell struct {
	Kind   CellKind
	Facing Orientation // only meaningful for Spawn
}

// IsSolid reports whether rays and movement stop at this cell.
func (c Cell) IsSolid() bool {
	return c.Kind == Wall || c.Kind == Void
}

// Grid is the parsed map body. Cells are stored in row-major order:
// index = row*cols + col. A Grid is never mutated after parsing.
type Grid struct {
	cols  int
	rows  int
	tile  int
	cells []Cell
}

// NewGrid builds a grid from rows of cells, padding short rows with Void.
func NewGrid(rows [][]Cell, tile int) *Grid {
	if tile <= 0 {
		tile = DefaultTileSize
	}
	cols := 0
	for _, r := range rows {
		cols = core.Max(cols, len(r))
	}
	g := &Grid{
		cols:  cols,
		rows:  len(rows),
		tile:  tile,
		cells: make([]Cell, cols*len(rows)),
	}
	for y, r := range rows {
		copy(g.cells[y*cols:], r)
	}
	return g
}

// Cols returns the number of tile columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// TileSize returns the pixel extent of one tile.
func (g *Grid) TileSize() int { return g.tile }

// PixelWidth returns the grid width in pixel units.
func (g *Grid) PixelWidth() int { return g.cols * g.tile }

// PixelHeight returns the grid height in pixel units.
func (g *Grid) PixelHeight() int { return g.rows * g.tile }

// InBounds returns true if the tile coordinate is inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// CellAt returns the cell at a tile coordinate.
// The boolean is false when the coordinate is out of bounds.
func (g *Grid) CellAt(row, col int) (Cell, bool) {
	if !g.InBounds(row, col) {
		return Cell{Kind: Void}, false
	}
	return g.cells[row*g.cols+col], true
}

// TileOf converts a pixel-space point to its tile coordinate.
func (g *Grid) TileOf(p core.Vec2) (row, col int) {
	t := float64(g.tile)
	return int(math.Floor(p.Y / t)), int(math.Floor(p.X / t))
}

// CellAtPoint returns the cell containing a pixel-space point.
func (g *Grid) CellAtPoint(p core.Vec2) (Cell, bool) {
	row, col := g.TileOf(p)
	return g.CellAt(row, col)
}

// SolidAt reports whether the point lies in a solid or out-of-bounds cell.
func (g *Grid) SolidAt(p core.Vec2) bool {
	c, ok := g.CellAtPoint(p)
	return !ok || c.IsSolid()
}

// TileCenter returns the pixel-space center of a tile.
func (g *Grid) TileCenter(row, col int) core.Vec2 {
	t := float64(g.tile)
	return core.V((float64(col)+0.5)*t, (float64(row)+0.5)*t)
}

// Diagonal returns the grid's pixel-space diagonal length.
func (g *Grid) Diagonal() float64 {
	return math.Hypot(float64(g.PixelWidth()), float64(g.PixelHeight()))
}
