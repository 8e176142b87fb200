package raycast

import (
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
)

// refineSteps is the number of bisections between the last empty sample and
// the first solid one.
const refineSteps = 10

// Ray is a half-line from Origin in direction Angle.
type Ray struct {
	Origin core.Vec2
	Angle  float64
}

// HitResult describes where a ray met a solid cell.
type HitResult struct {
	Point    core.Vec2
	Distance float64 // Euclidean, from the ray origin
	Row      int
	Col      int
	Face     mapfile.Orientation // side of the wall cell that was struck
}

// Cast marches the ray through the grid with a fixed-step DDA. The dominant
// axis advances one pixel per sample and the march is bounded by the grid
// diagonal. The boolean is false when the ray leaves the grid without
// meeting a solid cell, which only happens on grids that are not closed.
func Cast(ray Ray, g *mapfile.Grid) (HitResult, bool) {
	dir := core.Dir(ray.Angle)
	diag := g.Diagonal()
	dx, dy := dir.X*diag, dir.Y*diag
	major := math.Max(math.Abs(dx), math.Abs(dy))
	if major == 0 {
		return HitResult{}, false
	}
	inc := core.V(dx/major, dy/major)
	steps := int(math.Ceil(major))

	prev := ray.Origin
	for i := 0; i <= steps; i++ {
		p := ray.Origin.Add(inc.Scale(float64(i)))
		if hit, ok := crossCorner(g, prev, p, dir); ok {
			hit.Distance = ray.Origin.Dist(hit.Point)
			return hit, true
		}
		row, col := g.TileOf(p)
		cell, ok := g.CellAt(row, col)
		if !ok {
			return HitResult{}, false
		}
		if !cell.IsSolid() {
			prev = p
			continue
		}
		if i == 0 {
			// Origin is inside a wall.
			return HitResult{Point: p, Row: row, Col: col, Face: faceOf(g, p, p, dir)}, true
		}
		hit := refine(g, prev, p)
		row, col = g.TileOf(hit)
		return HitResult{
			Point:    hit,
			Distance: ray.Origin.Dist(hit),
			Row:      row,
			Col:      col,
			Face:     faceOf(g, prev, hit, dir),
		}, true
	}
	return HitResult{}, false
}

// crossCorner handles a sample that changes row and column at once. The
// segment between the samples passes through one of the two side cells
// first; when that cell is solid the boundary crossing into it is the hit.
func crossCorner(g *mapfile.Grid, a, b core.Vec2, dir core.Vec2) (HitResult, bool) {
	ar, ac := g.TileOf(a)
	br, bc := g.TileOf(b)
	if ar == br || ac == bc {
		return HitResult{}, false
	}

	tile := float64(g.TileSize())
	d := b.Sub(a)
	tx := (float64(max(ac, bc))*tile - a.X) / d.X
	ty := (float64(max(ar, br))*tile - a.Y) / d.Y

	hit := HitResult{Row: br, Col: ac}
	t := ty
	if tx < ty {
		hit.Row, hit.Col = ar, bc
		t = tx
	}
	cell, ok := g.CellAt(hit.Row, hit.Col)
	if !ok || !cell.IsSolid() {
		return HitResult{}, false
	}

	hit.Point = a.Add(d.Scale(t))
	switch {
	case tx < ty && dir.X > 0:
		hit.Face = mapfile.West
	case tx < ty:
		hit.Face = mapfile.East
	case dir.Y > 0:
		hit.Face = mapfile.North
	default:
		hit.Face = mapfile.South
	}
	return hit, true
}

// refine bisects the segment from an empty point a to a solid point b and
// returns the solid end of the final interval.
func refine(g *mapfile.Grid, a, b core.Vec2) core.Vec2 {
	for i := 0; i < refineSteps; i++ {
		mid := a.Add(b).Scale(0.5)
		if g.SolidAt(mid) {
			b = mid
		} else {
			a = mid
		}
	}
	return b
}

// faceOf picks the struck face from the tile change between the last empty
// sample and the hit. When both tile coordinates changed the axis whose
// boundary lies nearer the hit wins.
func faceOf(g *mapfile.Grid, from, hit core.Vec2, dir core.Vec2) mapfile.Orientation {
	fromRow, fromCol := g.TileOf(from)
	hitRow, hitCol := g.TileOf(hit)
	colChanged := fromCol != hitCol
	rowChanged := fromRow != hitRow

	vertical := colChanged && !rowChanged
	if colChanged == rowChanged {
		t := float64(g.TileSize())
		vertical = boundaryGap(hit.X, t) <= boundaryGap(hit.Y, t)
	}

	if vertical {
		if dir.X > 0 {
			return mapfile.West
		}
		return mapfile.East
	}
	if dir.Y > 0 {
		return mapfile.North
	}
	return mapfile.South
}

func boundaryGap(v, tile float64) float64 {
	r := math.Mod(v, tile)
	if r < 0 {
		r += tile
	}
	return math.Min(r, tile-r)
}
