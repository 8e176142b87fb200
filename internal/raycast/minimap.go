package raycast

import (
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
)

// Minimap colors.
var (
	MinimapWall   = core.RGB(200, 200, 200)
	MinimapFloor  = core.RGB(40, 40, 40)
	MinimapPlayer = core.ColorRed
	MinimapRay    = core.RGB(250, 250, 250)
)

// Minimap draws a top-down view of the grid with its top-left corner at
// (ox, oy), scale pixels per tile. Void cells are left untouched. The
// player's facing ray is traced up to the wall it hits.
func Minimap(g *mapfile.Grid, p Player, sink core.PixelSink, ox, oy, scale int) {
	if scale < 1 {
		return
	}
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell, _ := g.CellAt(row, col)
			var c core.Color
			switch cell.Kind {
			case mapfile.Wall:
				c = MinimapWall
			case mapfile.Empty, mapfile.Spawn:
				c = MinimapFloor
			default:
				continue
			}
			fillRect(sink, core.NewRect(ox+col*scale, oy+row*scale, scale, scale), c)
		}
	}

	tile := float64(g.TileSize())
	toMap := func(v core.Vec2) (int, int) {
		return ox + int(v.X/tile*float64(scale)), oy + int(v.Y/tile*float64(scale))
	}

	if hit, ok := Cast(Ray{Origin: p.Pos, Angle: p.Angle}, g); ok {
		// One sample per minimap pixel along the ray.
		n := int(hit.Distance/tile*float64(scale)) + 1
		for i := 0; i <= n; i++ {
			pt := p.Pos.Add(p.Dir().Scale(hit.Distance * float64(i) / float64(n)))
			x, y := toMap(pt)
			sink.SetPixel(x, y, MinimapRay)
		}
	}

	px, py := toMap(p.Pos)
	sink.SetPixel(px, py, MinimapPlayer)
}

// fillRect uses the sink's own rectangle fill when it has one.
func fillRect(sink core.PixelSink, r core.Rect, c core.Color) {
	if f, ok := sink.(core.RectFiller); ok {
		f.FillRect(r, c)
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			sink.SetPixel(x, y, c)
		}
	}
}

// DrawMinimap overlays the minimap in the top-left corner using the
// configured scale.
func (r *Renderer) DrawMinimap(p Player, sink core.PixelSink) {
	Minimap(r.grid, p, sink, 0, 0, r.cfg.Minimap.Scale)
}
