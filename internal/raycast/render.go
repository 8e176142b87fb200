package raycast

import (
	"fmt"
	"math"
	"sync"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
)

// epsilon is the distance below which projection and shading use their
// sentinel values.
const epsilon = 1e-6

// Column is the projected result of one screen column's ray.
type Column struct {
	X         int
	Angle     float64
	Hit       HitResult
	OK        bool    // false when the ray found no wall; drawn as background
	Corrected float64 // fisheye-corrected distance
	Height    int     // wall slice height in pixels, clipped to the screen
	Color     core.Color
}

// Renderer sweeps rays across the field of view and draws wall slices.
// It only reads the map, so one Renderer may serve many frames.
type Renderer struct {
	cfg        config.RenderConfig
	grid       *mapfile.Grid
	meta       mapfile.Metadata
	projection float64
}

// NewRenderer binds a validated config to a parsed map.
// The grid's tile size overrides cfg.TileSize.
func NewRenderer(cfg config.RenderConfig, m *mapfile.Map) (*Renderer, error) {
	if m == nil || m.Grid == nil {
		return nil, fmt.Errorf("raycast: renderer needs a map")
	}
	cfg.TileSize = m.Grid.TileSize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("raycast: %w", err)
	}
	return &Renderer{
		cfg:        cfg,
		grid:       m.Grid,
		meta:       m.Meta,
		projection: cfg.ProjectionConstant(),
	}, nil
}

// Config returns the renderer's effective configuration.
func (r *Renderer) Config() config.RenderConfig {
	return r.cfg
}

// SetScreen rebinds the renderer to a new surface size.
func (r *Renderer) SetScreen(w, h int) {
	r.cfg = r.cfg.WithScreen(core.Max(w, 1), core.Max(h, 1))
	r.projection = r.cfg.ProjectionConstant()
}

// Columns casts one ray per screen column, left to right.
// With more than one worker the columns are split into contiguous bands; each
// band writes only its own slots, so the result equals the sequential one.
func (r *Renderer) Columns(p Player) []Column {
	w := r.cfg.ScreenW
	cols := make([]Column, w)
	workers := core.Min(r.cfg.Workers, w)
	if workers <= 1 {
		for x := 0; x < w; x++ {
			cols[x] = r.Column(p, x)
		}
		return cols
	}

	per := (w + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < w; start += per {
		end := core.Min(start+per, w)
		wg.Add(1)
		go func(x0, x1 int) {
			defer wg.Done()
			for x := x0; x < x1; x++ {
				cols[x] = r.Column(p, x)
			}
		}(start, end)
	}
	wg.Wait()
	return cols
}

// Column computes the ray and projection of screen column x.
func (r *Renderer) Column(p Player, x int) Column {
	fov := r.cfg.FOV()
	delta := fov / float64(r.cfg.ScreenW)
	angle := p.Angle - fov/2 + (float64(x)+0.5)*delta

	c := Column{X: x, Angle: angle}
	hit, ok := Cast(Ray{Origin: p.Pos, Angle: angle}, r.grid)
	if !ok {
		return c
	}
	c.Hit = hit
	c.OK = true
	c.Corrected = hit.Distance * math.Cos(angle-p.Angle)
	c.Height = Project(c.Corrected, r.projection, r.cfg.ScreenH)
	c.Color = r.wallColor(c.Corrected, hit.Face)
	return c
}

func (r *Renderer) wallColor(d float64, face mapfile.Orientation) core.Color {
	c := core.Gray(Shade(d, r.cfg.Shading))
	if face == mapfile.East || face == mapfile.West {
		c = c.Scale(r.cfg.Shading.SideFactor)
	}
	return c
}

// Render draws a full frame: for every column the ceiling run, the wall
// slice, then the floor run. Every pixel of the W×H surface is written once.
func (r *Renderer) Render(p Player, sink core.PixelSink) {
	for _, c := range r.Columns(p) {
		r.DrawColumn(c, sink)
	}
}

// DrawColumn writes one projected column. Columns without a hit are split
// evenly between ceiling and floor.
func (r *Renderer) DrawColumn(c Column, sink core.PixelSink) {
	h := r.cfg.ScreenH
	if c.X < 0 || c.X >= r.cfg.ScreenW {
		return
	}
	height := 0
	if c.OK {
		height = core.Clamp(c.Height, 0, h)
	}
	top := (h - height) / 2
	bottom := top + height

	for y := 0; y < top; y++ {
		sink.SetPixel(c.X, y, r.meta.Ceiling)
	}
	for y := top; y < bottom; y++ {
		sink.SetPixel(c.X, y, c.Color)
	}
	for y := bottom; y < h; y++ {
		sink.SetPixel(c.X, y, r.meta.Floor)
	}
}

// Project converts a corrected distance into a wall slice height clipped to
// screenH. Distances at or below epsilon map to the full screen height.
func Project(corrected, projection float64, screenH int) int {
	if corrected <= epsilon {
		return screenH
	}
	h := projection / corrected
	if h >= float64(screenH) {
		return screenH
	}
	return int(math.Round(h))
}

// Intensity is the unclamped distance falloff Base / d^Gamma.
// Distances at or below epsilon yield s.Max.
func Intensity(d float64, s config.ShadingConfig) float64 {
	if d <= epsilon {
		return s.Max
	}
	return s.Base / math.Pow(d, s.Gamma)
}

// Shade is Intensity clamped to [0, s.Max].
func Shade(d float64, s config.ShadingConfig) uint8 {
	return uint8(math.Round(core.ClampF(Intensity(d, s), 0, math.Min(s.Max, 255))))
}
