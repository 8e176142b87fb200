package raycast

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
)

func parseMap(t *testing.T, body ...string) *mapfile.Map {
	t.Helper()
	lines := []string{
		"NO ./north.xpm",
		"SO ./south.xpm",
		"WE ./west.xpm",
		"EA ./east.xpm",
		"F 10,20,30",
		"C 200,210,220",
		"",
	}
	m, err := mapfile.Parse("test.cub", append(lines, body...), mapfile.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return m
}

func smallRoom(t *testing.T) *mapfile.Map {
	return parseMap(t,
		"11111",
		"1   1",
		"1 E 1",
		"1   1",
		"11111",
	)
}

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(smallRoom(t))
	if p.Pos != core.V(160, 160) {
		t.Errorf("Pos = %v, expected (160, 160)", p.Pos)
	}
	if p.Angle != 0 {
		t.Errorf("Angle = %f, expected 0 for an east spawn", p.Angle)
	}

	p.Angle = -math.Pi / 2
	p.Normalize()
	if math.Abs(p.Angle-3*math.Pi/2) > 1e-12 {
		t.Errorf("Normalize() = %f, expected 3π/2", p.Angle)
	}
}

func TestCastSmallRoomEast(t *testing.T) {
	m := smallRoom(t)
	p := NewPlayer(m)

	hit, ok := Cast(Ray{Origin: p.Pos, Angle: p.Angle}, m.Grid)
	if !ok {
		t.Fatal("ray should hit the east wall")
	}
	if math.Abs(hit.Distance-96) > 1e-9 {
		t.Errorf("Distance = %f, expected 96 (1.5 tiles)", hit.Distance)
	}
	if hit.Row != 2 || hit.Col != 4 {
		t.Errorf("hit tile = (%d, %d), expected (2, 4)", hit.Row, hit.Col)
	}
	if hit.Face != mapfile.West {
		t.Errorf("Face = %v, expected W", hit.Face)
	}
}

func TestCastCardinal(t *testing.T) {
	m := smallRoom(t)
	origin := core.V(160, 160)

	tests := []struct {
		name     string
		angle    float64
		row, col int
		face     mapfile.Orientation
	}{
		{"east", 0, 2, 4, mapfile.West},
		{"south", math.Pi / 2, 4, 2, mapfile.North},
		{"west", math.Pi, 2, 0, mapfile.East},
		{"north", 3 * math.Pi / 2, 0, 2, mapfile.South},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := Cast(Ray{Origin: origin, Angle: tc.angle}, m.Grid)
			if !ok {
				t.Fatal("ray should hit a wall")
			}
			if math.Abs(hit.Distance-96) > 0.01 {
				t.Errorf("Distance = %f, expected 96", hit.Distance)
			}
			if hit.Row != tc.row || hit.Col != tc.col {
				t.Errorf("hit tile = (%d, %d), expected (%d, %d)", hit.Row, hit.Col, tc.row, tc.col)
			}
			if hit.Face != tc.face {
				t.Errorf("Face = %v, expected %v", hit.Face, tc.face)
			}
		})
	}
}

func TestCastMatchesAnalyticDistance(t *testing.T) {
	m := smallRoom(t)
	origin := core.V(160, 160)

	prev := 0.0
	for theta := 0.0; theta <= 0.7; theta += 0.05 {
		hit, ok := Cast(Ray{Origin: origin, Angle: theta}, m.Grid)
		if !ok {
			t.Fatalf("angle %f: ray should hit the east wall", theta)
		}
		want := 96 / math.Cos(theta)
		if math.Abs(hit.Distance-want) > 0.01 {
			t.Errorf("angle %f: Distance = %f, expected %f", theta, hit.Distance, want)
		}
		if hit.Distance < prev {
			t.Errorf("angle %f: distance %f decreased from %f", theta, hit.Distance, prev)
		}
		prev = hit.Distance
	}
}

func TestCastDistanceGrowsWithWallOffset(t *testing.T) {
	prev := 0.0
	for k := 1; k <= 6; k++ {
		inner := "1E" + strings.Repeat(" ", k-1) + "1"
		wall := strings.Repeat("1", len(inner))
		m := parseMap(t, wall, inner, wall)
		p := NewPlayer(m)

		hit, ok := Cast(Ray{Origin: p.Pos, Angle: 0}, m.Grid)
		if !ok {
			t.Fatalf("wall %d tiles away: expected a hit", k)
		}
		want := float64(k*64 - 32)
		if math.Abs(hit.Distance-want) > 1e-6 {
			t.Errorf("wall %d tiles away: Distance = %f, expected %f", k, hit.Distance, want)
		}
		if hit.Distance <= prev {
			t.Errorf("wall %d tiles away: distance %f not greater than %f", k, hit.Distance, prev)
		}
		prev = hit.Distance
	}
}

func TestCastThroughWallCorner(t *testing.T) {
	m := parseMap(t,
		"11111",
		"1   1",
		"1 E 1",
		"1   1",
		"1111 ",
	)

	// The diagonal passes exactly through the corner shared by (3, 4) and (4, 3).
	hit, ok := Cast(Ray{Origin: core.V(160.5, 160.5), Angle: math.Pi / 4}, m.Grid)
	if !ok {
		t.Fatal("diagonal ray slipped between two walls")
	}
	if !(hit.Row == 3 && hit.Col == 4) && !(hit.Row == 4 && hit.Col == 3) {
		t.Errorf("hit tile = (%d, %d), expected (3, 4) or (4, 3)", hit.Row, hit.Col)
	}
	want := 95.5 * math.Sqrt2
	if math.Abs(hit.Distance-want) > 1e-6 {
		t.Errorf("Distance = %f, expected %f", hit.Distance, want)
	}

	// Just off the corner the ray enters the side cell first.
	hit, ok = Cast(Ray{Origin: core.V(160.5, 160.2), Angle: math.Pi / 4}, m.Grid)
	if !ok {
		t.Fatal("ray next to the corner should hit")
	}
	if hit.Row != 3 || hit.Col != 4 || hit.Face != mapfile.West {
		t.Errorf("hit = (%d, %d) face %v, expected (3, 4) face W", hit.Row, hit.Col, hit.Face)
	}
	if math.Abs(hit.Point.X-256) > 1e-9 {
		t.Errorf("hit X = %f, expected the wall boundary 256", hit.Point.X)
	}
}

func TestCastFromInsideWall(t *testing.T) {
	m := smallRoom(t)
	hit, ok := Cast(Ray{Origin: core.V(32, 32), Angle: 0}, m.Grid)
	if !ok {
		t.Fatal("ray starting in a wall should report a hit")
	}
	if hit.Distance != 0 {
		t.Errorf("Distance = %f, expected 0", hit.Distance)
	}
	if hit.Row != 0 || hit.Col != 0 {
		t.Errorf("hit tile = (%d, %d), expected (0, 0)", hit.Row, hit.Col)
	}
}

func openGrid() *mapfile.Grid {
	e := mapfile.Cell{Kind: mapfile.Empty}
	return mapfile.NewGrid([][]mapfile.Cell{
		{e, e, e},
		{e, e, e},
		{e, e, e},
	}, 64)
}

func TestCastUnclosedGrid(t *testing.T) {
	if _, ok := Cast(Ray{Origin: core.V(96, 96), Angle: 0.3}, openGrid()); ok {
		t.Error("ray leaving an open grid should not report a hit")
	}
}

func TestIntensity(t *testing.T) {
	s := config.DefaultRenderConfig().Shading

	if got := Intensity(0, s); got != s.Max {
		t.Errorf("Intensity(0) = %f, expected sentinel %f", got, s.Max)
	}
	prev := math.Inf(1)
	for d := 1.0; d < 5000; d *= 1.5 {
		got := Intensity(d, s)
		if got >= prev {
			t.Errorf("Intensity(%f) = %f, not below %f", d, got, prev)
		}
		prev = got
	}

	if got := Shade(1, s); got != 255 {
		t.Errorf("Shade(1) = %d, expected clamp to 255", got)
	}
	if got := Shade(0, s); got != 255 {
		t.Errorf("Shade(0) = %d, expected 255", got)
	}
	want := uint8(math.Round(510 / math.Pow(96, 0.3)))
	if got := Shade(96, s); got != want {
		t.Errorf("Shade(96) = %d, expected %d", got, want)
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name      string
		corrected float64
		want      int
	}{
		{"zero distance", 0, 48},
		{"negative distance", -3, 48},
		{"too close", 10, 48},
		{"one and a half tiles", 96, 32},
		{"far", 3072, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Project(tc.corrected, 3072, 48); got != tc.want {
				t.Errorf("Project(%f) = %d, expected %d", tc.corrected, got, tc.want)
			}
		})
	}

	prev := 48
	for d := 1.0; d < 10000; d *= 1.3 {
		h := Project(d, 3072, 48)
		if h > prev {
			t.Errorf("Project(%f) = %d grew from %d", d, h, prev)
		}
		prev = h
	}
}

func newRenderer(t *testing.T, m *mapfile.Map, w, h, workers int) *Renderer {
	t.Helper()
	cfg := config.DefaultRenderConfig().WithScreen(w, h)
	cfg.Workers = workers
	r, err := NewRenderer(cfg, m)
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	return r
}

func TestColumnsFisheyeFlat(t *testing.T) {
	m := smallRoom(t)
	r := newRenderer(t, m, 20, 48, 1)

	for _, c := range r.Columns(NewPlayer(m)) {
		if !c.OK {
			t.Fatalf("column %d: expected a hit", c.X)
		}
		if c.Hit.Col != 4 {
			t.Fatalf("column %d: expected the east wall, hit col %d", c.X, c.Hit.Col)
		}
		if math.Abs(c.Corrected-96) > 0.01 {
			t.Errorf("column %d: corrected = %f, expected 96", c.X, c.Corrected)
		}
		if c.Height != 32 {
			t.Errorf("column %d: height = %d, expected 32", c.X, c.Height)
		}
	}
}

func TestColumnsAngles(t *testing.T) {
	m := smallRoom(t)
	r := newRenderer(t, m, 4, 10, 1)
	cols := r.Columns(NewPlayer(m))

	fov := math.Pi / 3
	for i, c := range cols {
		want := -fov/2 + (float64(i)+0.5)*fov/4
		if math.Abs(c.Angle-want) > 1e-12 {
			t.Errorf("column %d angle = %f, expected %f", i, c.Angle, want)
		}
	}
}

func TestColumnsParallelMatchesSequential(t *testing.T) {
	m := parseMap(t,
		"1111111111",
		"1    1   1",
		"1 11   1 1",
		"1    W   1",
		"1  1   111",
		"1111111111",
	)
	p := NewPlayer(m)
	p.Pos = p.Pos.Add(core.V(7, -5))
	p.Angle += 0.3

	seq := newRenderer(t, m, 73, 40, 1).Columns(p)
	for _, workers := range []int{2, 3, 8, 100} {
		par := newRenderer(t, m, 73, 40, workers).Columns(p)
		if len(par) != len(seq) {
			t.Fatalf("workers=%d: %d columns, expected %d", workers, len(par), len(seq))
		}
		for i := range seq {
			if par[i] != seq[i] {
				t.Errorf("workers=%d: column %d = %+v, expected %+v", workers, i, par[i], seq[i])
			}
		}
	}
}

// recordingSink counts writes per pixel.
type recordingSink struct {
	w, h   int
	writes map[[2]int]int
	last   map[[2]int]core.Color
	oob    int
}

func newRecordingSink(w, h int) *recordingSink {
	return &recordingSink{w: w, h: h, writes: map[[2]int]int{}, last: map[[2]int]core.Color{}}
}

func (s *recordingSink) SetPixel(x, y int, c core.Color) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		s.oob++
		return
	}
	s.writes[[2]int{x, y}]++
	s.last[[2]int{x, y}] = c
}

func TestRenderWritesEachPixelOnce(t *testing.T) {
	m := smallRoom(t)
	r := newRenderer(t, m, 30, 20, 1)
	sink := newRecordingSink(30, 20)

	p := NewPlayer(m)
	p.Pos = core.V(80, 160)
	r.Render(p, sink)

	if sink.oob != 0 {
		t.Errorf("%d out-of-bounds writes", sink.oob)
	}
	if len(sink.writes) != 30*20 {
		t.Errorf("%d pixels written, expected %d", len(sink.writes), 30*20)
	}
	for px, n := range sink.writes {
		if n != 1 {
			t.Errorf("pixel %v written %d times", px, n)
		}
	}
	// The center ray travels 176 pixels, leaving room above and below the slice.
	if c := sink.last[[2]int{15, 0}]; c != m.Meta.Ceiling {
		t.Errorf("top pixel = %v, expected ceiling %v", c, m.Meta.Ceiling)
	}
	if c := sink.last[[2]int{15, 19}]; c != m.Meta.Floor {
		t.Errorf("bottom pixel = %v, expected floor %v", c, m.Meta.Floor)
	}
}

func TestRenderIdempotent(t *testing.T) {
	m := smallRoom(t)
	r := newRenderer(t, m, 40, 24, 2)
	p := NewPlayer(m)

	a := core.NewScreen(40, 24)
	b := core.NewScreen(40, 24)
	b.Clear(core.ColorRed)
	r.Render(p, a)
	r.Render(p, b)
	r.Render(p, b)

	for y := 0; y < 24; y++ {
		for x := 0; x < 40; x++ {
			if a.Get(x, y) != b.Get(x, y) {
				t.Fatalf("pixel (%d, %d) differs: %v vs %v", x, y, a.Get(x, y), b.Get(x, y))
			}
		}
	}
}

func TestRenderSmallRoomSlice(t *testing.T) {
	m := smallRoom(t)
	r := newRenderer(t, m, 20, 48, 1)
	s := core.NewScreen(20, 48)
	r.Render(NewPlayer(m), s)

	// Wall height 32 centered in 48 rows: ceiling [0,8), wall [8,40), floor [40,48).
	x := 10
	if s.Get(x, 7) != m.Meta.Ceiling {
		t.Errorf("row 7 should be ceiling, got %v", s.Get(x, 7))
	}
	if s.Get(x, 40) != m.Meta.Floor {
		t.Errorf("row 40 should be floor, got %v", s.Get(x, 40))
	}
	want := r.wallColor(96, mapfile.West)
	for y := 8; y < 40; y++ {
		if got := s.Get(x, y); got != want {
			t.Fatalf("row %d = %v, expected wall %v", y, got, want)
		}
	}
}

func TestRenderUnclosedGridDrawsBackground(t *testing.T) {
	m := &mapfile.Map{
		Grid: openGrid(),
		Meta: mapfile.Metadata{Floor: core.ColorGreen, Ceiling: core.ColorBlue},
	}
	r := newRenderer(t, m, 10, 10, 1)
	s := core.NewScreen(10, 10)
	r.Render(Player{Pos: core.V(96, 96)}, s)

	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			want := core.ColorBlue
			if y >= 5 {
				want = core.ColorGreen
			}
			if s.Get(x, y) != want {
				t.Fatalf("pixel (%d, %d) = %v, expected %v", x, y, s.Get(x, y), want)
			}
		}
	}
}

func TestSideFactorDarkensEastWest(t *testing.T) {
	r := newRenderer(t, smallRoom(t), 10, 10, 1)
	ew := r.wallColor(96, mapfile.East).Luma()
	ns := r.wallColor(96, mapfile.North).Luma()
	if ew >= ns {
		t.Errorf("east/west luma %d should be below north/south luma %d", ew, ns)
	}
	if got, want := r.wallColor(96, mapfile.West), r.wallColor(96, mapfile.South).Scale(0.8); got != want {
		t.Errorf("west face = %v, expected south face scaled by side_factor %v", got, want)
	}
}

func TestNewRendererErrors(t *testing.T) {
	if _, err := NewRenderer(config.DefaultRenderConfig(), nil); err == nil {
		t.Error("nil map should fail")
	}
	cfg := config.DefaultRenderConfig()
	cfg.FOVDegrees = 0
	if _, err := NewRenderer(cfg, smallRoom(t)); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestSetScreen(t *testing.T) {
	m := smallRoom(t)
	r := newRenderer(t, m, 20, 48, 1)
	r.SetScreen(10, 24)

	cols := r.Columns(NewPlayer(m))
	if len(cols) != 10 {
		t.Fatalf("%d columns, expected 10", len(cols))
	}
	if cols[5].Height != 16 {
		t.Errorf("height = %d, expected 16 after resize", cols[5].Height)
	}
}

func TestMinimap(t *testing.T) {
	m := smallRoom(t)
	sink := newRecordingSink(100, 100)
	p := NewPlayer(m)
	Minimap(m.Grid, p, sink, 0, 0, 4)

	if sink.last[[2]int{0, 0}] != MinimapWall {
		t.Errorf("corner should be wall, got %v", sink.last[[2]int{0, 0}])
	}
	if sink.last[[2]int{4, 4}] != MinimapFloor {
		t.Errorf("(4, 4) should be floor, got %v", sink.last[[2]int{4, 4}])
	}
	if sink.last[[2]int{10, 10}] != MinimapPlayer {
		t.Errorf("player marker missing at (10, 10), got %v", sink.last[[2]int{10, 10}])
	}
	if sink.last[[2]int{14, 10}] != MinimapRay {
		t.Errorf("facing ray missing at (14, 10), got %v", sink.last[[2]int{14, 10}])
	}
	if sink.oob != 0 {
		t.Errorf("%d out-of-bounds writes", sink.oob)
	}
}

func TestMinimapOnScreenMatchesPixelSink(t *testing.T) {
	m := smallRoom(t)
	p := NewPlayer(m)
	sink := newRecordingSink(40, 40)
	scr := core.NewScreen(40, 40)

	Minimap(m.Grid, p, sink, 2, 3, 4)
	Minimap(m.Grid, p, scr, 2, 3, 4)

	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			want, ok := sink.last[[2]int{x, y}]
			if !ok {
				want = core.ColorBlack
			}
			if got := scr.Get(x, y); got != want {
				t.Fatalf("(%d, %d) = %v on screen, %v on pixel sink", x, y, got, want)
			}
		}
	}
}
