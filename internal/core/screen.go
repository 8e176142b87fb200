package core

import (
	"strings"
)

// PixelSink receives pixel writes for one frame.
// Implementations must ignore coordinates outside their surface.
type PixelSink interface {
	SetPixel(x, y int, c Color)
}

// RectFiller is a sink that can fill whole rectangles at once.
type RectFiller interface {
	PixelSink
	FillRect(r Rect, c Color)
}

// shadeRamp maps luminance to glyphs for plain-text snapshots, darkest first.
var shadeRamp = []rune(" .:-=+*#%@")

// Screen is a 2D RGBA pixel buffer the renderer draws into.
// It decouples rendering from the terminal: the engine only sets pixels while
// the platform decides how to present them.
type Screen struct {
	width  int
	height int
	pixels [][]Color
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear(ColorBlack)
	return s
}

// allocate creates the underlying pixel storage.
func (s *Screen) allocate() {
	s.pixels = make([][]Color, s.height)
	for y := range s.pixels {
		s.pixels[y] = make([]Color, s.width)
	}
}

// Width returns the screen width in pixels.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in pixels.
func (s *Screen) Height() int {
	return s.height
}

// Bounds returns the drawable area.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldPixels := s.pixels
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear(ColorBlack)

	copyW := Min(oldW, width)
	copyH := Min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.pixels[y][:copyW], oldPixels[y][:copyW])
	}
}

// Clear fills the entire screen with one color.
func (s *Screen) Clear(c Color) {
	for y := range s.pixels {
		for x := range s.pixels[y] {
			s.pixels[y][x] = c
		}
	}
}

// SetPixel places a color at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) SetPixel(x, y int, c Color) {
	if !s.Bounds().Contains(x, y) {
		return
	}
	s.pixels[y][x] = c
}

// Get returns the color at the given position.
// Returns black for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) Color {
	if !s.Bounds().Contains(x, y) {
		return ColorBlack
	}
	return s.pixels[y][x]
}

// FillRect fills a rectangular area with the given color, clipped to the screen.
func (s *Screen) FillRect(r Rect, c Color) {
	x0, y0 := Max(r.X, 0), Max(r.Y, 0)
	x1, y1 := Min(r.Right(), s.width), Min(r.Bottom(), s.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.pixels[y][x] = c
		}
	}
}

// Glyph returns the shade rune used for a color in text snapshots.
func Glyph(c Color) rune {
	idx := int(c.Luma()) * len(shadeRamp) / 256
	return shadeRamp[Clamp(idx, 0, len(shadeRamp)-1)]
}

// String converts the buffer to a plain-text snapshot, one glyph per pixel.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as snapshot glyphs.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	runes := make([]rune, s.width)
	for x, c := range s.pixels[y] {
		runes[x] = Glyph(c)
	}
	return string(runes)
}
