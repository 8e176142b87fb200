package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 48)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 48 {
		t.Errorf("Height() = %d, expected 48", s.Height())
	}

	// Check that it's initialized to black
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ColorBlack {
				t.Fatalf("New screen should be black, got %v at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetPixel(5, 5, ColorRed)
	if s.Get(5, 5) != ColorRed {
		t.Errorf("Get(5, 5) = %v, expected red", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.SetPixel(-1, 0, ColorWhite)
	s.SetPixel(100, 0, ColorWhite)
	s.SetPixel(0, -1, ColorWhite)
	s.SetPixel(0, 100, ColorWhite)

	if s.Get(-1, 0) != ColorBlack {
		t.Error("Out of bounds Get should return black")
	}
	if s.Get(100, 0) != ColorBlack {
		t.Error("Out of bounds Get should return black")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(NewRect(0, 0, 10, 10), ColorWhite)

	s.Clear(ColorBlue)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if s.Get(x, y) != ColorBlue {
				t.Errorf("After Clear, expected blue at (%d, %d), got %v", x, y, s.Get(x, y))
			}
		}
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(NewRect(2, 2, 3, 3), ColorGreen)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != ColorGreen {
				t.Errorf("FillRect: expected green at (%d, %d), got %v", x, y, s.Get(x, y))
			}
		}
	}

	if s.Get(1, 1) != ColorBlack || s.Get(5, 5) != ColorBlack {
		t.Error("FillRect should not affect outside area")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetPixel(0, 0, ColorWhite)

	rows := strings.Split(s.String(), "\n")
	if len(rows) != 2 {
		t.Fatalf("String() has %d rows, expected 2", len(rows))
	}
	if rows[0] != "@  " {
		t.Errorf("row 0 = %q, expected %q", rows[0], "@  ")
	}
	if rows[1] != "   " {
		t.Errorf("row 1 = %q, expected blanks", rows[1])
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetPixel(1, 1, ColorWhite)

	s.Resize(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Errorf("After resize, dimensions should be 4x3, got %dx%d", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ColorWhite {
		t.Error("Content should be preserved after shrinking")
	}

	s.Resize(12, 12)
	if s.Get(1, 1) != ColorWhite {
		t.Error("Content should be preserved after enlarging")
	}
	if s.Get(11, 11) != ColorBlack {
		t.Error("New area should be black")
	}
}

func TestGlyphOrdering(t *testing.T) {
	prev := -1
	for v := 0; v < 256; v += 15 {
		g := Glyph(Gray(uint8(v)))
		idx := strings.IndexRune(string(shadeRamp), g)
		if idx < prev {
			t.Errorf("Glyph for luma %d went darker (%q)", v, g)
		}
		prev = idx
	}
	if Glyph(ColorBlack) != ' ' {
		t.Errorf("black should render as space, got %q", Glyph(ColorBlack))
	}
}

func TestRuntimePixelSize(t *testing.T) {
	w, h := RuntimeConfig{ScreenW: 80, ScreenH: 25}.PixelSize()
	if w != 80 || h != 48 {
		t.Errorf("PixelSize() = %dx%d, expected 80x48", w, h)
	}

	w, h = RuntimeConfig{}.PixelSize()
	if w != 1 || h != 2 {
		t.Errorf("PixelSize() for zero config = %dx%d, expected 1x2", w, h)
	}
}

func TestScreenFillRectClipped(t *testing.T) {
	s := NewScreen(4, 3)
	if s.Bounds() != NewRect(0, 0, 4, 3) {
		t.Fatalf("Bounds() = %+v, expected 4x3 at origin", s.Bounds())
	}

	s.FillRect(NewRect(-2, -2, 4, 10), ColorRed)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := ColorBlack
			if x < 2 {
				want = ColorRed
			}
			if s.Get(x, y) != want {
				t.Errorf("(%d, %d) = %v, expected %v", x, y, s.Get(x, y), want)
			}
		}
	}

	// Entirely off screen
	s.FillRect(NewRect(10, 10, 5, 5), ColorGreen)
	if s.Get(3, 2) != ColorBlack {
		t.Error("off-screen rect should not draw")
	}
}
