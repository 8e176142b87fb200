package core

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"in range", math.Pi, math.Pi},
		{"full turn", Tau, 0},
		{"negative quarter", -math.Pi / 2, 3 * math.Pi / 2},
		{"three pi", 3 * math.Pi, math.Pi},
		{"many turns", 10*Tau + 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeAngle(tc.in)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("NormalizeAngle(%f) = %f, expected %f", tc.in, got, tc.expected)
			}
			if got < 0 || got >= Tau {
				t.Errorf("NormalizeAngle(%f) = %f is outside [0, 2π)", tc.in, got)
			}
		})
	}
}

func TestVec2(t *testing.T) {
	a := V(3, 4)
	if a.Len() != 5 {
		t.Errorf("Len() = %f, expected 5", a.Len())
	}
	if d := V(1, 1).Dist(V(4, 5)); d != 5 {
		t.Errorf("Dist() = %f, expected 5", d)
	}
	if got := a.Add(V(1, 1)).Sub(V(2, 2)).Scale(2); got != V(4, 6) {
		t.Errorf("Add/Sub/Scale = %v, expected (4, 6)", got)
	}

	east := Dir(0)
	if math.Abs(east.X-1) > 1e-12 || math.Abs(east.Y) > 1e-12 {
		t.Errorf("Dir(0) = %v, expected (1, 0)", east)
	}
	south := Dir(math.Pi / 2)
	if math.Abs(south.X) > 1e-12 || math.Abs(south.Y-1) > 1e-12 {
		t.Errorf("Dir(π/2) = %v, expected (0, 1)", south)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestColorChannels(t *testing.T) {
	c := RGB(10, 20, 30)
	r, g, b, a := c.RGBA()
	if r != 10 || g != 20 || b != 30 || a != 0xFF {
		t.Errorf("RGBA() = %d,%d,%d,%d, expected 10,20,30,255", r, g, b, a)
	}
	if c.String() != "#0a141e" {
		t.Errorf("String() = %q, expected #0a141e", c.String())
	}

	half := Gray(200).Scale(0.5)
	if half != Gray(100) {
		t.Errorf("Scale(0.5) = %v, expected %v", half, Gray(100))
	}
	if ColorWhite.Luma() != 255 || ColorBlack.Luma() != 0 {
		t.Error("Luma of white/black should be 255/0")
	}
}
