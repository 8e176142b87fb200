package core

import "fmt"

// Color is a packed 0xRRGGBBAA pixel value.
type Color uint32

// Frequently used colors.
const (
	ColorBlack Color = 0x000000FF
	ColorWhite Color = 0xFFFFFFFF
	ColorRed   Color = 0xFF0000FF
	ColorGreen Color = 0x00FF00FF
	ColorBlue  Color = 0x0000FFFF
)

// RGB builds an opaque color from its channels.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | 0xFF)
}

// Gray builds an opaque gray with all channels set to v.
func Gray(v uint8) Color {
	return RGB(v, v, v)
}

// RGBA unpacks the channels.
func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Scale multiplies the color channels by k (clamped to [0, 1]), keeping alpha.
func (c Color) Scale(k float64) Color {
	k = ClampF(k, 0, 1)
	r, g, b, a := c.RGBA()
	return Color(uint32(float64(r)*k)<<24 | uint32(float64(g)*k)<<16 | uint32(float64(b)*k)<<8 | uint32(a))
}

// Luma returns the perceived brightness in [0, 255].
func (c Color) Luma() uint8 {
	r, g, b, _ := c.RGBA()
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000)
}

// String returns the color as #rrggbb.
func (c Color) String() string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
