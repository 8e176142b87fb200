package core

// RuntimeConfig contains terminal-derived settings passed to the viewer.
type RuntimeConfig struct {
	ScreenW  int // Terminal width in characters
	ScreenH  int // Terminal height in characters
	TickRate int // Simulation ticks per second (default 30)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// PixelSize returns the framebuffer size for a terminal of the runtime's
// dimensions. Each character cell shows two vertically stacked pixels and one
// row is reserved for the status line.
func (c RuntimeConfig) PixelSize() (w, h int) {
	rows := c.ScreenH - 1
	if rows < 1 {
		rows = 1
	}
	w = c.ScreenW
	if w < 1 {
		w = 1
	}
	return w, rows * 2
}
