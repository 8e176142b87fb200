package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// halfBlock shows the top pixel as foreground and the bottom one as background.
const halfBlock = "▀"

type cellPair struct {
	top, bottom core.Color
}

// styleCache memoizes one lipgloss style per foreground/background pair.
type styleCache struct {
	mu     sync.Mutex
	styles map[cellPair]lipgloss.Style
}

var styles = &styleCache{styles: make(map[cellPair]lipgloss.Style)}

func (c *styleCache) get(p cellPair) lipgloss.Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.styles[p]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(Hex(p.top))).
		Background(lipgloss.Color(Hex(p.bottom)))
	c.styles[p] = st
	return st
}

// Hex returns the #rrggbb form of a pixel color.
func Hex(c core.Color) string {
	return toColorful(c).Hex()
}

func toColorful(c core.Color) colorful.Color {
	r, g, b, _ := c.RGBA()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) core.Color {
	r, g, b := c.Clamped().RGB255()
	return core.RGB(r, g, b)
}

// Blend mixes a toward b in Lab space; t=0 keeps a, t=1 yields b.
func Blend(a, b core.Color, t float64) core.Color {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return fromColorful(toColorful(a).BlendLab(toColorful(b), t))
}

// Dim blends every pixel of the screen toward black.
func Dim(s *core.Screen, t float64) {
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			s.SetPixel(x, y, Blend(s.Get(x, y), core.ColorBlack, t))
		}
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Two pixel rows share one terminal row through the upper half block.
// Adjacent cells with the same colors are grouped to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	rows := (s.Height() + 1) / 2
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*rows*4 + rows)

	for ty := 0; ty < rows; ty++ {
		if ty > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := cellPair{s.Get(x, 2*ty), s.Get(x, 2*ty+1)}
			n := 0
			for x < s.Width() && (cellPair{s.Get(x, 2*ty), s.Get(x, 2*ty+1)}) == start {
				n++
				x++
			}
			sb.WriteString(styles.get(start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}
