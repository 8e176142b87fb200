// Package session ties a parsed map, the player and the renderer together
// and advances them one input frame at a time.
package session

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

// Session is one running view of a map.
type Session struct {
	Map      *mapfile.Map
	Player   raycast.Player
	Renderer *raycast.Renderer

	cfg     config.RenderConfig
	minimap bool
	paused  bool
	ticks   int
}

// New creates a session with the player at the map's spawn.
func New(m *mapfile.Map, cfg config.RenderConfig) (*Session, error) {
	r, err := raycast.NewRenderer(cfg, m)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &Session{
		Map:      m,
		Player:   raycast.NewPlayer(m),
		Renderer: r,
		cfg:      r.Config(),
		minimap:  cfg.Minimap.Enabled,
	}, nil
}

// Step applies one frame of input. Turning happens before movement so a
// frame holding both moves along the new heading.
func (s *Session) Step(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if in.Has(core.ActionToggleMap) {
		s.minimap = !s.minimap
	}
	if s.paused {
		return
	}
	s.ticks++

	turn := s.cfg.TurnStep()
	if in.Has(core.ActionTurnLeft) {
		s.Player.Angle -= turn
	}
	if in.Has(core.ActionTurnRight) {
		s.Player.Angle += turn
	}
	s.Player.Normalize()

	var move core.Vec2
	dir := s.Player.Dir()
	side := core.Dir(s.Player.Angle + math.Pi/2)
	if in.Has(core.ActionForward) {
		move = move.Add(dir)
	}
	if in.Has(core.ActionBackward) {
		move = move.Sub(dir)
	}
	if in.Has(core.ActionStrafeRight) {
		move = move.Add(side)
	}
	if in.Has(core.ActionStrafeLeft) {
		move = move.Sub(side)
	}
	if l := move.Len(); l > 0 {
		s.Move(move.Scale(s.cfg.Movement.Step / l))
	}
}

// Move displaces the player by delta, one axis at a time so the player
// slides along walls. An axis is rejected if the player would come closer
// than the movement margin to a solid cell. Long moves are split into
// sub-steps of at most half a tile so no wall can be stepped over.
func (s *Session) Move(delta core.Vec2) {
	limit := float64(s.Map.Grid.TileSize()) / 2
	n := int(math.Ceil(delta.Len() / limit))
	if n < 1 {
		n = 1
	}
	step := delta.Scale(1 / float64(n))
	for i := 0; i < n; i++ {
		s.slide(step)
	}
}

func (s *Session) slide(delta core.Vec2) {
	next := s.Player.Pos.Add(core.V(delta.X, 0))
	if !s.blocked(next) {
		s.Player.Pos = next
	}
	next = s.Player.Pos.Add(core.V(0, delta.Y))
	if !s.blocked(next) {
		s.Player.Pos = next
	}
}

func (s *Session) blocked(p core.Vec2) bool {
	m := s.cfg.Movement.Margin
	g := s.Map.Grid
	return g.SolidAt(core.V(p.X-m, p.Y-m)) ||
		g.SolidAt(core.V(p.X+m, p.Y-m)) ||
		g.SolidAt(core.V(p.X-m, p.Y+m)) ||
		g.SolidAt(core.V(p.X+m, p.Y+m))
}

// Render draws the current frame, plus the minimap when it is shown.
func (s *Session) Render(scr *core.Screen) {
	if scr.Width() != s.cfg.ScreenW || scr.Height() != s.cfg.ScreenH {
		s.Resize(scr.Width(), scr.Height())
	}
	s.Renderer.Render(s.Player, scr)
	if s.minimap {
		s.Renderer.DrawMinimap(s.Player, scr)
	}
}

// Resize rebinds the renderer to a new surface size.
func (s *Session) Resize(w, h int) {
	s.Renderer.SetScreen(w, h)
	s.cfg = s.Renderer.Config()
}

// Reset returns the player to the spawn pose.
func (s *Session) Reset() {
	s.Player = raycast.NewPlayer(s.Map)
}

// Paused reports whether movement is suspended.
func (s *Session) Paused() bool { return s.paused }

// MinimapShown reports whether the minimap overlay is drawn.
func (s *Session) MinimapShown() bool { return s.minimap }

// Ticks returns the number of unpaused steps taken.
func (s *Session) Ticks() int { return s.ticks }

// Config returns the effective render configuration.
func (s *Session) Config() config.RenderConfig { return s.cfg }
