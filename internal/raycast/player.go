// Package raycast casts rays through a tile grid and projects the hits into
// screen columns.
package raycast

import (
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
)

// Player is the camera: a pixel-space position and a facing angle.
// Angle 0 looks east and angles grow clockwise on screen (+Y is down).
type Player struct {
	Pos   core.Vec2
	Angle float64
}

// NewPlayer places a player at the map's spawn tile center.
func NewPlayer(m *mapfile.Map) Player {
	pos, angle := m.Spawn.Pose(m.Grid)
	return Player{Pos: pos, Angle: angle}
}

// Normalize maps the angle into [0, 2π).
func (p *Player) Normalize() {
	p.Angle = core.NormalizeAngle(p.Angle)
}

// Dir returns the unit facing vector.
func (p Player) Dir() core.Vec2 {
	return core.Dir(p.Angle)
}
