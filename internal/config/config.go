// Package config provides YAML-based renderer configuration loading and
// validation for the raycaster.
package config

import (
	"fmt"
	"math"
)

// RenderConfig contains every tunable of the map parser, ray caster and projector.
type RenderConfig struct {
	TileSize   int            `yaml:"tile_size"`
	FOVDegrees float64        `yaml:"fov_degrees"`
	WallHeight float64        `yaml:"wall_height"` // 0 = derived from tile size and screen height
	Workers    int            `yaml:"workers"`     // columns are cast on this many goroutines
	Shading    ShadingConfig  `yaml:"shading"`
	Movement   MovementConfig `yaml:"movement"`
	Minimap    MinimapConfig  `yaml:"minimap"`

	// Surface size in pixels. Filled at runtime from the terminal or flags.
	ScreenW int `yaml:"-"`
	ScreenH int `yaml:"-"`
}

// ShadingConfig defines the distance falloff: intensity = Base / distance^Gamma.
type ShadingConfig struct {
	Base       float64 `yaml:"base"`
	Gamma      float64 `yaml:"gamma"`
	Max        float64 `yaml:"max"`         // sentinel intensity for zero distance, also the clamp ceiling
	SideFactor float64 `yaml:"side_factor"` // brightness multiplier for east/west faces
}

// MovementConfig defines per-tick player motion.
type MovementConfig struct {
	Step        float64 `yaml:"step"`         // pixels per tick
	TurnDegrees float64 `yaml:"turn_degrees"` // degrees per tick
	Margin      float64 `yaml:"margin"`       // minimum distance kept from walls
}

// MinimapConfig defines the top-down overlay.
type MinimapConfig struct {
	Enabled bool `yaml:"enabled"`
	Scale   int  `yaml:"scale"` // pixels per tile
}

// ValidationError contains details about an invalid configuration.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// DefaultRenderConfig returns the hardcoded defaults, matching defaults/render.yaml.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		FOVDegrees: 60,
		WallHeight: 0,
		Workers:    1,
		Shading: ShadingConfig{
			Base:       510,
			Gamma:      0.3,
			Max:        255,
			SideFactor: 0.8,
		},
		Movement: MovementConfig{
			Step:        8,
			TurnDegrees: 5,
			Margin:      8,
		},
		Minimap: MinimapConfig{
			Enabled: false,
			Scale:   4,
		},
		ScreenW: 80,
		ScreenH: 48,
	}
}

// WithScreen returns a copy of the config bound to a surface size.
func (c RenderConfig) WithScreen(w, h int) RenderConfig {
	c.ScreenW = w
	c.ScreenH = h
	return c
}

// FOV returns the field of view in radians.
func (c RenderConfig) FOV() float64 {
	return c.FOVDegrees * math.Pi / 180
}

// TurnStep returns the per-tick turn in radians.
func (c RenderConfig) TurnStep() float64 {
	return c.Movement.TurnDegrees * math.Pi / 180
}

// ProjectionConstant returns the numerator of height = constant / distance.
func (c RenderConfig) ProjectionConstant() float64 {
	if c.WallHeight > 0 {
		return c.WallHeight
	}
	return float64(c.TileSize * c.ScreenH)
}

// Validate checks that every value is usable by the renderer.
func (c RenderConfig) Validate() error {
	switch {
	case c.TileSize <= 0:
		return ValidationError{Code: "TILE_SIZE", Message: fmt.Sprintf("tile_size must be positive, got %d", c.TileSize)}
	case c.FOVDegrees <= 0 || c.FOVDegrees >= 180:
		return ValidationError{Code: "FOV", Message: fmt.Sprintf("fov_degrees must be in (0, 180), got %g", c.FOVDegrees)}
	case c.WallHeight < 0:
		return ValidationError{Code: "WALL_HEIGHT", Message: fmt.Sprintf("wall_height must not be negative, got %g", c.WallHeight)}
	case c.Workers < 1:
		return ValidationError{Code: "WORKERS", Message: fmt.Sprintf("workers must be at least 1, got %d", c.Workers)}
	case c.Shading.Base <= 0 || c.Shading.Gamma <= 0:
		return ValidationError{Code: "SHADING", Message: "shading base and gamma must be positive"}
	case c.Shading.Max <= 0 || c.Shading.Max > 255:
		return ValidationError{Code: "SHADING", Message: fmt.Sprintf("shading max must be in (0, 255], got %g", c.Shading.Max)}
	case c.Shading.SideFactor < 0 || c.Shading.SideFactor > 1:
		return ValidationError{Code: "SHADING", Message: fmt.Sprintf("side_factor must be in [0, 1], got %g", c.Shading.SideFactor)}
	case c.Movement.Step < 0 || c.Movement.TurnDegrees < 0 || c.Movement.Margin < 0:
		return ValidationError{Code: "MOVEMENT", Message: "movement values must not be negative"}
	case c.Movement.Margin*2 >= float64(c.TileSize):
		return ValidationError{Code: "MOVEMENT", Message: "movement margin must be less than half a tile"}
	case c.Minimap.Scale < 1:
		return ValidationError{Code: "MINIMAP", Message: fmt.Sprintf("minimap scale must be at least 1, got %d", c.Minimap.Scale)}
	case c.ScreenW < 1 || c.ScreenH < 1:
		return ValidationError{Code: "SCREEN", Message: fmt.Sprintf("screen must be at least 1x1, got %dx%d", c.ScreenW, c.ScreenH)}
	}
	return nil
}
