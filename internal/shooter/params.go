package shooter

import (
	"time"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
)

// Params holds the fixed dimensions, speeds and timer intervals of one game.
// World units are used throughout; the origin is the bottom-left of the viewport.
type Params struct {
	ViewportW float64
	ViewportH float64

	PlayerW      float64
	PlayerH      float64
	PlayerBottom float64

	ProjectileW    float64
	ProjectileH    float64
	ProjectileStep float64

	ObstacleW    float64
	ObstacleH    float64
	ObstacleStep float64

	ScrollStep float64

	UpdateInterval time.Duration
	ScrollInterval time.Duration
	SpawnInterval  time.Duration
	MaxCatchUp     int

	Sensitivity float64
	MaxReading  float64
}

// NewParams builds game parameters from configuration and a viewport size.
func NewParams(cfg config.ShooterConfig, viewportW, viewportH float64) Params {
	return Params{
		ViewportW:      viewportW,
		ViewportH:      viewportH,
		PlayerW:        cfg.Player.Width,
		PlayerH:        cfg.Player.Height,
		PlayerBottom:   cfg.Player.Bottom,
		ProjectileW:    cfg.Projectile.Width,
		ProjectileH:    cfg.Projectile.Height,
		ProjectileStep: cfg.Projectile.Step,
		ObstacleW:      cfg.Obstacle.Width,
		ObstacleH:      cfg.Obstacle.Height,
		ObstacleStep:   cfg.Obstacle.Step,
		ScrollStep:     cfg.World.ScrollStep,
		UpdateInterval: cfg.Timing.UpdateInterval(),
		ScrollInterval: cfg.Timing.ScrollInterval(),
		SpawnInterval:  cfg.Timing.SpawnInterval(),
		MaxCatchUp:     cfg.Timing.MaxCatchUp,
		Sensitivity:    cfg.Tilt.Sensitivity,
		MaxReading:     cfg.Tilt.MaxReading,
	}
}

// DefaultParams returns parameters from the built-in configuration.
func DefaultParams(viewportW, viewportH float64) Params {
	return NewParams(config.DefaultShooterConfig(), viewportW, viewportH)
}

// MaxPlayerX is the rightmost allowed player offset.
func (p Params) MaxPlayerX() float64 {
	return max(p.ViewportW-p.PlayerW, 0)
}

// MaxObstacleX is the rightmost allowed obstacle spawn offset.
func (p Params) MaxObstacleX() float64 {
	return max(p.ViewportW-p.ObstacleW, 0)
}

// CenterX returns the player offset that centers the sprite horizontally.
func (p Params) CenterX() float64 {
	return p.MaxPlayerX() / 2
}

// PlayerBox returns the player's bottom-anchored bounding box.
func (p Params) PlayerBox(x float64) core.Box {
	return core.NewBox(x, p.PlayerBottom, p.PlayerW, p.PlayerH)
}

// ProjectileBox returns a projectile's bounding box.
func (p Params) ProjectileBox(pr Projectile) core.Box {
	return core.NewBox(pr.X, pr.Y, p.ProjectileW, p.ProjectileH)
}

// ProjectileEdge returns the zero-height strip along a projectile's bottom
// edge. Hits are tested against this strip rather than the full sprite.
func (p Params) ProjectileEdge(pr Projectile) core.Box {
	return core.NewBox(pr.X, pr.Y, p.ProjectileW, 0)
}

// ObstacleBox returns an obstacle's bounding box.
func (p Params) ObstacleBox(o Obstacle) core.Box {
	return core.NewBox(o.X, o.Y, p.ObstacleW, p.ObstacleH)
}
