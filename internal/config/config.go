// Package config provides YAML-based game configuration loading for Road Rush.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ShooterConfig contains all configuration for the tilt shooter.
// Sizes and steps are in world units; intervals are in milliseconds.
type ShooterConfig struct {
	World      ShooterWorld      `yaml:"world"`
	Player     ShooterPlayer     `yaml:"player"`
	Projectile ShooterProjectile `yaml:"projectile"`
	Obstacle   ShooterObstacle   `yaml:"obstacle"`
	Timing     ShooterTiming     `yaml:"timing"`
	Tilt       ShooterTilt       `yaml:"tilt"`
	Bridge     ShooterBridge     `yaml:"bridge"`
}

// ShooterWorld maps terminal cells to world units.
// The viewport is derived from the terminal size times these factors.
type ShooterWorld struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	ScrollStep float64 `yaml:"scroll_step"`
}

// ShooterPlayer defines the player sprite.
type ShooterPlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Bottom float64 `yaml:"bottom"` // distance from the lower viewport edge
}

// ShooterProjectile defines projectile size and per-tick travel.
type ShooterProjectile struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Step   float64 `yaml:"step"`
}

// ShooterObstacle defines obstacle size and per-tick travel.
type ShooterObstacle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Step   float64 `yaml:"step"`
}

// ShooterTiming holds the fixed timer intervals.
type ShooterTiming struct {
	UpdateMS   int `yaml:"update_ms"`
	ScrollMS   int `yaml:"scroll_ms"`
	SpawnMS    int `yaml:"spawn_ms"`
	MaxCatchUp int `yaml:"max_catch_up"` // max sub-steps per timer per platform tick
}

// ShooterTilt configures how sensor readings move the player.
type ShooterTilt struct {
	Sensitivity  float64 `yaml:"sensitivity"`
	MaxReading   float64 `yaml:"max_reading"`   // larger magnitudes are ignored
	Platform     string  `yaml:"platform"`      // default sign convention: android or ios
	StaleAfterMS int     `yaml:"stale_after_ms"` // bridge samples older than this are dropped
	KeyHoldMS    int     `yaml:"key_hold_ms"`    // how long a key press keeps tilting
}

// ShooterBridge configures the phone WebSocket bridge.
type ShooterBridge struct {
	Address  string `yaml:"address"` // empty disables the bridge
	SampleHz int    `yaml:"sample_hz"`
}

// UpdateInterval returns the projectile/obstacle update interval.
func (t ShooterTiming) UpdateInterval() time.Duration {
	return time.Duration(t.UpdateMS) * time.Millisecond
}

// ScrollInterval returns the background scroll interval.
func (t ShooterTiming) ScrollInterval() time.Duration {
	return time.Duration(t.ScrollMS) * time.Millisecond
}

// SpawnInterval returns the obstacle spawn interval.
func (t ShooterTiming) SpawnInterval() time.Duration {
	return time.Duration(t.SpawnMS) * time.Millisecond
}

// StaleAfter returns the bridge sample freshness window.
func (t ShooterTilt) StaleAfter() time.Duration {
	return time.Duration(t.StaleAfterMS) * time.Millisecond
}

// KeyHold returns how long one key press keeps the emulated tilt active.
func (t ShooterTilt) KeyHold() time.Duration {
	return time.Duration(t.KeyHoldMS) * time.Millisecond
}

// Validate checks that sizes, steps and intervals are usable.
func (c ShooterConfig) Validate() error {
	var errs []error

	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("world.cell_width", c.World.CellWidth)
	positive("world.cell_height", c.World.CellHeight)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("projectile.width", c.Projectile.Width)
	positive("projectile.height", c.Projectile.Height)
	positive("projectile.step", c.Projectile.Step)
	positive("obstacle.width", c.Obstacle.Width)
	positive("obstacle.height", c.Obstacle.Height)
	positive("obstacle.step", c.Obstacle.Step)
	positive("timing.update_ms", float64(c.Timing.UpdateMS))
	positive("timing.scroll_ms", float64(c.Timing.ScrollMS))
	positive("timing.spawn_ms", float64(c.Timing.SpawnMS))
	positive("timing.max_catch_up", float64(c.Timing.MaxCatchUp))
	positive("tilt.max_reading", c.Tilt.MaxReading)

	if c.Player.Bottom < 0 {
		errs = append(errs, fmt.Errorf("player.bottom must not be negative, got %v", c.Player.Bottom))
	}
	if c.World.ScrollStep < 0 {
		errs = append(errs, fmt.Errorf("world.scroll_step must not be negative, got %v", c.World.ScrollStep))
	}
	switch c.Tilt.Platform {
	case "android", "ios":
	default:
		errs = append(errs, fmt.Errorf("tilt.platform must be android or ios, got %q", c.Tilt.Platform))
	}

	return errors.Join(errs...)
}
