package config

import (
	_ "embed"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultShooterConfig returns the built-in configuration.
// It mirrors defaults/shooter.yaml and is used when the embedded file cannot be parsed.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		World: ShooterWorld{
			CellWidth:  10,
			CellHeight: 20,
			ScrollStep: 5,
		},
		Player: ShooterPlayer{
			Width:  80,
			Height: 80,
			Bottom: 20,
		},
		Projectile: ShooterProjectile{
			Width:  10,
			Height: 20,
			Step:   5,
		},
		Obstacle: ShooterObstacle{
			Width:  70,
			Height: 70,
			Step:   5,
		},
		Timing: ShooterTiming{
			UpdateMS:   15,
			ScrollMS:   15,
			SpawnMS:    2000,
			MaxCatchUp: 8,
		},
		Tilt: ShooterTilt{
			Sensitivity:  30,
			MaxReading:   2.0,
			Platform:     "android",
			StaleAfterMS: 250,
			KeyHoldMS:    120,
		},
		Bridge: ShooterBridge{
			Address:  "",
			SampleHz: 60,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultShooterYAML
}
