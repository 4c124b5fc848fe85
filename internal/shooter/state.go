// Package shooter implements Road Rush, a tilt-steered vertical shooter.
//
// The game is a set of pure functions over State. Each takes the current
// state and returns the next one, so any scheduler (a Bubble Tea tick, a
// test, a server loop) can drive it through Advance.
package shooter

import "time"

// Phase is the coarse game status.
type Phase int

const (
	Running Phase = iota
	GameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case Running:
		return "Running"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Projectile is a shot travelling up the road.
type Projectile struct {
	ID uint64
	X  float64 // fixed at creation
	Y  float64 // bottom edge, grows every update tick
}

// Obstacle is an oncoming vehicle.
type Obstacle struct {
	ID uint64
	X  float64 // chosen at spawn
	Y  float64 // bottom edge, shrinks every update tick
}

// State is the complete game state. The zero value is not ready for use;
// call NewState.
type State struct {
	PlayerX     float64
	Projectiles []Projectile
	Obstacles   []Obstacle
	Phase       Phase
	Paused      bool
	Scroll      float64 // background offset in [0, ViewportH)
	Score       int     // obstacles destroyed
	NextID      uint64  // shared by projectiles and obstacles

	// Time banked toward the next firing of each fixed-interval timer.
	UpdateClock time.Duration
	ScrollClock time.Duration
	SpawnClock  time.Duration
}

// NewState returns a running game with the player centered and an empty road.
func NewState(p Params) State {
	return State{
		PlayerX: p.CenterX(),
		Phase:   Running,
		NextID:  1,
	}
}

// Running reports whether collisions, spawning and input are active.
func (s State) Running() bool {
	return s.Phase == Running && !s.Paused
}

// Restart clears the road, centers the player and resumes play.
// The ID counter and background offset carry over. Restart is idempotent.
func Restart(s State, p Params) State {
	next := NewState(p)
	next.NextID = max(s.NextID, 1)
	next.Scroll = s.Scroll
	return next
}

// TogglePause flips the paused flag while the game is running.
// A finished game cannot be paused.
func TogglePause(s State) State {
	if s.Phase != Running {
		return s
	}
	s.Paused = !s.Paused
	return s
}
