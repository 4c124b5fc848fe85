package shooter

import (
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/roadrush/internal/core"
)

// Update runs one fixed update tick: everything moves, then collisions are
// resolved against the new positions, then off-screen entities are culled.
// It does nothing unless the game is running.
func Update(s State, p Params) State {
	if !s.Running() {
		return s
	}

	obstacles := make([]Obstacle, len(s.Obstacles))
	for i, o := range s.Obstacles {
		o.Y -= p.ObstacleStep
		obstacles[i] = o
	}

	projectiles := make([]Projectile, len(s.Projectiles))
	for i, pr := range s.Projectiles {
		pr.Y += p.ProjectileStep
		projectiles[i] = pr
	}

	// Player collision: every obstacle touching the player is removed and
	// the game ends. No projectile checks run in that tick.
	player := p.PlayerBox(s.PlayerX)
	obstacles = slices.DeleteFunc(obstacles, func(o Obstacle) bool {
		return player.Overlaps(p.ObstacleBox(o))
	})
	if len(obstacles) < len(s.Obstacles) {
		s.Phase = GameOver
	}

	spent := make([]bool, len(projectiles))
	keptObstacles := obstacles[:0]
	for _, o := range obstacles {
		if s.Phase == Running && hitByProjectile(o, projectiles, spent, p) {
			s.Score++
			continue
		}
		if o.Y+p.ObstacleH <= 0 {
			continue
		}
		keptObstacles = append(keptObstacles, o)
	}

	keptProjectiles := projectiles[:0]
	for i, pr := range projectiles {
		if spent[i] || pr.Y >= p.ViewportH {
			continue
		}
		keptProjectiles = append(keptProjectiles, pr)
	}

	s.Obstacles = keptObstacles
	s.Projectiles = keptProjectiles
	return s
}

// hitByProjectile marks the first live projectile whose leading edge is
// inside o as spent. A projectile destroys at most one obstacle.
func hitByProjectile(o Obstacle, projectiles []Projectile, spent []bool, p Params) bool {
	box := p.ObstacleBox(o)
	for i, pr := range projectiles {
		if spent[i] {
			continue
		}
		if p.ProjectileEdge(pr).Overlaps(box) {
			spent[i] = true
			return true
		}
	}
	return false
}

// Scroll advances the background offset by one step, wrapping at the viewport height.
func Scroll(s State, p Params) State {
	if p.ViewportH <= 0 {
		return s
	}
	s.Scroll = math.Mod(s.Scroll+p.ScrollStep, p.ViewportH)
	return s
}

// Layers returns the origins of the two background layers. The second
// layer sits one viewport height after the first so together they always
// cover the whole viewport.
func Layers(offset, viewportH float64) [2]float64 {
	return [2]float64{offset - viewportH, offset}
}

// ApplyTilt moves the player by a normalized tilt reading scaled by the
// sensitivity. Positive readings steer right. Readings that are NaN,
// infinite or larger than MaxReading are ignored, as is any sample taken
// while the game is not running.
func ApplyTilt(s State, reading float64, p Params) State {
	if !s.Running() || !validReading(reading, p.MaxReading) {
		return s
	}
	s.PlayerX = core.ClampF(s.PlayerX+reading*p.Sensitivity, 0, p.MaxPlayerX())
	return s
}

func validReading(r, limit float64) bool {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return false
	}
	return math.Abs(r) <= limit
}

// Fit adapts s to a new viewport. The player is re-clamped, the scroll
// offset wraps, and entities that no longer fit horizontally or sit above
// the new far edge are dropped. It applies in every phase, so a finished
// game shows no stale entities either.
func Fit(s State, p Params) State {
	s.PlayerX = core.ClampF(s.PlayerX, 0, p.MaxPlayerX())
	if p.ViewportH > 0 {
		s.Scroll = math.Mod(s.Scroll, p.ViewportH)
	}
	s.Obstacles = slices.DeleteFunc(slices.Clone(s.Obstacles), func(o Obstacle) bool {
		return o.X+p.ObstacleW > p.ViewportW || o.Y > p.ViewportH
	})
	s.Projectiles = slices.DeleteFunc(slices.Clone(s.Projectiles), func(pr Projectile) bool {
		return pr.X+p.ProjectileW > p.ViewportW || pr.Y >= p.ViewportH
	})
	return s
}

// Fire launches a projectile from the middle of the player's nose.
func Fire(s State, p Params) State {
	if !s.Running() {
		return s
	}
	pr := Projectile{
		ID: s.NextID,
		X:  s.PlayerX + (p.PlayerW-p.ProjectileW)/2,
		Y:  p.PlayerBottom + p.PlayerH,
	}
	s.NextID++
	s.Projectiles = append(slices.Clip(s.Projectiles), pr)
	return s
}

// Spawn places a new obstacle at the far edge of the road at offset x,
// clamped so it fits the viewport.
func Spawn(s State, x float64, p Params) State {
	if !s.Running() {
		return s
	}
	o := Obstacle{
		ID: s.NextID,
		X:  core.ClampF(x, 0, p.MaxObstacleX()),
		Y:  p.ViewportH,
	}
	s.NextID++
	s.Obstacles = append(slices.Clip(s.Obstacles), o)
	return s
}

// SpawnRandom spawns an obstacle at a uniformly random offset.
func SpawnRandom(s State, rng *rand.Rand, p Params) State {
	return Spawn(s, rng.Float64()*p.MaxObstacleX(), p)
}

// Advance is the single driver of the game clock. It banks dt on each
// timer and fires the timer once per elapsed interval, at most MaxCatchUp
// times per call; any further backlog is dropped.
//
// Scrolling runs whenever the game is not paused. Updates and spawns run
// only while the game is running, so they freeze on game over.
func Advance(s State, dt time.Duration, rng *rand.Rand, p Params) State {
	if dt <= 0 || s.Paused {
		return s
	}

	s.ScrollClock += dt
	s.ScrollClock = drain(s.ScrollClock, p.ScrollInterval, p.MaxCatchUp, func() { s = Scroll(s, p) })

	if s.Phase != Running {
		return s
	}

	s.UpdateClock += dt
	s.UpdateClock = drain(s.UpdateClock, p.UpdateInterval, p.MaxCatchUp, func() { s = Update(s, p) })

	if s.Phase != Running {
		return s
	}

	s.SpawnClock += dt
	s.SpawnClock = drain(s.SpawnClock, p.SpawnInterval, p.MaxCatchUp, func() { s = SpawnRandom(s, rng, p) })

	return s
}

// drain fires step once per whole interval banked in clock and returns the
// remainder. Backlog beyond limit firings is discarded.
func drain(clock, interval time.Duration, limit int, step func()) time.Duration {
	if interval <= 0 {
		return 0
	}
	for n := 0; clock >= interval; n++ {
		if n >= limit {
			return clock % interval
		}
		step()
		clock -= interval
	}
	return clock
}
