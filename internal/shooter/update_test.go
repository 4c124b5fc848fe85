package shooter

import (
	"math"
	"math/rand"
	"reflect"
	"slices"
	"testing"
	"time"
)

// testParams returns a 400x600 road with the default sprite sizes:
// player 80x80 at bottom 20, projectile 10x20, obstacle 70x70, steps of 5.
func testParams() Params {
	return DefaultParams(400, 600)
}

func TestNewStateCentersPlayer(t *testing.T) {
	p := testParams()
	s := NewState(p)

	if s.PlayerX != 160 {
		t.Errorf("PlayerX = %v, expected 160", s.PlayerX)
	}
	if s.Phase != Running {
		t.Errorf("Phase = %v, expected Running", s.Phase)
	}
	if len(s.Projectiles) != 0 || len(s.Obstacles) != 0 {
		t.Error("new state should have an empty road")
	}
}

func TestObstacleFallsByFixedStep(t *testing.T) {
	p := testParams()
	s := NewState(p)
	s = Spawn(s, 100, p)

	// Player starts centered at 160..240 and the obstacle covers 100..170,
	// so they meet once the obstacle's bottom reaches the player's top (100).
	for n := 1; n < 100; n++ {
		s = Update(s, p)
		if len(s.Obstacles) != 1 {
			t.Fatalf("tick %d: obstacle removed early", n)
		}
		want := p.ViewportH - 5*float64(n)
		if s.Obstacles[0].Y != want {
			t.Fatalf("tick %d: obstacle.Y = %v, expected %v", n, s.Obstacles[0].Y, want)
		}
	}

	s = Update(s, p)
	if len(s.Obstacles) != 0 {
		t.Error("obstacle should be removed when it reaches the player")
	}
	if s.Phase != GameOver {
		t.Errorf("Phase = %v, expected GameOver", s.Phase)
	}
}

func TestObstacleLeavingBottomIsRemoved(t *testing.T) {
	p := testParams()
	s := NewState(p)
	s.PlayerX = 300 // out of the obstacle's column
	s = Spawn(s, 100, p)

	// 600 - 5n + 70 <= 0 first holds at n = 134.
	for n := 1; n < 134; n++ {
		s = Update(s, p)
		if len(s.Obstacles) != 1 {
			t.Fatalf("tick %d: obstacle removed while still visible (y=%v)", n, p.ViewportH-5*float64(n))
		}
	}
	s = Update(s, p)
	if len(s.Obstacles) != 0 {
		t.Errorf("obstacle should be culled after leaving the viewport, got %+v", s.Obstacles)
	}
	if s.Phase != Running {
		t.Error("a missed obstacle must not end the game")
	}
}

func TestProjectileLeavingTopIsRemoved(t *testing.T) {
	p := testParams()
	s := Fire(NewState(p), p)

	if len(s.Projectiles) != 1 {
		t.Fatal("Fire should add a projectile")
	}
	pr := s.Projectiles[0]
	if pr.X != 195 || pr.Y != 100 {
		t.Errorf("projectile spawned at (%v, %v), expected (195, 100)", pr.X, pr.Y)
	}

	// 100 + 5n >= 600 first holds at n = 100.
	for n := 1; n < 100; n++ {
		s = Update(s, p)
		if len(s.Projectiles) != 1 {
			t.Fatalf("tick %d: projectile removed early", n)
		}
	}
	s = Update(s, p)
	if len(s.Projectiles) != 0 {
		t.Error("projectile should be removed once it reaches the top edge")
	}
}

func TestPlayerCollisionEndsGameOnce(t *testing.T) {
	p := testParams()
	rng := rand.New(rand.NewSource(1))

	s := NewState(p)
	s = Spawn(s, 160, p)
	s = Spawn(s, 0, p)
	s.Obstacles[0].Y = 105 // one step above the player's top
	farY := s.Obstacles[1].Y

	transitions := 0
	for i := 0; i < 1000; i++ {
		before := s.Phase
		s = Advance(s, 15*time.Millisecond, rng, p)
		if before == Running && s.Phase == GameOver {
			transitions++
		}
	}

	if transitions != 1 {
		t.Fatalf("expected exactly one Running->GameOver transition, got %d", transitions)
	}
	if len(s.Obstacles) != 1 {
		t.Fatalf("colliding obstacle should be removed and nothing new spawned, got %d obstacles", len(s.Obstacles))
	}
	if s.Obstacles[0].Y != farY-5 {
		t.Errorf("updates should stop after game over: far obstacle at %v, expected %v", s.Obstacles[0].Y, farY-5)
	}
	if s.NextID != 3 {
		t.Errorf("no entities should be created after game over, NextID = %d", s.NextID)
	}
}

func TestProjectileAndObstacleDestroyEachOther(t *testing.T) {
	p := testParams()
	s := Fire(NewState(p), p) // projectile 195..205, y 100..120
	s = Spawn(s, 170, p)
	s.Obstacles[0].Y = 110 // meets the projectile's bottom edge at 105

	s = Update(s, p)

	if len(s.Projectiles) != 0 || len(s.Obstacles) != 0 {
		t.Errorf("both entities should be removed, got %d projectiles and %d obstacles", len(s.Projectiles), len(s.Obstacles))
	}
	if s.Phase != Running {
		t.Error("shooting an obstacle must not end the game")
	}
	if s.Score != 1 {
		t.Errorf("Score = %d, expected 1", s.Score)
	}
}

func TestCollisionUsesSameTickPositions(t *testing.T) {
	p := testParams()
	s := Fire(NewState(p), p) // projectile bottom edge at 100
	s = Spawn(s, 170, p)
	s.Obstacles[0].Y = 108 // 8 units clear before the tick, 2 units past the edge after it

	if p.ProjectileEdge(s.Projectiles[0]).Overlaps(p.ObstacleBox(s.Obstacles[0])) {
		t.Fatal("setup: entities must not overlap before the tick")
	}

	s = Update(s, p)
	if len(s.Obstacles) != 0 || len(s.Projectiles) != 0 {
		t.Error("overlap created by this tick's movement should be resolved in the same tick")
	}
}

func TestProjectileDestroysOneObstacle(t *testing.T) {
	p := testParams()
	s := Fire(NewState(p), p)
	s = Spawn(s, 140, p)
	s = Spawn(s, 190, p)
	s.Obstacles[0].Y = 110
	s.Obstacles[1].Y = 110
	survivor := s.Obstacles[1].ID

	s = Update(s, p)

	if s.Score != 1 {
		t.Errorf("Score = %d, expected 1", s.Score)
	}
	if len(s.Obstacles) != 1 || s.Obstacles[0].ID != survivor {
		t.Errorf("only the first overlapping obstacle should be destroyed, got %+v", s.Obstacles)
	}
	if len(s.Projectiles) != 0 {
		t.Error("projectile should be spent")
	}
}

func TestPlayerCollisionRemovesEveryTouchingObstacle(t *testing.T) {
	p := testParams()
	s := NewState(p) // player 160..240 x 20..100
	s = Spawn(s, 120, p)
	s = Spawn(s, 200, p)
	s = Spawn(s, 0, p)
	for i := range s.Obstacles {
		s.Obstacles[i].Y = 105
	}
	bystander := s.Obstacles[2].ID

	s = Update(s, p)

	if s.Phase != GameOver {
		t.Fatalf("Phase = %v, expected GameOver", s.Phase)
	}
	if len(s.Obstacles) != 1 || s.Obstacles[0].ID != bystander {
		t.Errorf("both obstacles touching the player should be removed, got %+v", s.Obstacles)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, expected 0", s.Score)
	}
}

func TestProjectileHitsWithBottomEdge(t *testing.T) {
	p := testParams()
	s := Fire(NewState(p), p) // projectile 195..205
	s.Projectiles[0].Y = 275
	s = Spawn(s, 170, p)
	s.Obstacles[0].Y = 300

	// The sprites overlap after the first tick, but the projectile's bottom
	// edge stays below the obstacle until the third.
	for tick := 1; tick <= 2; tick++ {
		s = Update(s, p)
		if len(s.Obstacles) != 1 || len(s.Projectiles) != 1 {
			t.Fatalf("tick %d: hit registered before the bottom edge reached the obstacle", tick)
		}
	}

	s = Update(s, p)
	if len(s.Obstacles) != 0 || len(s.Projectiles) != 0 || s.Score != 1 {
		t.Errorf("expected a hit on tick 3, got %d obstacles, %d projectiles, score %d",
			len(s.Obstacles), len(s.Projectiles), s.Score)
	}
}

func TestProjectileHitHorizontalEdges(t *testing.T) {
	p := testParams()

	tests := []struct {
		name  string
		projX float64
		hit   bool
	}{
		{"touching left edge", 90, true}, // 90..100 vs 100..170
		{"touching right edge", 170, true},
		{"clear on the left", 89, false},
		{"clear on the right", 171, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(p)
			s = Spawn(s, 100, p)
			s.Obstacles[0].Y = 205
			s.Projectiles = []Projectile{{ID: s.NextID, X: tc.projX, Y: 195}}

			s = Update(s, p)
			if got := len(s.Obstacles) == 0; got != tc.hit {
				t.Errorf("hit = %v, expected %v", got, tc.hit)
			}
		})
	}
}

func TestFitDropsEntitiesOutsideViewport(t *testing.T) {
	big := DefaultParams(800, 600)
	small := DefaultParams(400, 300)

	s := NewState(big)
	s.PlayerX = 700
	s.Scroll = 350
	s.Phase = GameOver
	s.Obstacles = []Obstacle{
		{ID: 1, X: 100, Y: 200}, // fits
		{ID: 2, X: 500, Y: 200}, // too far right
		{ID: 3, X: 100, Y: 400}, // above the new far edge
	}
	s.Projectiles = []Projectile{
		{ID: 4, X: 50, Y: 100},  // fits
		{ID: 5, X: 50, Y: 300},  // at the new far edge
		{ID: 6, X: 395, Y: 100}, // too far right
	}
	before := slices.Clone(s.Obstacles)

	got := Fit(s, small)

	if got.PlayerX != 320 {
		t.Errorf("PlayerX = %v, expected 320", got.PlayerX)
	}
	if got.Scroll != 50 {
		t.Errorf("Scroll = %v, expected 50", got.Scroll)
	}
	if len(got.Obstacles) != 1 || got.Obstacles[0].ID != 1 {
		t.Errorf("obstacles = %+v, expected only ID 1", got.Obstacles)
	}
	if len(got.Projectiles) != 1 || got.Projectiles[0].ID != 4 {
		t.Errorf("projectiles = %+v, expected only ID 4", got.Projectiles)
	}
	if !reflect.DeepEqual(s.Obstacles, before) {
		t.Error("Fit must not modify the input state")
	}
	if got.Phase != GameOver {
		t.Error("Fit must not change the phase")
	}
}

func TestActionsIgnoredAfterGameOver(t *testing.T) {
	p := testParams()
	s := NewState(p)
	s.Phase = GameOver

	if got := Fire(s, p); len(got.Projectiles) != 0 {
		t.Error("Fire during game over should be a no-op")
	}
	if got := Spawn(s, 10, p); len(got.Obstacles) != 0 {
		t.Error("Spawn during game over should be a no-op")
	}
	if got := ApplyTilt(s, 1, p); got.PlayerX != s.PlayerX {
		t.Error("tilt during game over should be ignored")
	}
	if got := TogglePause(s); got.Paused {
		t.Error("a finished game cannot be paused")
	}
}

func TestApplyTiltClamps(t *testing.T) {
	p := testParams()

	tests := []struct {
		name     string
		start    float64
		reading  float64
		expected float64
	}{
		{"right", 160, 0.5, 175},
		{"left", 160, -1, 130},
		{"clamped right", 310, 1, 320},
		{"clamped left", 10, -2, 0},
		{"zero", 160, 0, 160},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(p)
			s.PlayerX = tc.start
			s = ApplyTilt(s, tc.reading, p)
			if s.PlayerX != tc.expected {
				t.Errorf("PlayerX = %v, expected %v", s.PlayerX, tc.expected)
			}
		})
	}
}

func TestApplyTiltClampsAnyMagnitude(t *testing.T) {
	p := testParams()
	p.Sensitivity = 1e12

	s := ApplyTilt(NewState(p), 1, p)
	if s.PlayerX != p.MaxPlayerX() {
		t.Errorf("PlayerX = %v, expected %v", s.PlayerX, p.MaxPlayerX())
	}
	s = ApplyTilt(s, -1, p)
	if s.PlayerX != 0 {
		t.Errorf("PlayerX = %v, expected 0", s.PlayerX)
	}
}

func TestApplyTiltIgnoresMalformedReadings(t *testing.T) {
	p := testParams()
	s := NewState(p)

	for _, r := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 2.5, -3} {
		if got := ApplyTilt(s, r, p); got.PlayerX != s.PlayerX {
			t.Errorf("reading %v should be ignored, PlayerX moved to %v", r, got.PlayerX)
		}
	}
}

func TestRestartIsIdempotent(t *testing.T) {
	p := testParams()

	fresh := NewState(p)
	if !reflect.DeepEqual(Restart(fresh, p), fresh) {
		t.Error("restarting a fresh game should yield an equivalent state")
	}

	s := Fire(fresh, p)
	s = Spawn(s, 50, p)
	s.PlayerX = 12
	s.Score = 4
	s.Phase = GameOver
	s.Scroll = 35

	once := Restart(s, p)
	twice := Restart(once, p)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Restart is not idempotent:\nonce  %+v\ntwice %+v", once, twice)
	}

	if once.Phase != Running || once.PlayerX != 160 || once.Score != 0 {
		t.Errorf("Restart should resume a centered, scoreless game, got %+v", once)
	}
	if len(once.Projectiles) != 0 || len(once.Obstacles) != 0 {
		t.Error("Restart should clear the road")
	}
	if once.NextID != s.NextID {
		t.Errorf("Restart should keep the ID counter, got %d want %d", once.NextID, s.NextID)
	}
}

func TestIDsAreUnique(t *testing.T) {
	p := testParams()
	s := NewState(p)
	for i := 0; i < 5; i++ {
		s = Fire(s, p)
		s = Spawn(s, float64(i*60), p)
	}

	seen := make(map[uint64]bool)
	for _, pr := range s.Projectiles {
		seen[pr.ID] = true
	}
	for _, o := range s.Obstacles {
		seen[o.ID] = true
	}
	if len(seen) != 10 {
		t.Errorf("expected 10 distinct IDs, got %d", len(seen))
	}
}

func TestSpawnClampsToViewport(t *testing.T) {
	p := testParams()
	s := Spawn(NewState(p), 1000, p)
	s = Spawn(s, -20, p)

	if s.Obstacles[0].X != 330 {
		t.Errorf("obstacle X = %v, expected 330", s.Obstacles[0].X)
	}
	if s.Obstacles[1].X != 0 {
		t.Errorf("obstacle X = %v, expected 0", s.Obstacles[1].X)
	}
	if s.Obstacles[0].Y != p.ViewportH {
		t.Errorf("obstacle should start at the far edge, got Y = %v", s.Obstacles[0].Y)
	}
}

func TestSpawnRandomStaysInBounds(t *testing.T) {
	p := testParams()
	rng := rand.New(rand.NewSource(7))
	s := NewState(p)
	for i := 0; i < 200; i++ {
		s = SpawnRandom(s, rng, p)
	}
	for _, o := range s.Obstacles {
		if o.X < 0 || o.X > p.MaxObstacleX() {
			t.Fatalf("obstacle spawned out of bounds at %v", o.X)
		}
	}
}

func TestPureFunctionsDoNotAliasInput(t *testing.T) {
	p := testParams()
	base := Fire(NewState(p), p)
	base = Spawn(base, 0, p)

	a := Fire(base, p)
	b := Spawn(base, 200, p)
	_ = Update(base, p)

	if len(base.Projectiles) != 1 || len(base.Obstacles) != 1 {
		t.Fatal("input state slices should be untouched")
	}
	if base.Projectiles[0].Y != 100 || base.Obstacles[0].Y != p.ViewportH {
		t.Error("Update should not move entities of its input state")
	}
	if len(a.Projectiles) != 2 || len(b.Obstacles) != 2 {
		t.Error("derived states should each have their own entity")
	}
}

func TestScrollWraps(t *testing.T) {
	p := testParams()
	s := NewState(p)

	for i := 0; i < 119; i++ {
		s = Scroll(s, p)
	}
	if s.Scroll != 595 {
		t.Errorf("Scroll = %v, expected 595", s.Scroll)
	}
	s = Scroll(s, p)
	if s.Scroll != 0 {
		t.Errorf("Scroll should wrap to 0, got %v", s.Scroll)
	}

	layers := Layers(100, 600)
	if layers != [2]float64{-500, 100} {
		t.Errorf("Layers(100, 600) = %v", layers)
	}
}

func TestAdvanceSpawnsOnInterval(t *testing.T) {
	p := testParams()
	rng := rand.New(rand.NewSource(3))
	s := NewState(p)
	s.PlayerX = 0

	for i := 0; i < 133; i++ { // 1995ms
		s = Advance(s, 15*time.Millisecond, rng, p)
	}
	if len(s.Obstacles) != 0 {
		t.Fatalf("no obstacle should spawn before 2s, got %d", len(s.Obstacles))
	}

	s = Advance(s, 15*time.Millisecond, rng, p) // 2010ms
	if len(s.Obstacles) != 1 {
		t.Fatalf("one obstacle should spawn at 2s, got %d", len(s.Obstacles))
	}
	if s.Obstacles[0].Y != p.ViewportH {
		t.Errorf("fresh obstacle should sit at the far edge, got Y = %v", s.Obstacles[0].Y)
	}
	if s.SpawnClock != 10*time.Millisecond {
		t.Errorf("SpawnClock = %v, expected 10ms remainder", s.SpawnClock)
	}
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	p := testParams()
	rng := rand.New(rand.NewSource(3))
	s := Spawn(NewState(p), 0, p)
	s.PlayerX = 300

	s = Advance(s, time.Second, rng, p)

	want := p.ViewportH - 5*float64(p.MaxCatchUp)
	if s.Obstacles[0].Y != want {
		t.Errorf("obstacle Y = %v, expected %v after a capped catch-up", s.Obstacles[0].Y, want)
	}
	if s.UpdateClock != 10*time.Millisecond {
		t.Errorf("UpdateClock = %v, expected backlog dropped to 10ms", s.UpdateClock)
	}
}

func TestAdvanceWhilePausedOrOver(t *testing.T) {
	p := testParams()
	rng := rand.New(rand.NewSource(3))

	paused := TogglePause(Spawn(NewState(p), 0, p))
	after := Advance(paused, time.Second, rng, p)
	if !reflect.DeepEqual(after, paused) {
		t.Error("a paused game should not advance")
	}

	over := Spawn(NewState(p), 0, p)
	over.Phase = GameOver
	after = Advance(over, 15*time.Millisecond, rng, p)
	if after.Scroll != 5 {
		t.Errorf("background should keep scrolling after game over, Scroll = %v", after.Scroll)
	}
	if after.Obstacles[0].Y != over.Obstacles[0].Y {
		t.Error("obstacles should freeze after game over")
	}
	if after.UpdateClock != 0 || after.SpawnClock != 0 {
		t.Error("update and spawn timers should not run after game over")
	}
}

func TestAdvanceIgnoresNonPositiveDelta(t *testing.T) {
	p := testParams()
	s := NewState(p)
	if got := Advance(s, 0, nil, p); !reflect.DeepEqual(got, s) {
		t.Error("zero delta should be a no-op")
	}
	if got := Advance(s, -time.Second, nil, p); !reflect.DeepEqual(got, s) {
		t.Error("negative delta should be a no-op")
	}
}

func TestSnapshot(t *testing.T) {
	p := testParams()
	s := Fire(NewState(p), p)
	s = Spawn(s, 42, p)
	s.Score = 3
	s.Scroll = 15

	f := Snapshot(s)
	if f.PlayerX != 160 || f.Score != 3 || f.Scroll != 15 || f.GameOver || f.Paused {
		t.Errorf("unexpected frame header %+v", f)
	}
	if len(f.Projectiles) != 1 || f.Projectiles[0] != (EntityView{ID: 1, X: 195, Y: 100}) {
		t.Errorf("projectile view = %+v", f.Projectiles)
	}
	if len(f.Obstacles) != 1 || f.Obstacles[0] != (EntityView{ID: 2, X: 42, Y: 600}) {
		t.Errorf("obstacle view = %+v", f.Obstacles)
	}

	s.Projectiles[0].Y = 999
	if f.Projectiles[0].Y != 100 {
		t.Error("frame should not alias the state")
	}
}

func TestPhaseString(t *testing.T) {
	if Running.String() != "Running" || GameOver.String() != "GameOver" || Phase(7).String() != "Unknown" {
		t.Error("unexpected Phase names")
	}
}
