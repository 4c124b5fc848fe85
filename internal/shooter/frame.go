package shooter

// EntityView is the render-side view of a projectile or obstacle.
type EntityView struct {
	ID uint64  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Frame is everything a renderer needs to draw one frame. It is plain
// data with no ties to any presentation technology.
type Frame struct {
	PlayerX     float64      `json:"player_x"`
	Projectiles []EntityView `json:"projectiles"`
	Obstacles   []EntityView `json:"obstacles"`
	Scroll      float64      `json:"scroll"`
	GameOver    bool         `json:"game_over"`
	Paused      bool         `json:"paused"`
	Score       int          `json:"score"`
}

// Snapshot copies the renderable parts of s into a Frame.
func Snapshot(s State) Frame {
	f := Frame{
		PlayerX:     s.PlayerX,
		Projectiles: make([]EntityView, len(s.Projectiles)),
		Obstacles:   make([]EntityView, len(s.Obstacles)),
		Scroll:      s.Scroll,
		GameOver:    s.Phase == GameOver,
		Paused:      s.Paused,
		Score:       s.Score,
	}
	for i, pr := range s.Projectiles {
		f.Projectiles[i] = EntityView{ID: pr.ID, X: pr.X, Y: pr.Y}
	}
	for i, o := range s.Obstacles {
		f.Obstacles[i] = EntityView{ID: o.ID, X: o.X, Y: o.Y}
	}
	return f
}
