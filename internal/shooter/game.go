package shooter

import (
	"math/rand"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/registry"
)

// GameID is the registry identifier for Road Rush.
const GameID = "roadrush"

// hudRows is the number of screen rows above the road.
const hudRows = 1

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts the pure shooter state to the platform's Game interface.
type Game struct {
	cfg       config.ShooterConfig
	fixedCfg  bool // true when cfg was injected and must not be reloaded
	params    Params
	state     State
	rng       *rand.Rand
	runtime   core.RuntimeConfig
	tickCount int
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(cfg config.ShooterConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Road Rush"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadShooter(configPath)
		if err != nil {
			cfg = config.DefaultShooterConfig()
		}
		g.cfg = cfg
	}

	g.params = g.paramsFor(runtime)
	g.state = NewState(g.params)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tickCount = 0
}

// Resize adapts the viewport to new screen dimensions without losing
// the game in progress. Entities outside the new bounds are dropped at once.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime.ScreenW = runtime.ScreenW
	g.runtime.ScreenH = runtime.ScreenH
	g.params = g.paramsFor(g.runtime)
	g.state = Fit(g.state, g.params)
}

func (g *Game) paramsFor(runtime core.RuntimeConfig) Params {
	rows := max(runtime.ScreenH-hudRows, 1)
	cols := max(runtime.ScreenW, 1)
	return NewParams(g.cfg,
		float64(cols)*g.cfg.World.CellWidth,
		float64(rows)*g.cfg.World.CellHeight,
	)
}

// Step advances the game by one platform tick. Discrete actions and the
// tilt sample are applied first, then the timers advance by one tick interval.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.state = TogglePause(g.state)
	}

	if in.Has(core.ActionRestart) && g.state.Phase == GameOver {
		g.state = Restart(g.state, g.params)
		g.tickCount = 0
	}

	if reading, ok := in.Tilt(); ok {
		g.state = ApplyTilt(g.state, reading, g.params)
	}

	if in.Has(core.ActionFire) {
		g.state = Fire(g.state, g.params)
	}

	if g.state.Running() {
		g.tickCount++
	}
	g.state = Advance(g.state, g.runtime.TickInterval(), g.rng, g.params)

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		GameOver: g.state.Phase == GameOver,
		Paused:   g.state.Paused,
	}
}

// Frame returns the renderable snapshot of the current state.
func (g *Game) Frame() Frame {
	return Snapshot(g.state)
}

// Params returns the parameters of the current viewport.
func (g *Game) Params() Params {
	return g.params
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
