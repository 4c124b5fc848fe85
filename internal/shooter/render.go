package shooter

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/roadrush/internal/core"
)

// Visual characters for rendering
const (
	PlayerBody     = '█'
	PlayerNose     = '▲'
	ObstacleBody   = '▓'
	ObstacleNose   = '▼'
	ProjectileChar = '║'
	LaneChar       = '┆'
	EdgeChar       = '│'
)

// laneDash is the world-unit period of the lane markings; the first half is painted.
const laneDash = 80.0

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	view := newViewport(g.cfg.World.CellWidth, g.cfg.World.CellHeight, hudRows, dst.Height()-hudRows)

	g.drawRoad(dst, view)

	for _, o := range g.state.Obstacles {
		g.drawObstacle(dst, view, o)
	}
	for _, pr := range g.state.Projectiles {
		col0, col1, row0, row1 := view.span(g.params.ProjectileBox(pr))
		dst.DrawRect(core.NewRect(col0, row0, col1-col0+1, row1-row0+1), ProjectileChar, core.ColorBrightYellow)
	}
	g.drawPlayer(dst, view)

	g.drawHUD(dst)

	if g.state.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.state.Phase == GameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.state.Score))
	}
}

// viewport maps world coordinates onto the character grid below the HUD.
type viewport struct {
	cellW, cellH float64
	top          int // first screen row of the road
	rows         int // number of road rows
}

func newViewport(cellW, cellH float64, top, rows int) viewport {
	return viewport{cellW: cellW, cellH: cellH, top: top, rows: max(rows, 0)}
}

// span returns the inclusive column and row ranges covered by a box.
func (v viewport) span(b core.Box) (col0, col1, row0, row1 int) {
	col0 = int(math.Floor(b.X / v.cellW))
	col1 = int(math.Ceil(b.Right()/v.cellW)) - 1
	lo := int(math.Floor(b.Y / v.cellH))
	hi := int(math.Ceil(b.Top()/v.cellH)) - 1
	bottomRow := v.top + v.rows - 1
	row0 = bottomRow - hi
	row1 = bottomRow - lo
	return col0, max(col1, col0), row0, max(row1, row0)
}

// drawRoad paints the road edges and the two scrolling layers of lane markings.
func (g *Game) drawRoad(dst *core.Screen, view viewport) {
	w := dst.Width()
	dst.DrawVLine(0, view.top, view.rows, EdgeChar, core.ColorGray)
	dst.DrawVLine(w-1, view.top, view.rows, EdgeChar, core.ColorGray)

	lanes := []int{w / 3, 2 * w / 3}
	viewH := g.params.ViewportH
	layers := Layers(g.state.Scroll, viewH)

	for row := 0; row < view.rows; row++ {
		// Distance from the far edge to the middle of this row.
		depth := (float64(row) + 0.5) * view.cellH
		for _, origin := range layers {
			local := depth - origin
			if local < 0 || local >= viewH {
				continue
			}
			if math.Mod(local, laneDash) < laneDash/2 {
				for _, x := range lanes {
					dst.SetColored(x, view.top+row, LaneChar, core.ColorGray)
				}
			}
		}
	}
}

// drawPlayer renders the player's vehicle with its nose pointing up the road.
func (g *Game) drawPlayer(dst *core.Screen, view viewport) {
	col0, col1, row0, row1 := view.span(g.params.PlayerBox(g.state.PlayerX))
	dst.DrawRect(core.NewRect(col0, row0, col1-col0+1, row1-row0+1), PlayerBody, core.ColorBrightCyan)
	dst.SetColored((col0+col1)/2, row0, PlayerNose, core.ColorBrightWhite)
}

// drawObstacle renders an oncoming vehicle with its nose pointing down.
func (g *Game) drawObstacle(dst *core.Screen, view viewport, o Obstacle) {
	col0, col1, row0, row1 := view.span(g.params.ObstacleBox(o))
	dst.DrawRect(core.NewRect(col0, row0, col1-col0+1, row1-row0+1), ObstacleBody, core.ColorRed)
	dst.SetColored((col0+col1)/2, row1, ObstacleNose, core.ColorBrightRed)
}

// drawHUD renders the score line above the road.
func (g *Game) drawHUD(dst *core.Screen) {
	elapsed := time.Duration(g.tickCount) * g.runtime.TickInterval()
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.state.Score), core.ColorBrightWhite)

	hint := "Tilt to move"
	dst.DrawTextCentered(0, hint, core.ColorGray)

	timeText := fmt.Sprintf(" Time: %ds ", int(elapsed.Seconds()))
	dst.DrawTextColored(dst.Width()-len(timeText)-2, 0, timeText, core.ColorWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightRed)
	dst.DrawHLine(boxX+1, boxY+2, boxW-2, '─', core.ColorGray)
	dst.DrawTextColored(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorWhite)
}
