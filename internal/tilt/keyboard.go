package tilt

import (
	"time"

	"github.com/vovakirdan/roadrush/internal/core"
)

// Keyboard emulates a tilt sensor with arrow keys. Terminals only report
// key presses, so each press holds a full tilt for a short window; key
// auto-repeat keeps it held.
type Keyboard struct {
	hold  time.Duration
	dir   float64
	until time.Time
}

// NewKeyboard creates a keyboard source whose presses last for hold.
func NewKeyboard(hold time.Duration) *Keyboard {
	return &Keyboard{hold: hold}
}

// Press registers a steering key. Actions other than Left and Right are ignored.
func (k *Keyboard) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		k.dir = -1
	case core.ActionRight:
		k.dir = 1
	default:
		return
	}
	k.until = now.Add(k.hold)
}

// Sample returns the current reading: full tilt while a press is held, else 0.
func (k *Keyboard) Sample(now time.Time) float64 {
	if k.dir == 0 || !now.Before(k.until) {
		k.dir = 0
		return 0
	}
	return k.dir
}
